// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"
	"numdash-server/db"
	"numdash-server/middlewares"
	"numdash-server/models"
	"time"

	"github.com/labstack/echo/v4"
)

// GetSessionsHandler godoc
// @Summary      Get user sessions
// @Description  Lists the live sessions of the authenticated user.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        page     query   int     false  "Page number (default 1)"
// @Param        page_size query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} SessionListResponse "Paginated list of user sessions"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/sessions [get]
func GetSessionsHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}
	current, _ := c.Get("session").(models.Session)
	page, pageSize := pagination(c)

	live := db.Conn.Model(&models.Session{}).Where("user_id = ? AND expires_at > ?", user.ID, time.Now())
	var total int64
	if err := live.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count sessions: %v", err)
		return echo.ErrInternalServerError
	}

	var sessions []models.Session
	if err := db.Conn.Where("user_id = ? AND expires_at > ?", user.ID, time.Now()).
		Order("last_used_at DESC, created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&sessions).Error; err != nil {
		logger.Errorf("Failed to fetch sessions: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]SessionDetails, 0, len(sessions))
	for _, session := range sessions {
		detail := SessionDetails{
			ID:        session.ID,
			IPAddress: session.IPAddress,
			UserAgent: session.UserAgent,
			CreatedAt: session.CreatedAt.Format(time.RFC3339),
			IsCurrent: session.ID == current.ID,
		}
		if session.LastUsedAt != nil {
			lastUsed := session.LastUsedAt.Format(time.RFC3339)
			detail.LastUsedAt = &lastUsed
		}
		details = append(details, detail)
	}

	return c.JSON(http.StatusOK, SessionListResponse{
		Data:       details,
		Pagination: newPaginationDetails(page, pageSize, total),
		Message:    "Sessions retrieved successfully",
	})
}

// DeleteSessionHandler godoc
// @Summary      Delete a session
// @Description  Signs out one of the user's other sessions. Use logout for the current one.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id    path    string  true  "Session ID"
// @Success      200 {object} GenericResponse "Session deleted successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, cannot delete current session"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "Session not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/sessions/{session_id} [delete]
func DeleteSessionHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}

	var sessionID uint
	if _, err := fmt.Sscanf(c.Param("session_id"), "%d", &sessionID); err != nil {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid session ID format",
		}
	}

	if current, ok := c.Get("session").(models.Session); ok && current.ID == sessionID {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Cannot delete current session. Use logout endpoint instead.",
		}
	}

	result := db.Conn.Unscoped().Where("id = ? AND user_id = ?", sessionID, user.ID).Delete(&models.Session{})
	if result.Error != nil {
		logger.Errorf("Failed to delete session: %v", result.Error)
		return echo.ErrInternalServerError
	}
	if result.RowsAffected == 0 {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Session not found",
		}
	}

	logger.Infof("Session %d deleted for user %d", sessionID, user.ID)
	return c.JSON(http.StatusOK, GenericResponse{Message: "Session deleted successfully"})
}
