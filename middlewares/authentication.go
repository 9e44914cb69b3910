// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"
	"numdash-server/db"
	"numdash-server/models"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// BearerToken returns the token of the Authorization header.
func BearerToken(c echo.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

func VerifySessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		sessionToken, ok := BearerToken(c)
		if !ok {
			logger.Error("Authorization header missing or invalid.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Authorization token is required",
			}
		}

		session, err := LookupSession(sessionToken)
		if err != nil {
			logger.Error("Session lookup failed: ", err)
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired session token, please login again",
			}
		}

		now := time.Now()
		if err := db.Conn.Model(session).Update("last_used_at", now).Error; err != nil {
			logger.Error("Failed to update session LastUsedAt: ", err)
		}

		c.Set("session", *session)
		c.Set("bearer_token", sessionToken)
		return next(c)
	}
}

func GetAuthenticatedUser(c echo.Context) (*models.User, error) {
	session, ok := c.Get("session").(models.Session)
	if !ok {
		return nil, errors.New("no authenticated user found")
	}
	var user models.User
	if err := db.Conn.Where("id = ?", session.UserID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpstreamToken is the token forwarded to the send and purchase endpoints.
func UpstreamToken(c echo.Context) string {
	token, _ := c.Get("bearer_token").(string)
	return token
}
