// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"numdash-server/db"
	"numdash-server/middlewares"
	"numdash-server/models"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetTransactionsHandler godoc
// @Summary      Transaction history
// @Description  Lists the user's sends and purchases, newest first.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        page       query  int     false  "Page number (default 1)"
// @Param        page_size  query  int     false  "Page size (default 10, max 100)"
// @Param        category   query  string  false  "SMS or PURCHASE"
// @Param        status     query  string  false  "COMPLETED, PARTIAL, PENDING or FAILED"
// @Success      200 {object} TransactionListResponse "Transactions retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/transactions [get]
func GetTransactionsHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}
	page, pageSize := pagination(c)

	category := strings.ToUpper(c.QueryParam("category"))
	status := strings.ToUpper(c.QueryParam("status"))
	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("user_id = ?", user.ID)
		if category != "" {
			tx = tx.Where("category = ?", category)
		}
		if status != "" {
			tx = tx.Where("status = ?", status)
		}
		return tx
	}

	var total int64
	if err := db.Conn.Model(&models.Transaction{}).Scopes(filter).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count transactions: %v", err)
		return echo.ErrInternalServerError
	}

	var transactions []models.Transaction
	if err := db.Conn.Scopes(filter).Order("created_at DESC, id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&transactions).Error; err != nil {
		logger.Errorf("Failed to fetch transactions: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]TransactionDetails, 0, len(transactions))
	for _, t := range transactions {
		details = append(details, TransactionDetails{
			TID:         t.TID.String(),
			Category:    string(t.Category),
			Status:      string(t.Status),
			Amount:      t.Amount,
			PriceUnit:   t.PriceUnit,
			Description: t.Description,
			Recipients:  models.SplitList(t.Recipients),
			Countries:   models.SplitList(t.Countries),
			Failed:      models.SplitList(t.Failed),
			OrderID:     t.OrderID,
			Variant:     t.Variant,
			Service:     t.Service,
			Number:      t.Number,
			CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, TransactionListResponse{
		Data:       details,
		Pagination: newPaginationDetails(page, pageSize, total),
		Message:    "Transactions retrieved successfully",
	})
}

// GetTransactionSummaryHandler godoc
// @Summary      Transaction summary
// @Description  Counts the user's transactions per status and totals what was spent.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object} TransactionSummaryResponse "Transaction summary retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/transactions/summary [get]
func GetTransactionSummaryHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}

	var summary models.TransactionSummary
	err = db.Conn.Model(&models.Transaction{}).
		Select(`COUNT(*) AS total_count,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS total_completed,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS total_partial,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS total_failed,
			COALESCE(SUM(amount), 0) AS total_spent`,
			models.Completed, models.Partial, models.Pending, models.Failed).
		Where("user_id = ?", user.ID).
		Scan(&summary).Error
	if err != nil {
		logger.Errorf("Failed to summarize transactions: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, TransactionSummaryResponse{
		Data: TransactionSummaryData{
			TotalCount:     summary.TotalCount,
			TotalCompleted: summary.TotalCompleted,
			TotalPartial:   summary.TotalPartial,
			TotalPending:   summary.TotalPending,
			TotalFailed:    summary.TotalFailed,
			TotalSpent:     summary.TotalSpent,
		},
		Message: "Transaction summary retrieved successfully",
	})
}
