// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"numdash-server/catalog"
	"numdash-server/commons/prefix"
	"numdash-server/gateway"
	"numdash-server/middlewares"
	"numdash-server/models"
	"numdash-server/rabbitmq"

	"github.com/labstack/echo/v4"
)

func variantParam(c echo.Context) (catalog.Variant, error) {
	v, err := catalog.ParseVariant(c.Param("variant"))
	if err != nil {
		return "", &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Unknown catalog, expected one of short, middle or long",
		}
	}
	return v, nil
}

// GetCatalogHandler godoc
// @Summary      Browse a number catalog
// @Description  Lists the purchasable numbers of one variant.
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        variant    path    string  true   "short, middle or long"
// @Param        service    query   string  false  "Only this service"
// @Param        country    query   string  false  "Only this ISO country code"
// @Param        available  query   bool    false  "Only offers in stock"
// @Success      200 {object} CatalogResponse    "Catalog retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      404 {object} echo.HTTPError     "Unknown catalog"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/catalog/{variant} [get]
func GetCatalogHandler(c echo.Context) error {
	logger := c.Logger()

	variant, err := variantParam(c)
	if err != nil {
		return err
	}

	filter := catalog.Filter{
		Service:       c.QueryParam("service"),
		IsoCountry:    c.QueryParam("country"),
		AvailableOnly: c.QueryParam("available") == "true",
	}
	items, err := catalog.List(c.Request().Context(), Documents, variant, filter)
	if err != nil {
		logger.Errorf("Failed to list catalog: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, CatalogResponse{
		Variant: variant,
		Data:    items,
		Message: "Catalog retrieved successfully",
	})
}

// PurchaseHandler godoc
// @Summary      Purchase a number
// @Description  Buys the catalog offer through the purchase endpoint and records the transaction.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        variant          path  string           true  "short, middle or long"
// @Param        purchaseRequest  body  PurchaseRequest  true  "Offer to buy"
// @Success      201 {object} PurchaseResponse   "Number purchased successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      404 {object} echo.HTTPError     "Unknown catalog or offer"
// @Failure      409 {object} echo.HTTPError     "Offer not available"
// @Failure      502 {object} echo.HTTPError     "Purchase endpoint refused the request"
// @Failure      503 {object} echo.HTTPError     "Purchasing is not configured"
// @Router       /v1/catalog/{variant}/purchase [post]
func PurchaseHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}

	variant, err := variantParam(c)
	if err != nil {
		return err
	}

	var req PurchaseRequest
	if err := c.Bind(&req); err != nil || req.ItemID == "" {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "item_id field is required"}
	}
	if Upstream == nil {
		return &echo.HTTPError{Code: http.StatusServiceUnavailable, Message: "Purchasing is not available right now"}
	}

	ctx := c.Request().Context()
	item, err := catalog.Get(ctx, Documents, variant, req.ItemID)
	if errors.Is(err, catalog.ErrItemNotFound) {
		return &echo.HTTPError{Code: http.StatusNotFound, Message: "This offer does not exist"}
	}
	if err != nil {
		logger.Errorf("Failed to read catalog item: %v", err)
		return echo.ErrInternalServerError
	}
	if !item.Available {
		return &echo.HTTPError{Code: http.StatusConflict, Message: "This offer is sold out"}
	}

	result, err := Upstream.Purchase(ctx, middlewares.UpstreamToken(c), gateway.PurchaseRequest{
		Service:    item.Service,
		Country:    item.Country,
		IsoCountry: item.IsoCountry,
		Variant:    string(variant),
	})
	if errors.Is(err, gateway.ErrNotConfigured) {
		return &echo.HTTPError{Code: http.StatusServiceUnavailable, Message: "Purchasing is not available right now"}
	}
	if err != nil {
		logger.Errorf("Purchase failed: %v", err)
		return &echo.HTTPError{Code: http.StatusBadGateway, Message: gateway.UserMessage(err)}
	}

	price, unit := result.Price, result.PriceUnit
	if price == 0 {
		price = item.Price
	}
	if unit == "" {
		unit = item.PriceUnit
	}
	number := prefix.Clean(result.Number)

	t := models.Transaction{
		Category:  models.Purchase,
		Status:    models.Completed,
		Amount:    price,
		PriceUnit: unit,
		OrderID:   stringPtr(result.OrderID),
		Variant:   stringPtr(string(variant)),
		Service:   stringPtr(item.Service),
		Number:    stringPtr(number),
		Countries: stringPtr(item.Country),
		UserID:    user.ID,
	}
	if err := recordTransaction(ctx, &t, rabbitmq.KeyNumberPurchased, user.AccountID); err != nil {
		logger.Errorf("Failed to record purchase transaction: %v", err)
	}

	logger.Infof("User %s purchased a %s number for %s", user.AccountID, variant, item.Service)
	return c.JSON(http.StatusCreated, PurchaseResponse{
		TransactionID: t.TID.String(),
		OrderID:       result.OrderID,
		Number:        number,
		Formatted:     prefix.Format(number),
		Price:         price,
		PriceUnit:     unit,
		ExpiresAt:     result.ExpiresAt,
		Message:       "Number purchased successfully",
	})
}
