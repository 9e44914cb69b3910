// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"numdash-server/commons"
	"numdash-server/commons/prefix"
	"numdash-server/gateway"
	"numdash-server/middlewares"
	"numdash-server/models"
	"numdash-server/outbound"
	"numdash-server/rabbitmq"
	"sort"

	"github.com/labstack/echo/v4"
)

const maxNumbersPerRequest = 1000

func checkNumbers(numbers []string) error {
	if len(numbers) == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "numbers field is required",
		}
	}
	if len(numbers) > maxNumbersPerRequest {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("at most %d numbers can be processed at once", maxNumbersPerRequest),
		}
	}
	return nil
}

func toNumberVerdict(v prefix.Verdict) NumberVerdict {
	nv := NumberVerdict{Verdict: v}
	if v.Valid {
		nv.Formatted = prefix.Format(v.Cleaned)
	}
	return nv
}

// ValidateNumbersHandler godoc
// @Summary      Validate destination numbers
// @Description  Classifies every number and reports whether it may be sent to, with the reason when it may not.
// @Tags         numbers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        numbersRequest  body  NumbersRequest  true  "Numbers to validate"
// @Success      200 {object} ValidateNumbersResponse "Numbers validated"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Router       /v1/numbers/validate [post]
func ValidateNumbersHandler(c echo.Context) error {
	logger := c.Logger()

	var req NumbersRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid validate request payload:", err)
		return echo.ErrBadRequest
	}
	if err := checkNumbers(req.Numbers); err != nil {
		return err
	}

	resp := ValidateNumbersResponse{Data: make([]NumberVerdict, 0, len(req.Numbers)), Message: "Numbers validated"}
	for _, raw := range req.Numbers {
		v := commons.Numbering.Validate(raw)
		if v.Valid {
			resp.ValidCount++
		}
		resp.Data = append(resp.Data, toNumberVerdict(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// QuoteHandler godoc
// @Summary      Price check
// @Description  Prices a set of destination numbers with the per-country SMS rates. Countries without a rate are reported, not rejected.
// @Tags         sms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        numbersRequest  body  NumbersRequest  true  "Numbers to price"
// @Success      200 {object} QuoteResponse      "Price computed"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/sms/quote [post]
func QuoteHandler(c echo.Context) error {
	logger := c.Logger()

	var req NumbersRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid quote request payload:", err)
		return echo.ErrBadRequest
	}
	if err := checkNumbers(req.Numbers); err != nil {
		return err
	}

	quote, err := outboundService().Quote(c.Request().Context(), req.Numbers)
	if err != nil {
		logger.Errorf("Failed to compute quote: %v", err)
		return echo.ErrInternalServerError
	}

	details := QuoteDetails{
		Numbers:   make([]NumberVerdict, 0, len(quote.Numbers)),
		Total:     quote.Breakdown.Total,
		PriceUnit: quote.Breakdown.PriceUnit,
		Countries: []QuoteCountry{},
		Priced:    quote.Priced,
		Unmatched: quote.Breakdown.Unmatched,
		Unpriced:  quote.Unpriced,
	}
	for _, v := range quote.Numbers {
		details.Numbers = append(details.Numbers, toNumberVerdict(v))
	}
	for _, p := range quote.Priced {
		count := quote.Breakdown.PerCountry[p.CountryCode]
		if count == 0 {
			continue
		}
		details.Countries = append(details.Countries, QuoteCountry{
			CountryCode:     p.CountryCode,
			DisplayName:     p.DisplayName,
			Count:           count,
			PricePerMessage: p.PricePerMessage,
			Subtotal:        p.PricePerMessage * float64(count),
		})
	}
	sort.Slice(details.Countries, func(i, j int) bool { return details.Countries[i].CountryCode < details.Countries[j].CountryCode })

	return c.JSON(http.StatusOK, QuoteResponse{Data: details, Message: "Price computed"})
}

func sendStatus(outcome gateway.SendOutcome) (models.TransactionStatus, string, string) {
	switch outcome {
	case gateway.OutcomePartial:
		return models.Partial, rabbitmq.KeySMSPartial, "Some messages could not be delivered, you can retry the failed numbers"
	case gateway.OutcomePending:
		return models.Pending, rabbitmq.KeySMSPending, "Your message is pending moderation"
	}
	return models.Completed, rabbitmq.KeySMSSent, "Message sent successfully"
}

// SendSMSHandler godoc
// @Summary      Send an SMS
// @Description  Sends one message to every valid number. A blocked destination aborts the whole send; other invalid numbers are skipped. The send is never retried automatically.
// @Tags         sms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        sendSMSRequest  body  SendSMSRequest  true  "Numbers and message"
// @Success      200 {object} SendSMSResponse    "Sent, partially sent or pending moderation"
// @Failure      400 {object} echo.HTTPError     "Invalid message or numbers"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      422 {object} echo.HTTPError     "Blocked or unpriced destination"
// @Failure      502 {object} echo.HTTPError     "Send endpoint refused the request"
// @Failure      503 {object} echo.HTTPError     "Sending is not configured"
// @Router       /v1/sms/send [post]
func SendSMSHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}

	var req SendSMSRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid send request payload:", err)
		return echo.ErrBadRequest
	}
	if err := checkNumbers(req.Numbers); err != nil {
		return err
	}
	if Upstream == nil {
		return &echo.HTTPError{Code: http.StatusServiceUnavailable, Message: "Sending is not available right now"}
	}

	ctx := c.Request().Context()
	report, err := outboundService().Send(ctx, middlewares.UpstreamToken(c), req.Numbers, req.Message)
	var upstream *gateway.UpstreamError
	switch {
	case errors.Is(err, outbound.ErrEmptyMessage):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "message field is required"}
	case errors.Is(err, outbound.ErrMessageTooLong):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: fmt.Sprintf("message must be at most %d characters", outbound.MaxMessageLength)}
	case errors.Is(err, outbound.ErrNoRecipients):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "none of the numbers can be sent to"}
	case errors.Is(err, outbound.ErrUnpriced):
		logger.Errorf("Send refused, price data is missing: %v", err)
		return &echo.HTTPError{Code: http.StatusUnprocessableEntity, Message: "Sending to one of these destinations is not priced yet, nothing was sent. Please contact support."}
	case errors.Is(err, outbound.ErrBlockedNumber):
		logger.Warnf("Send aborted: %v", err)
		return &echo.HTTPError{Code: http.StatusUnprocessableEntity, Message: "Sending to one of these destinations is not allowed, nothing was sent"}
	case errors.Is(err, gateway.ErrNotConfigured):
		return &echo.HTTPError{Code: http.StatusServiceUnavailable, Message: "Sending is not available right now"}
	case errors.As(err, &upstream):
		logger.Errorf("Send endpoint refused the request: %v", err)
		return &echo.HTTPError{Code: http.StatusBadGateway, Message: gateway.UserMessage(err)}
	case err != nil:
		logger.Errorf("Send failed: %v", err)
		return &echo.HTTPError{Code: http.StatusBadGateway, Message: gateway.UserMessage(err)}
	}

	status, routingKey, message := sendStatus(report.Result.Outcome)
	t := models.Transaction{
		Category:    models.SMS,
		Status:      status,
		Amount:      report.Charged,
		PriceUnit:   report.PriceUnit,
		Description: stringPtr(req.Message),
		Recipients:  models.JoinList(report.Plan.Request.Numbers),
		Countries:   models.JoinList(report.Plan.Request.Countries),
		Failed:      models.JoinList(report.Result.FailedNumbers),
		OrderID:     models.JoinList(report.Result.OrderIDs),
		UserID:      user.ID,
	}
	if err := recordTransaction(ctx, &t, routingKey, user.AccountID); err != nil {
		// The send already happened; report it even though history is missing.
		logger.Errorf("Failed to record SMS transaction: %v", err)
	}

	logger.Infof("SMS to %d numbers finished with %s", len(report.Plan.Request.Numbers), report.Result.Outcome)
	return c.JSON(http.StatusOK, SendSMSResponse{
		TransactionID: t.TID.String(),
		Outcome:       report.Result.Outcome,
		Sent:          report.Plan.Request.Numbers,
		Countries:     report.Plan.Request.Countries,
		FailedNumbers: report.Result.FailedNumbers,
		Retry:         report.Retry,
		Skipped:       report.Plan.Skipped,
		OrderIDs:      report.Result.OrderIDs,
		Charged:       report.Charged,
		Message:       message,
	})
}
