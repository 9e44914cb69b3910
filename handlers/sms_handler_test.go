// SPDX-License-Identifier: GPL-3.0-only

package handlers_test

import (
	"net/http"
	"numdash-server/commons/prefix"
	"numdash-server/gateway"
	"numdash-server/handlers"
	"numdash-server/rabbitmq"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNumbers(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "v@example.com")

	rec := env.do(t, http.MethodPost, "/v1/numbers/validate", token, handlers.NumbersRequest{
		Numbers: []string{"+1 (415) 555-0123", "447700123456", "98 912 000 0000", "", "0044123"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handlers.ValidateNumbersResponse](t, rec)
	require.Len(t, resp.Data, 5)
	assert.Equal(t, 1, resp.ValidCount)

	assert.True(t, resp.Data[0].Valid)
	assert.Equal(t, prefix.CountryCode("US"), resp.Data[0].Country)
	assert.Equal(t, "14155550123", resp.Data[0].Cleaned)
	assert.NotEmpty(t, resp.Data[0].Formatted)
	assert.Equal(t, prefix.ReasonRejected, resp.Data[1].Reason)
	assert.Equal(t, prefix.ReasonBlocked, resp.Data[2].Reason)
	assert.Equal(t, prefix.ReasonEmpty, resp.Data[3].Reason)
	assert.Equal(t, prefix.ReasonLeadingZero, resp.Data[4].Reason)

	rec = env.do(t, http.MethodPost, "/v1/numbers/validate", token, handlers.NumbersRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuote(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "q@example.com")

	rec := env.do(t, http.MethodPost, "/v1/sms/quote", token, handlers.NumbersRequest{
		Numbers: []string{"14155550123", "447624123456", "447400123456", "447400123457", "4930123456", "bogus"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	quote := decode[handlers.QuoteResponse](t, rec).Data

	assert.InDelta(t, 4.25, quote.Total, 1e-9)
	assert.Equal(t, "USD", quote.PriceUnit)
	assert.Equal(t, []string{"4930123456"}, quote.Unmatched)
	assert.Equal(t, []prefix.CountryCode{"DE"}, quote.Unpriced)

	require.Len(t, quote.Countries, 3)
	assert.Equal(t, prefix.CountryCode("GB"), quote.Countries[0].CountryCode)
	assert.Equal(t, 2, quote.Countries[0].Count)
	assert.InDelta(t, 2.0, quote.Countries[0].Subtotal, 1e-9)
	assert.Equal(t, prefix.CountryCode("IM"), quote.Countries[1].CountryCode)
	assert.Equal(t, prefix.CountryCode("US"), quote.Countries[2].CountryCode)
}

func TestSendDelivered(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "s@example.com")

	rec := env.do(t, http.MethodPost, "/v1/sms/send", token, handlers.SendSMSRequest{
		Numbers: []string{"+1 415 555 0123", "0123"},
		Message: "hello",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[handlers.SendSMSResponse](t, rec)

	assert.Equal(t, gateway.OutcomeDelivered, resp.Outcome)
	assert.Equal(t, []string{"14155550123"}, resp.Sent)
	assert.Equal(t, []string{"United States"}, resp.Countries)
	assert.Empty(t, resp.Retry)
	require.Len(t, resp.Skipped, 1)
	assert.InDelta(t, 0.25, resp.Charged, 1e-9)
	assert.NotEmpty(t, resp.TransactionID)

	require.Len(t, env.upstream.sends, 1)
	assert.Equal(t, "hello", env.upstream.sends[0].Message)
	assert.Equal(t, token, env.upstream.tokens[0])

	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, rabbitmq.KeySMSSent, env.publisher.events[0].key)
	assert.Equal(t, resp.TransactionID, env.publisher.events[0].event["tid"])
}

func TestSendPartialFailureKeepsFailedNumbers(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "p@example.com")
	env.upstream.sendResult = &gateway.SendResult{Outcome: gateway.OutcomePartial, FailedNumbers: []string{"447624123456"}}

	rec := env.do(t, http.MethodPost, "/v1/sms/send", token, handlers.SendSMSRequest{
		Numbers: []string{"14155550123", "+44 7624 123456", "447400123456"},
		Message: "hi",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[handlers.SendSMSResponse](t, rec)

	assert.Equal(t, gateway.OutcomePartial, resp.Outcome)
	assert.Equal(t, []string{"447624123456"}, resp.FailedNumbers)
	require.Len(t, resp.Retry, 1)
	assert.Equal(t, "+44 7624 123456", resp.Retry[0].Raw)
	assert.Equal(t, []string{"United States", "Isle of Man", "United Kingdom"}, env.upstream.sends[0].Countries)
	assert.InDelta(t, 1.25, resp.Charged, 1e-9)

	rec = env.do(t, http.MethodGet, "/v1/transactions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[handlers.TransactionListResponse](t, rec)
	require.Len(t, history.Data, 1)
	assert.Equal(t, "PARTIAL", history.Data[0].Status)
	assert.Equal(t, []string{"447624123456"}, history.Data[0].Failed)
	assert.Equal(t, rabbitmq.KeySMSPartial, env.publisher.events[0].key)
}

func TestSendPendingModeration(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "m@example.com")
	env.upstream.sendResult = &gateway.SendResult{Outcome: gateway.OutcomePending, OrderIDs: []string{"o-1"}}

	rec := env.do(t, http.MethodPost, "/v1/sms/send", token, handlers.SendSMSRequest{Numbers: []string{"14155550123"}, Message: "hi"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handlers.SendSMSResponse](t, rec)
	assert.Equal(t, gateway.OutcomePending, resp.Outcome)
	assert.Equal(t, []string{"o-1"}, resp.OrderIDs)
	assert.Equal(t, rabbitmq.KeySMSPending, env.publisher.events[0].key)
}

func TestSendRejectedLocally(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "r@example.com")

	cases := []struct {
		name   string
		req    handlers.SendSMSRequest
		status int
	}{
		{"blocked destination", handlers.SendSMSRequest{Numbers: []string{"14155550123", "+963 912 345 678"}, Message: "hi"}, http.StatusUnprocessableEntity},
		{"empty message", handlers.SendSMSRequest{Numbers: []string{"14155550123"}, Message: "  "}, http.StatusBadRequest},
		{"long message", handlers.SendSMSRequest{Numbers: []string{"14155550123"}, Message: strings.Repeat("x", 161)}, http.StatusBadRequest},
		{"unpriced destination", handlers.SendSMSRequest{Numbers: []string{"14155550123", "+49 30 123456"}, Message: "hi"}, http.StatusUnprocessableEntity},
		{"no valid numbers", handlers.SendSMSRequest{Numbers: []string{"447700123456"}, Message: "hi"}, http.StatusBadRequest},
		{"no numbers", handlers.SendSMSRequest{Message: "hi"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/v1/sms/send", token, tc.req)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
	assert.Empty(t, env.upstream.sends)
	assert.Empty(t, env.publisher.events)
}

func TestSendUpstreamErrorIsMapped(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "u@example.com")
	env.upstream.sendErr = &gateway.UpstreamError{Status: http.StatusPaymentRequired, Code: "Insufficient balance"}

	rec := env.do(t, http.MethodPost, "/v1/sms/send", token, handlers.SendSMSRequest{Numbers: []string{"14155550123"}, Message: "hi"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "balance is too low")

	rec = env.do(t, http.MethodGet, "/v1/transactions/summary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[handlers.TransactionSummaryResponse](t, rec).Data.TotalCount)
}
