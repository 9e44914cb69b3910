// SPDX-License-Identifier: GPL-3.0-only

package outbound

import (
	"context"
	"errors"
	"numdash-server/commons/prefix"
	"numdash-server/docstore"
	"numdash-server/gateway"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	calls  int
	req    gateway.SendRequest
	token  string
	result *gateway.SendResult
	err    error
}

func (f *fakeSender) Send(_ context.Context, token string, req gateway.SendRequest) (*gateway.SendResult, error) {
	f.calls++
	f.token = token
	f.req = req
	return f.result, f.err
}

func seededStore(t *testing.T) *docstore.MemoryStore {
	t.Helper()
	store := docstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.PutDocument(ctx, "sms_prices/US", docstore.Fields{
		"country": "United States", "isoCountry": "US", "areaCode": "+1", "priceUnit": "USD", "maxPrice": 0.25,
	}))
	require.NoError(t, store.PutDocument(ctx, "sms_prices/GB", docstore.Fields{
		"country": "United Kingdom", "isoCountry": "GB", "areaCode": "44", "priceUnit": "USD", "maxPrice": "1",
	}))
	require.NoError(t, store.PutDocument(ctx, "sms_prices/IM", docstore.Fields{
		"country": "Isle of Man", "areaCode": "44", "priceUnit": "USD", "maxPrice": 2,
	}))
	return store
}

func newTestService(t *testing.T, sender Sender) *Service {
	return &Service{Classifier: prefix.Default(), Store: seededStore(t), Sender: sender}
}

func TestPricedCountryFromFields(t *testing.T) {
	p := PricedCountryFromFields("im", docstore.Fields{"country": "Isle of Man", "areaCode": "+44", "maxPrice": "2.5", "priceUnit": "EUR"})
	assert.Equal(t, prefix.CountryCode("IM"), p.CountryCode)
	assert.Equal(t, "44", p.CallingCode)
	assert.Equal(t, "Isle of Man", p.DisplayName)
	assert.InDelta(t, 2.5, p.PricePerMessage, 1e-9)
	assert.Equal(t, "EUR", p.PriceUnit)
}

func TestQuote(t *testing.T) {
	s := newTestService(t, nil)
	q, err := s.Quote(context.Background(), []string{"+1 415 555 0123", "447624123456", "447400123456", "abc", "4930123456"})
	require.NoError(t, err)

	require.Len(t, q.Numbers, 5)
	assert.True(t, q.Numbers[0].Valid)
	assert.Equal(t, prefix.ReasonEmpty, q.Numbers[3].Reason)

	// US .25 + IM 2 + GB 1; Germany has no price document.
	assert.InDelta(t, 3.25, q.Breakdown.Total, 1e-9)
	assert.Equal(t, "USD", q.Breakdown.PriceUnit)
	assert.Equal(t, 1, q.Breakdown.PerCountry["IM"])
	assert.Equal(t, []string{"4930123456"}, q.Breakdown.Unmatched)
	assert.Equal(t, []prefix.CountryCode{"DE"}, q.Unpriced)
}

func TestQuotePuertoRicoFallsBackToUSPrice(t *testing.T) {
	s := newTestService(t, nil)
	q, err := s.Quote(context.Background(), []string{"17875550123"})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, q.Breakdown.Total, 1e-9)
	assert.Empty(t, q.Unpriced)
}

func TestQuoteWithNoNumbers(t *testing.T) {
	s := newTestService(t, nil)
	q, err := s.Quote(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, q.Breakdown.Total)
	assert.Empty(t, q.Priced)
}

func TestCheckMessage(t *testing.T) {
	assert.ErrorIs(t, CheckMessage("   "), ErrEmptyMessage)
	assert.NoError(t, CheckMessage(strings.Repeat("a", 160)))
	assert.ErrorIs(t, CheckMessage(strings.Repeat("a", 161)), ErrMessageTooLong)
	assert.NoError(t, CheckMessage(strings.Repeat("é", 160)))
}

func TestBuildSendRequest(t *testing.T) {
	s := newTestService(t, nil)
	priced, _, err := FetchPrices(context.Background(), s.Store, []prefix.CountryCode{"US", "GB", "IM"})
	require.NoError(t, err)

	numbers := s.Classifier.PendingNumbers([]string{"+1 (415) 555-0123", "447624123456", "012345", "4930123456"})
	plan, err := s.BuildSendRequest(numbers, "hello", priced)
	require.NoError(t, err)

	assert.Equal(t, []string{"14155550123", "447624123456", "4930123456"}, plan.Request.Numbers)
	// The tagger marks the unpriced German number; Send refuses such a plan.
	assert.Equal(t, []string{"United States", "Isle of Man", prefix.UnknownCountry}, plan.Request.Countries)
	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, prefix.ReasonLeadingZero, plan.Skipped[0].Reason)
}

func TestBuildSendRequestBlockedAbortsEverything(t *testing.T) {
	s := newTestService(t, nil)
	numbers := s.Classifier.PendingNumbers([]string{"14155550123", "+98 912 000 0000"})
	_, err := s.BuildSendRequest(numbers, "hello", nil)
	assert.ErrorIs(t, err, ErrBlockedNumber)

	_, err = s.BuildSendRequest(s.Classifier.PendingNumbers([]string{"0"}), "hello", nil)
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = s.BuildSendRequest(numbers, "", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendBlockedNeverReachesUpstream(t *testing.T) {
	sender := &fakeSender{result: &gateway.SendResult{Outcome: gateway.OutcomeDelivered}}
	s := newTestService(t, sender)
	_, err := s.Send(context.Background(), "tok", []string{"14155550123", "963912345678"}, "hi")
	assert.ErrorIs(t, err, ErrBlockedNumber)
	assert.Zero(t, sender.calls)
}

func TestSendPartialFailure(t *testing.T) {
	sender := &fakeSender{result: &gateway.SendResult{
		Outcome:       gateway.OutcomePartial,
		FailedNumbers: []string{"447624123456"},
	}}
	s := newTestService(t, sender)

	report, err := s.Send(context.Background(), "tok", []string{"+1 415 555 0123", "+44 7624 123456", "447400123456"}, "hi")
	require.NoError(t, err)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "tok", sender.token)

	require.Len(t, report.Retry, 1)
	assert.Equal(t, "+44 7624 123456", report.Retry[0].Raw)
	assert.Equal(t, "447624123456", report.Retry[0].Cleaned)
	// US .25 + GB 1, the Isle of Man number failed.
	assert.InDelta(t, 1.25, report.Charged, 1e-9)
}

func TestSendSuccessClearsInput(t *testing.T) {
	sender := &fakeSender{result: &gateway.SendResult{Outcome: gateway.OutcomePending, OrderIDs: []string{"o-1"}}}
	s := newTestService(t, sender)
	report, err := s.Send(context.Background(), "tok", []string{"14155550123"}, "hi")
	require.NoError(t, err)
	assert.Empty(t, report.Retry)
	assert.InDelta(t, 0.25, report.Charged, 1e-9)
}

func TestSendUnpricedDestinationIsRefused(t *testing.T) {
	sender := &fakeSender{result: &gateway.SendResult{Outcome: gateway.OutcomeDelivered}}
	s := newTestService(t, sender)

	report, err := s.Send(context.Background(), "tok", []string{"14155550123", "+49 151 12345678"}, "hi")
	assert.ErrorIs(t, err, ErrUnpriced)
	assert.ErrorContains(t, err, "4915112345678")
	assert.Nil(t, report)
	assert.Zero(t, sender.calls)

	// Invalid numbers are skipped before pricing, so they never trip the check.
	report, err = s.Send(context.Background(), "tok", []string{"14155550123", "447700123456"}, "hi")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, report.Charged, 1e-9)
}

func TestNewServiceUsesGivenClassifier(t *testing.T) {
	sender := &fakeSender{result: &gateway.SendResult{Outcome: gateway.OutcomeDelivered}}
	s := NewService(prefix.New([]string{"1"}), seededStore(t), sender)
	_, err := s.Send(context.Background(), "tok", []string{"14155550123"}, "hi")
	assert.ErrorIs(t, err, ErrBlockedNumber)
	assert.Zero(t, sender.calls)
}

func TestSendUpstreamFailure(t *testing.T) {
	upstream := &gateway.UpstreamError{Status: 402, Code: "Insufficient balance"}
	s := newTestService(t, &fakeSender{err: upstream})
	_, err := s.Send(context.Background(), "tok", []string{"14155550123"}, "hi")
	var got *gateway.UpstreamError
	assert.True(t, errors.As(err, &got))
}

type failingStore struct{}

func (failingStore) GetDocument(context.Context, string) (docstore.Fields, error) {
	return nil, errors.New("store offline")
}

func (failingStore) ListCollection(context.Context, string) ([]docstore.Document, error) {
	return nil, errors.New("store offline")
}

func TestFetchPricesPropagatesStoreErrors(t *testing.T) {
	_, _, err := FetchPrices(context.Background(), failingStore{}, []prefix.CountryCode{"US"})
	assert.ErrorContains(t, err, "store offline")
}
