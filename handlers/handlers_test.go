// SPDX-License-Identifier: GPL-3.0-only

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"numdash-server/docstore"
	"numdash-server/gateway"
	"numdash-server/handlers"
	"numdash-server/rabbitmq"
	"numdash-server/routes"
	"numdash-server/testutil"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testPassword = "Correct-Horse-42!"

type fakeUpstream struct {
	mu        sync.Mutex
	sends     []gateway.SendRequest
	purchases []gateway.PurchaseRequest
	tokens    []string

	sendResult     *gateway.SendResult
	sendErr        error
	purchaseResult *gateway.PurchaseResult
	purchaseErr    error
}

func (f *fakeUpstream) Send(_ context.Context, token string, req gateway.SendRequest) (*gateway.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, req)
	f.tokens = append(f.tokens, token)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.sendResult == nil {
		return &gateway.SendResult{Outcome: gateway.OutcomeDelivered}, nil
	}
	return f.sendResult, nil
}

func (f *fakeUpstream) Purchase(_ context.Context, token string, req gateway.PurchaseRequest) (*gateway.PurchaseResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchases = append(f.purchases, req)
	f.tokens = append(f.tokens, token)
	return f.purchaseResult, f.purchaseErr
}

type published struct {
	key   string
	event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (r *recordingPublisher) Publish(_ context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{key: key, event: decoded})
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

type testEnv struct {
	e         *echo.Echo
	store     *docstore.MemoryStore
	upstream  *fakeUpstream
	publisher *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("HASHING_PEPPER", "pepper")
	t.Setenv("ARGON2_MEMORY", "1024")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PWNED_PASSWORDS_ENABLED", "false")
	testutil.OpenDB(t)

	env := &testEnv{
		e:         echo.New(),
		store:     docstore.NewMemoryStore(),
		upstream:  &fakeUpstream{},
		publisher: &recordingPublisher{},
	}
	seed := map[string]docstore.Fields{
		"sms_prices/US":                {"country": "United States", "isoCountry": "US", "areaCode": "1", "priceUnit": "USD", "maxPrice": 0.25},
		"sms_prices/GB":                {"country": "United Kingdom", "isoCountry": "GB", "areaCode": "44", "priceUnit": "USD", "maxPrice": 1},
		"sms_prices/IM":                {"country": "Isle of Man", "isoCountry": "IM", "areaCode": "44", "priceUnit": "USD", "maxPrice": 2},
		"catalog/short/services/wa-us": {"service": "whatsapp", "displayName": "WhatsApp", "country": "United States", "isoCountry": "US", "price": 0.8, "priceUnit": "USD"},
		"catalog/short/services/tg-gb": {"service": "telegram", "displayName": "Telegram", "country": "United Kingdom", "isoCountry": "GB", "price": 1.1, "priceUnit": "USD", "available": false},
	}
	for p, f := range seed {
		require.NoError(t, env.store.PutDocument(context.Background(), p, f))
	}

	previousStore, previousUpstream, previousEvents := handlers.Documents, handlers.Upstream, rabbitmq.Events
	handlers.Configure(env.store, env.upstream)
	rabbitmq.Events = env.publisher
	t.Cleanup(func() {
		handlers.Configure(previousStore, previousUpstream)
		rabbitmq.Events = previousEvents
	})

	routes.RegisterRoutes(env.e)
	return env
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// signup registers email and returns its session token.
func (env *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/v1/auth/signup", "", handlers.SignupRequest{Email: email, Password: testPassword})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[handlers.AuthResponse](t, rec)
	require.NotEmpty(t, resp.SessionToken)
	return resp.SessionToken
}
