// SPDX-License-Identifier: GPL-3.0-only

package handlers_test

import (
	"net/http"
	"numdash-server/db"
	"numdash-server/handlers"
	"numdash-server/middlewares"
	"numdash-server/models"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "Jane@Example.com")

	rec := env.do(t, http.MethodGet, "/v1/users/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode[handlers.GetUserResponse](t, rec)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Contains(t, user.AccountID, "acc_")
	assert.False(t, user.MFAEnabled)

	rec = env.do(t, http.MethodPost, "/v1/auth/signup", "", handlers.SignupRequest{Email: "jane@example.com", Password: testPassword})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", handlers.LoginRequest{Email: "jane@example.com", Password: "Wrong-Horse-42!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", handlers.LoginRequest{Email: "jane@example.com", Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[handlers.AuthResponse](t, rec)
	assert.False(t, login.MFARequired)
	require.NotEmpty(t, login.SessionToken)

	rec = env.do(t, http.MethodPost, "/v1/auth/logout", login.SessionToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodGet, "/v1/users/", login.SessionToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The signup session is independent of the one that logged out.
	rec = env.do(t, http.MethodGet, "/v1/users/", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	cases := []handlers.SignupRequest{
		{Email: "", Password: testPassword},
		{Email: "a@example.com", Password: ""},
		{Email: "a@example.com", Password: "short"},
	}
	for _, req := range cases {
		rec := env.do(t, http.MethodPost, "/v1/auth/signup", "", req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/v1/users/", "/v1/transactions", "/v1/catalog/short"} {
		rec := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		rec = env.do(t, http.MethodGet, path, "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestMFAEnrollmentAndLogin(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "mfa@example.com")

	rec := env.do(t, http.MethodPost, "/v1/users/mfa/activate", token, handlers.MFACodeRequest{Code: "123456"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/users/mfa/enroll", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	enrollment := decode[handlers.MFAEnrollResponse](t, rec)
	require.NotEmpty(t, enrollment.Secret)
	assert.Contains(t, enrollment.URL, "otpauth://totp/")

	rec = env.do(t, http.MethodPost, "/v1/users/mfa/activate", token, handlers.MFACodeRequest{Code: "000000"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	rec = env.do(t, http.MethodPost, "/v1/users/mfa/activate", token, handlers.MFACodeRequest{Code: code})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", handlers.LoginRequest{Email: "mfa@example.com", Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[handlers.AuthResponse](t, rec)
	assert.True(t, login.MFARequired)
	assert.Empty(t, login.SessionToken)
	require.NotEmpty(t, login.MFAToken)

	rec = env.do(t, http.MethodPost, "/v1/auth/mfa", "", handlers.MFALoginRequest{MFAToken: login.MFAToken, Code: "000000"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	rec = env.do(t, http.MethodPost, "/v1/auth/mfa", "", handlers.MFALoginRequest{MFAToken: login.MFAToken, Code: code})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	session := decode[handlers.AuthResponse](t, rec)
	require.NotEmpty(t, session.SessionToken)

	// A challenge is good for one session only.
	rec = env.do(t, http.MethodPost, "/v1/auth/mfa", "", handlers.MFALoginRequest{MFAToken: login.MFAToken, Code: code})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/users/", session.SessionToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[handlers.GetUserResponse](t, rec).MFAEnabled)

	rec = env.do(t, http.MethodDelete, "/v1/users/mfa", session.SessionToken, handlers.MFACodeRequest{Code: code, Password: "Wrong-Horse-42!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.do(t, http.MethodDelete, "/v1/users/mfa", session.SessionToken, handlers.MFACodeRequest{Code: code, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", handlers.LoginRequest{Email: "mfa@example.com", Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[handlers.AuthResponse](t, rec).MFARequired)
}

func TestMFAChallengeLocksAfterTooManyAttempts(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "locked@example.com")

	rec := env.do(t, http.MethodPost, "/v1/users/mfa/enroll", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	secret := decode[handlers.MFAEnrollResponse](t, rec).Secret
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/v1/users/mfa/activate", token, handlers.MFACodeRequest{Code: code}).Code)

	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", handlers.LoginRequest{Email: "locked@example.com", Password: testPassword})
	challenge := decode[handlers.AuthResponse](t, rec).MFAToken
	for i := 0; i < 5; i++ {
		rec = env.do(t, http.MethodPost, "/v1/auth/mfa", "", handlers.MFALoginRequest{MFAToken: challenge, Code: "000000"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	code, err = totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	rec = env.do(t, http.MethodPost, "/v1/auth/mfa", "", handlers.MFALoginRequest{MFAToken: challenge, Code: code})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordAndSessions(t *testing.T) {
	env := newTestEnv(t)
	first := env.signup(t, "pw@example.com")
	rec := env.do(t, http.MethodPost, "/v1/auth/login", "", handlers.LoginRequest{Email: "pw@example.com", Password: testPassword})
	second := decode[handlers.AuthResponse](t, rec).SessionToken

	rec = env.do(t, http.MethodGet, "/v1/sessions", first, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sessions := decode[handlers.SessionListResponse](t, rec)
	assert.Equal(t, int64(2), sessions.Pagination.Total)

	rec = env.do(t, http.MethodPut, "/v1/users/change-password", first, handlers.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: testPassword})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/v1/users/change-password", first, handlers.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: "Another-Horse-77?"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/v1/users/", second, nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/v1/users/", first, nil).Code)

	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", handlers.LoginRequest{Email: "pw@example.com", Password: "Another-Horse-77?"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "gone@example.com")

	rec := env.do(t, http.MethodDelete, "/v1/users/", token, handlers.DeleteAccountRequest{Password: "Wrong-Horse-42!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodDelete, "/v1/users/", token, handlers.DeleteAccountRequest{Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/v1/users/", token, nil).Code)

	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", handlers.LoginRequest{Email: "gone@example.com", Password: testPassword})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginPurgesExpiredChallenges(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "stale@example.com")
	session, err := middlewares.LookupSession(token)
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/v1/users/mfa/enroll", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	secret := decode[handlers.MFAEnrollResponse](t, rec).Secret
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/v1/users/mfa/activate", token, handlers.MFACodeRequest{Code: code}).Code)

	stale := models.MFAChallenge{Token: "mfa_stale", ExpiresAt: time.Now().Add(-time.Hour), UserID: session.UserID}
	require.NoError(t, db.Conn.Create(&stale).Error)

	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", handlers.LoginRequest{Email: "stale@example.com", Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	fresh := decode[handlers.AuthResponse](t, rec).MFAToken
	require.NotEmpty(t, fresh)

	var tokens []string
	require.NoError(t, db.Conn.Unscoped().Model(&models.MFAChallenge{}).Pluck("token", &tokens).Error)
	assert.Equal(t, []string{fresh}, tokens)
}
