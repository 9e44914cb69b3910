// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"numdash-server/crypto"
	"numdash-server/db"
	"numdash-server/middlewares"
	"numdash-server/models"
	"numdash-server/passwordcheck"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	mfaChallengeLifetime = 5 * time.Minute
	mfaMaxAttempts       = 5
)

func issueSessionResponse(c echo.Context, user models.User, status int, message string) error {
	logger := c.Logger()

	tokenString, _, err := middlewares.IssueSession(user, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		logger.Errorf("Failed to issue session: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(status, AuthResponse{SessionToken: tokenString, Message: message})
}

// SignupHandler godoc
// @Summary      Register a new user
// @Description  Creates a new user account and signs it in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signupRequest  body  SignupRequest  true  "Signup request payload"
// @Success      201 {object} AuthResponse 	 "Signup successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      409 {object} echo.HTTPError     "Duplicate user"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/signup [post]
func SignupHandler(c echo.Context) error {
	logger := c.Logger()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid signup request payload:", err)
		return echo.ErrBadRequest
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}

	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.Password); err != nil {
		logger.Error("Password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid password: " + err.Error(),
		}
	}

	var existing int64
	if err := db.Conn.Model(&models.User{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		logger.Errorf("Failed to check existing user: %v", err)
		return echo.ErrInternalServerError
	}
	if existing > 0 {
		logger.Error("This email is already registered.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "This email is already registered, please try another one.",
		}
	}

	hash, err := crypto.NewCrypto().HashPassword(req.Password)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	user := models.User{Email: req.Email, Password: hash, FullName: req.FullName}
	if err := db.Conn.Create(&user).Error; err != nil {
		logger.Errorf("Failed to create user: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User %s signed up successfully", user.AccountID)
	return issueSessionResponse(c, user, http.StatusCreated, "Signup successful")
}

// LoginHandler godoc
// @Summary      Login a user
// @Description  Authenticates a user. Users with MFA enabled receive an mfa_token to complete on /v1/auth/mfa instead of a session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Login request payload"
// @Success      200 {object} AuthResponse 	 "Login successful or MFA required"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/login [post]
func LoginHandler(c echo.Context) error {
	logger := c.Logger()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid login request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}

	user := models.User{}
	err := db.Conn.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("User not found.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Credentials are incorrect, please check your email and password",
			}
		}
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	if err := crypto.NewCrypto().VerifyPassword(req.Password, user.Password); err != nil {
		logger.Error("Password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Credentials are incorrect, please check your email and password",
		}
	}

	if !user.MFAEnabled {
		return issueSessionResponse(c, user, http.StatusOK, "Login successful")
	}

	if err := db.Conn.Unscoped().Where("expires_at < ?", time.Now()).Delete(&models.MFAChallenge{}).Error; err != nil {
		logger.Warnf("Failed to purge expired MFA challenges: %v", err)
	}

	challengeToken, err := crypto.GenerateRandomString("mfa_", 32, "hex")
	if err != nil {
		logger.Errorf("Failed to generate MFA challenge: %v", err)
		return echo.ErrInternalServerError
	}
	challenge := models.MFAChallenge{
		Token:     challengeToken,
		ExpiresAt: time.Now().Add(mfaChallengeLifetime),
		UserID:    user.ID,
	}
	if err := db.Conn.Create(&challenge).Error; err != nil {
		logger.Errorf("Failed to store MFA challenge: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("MFA challenge issued for user %s", user.AccountID)
	return c.JSON(http.StatusOK, AuthResponse{
		MFARequired: true,
		MFAToken:    challengeToken,
		Message:     "Enter the code from your authenticator app",
	})
}

// MFALoginHandler godoc
// @Summary      Complete an MFA login
// @Description  Exchanges an MFA challenge and a valid TOTP code for a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        mfaLoginRequest  body  MFALoginRequest  true  "MFA challenge response"
// @Success      200 {object} AuthResponse 	 "Login successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError     "Invalid code or challenge"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/mfa [post]
func MFALoginHandler(c echo.Context) error {
	logger := c.Logger()

	var req MFALoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid MFA request payload:", err)
		return echo.ErrBadRequest
	}
	if req.MFAToken == "" || req.Code == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "mfa_token and code fields are required",
		}
	}

	invalidChallenge := &echo.HTTPError{
		Code:    http.StatusUnauthorized,
		Message: "This sign-in attempt has expired, please login again",
	}

	challenge := models.MFAChallenge{}
	if err := db.Conn.Preload("User").Where("token = ?", req.MFAToken).First(&challenge).Error; err != nil {
		logger.Error("MFA challenge not found: ", err)
		return invalidChallenge
	}
	if challenge.IsUsed || challenge.ExpiresAt.Before(time.Now()) || challenge.Attempts >= mfaMaxAttempts {
		logger.Error("MFA challenge used, expired or exhausted.")
		return invalidChallenge
	}

	user := challenge.User
	if !user.MFAEnabled || user.TOTPSecret == nil {
		logger.Error("MFA challenge for a user without MFA.")
		return invalidChallenge
	}

	secret, err := crypto.NewCrypto().OpenString(*user.TOTPSecret)
	if err != nil {
		logger.Errorf("Failed to open TOTP secret: %v", err)
		return echo.ErrInternalServerError
	}

	if !crypto.ValidateTOTP(strings.TrimSpace(req.Code), secret, time.Now()) {
		if err := db.Conn.Model(&challenge).Update("attempts", gorm.Expr("attempts + 1")).Error; err != nil {
			logger.Errorf("Failed to count MFA attempt: %v", err)
		}
		logger.Error("Invalid TOTP code.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "The code is incorrect, please try again",
		}
	}

	if err := db.Conn.Model(&challenge).Update("is_used", true).Error; err != nil {
		logger.Errorf("Failed to consume MFA challenge: %v", err)
		return echo.ErrInternalServerError
	}

	return issueSessionResponse(c, user, http.StatusOK, "Login successful")
}

// LogoutHandler godoc
// @Summary      Logout a user
// @Description  Logs out a user and invalidates the session.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      204 "Logout successful"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/logout [post]
func LogoutHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please login again",
		}
	}

	if err := db.Conn.Unscoped().Delete(&session).Error; err != nil {
		logger.Errorf("Failed to delete session: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User logged out successfully")
	return c.NoContent(http.StatusNoContent)
}
