// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"numdash-server/crypto"
	"numdash-server/db"
	"numdash-server/middlewares"
	"numdash-server/models"
	"numdash-server/passwordcheck"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

var errUnauthenticated = &echo.HTTPError{
	Code:    http.StatusUnauthorized,
	Message: "Invalid or expired authentication token, please login again",
}

// GetUserHandler godoc
// @Summary      Get user details
// @Description  Retrieves the details of the authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object}  GetUserResponse 	 "User retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Router       /v1/users/ [get]
func GetUserHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}

	return c.JSON(http.StatusOK, GetUserResponse{
		Message:    "User retrieved successfully",
		AccountID:  user.AccountID,
		Email:      user.Email,
		FullName:   user.FullName,
		MFAEnabled: user.MFAEnabled,
	})
}

// EnrollMFAHandler godoc
// @Summary      Start MFA enrollment
// @Description  Generates a TOTP secret for the user. MFA stays disabled until the secret is confirmed on /v1/users/mfa/activate.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object} MFAEnrollResponse  "Enrollment started"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      409 {object} echo.HTTPError     "MFA already enabled"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/mfa/enroll [post]
func EnrollMFAHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}
	if user.MFAEnabled {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "MFA is already enabled, disable it first to enroll a new device",
		}
	}

	enrollment, err := crypto.GenerateTOTP(user.Email)
	if err != nil {
		logger.Errorf("Failed to generate TOTP secret: %v", err)
		return echo.ErrInternalServerError
	}
	sealed, err := crypto.NewCrypto().SealString(enrollment.Secret)
	if err != nil {
		logger.Errorf("Failed to seal TOTP secret: %v", err)
		return echo.ErrInternalServerError
	}
	if err := db.Conn.Model(user).Update("totp_secret", sealed).Error; err != nil {
		logger.Errorf("Failed to store TOTP secret: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, MFAEnrollResponse{
		Secret:  enrollment.Secret,
		URL:     enrollment.URL,
		Message: "Scan the code and confirm it to enable MFA",
	})
}

// checkTOTP opens the stored TOTP secret of user and checks code
// against it.
func checkTOTP(c echo.Context, user *models.User, code string) (bool, error) {
	if user.TOTPSecret == nil {
		return false, nil
	}
	secret, err := crypto.NewCrypto().OpenString(*user.TOTPSecret)
	if err != nil {
		c.Logger().Errorf("Failed to open TOTP secret: %v", err)
		return false, err
	}
	return crypto.ValidateTOTP(strings.TrimSpace(code), secret, time.Now()), nil
}

// ActivateMFAHandler godoc
// @Summary      Confirm MFA enrollment
// @Description  Enables MFA once a code generated from the enrolled secret is verified.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        mfaCodeRequest  body  MFACodeRequest  true  "Code from the authenticator app"
// @Success      200 {object} GenericResponse    "MFA enabled"
// @Failure      400 {object} echo.HTTPError     "No enrollment in progress or missing code"
// @Failure      401 {object} echo.HTTPError     "Unauthorized or incorrect code"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/mfa/activate [post]
func ActivateMFAHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}

	var req MFACodeRequest
	if err := c.Bind(&req); err != nil || req.Code == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "code field is required",
		}
	}
	if user.MFAEnabled {
		return &echo.HTTPError{Code: http.StatusConflict, Message: "MFA is already enabled"}
	}
	if user.TOTPSecret == nil {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "No MFA enrollment in progress, start one on /v1/users/mfa/enroll",
		}
	}

	ok, err := checkTOTP(c, user, req.Code)
	if err != nil {
		return echo.ErrInternalServerError
	}
	if !ok {
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "The code is incorrect, please try again",
		}
	}

	if err := db.Conn.Model(user).Update("mfa_enabled", true).Error; err != nil {
		logger.Errorf("Failed to enable MFA: %v", err)
		return echo.ErrInternalServerError
	}
	logger.Infof("MFA enabled for user %s", user.AccountID)
	return c.JSON(http.StatusOK, GenericResponse{Message: "MFA enabled"})
}

// DisableMFAHandler godoc
// @Summary      Disable MFA
// @Description  Turns MFA off after checking the password and a current code.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        mfaCodeRequest  body  MFACodeRequest  true  "Password and current code"
// @Success      200 {object} GenericResponse    "MFA disabled"
// @Failure      400 {object} echo.HTTPError     "MFA not enabled or missing fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, incorrect password or code"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/mfa [delete]
func DisableMFAHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}

	var req MFACodeRequest
	if err := c.Bind(&req); err != nil || req.Code == "" || req.Password == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "code and password fields are required",
		}
	}
	if !user.MFAEnabled {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "MFA is not enabled"}
	}

	if err := crypto.NewCrypto().VerifyPassword(req.Password, user.Password); err != nil {
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Password is incorrect, please check your password",
		}
	}
	ok, err := checkTOTP(c, user, req.Code)
	if err != nil {
		return echo.ErrInternalServerError
	}
	if !ok {
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "The code is incorrect, please try again",
		}
	}

	if err := db.Conn.Model(user).Updates(map[string]any{"mfa_enabled": false, "totp_secret": nil}).Error; err != nil {
		logger.Errorf("Failed to disable MFA: %v", err)
		return echo.ErrInternalServerError
	}
	logger.Infof("MFA disabled for user %s", user.AccountID)
	return c.JSON(http.StatusOK, GenericResponse{Message: "MFA disabled"})
}

// ChangePasswordHandler godoc
// @Summary      Change user password
// @Description  Changes the authenticated user's password after validating the current password. Other sessions are signed out.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        changePasswordRequest  body  ChangePasswordRequest  true  "Password change request payload with current and new password"
// @Success      200 {object}  GenericResponse "Password changed successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields or password validation failed"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid current password or expired session token"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/change-password [put]
func ChangePasswordHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid change password request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "current_password and new_password fields are required",
		}
	}

	newCrypto := crypto.NewCrypto()
	if err := newCrypto.VerifyPassword(req.CurrentPassword, user.Password); err != nil {
		logger.Error("Current password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Current password is incorrect, please check your password",
		}
	}
	if req.NewPassword == req.CurrentPassword {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "New password must be different from the current password",
		}
	}
	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.NewPassword); err != nil {
		logger.Error("New password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid new password: " + err.Error(),
		}
	}

	hashed, err := newCrypto.HashPassword(req.NewPassword)
	if err != nil {
		logger.Errorf("Failed to hash new password: %v", err)
		return echo.ErrInternalServerError
	}

	current, _ := c.Get("session").(models.Session)
	tx := db.Conn.Begin()
	if err := tx.Model(user).Update("password", hashed).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to update password: %v", err)
		return echo.ErrInternalServerError
	}
	if err := tx.Unscoped().Where("user_id = ? AND id <> ?", user.ID, current.ID).Delete(&models.Session{}).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to revoke other sessions: %v", err)
		return echo.ErrInternalServerError
	}
	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Password changed successfully.")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Password changed successfully"})
}

// DeleteAccountHandler godoc
// @Summary      Delete user account
// @Description  Deletes the authenticated user's account, sessions and transaction history after password confirmation.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        deleteAccountRequest  body  DeleteAccountRequest  true  "Account deletion request payload with password confirmation"
// @Success      200 {object}  GenericResponse "Account deleted successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid password or expired session token"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/ [delete]
func DeleteAccountHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return errUnauthenticated
	}

	var req DeleteAccountRequest
	if err := c.Bind(&req); err != nil || req.Password == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required.",
		}
	}
	if err := crypto.NewCrypto().VerifyPassword(req.Password, user.Password); err != nil {
		logger.Error("Password verification failed for account deletion.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Password is incorrect, please check your password",
		}
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}
	for _, owned := range []any{&models.Session{}, &models.MFAChallenge{}, &models.Transaction{}} {
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(owned).Error; err != nil {
			tx.Rollback()
			logger.Errorf("Failed to delete user data: %v", err)
			return echo.ErrInternalServerError
		}
	}
	if err := tx.Unscoped().Delete(user).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to delete user account: %v", err)
		return echo.ErrInternalServerError
	}
	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User account deleted successfully.")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Account deleted successfully"})
}
