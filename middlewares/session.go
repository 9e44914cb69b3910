// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"fmt"
	"numdash-server/commons"
	"numdash-server/crypto"
	"numdash-server/db"
	"numdash-server/models"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionLifetime = 30 * 24 * time.Hour

var ErrInvalidSession = errors.New("invalid or expired session token")

func jwtSecret() []byte {
	return []byte(commons.GetEnv("JWT_SECRET", "default_very_secret_key"))
}

// IssueSession stores a new session for user and returns its signed token.
func IssueSession(user models.User, ipAddress, userAgent string) (string, *models.Session, error) {
	sessionToken, err := crypto.GenerateRandomString("st_", 32, "hex")
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	expires := now.Add(sessionLifetime)
	session := models.Session{
		Token:      sessionToken,
		LastUsedAt: &now,
		ExpiresAt:  &expires,
		UserID:     user.ID,
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if err := db.Conn.Create(&session).Error; err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": commons.GetEnv("JWT_ISSUER", "numdash-server"),
		"iat": now.Unix(),
		"sub": user.AccountID,
		"jti": sessionToken,
		"sid": session.ID,
		"uid": user.ID,
		"exp": expires.Unix(),
	})
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, &session, nil
}

// LookupSession verifies a signed token and loads its live session.
func LookupSession(tokenString string) (*models.Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	session := models.Session{}
	err = db.Conn.Where("id = ? AND user_id = ? AND token = ?", claims["sid"], claims["uid"], claims["jti"]).First(&session).Error
	if err != nil || session.ExpiresAt == nil || session.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvalidSession
	}
	return &session, nil
}
