// SPDX-License-Identifier: GPL-3.0-only

package passwordcheck

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"numdash-server/commons"
	"strings"
	"unicode"
)

const MinLength = 10

var (
	ErrTooShort       = fmt.Errorf("password must be at least %d characters long", MinLength)
	ErrNoUppercase    = errors.New("password must contain at least one uppercase letter")
	ErrNoLowercase    = errors.New("password must contain at least one lowercase letter")
	ErrNoDigit        = errors.New("password must contain at least one digit")
	ErrNoSpecialChar  = errors.New("password must contain at least one special character (e.g., !@#$%)")
	ErrPwned          = errors.New("password has been found in data breaches; choose a different one")
	defaultRangeAPI   = "https://api.pwnedpasswords.com/range/"
	characterClassSet = []struct {
		err   error
		check func(rune) bool
	}{
		{ErrNoUppercase, unicode.IsUpper},
		{ErrNoLowercase, unicode.IsLower},
		{ErrNoDigit, unicode.IsDigit},
		{ErrNoSpecialChar, func(r rune) bool { return unicode.IsSymbol(r) || unicode.IsPunct(r) }},
	}
)

// ValidatePassword applies the signup password policy. The breach lookup is
// skipped when PWNED_PASSWORDS_ENABLED is false, and a failed lookup never
// blocks a signup.
func ValidatePassword(ctx context.Context, password string) error {
	if len([]rune(password)) < MinLength {
		return ErrTooShort
	}
	for _, class := range characterClassSet {
		if !strings.ContainsFunc(password, class.check) {
			return class.err
		}
	}

	if commons.GetEnv("PWNED_PASSWORDS_ENABLED", "true") != "true" {
		return nil
	}
	pwned, err := checkPasswordPwned(ctx, commons.GetEnv("PWNED_PASSWORDS_API_URL", defaultRangeAPI), password)
	if err != nil {
		commons.Logger.Error("Error checking pwned passwords:", err)
		return nil
	}
	if pwned {
		return ErrPwned
	}
	return nil
}

// checkPasswordPwned queries the k-anonymity range API: only the first five
// hex characters of the SHA-1 leave the process.
func checkPasswordPwned(ctx context.Context, rangeAPI, password string) (bool, error) {
	sum := sha1.Sum([]byte(password))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := hash[:5], hash[5:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(rangeAPI, "/")+"/"+prefix, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Add-Padding", "true")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("HIBP API request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("HIBP API answered %s", resp.Status)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		candidate, count, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		// Padding entries carry a zero count.
		if ok && candidate == suffix && count != "0" {
			return true, nil
		}
	}
	return false, scanner.Err()
}
