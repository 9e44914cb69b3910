// SPDX-License-Identifier: GPL-3.0-only

package prefix

import "github.com/nyaruka/phonenumbers"

// Format renders cleaned digits for display. Numbers libphonenumber cannot
// parse are shown as +digits.
func Format(digits string) string {
	if digits == "" {
		return ""
	}
	num, err := phonenumbers.Parse("+"+digits, "")
	if err != nil {
		return "+" + digits
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
