// SPDX-License-Identifier: GPL-3.0-only

package prefix

import (
	"sort"
	"strings"
)

// Classifier attributes cleaned digit strings to countries. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	rules   []CallingCodeRule
	names   map[CountryCode]string
	blocked []string
}

var defaultClassifier = New(DefaultBlockedCallingCodes)

// Default returns the classifier built from the static tables and the
// default blocklist.
func Default() *Classifier {
	return defaultClassifier
}

// New builds a classifier with the given blocked calling codes.
func New(blocked []string) *Classifier {
	rules := make([]CallingCodeRule, len(baseTable))
	copy(rules, baseTable)

	names := make(map[CountryCode]string, len(rules)+len(countryNames))
	for k, v := range countryNames {
		names[k] = v
	}
	for i := range rules {
		rules[i].Disambiguate = disambiguators[rules[i].CallingCode]
		rules[i].Refine = refiners[rules[i].CallingCode]
		if _, ok := names[rules[i].Country]; !ok {
			names[rules[i].Country] = rules[i].Name
		}
	}

	// Longest first, so a three digit code is tried before any shorter code
	// sharing its leading digits.
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].CallingCode) > len(rules[j].CallingCode)
	})

	b := make([]string, 0, len(blocked))
	for _, code := range blocked {
		if code = Clean(code); code != "" {
			b = append(b, code)
		}
	}
	return &Classifier{rules: rules, names: names, blocked: b}
}

// Match walks the calling code table for cleaned digits. A rule rejection
// ends the walk; shorter codes are never tried afterwards.
func (c *Classifier) Match(digits string) Match {
	if digits == "" || digits[0] == '0' {
		return Match{}
	}
	for _, rule := range c.rules {
		if !strings.HasPrefix(digits, rule.CallingCode) {
			continue
		}
		m := Match{CallingCode: rule.CallingCode, ConsumedDigits: len(rule.CallingCode)}
		country := rule.Country
		if rule.Disambiguate != nil {
			var ok bool
			if country, ok = rule.Disambiguate(digits); !ok {
				m.Rejected = true
				return m
			}
		}
		m.Country, m.Territory = country, country
		if rule.Refine != nil {
			if t := rule.Refine(digits); t != "" {
				m.Territory = t
			}
		}
		return m
	}
	return Match{}
}

// Classify returns the country for cleaned digits, or false when the calling
// code is unknown or its rule rejects the number.
func (c *Classifier) Classify(digits string) (CountryCode, bool) {
	m := c.Match(digits)
	if !m.Matched() {
		return "", false
	}
	return m.Country, true
}

// CountryName returns the English name for a country the classifier can emit.
func (c *Classifier) CountryName(code CountryCode) string {
	return c.names[code]
}

// CallingCodeFor returns the calling code a classified country is reached under.
func (c *Classifier) CallingCodeFor(code CountryCode) string {
	for _, rule := range c.rules {
		if rule.Country == code {
			return rule.CallingCode
		}
	}
	switch code {
	case "CA", "PR":
		return "1"
	case "KZ":
		return "7"
	case "IM", "GG", "JE":
		return "44"
	case "YT":
		return "262"
	case "AX":
		return "358"
	}
	return ""
}

// Blocked reports whether cleaned digits start with a blocked calling code.
func (c *Classifier) Blocked(digits string) bool {
	for _, code := range c.blocked {
		if strings.HasPrefix(digits, code) {
			return true
		}
	}
	return false
}

// BlockedCallingCodes returns a copy of the blocklist.
func (c *Classifier) BlockedCallingCodes() []string {
	return append([]string(nil), c.blocked...)
}

// Clean strips every character that is not an ASCII digit.
func Clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

// Classify uses the default classifier.
func Classify(digits string) (CountryCode, bool) {
	return defaultClassifier.Classify(digits)
}
