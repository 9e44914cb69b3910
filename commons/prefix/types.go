// SPDX-License-Identifier: GPL-3.0-only

package prefix

// CountryCode is an ISO 3166-1 alpha-2 code.
type CountryCode string

// Disambiguator chooses a country for a number sharing a calling code.
// It receives the full cleaned digit string, so offsets are absolute.
// ok is false when the number must be rejected.
type Disambiguator func(digits string) (country CountryCode, ok bool)

// CallingCodeRule is one entry of the calling code table.
type CallingCodeRule struct {
	CallingCode  string
	Country      CountryCode
	Name         string
	Disambiguate Disambiguator
	// Refine returns a billing territory more precise than the classified
	// country, or "" when there is none.
	Refine func(digits string) CountryCode
}

// Match is the outcome of walking the calling code table for one number.
type Match struct {
	// Country is the classified country.
	Country CountryCode
	// Territory is the country used for pricing and tagging. It differs from
	// Country only where billing distinguishes a territory that
	// classification folds into its parent (Puerto Rico under +1).
	Territory      CountryCode
	CallingCode    string
	Rejected       bool
	ConsumedDigits int
}

// Matched reports whether the number was attributed to a country.
func (m Match) Matched() bool {
	return m.Country != "" && !m.Rejected
}

// AreaCodeSet is an immutable set of fixed-width digit prefixes.
type AreaCodeSet map[string]struct{}

func newAreaCodeSet(codes ...string) AreaCodeSet {
	s := make(AreaCodeSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func (s AreaCodeSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Reason explains a validation verdict.
type Reason string

const (
	ReasonOK                 Reason = "ok"
	ReasonEmpty              Reason = "empty"
	ReasonLeadingZero        Reason = "leading_zero"
	ReasonBlocked            Reason = "blocked"
	ReasonUnknownCallingCode Reason = "unknown_calling_code"
	ReasonRejected           Reason = "rejected"
)

// Verdict is the detailed result of validating one raw number.
type Verdict struct {
	Raw     string      `json:"raw"`
	Cleaned string      `json:"cleaned"`
	Valid   bool        `json:"valid"`
	Reason  Reason      `json:"reason"`
	Country CountryCode `json:"country,omitempty"`
	Name    string      `json:"country_name,omitempty"`
}

// PricedCountry is a price record fetched for one classified country.
type PricedCountry struct {
	CountryCode     CountryCode `json:"country_code"`
	DisplayName     string      `json:"display_name"`
	CallingCode     string      `json:"calling_code"`
	PricePerMessage float64     `json:"price_per_message"`
	PriceUnit       string      `json:"price_unit"`
}

// PendingNumber is a destination entered by the user.
type PendingNumber struct {
	Raw     string `json:"raw"`
	Cleaned string `json:"cleaned"`
	IsValid bool   `json:"is_valid"`
}

// PriceBreakdown is the per-country view of an aggregated price.
type PriceBreakdown struct {
	Total      float64             `json:"total"`
	PriceUnit  string              `json:"price_unit"`
	PerCountry map[CountryCode]int `json:"per_country"`
	// Unmatched holds valid numbers for which no priced country was supplied.
	Unmatched []string `json:"unmatched,omitempty"`
}
