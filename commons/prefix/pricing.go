// SPDX-License-Identifier: GPL-3.0-only

package prefix

// UnknownCountry is the tag given to numbers no priced country matches.
const UnknownCountry = "Unknown"

// Resolve picks the priced country for a match. The billing territory is
// preferred; the classified country is the fallback, so a Puerto Rico number
// is billed at the Puerto Rico rate when one was fetched and at the US rate
// otherwise.
func Resolve(m Match, priced []PricedCountry) (PricedCountry, bool) {
	if !m.Matched() {
		return PricedCountry{}, false
	}
	candidates := []CountryCode{m.Territory}
	if m.Country != m.Territory {
		candidates = append(candidates, m.Country)
	}
	for _, want := range candidates {
		for _, p := range priced {
			if p.CountryCode != want {
				continue
			}
			if p.CallingCode != "" && p.CallingCode != m.CallingCode {
				continue
			}
			return p, true
		}
	}
	return PricedCountry{}, false
}

// PriceFor resolves the priced country of a raw number. Invalid numbers
// never resolve.
func (c *Classifier) PriceFor(raw string, priced []PricedCountry) (PricedCountry, bool) {
	cleaned := Clean(raw)
	if !c.IsValid(cleaned) {
		return PricedCountry{}, false
	}
	return Resolve(c.Match(cleaned), priced)
}

// Breakdown aggregates the price of every valid number in numbers.
func (c *Classifier) Breakdown(numbers []PendingNumber, priced []PricedCountry) PriceBreakdown {
	b := PriceBreakdown{PerCountry: map[CountryCode]int{}}
	for _, n := range numbers {
		cleaned := Clean(n.Raw)
		if cleaned == "" {
			cleaned = Clean(n.Cleaned)
		}
		if !c.IsValid(cleaned) {
			continue
		}
		p, ok := Resolve(c.Match(cleaned), priced)
		if !ok {
			b.Unmatched = append(b.Unmatched, cleaned)
			continue
		}
		b.Total += p.PricePerMessage
		b.PerCountry[p.CountryCode]++
		if b.PriceUnit == "" {
			b.PriceUnit = p.PriceUnit
		}
	}
	return b
}

// TotalPrice sums the per-message price of every valid number.
func (c *Classifier) TotalPrice(numbers []PendingNumber, priced []PricedCountry) float64 {
	return c.Breakdown(numbers, priced).Total
}

// TagCountry returns the display name of the priced country raw resolves to.
func (c *Classifier) TagCountry(raw string, priced []PricedCountry) string {
	p, ok := c.PriceFor(raw, priced)
	if !ok || p.DisplayName == "" {
		return UnknownCountry
	}
	return p.DisplayName
}

// TotalPrice uses the default classifier.
func TotalPrice(numbers []PendingNumber, priced []PricedCountry) float64 {
	return defaultClassifier.TotalPrice(numbers, priced)
}

// TagCountry uses the default classifier.
func TagCountry(raw string, priced []PricedCountry) string {
	return defaultClassifier.TagCountry(raw, priced)
}
