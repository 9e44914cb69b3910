// SPDX-License-Identifier: GPL-3.0-only

package prefix

// Validate explains whether raw may be used as a send target.
func (c *Classifier) Validate(raw string) Verdict {
	v := Verdict{Raw: raw, Cleaned: Clean(raw)}
	switch {
	case v.Cleaned == "":
		v.Reason = ReasonEmpty
	case v.Cleaned[0] == '0':
		v.Reason = ReasonLeadingZero
	case c.Blocked(v.Cleaned):
		v.Reason = ReasonBlocked
	default:
		m := c.Match(v.Cleaned)
		switch {
		case m.Rejected:
			v.Reason = ReasonRejected
		case !m.Matched():
			v.Reason = ReasonUnknownCallingCode
		default:
			v.Valid = true
			v.Reason = ReasonOK
			v.Country = m.Country
			v.Name = c.CountryName(m.Country)
		}
	}
	return v
}

// IsValid reports whether raw may be used as a send target.
func (c *Classifier) IsValid(raw string) bool {
	return c.Validate(raw).Valid
}

// IsValid uses the default classifier.
func IsValid(raw string) bool {
	return defaultClassifier.IsValid(raw)
}
