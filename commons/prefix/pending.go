// SPDX-License-Identifier: GPL-3.0-only

package prefix

// NewPendingNumber cleans and validates raw.
func (c *Classifier) NewPendingNumber(raw string) PendingNumber {
	cleaned := Clean(raw)
	return PendingNumber{Raw: raw, Cleaned: cleaned, IsValid: c.IsValid(cleaned)}
}

// PendingNumbers builds the input set from raw entries, dropping entries
// that clean to the same digits as an earlier one.
func (c *Classifier) PendingNumbers(raws []string) []PendingNumber {
	seen := make(map[string]bool, len(raws))
	out := make([]PendingNumber, 0, len(raws))
	for _, raw := range raws {
		n := c.NewPendingNumber(raw)
		if n.Cleaned != "" {
			if seen[n.Cleaned] {
				continue
			}
			seen[n.Cleaned] = true
		}
		out = append(out, n)
	}
	return out
}

// Revalidate recomputes IsValid for every number.
func (c *Classifier) Revalidate(numbers []PendingNumber) []PendingNumber {
	out := make([]PendingNumber, len(numbers))
	for i, n := range numbers {
		out[i] = c.NewPendingNumber(n.Raw)
	}
	return out
}

// RetrySet keeps exactly the numbers reported as failed. Entries from
// previous are reused so the user sees what they typed.
func (c *Classifier) RetrySet(previous []PendingNumber, failed []string) []PendingNumber {
	byCleaned := make(map[string]PendingNumber, len(previous))
	for _, n := range previous {
		byCleaned[Clean(n.Raw)] = n
	}
	out := make([]PendingNumber, 0, len(failed))
	seen := make(map[string]bool, len(failed))
	for _, f := range failed {
		cleaned := Clean(f)
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		if n, ok := byCleaned[cleaned]; ok {
			out = append(out, c.NewPendingNumber(n.Raw))
			continue
		}
		out = append(out, c.NewPendingNumber(f))
	}
	return out
}
