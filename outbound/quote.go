// SPDX-License-Identifier: GPL-3.0-only

package outbound

import (
	"context"
	"errors"
	"fmt"
	"numdash-server/commons/prefix"
	"numdash-server/docstore"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// PricedCountryFromFields maps a price document onto a priced country. iso is
// the document id and is used when the document omits isoCountry.
func PricedCountryFromFields(iso string, fields docstore.Fields) prefix.PricedCountry {
	code := strings.ToUpper(fields.String("isoCountry"))
	if code == "" {
		code = strings.ToUpper(iso)
	}
	price, _ := fields.Float("maxPrice")
	return prefix.PricedCountry{
		CountryCode:     prefix.CountryCode(code),
		DisplayName:     fields.String("country"),
		CallingCode:     prefix.Clean(fields.String("areaCode")),
		PricePerMessage: price,
		PriceUnit:       fields.String("priceUnit"),
	}
}

// countriesToPrice returns every country a valid number may be billed to,
// sorted. Both the billing territory and the classified country are listed.
func countriesToPrice(c *prefix.Classifier, numbers []prefix.PendingNumber) []prefix.CountryCode {
	set := map[prefix.CountryCode]bool{}
	for _, n := range numbers {
		if !n.IsValid {
			continue
		}
		m := c.Match(n.Cleaned)
		set[m.Territory] = true
		set[m.Country] = true
	}
	out := make([]prefix.CountryCode, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FetchPrices reads the price document of every country in parallel. Missing
// documents are returned in unpriced and are not an error.
func FetchPrices(ctx context.Context, store docstore.Store, countries []prefix.CountryCode) (priced []prefix.PricedCountry, unpriced []prefix.CountryCode, err error) {
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, code := range countries {
		code := code
		g.Go(func() error {
			fields, err := store.GetDocument(ctx, path.Join(PricesCollection, string(code)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, docstore.ErrNotFound):
				unpriced = append(unpriced, code)
				return nil
			case err != nil:
				return fmt.Errorf("failed to fetch price for %s: %w", code, err)
			}
			priced = append(priced, PricedCountryFromFields(string(code), fields))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	sort.Slice(priced, func(i, j int) bool { return priced[i].CountryCode < priced[j].CountryCode })
	sort.Slice(unpriced, func(i, j int) bool { return unpriced[i] < unpriced[j] })
	return priced, unpriced, nil
}

// Quote validates raws and prices the valid ones.
func (s *Service) Quote(ctx context.Context, raws []string) (*Quote, error) {
	numbers := s.Classifier.PendingNumbers(raws)
	priced, unpriced, err := FetchPrices(ctx, s.Store, countriesToPrice(s.Classifier, numbers))
	if err != nil {
		return nil, err
	}

	q := &Quote{
		Numbers:   make([]prefix.Verdict, 0, len(numbers)),
		Priced:    priced,
		Breakdown: s.Classifier.Breakdown(numbers, priced),
	}
	for _, n := range numbers {
		q.Numbers = append(q.Numbers, s.Classifier.Validate(n.Raw))
	}
	// Only report a country unpriced when no fallback price covers its numbers.
	for _, code := range unpriced {
		if !s.coveredByFallback(code, numbers, priced) {
			q.Unpriced = append(q.Unpriced, code)
		}
	}
	return q, nil
}

func (s *Service) coveredByFallback(code prefix.CountryCode, numbers []prefix.PendingNumber, priced []prefix.PricedCountry) bool {
	used := false
	for _, n := range numbers {
		if !n.IsValid {
			continue
		}
		m := s.Classifier.Match(n.Cleaned)
		if m.Territory != code && m.Country != code {
			continue
		}
		used = true
		if _, ok := prefix.Resolve(m, priced); !ok {
			return false
		}
	}
	return used
}
