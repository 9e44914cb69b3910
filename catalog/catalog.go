// SPDX-License-Identifier: GPL-3.0-only

// Package catalog reads the purchasable number offers kept in the document
// store under catalog/{variant}/services.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"numdash-server/docstore"
	"path"
	"sort"
	"strings"
)

type Variant string

const (
	Short  Variant = "short"
	Middle Variant = "middle"
	Long   Variant = "long"
)

var Variants = []Variant{Short, Middle, Long}

var (
	ErrUnknownVariant = errors.New("unknown catalog variant")
	ErrItemNotFound   = errors.New("catalog item not found")
)

// Item is one offer: a number for a service in a country.
type Item struct {
	ID           string  `json:"id"`
	Service      string  `json:"service"`
	DisplayName  string  `json:"display_name"`
	Country      string  `json:"country"`
	IsoCountry   string  `json:"iso_country"`
	Price        float64 `json:"price"`
	PriceUnit    string  `json:"price_unit"`
	DurationDays int     `json:"duration_days,omitempty"`
	Available    bool    `json:"available"`
}

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	Service       string
	IsoCountry    string
	AvailableOnly bool
}

func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

func collection(v Variant) string {
	return path.Join("catalog", string(v), "services")
}

func ItemFromFields(id string, fields docstore.Fields) Item {
	item := Item{
		ID:          id,
		Service:     fields.String("service"),
		DisplayName: fields.String("displayName"),
		Country:     fields.String("country"),
		IsoCountry:  strings.ToUpper(fields.String("isoCountry")),
		PriceUnit:   fields.String("priceUnit"),
		Available:   fields.Bool("available", true),
	}
	if item.DisplayName == "" {
		item.DisplayName = item.Service
	}
	item.Price, _ = fields.Float("price")
	item.DurationDays, _ = fields.Int("durationDays")
	return item
}

func (f Filter) matches(item Item) bool {
	if f.Service != "" && !strings.EqualFold(f.Service, item.Service) {
		return false
	}
	if f.IsoCountry != "" && !strings.EqualFold(f.IsoCountry, item.IsoCountry) {
		return false
	}
	return !f.AvailableOnly || item.Available
}

// List returns the offers of a variant sorted by display name, then country.
func List(ctx context.Context, store docstore.Store, v Variant, f Filter) ([]Item, error) {
	docs, err := store.ListCollection(ctx, collection(v))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s catalog: %w", v, err)
	}
	items := make([]Item, 0, len(docs))
	for _, doc := range docs {
		item := ItemFromFields(doc.ID(), doc.Fields)
		if f.matches(item) {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DisplayName != items[j].DisplayName {
			return items[i].DisplayName < items[j].DisplayName
		}
		return items[i].Country < items[j].Country
	})
	return items, nil
}

func Get(ctx context.Context, store docstore.Store, v Variant, id string) (*Item, error) {
	if id == "" || strings.Contains(id, "/") {
		return nil, ErrItemNotFound
	}
	fields, err := store.GetDocument(ctx, path.Join(collection(v), id))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	item := ItemFromFields(id, fields)
	return &item, nil
}
