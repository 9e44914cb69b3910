// SPDX-License-Identifier: GPL-3.0-only

package catalog

import (
	"context"
	"numdash-server/docstore"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *docstore.MemoryStore {
	t.Helper()
	store := docstore.NewMemoryStore()
	ctx := context.Background()
	docs := map[string]docstore.Fields{
		"catalog/short/services/wa-us": {"service": "whatsapp", "displayName": "WhatsApp", "country": "United States", "isoCountry": "us", "price": 0.8, "priceUnit": "USD"},
		"catalog/short/services/tg-gb": {"service": "telegram", "displayName": "Telegram", "country": "United Kingdom", "isoCountry": "GB", "price": "1.1", "available": false},
		"catalog/short/services/wa-gb": {"service": "whatsapp", "displayName": "WhatsApp", "country": "United Kingdom", "isoCountry": "GB", "price": 1},
		"catalog/long/services/any-de": {"service": "any", "country": "Germany", "isoCountry": "DE", "price": 20, "durationDays": 30},
	}
	for p, f := range docs {
		require.NoError(t, store.PutDocument(ctx, p, f))
	}
	return store
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" Middle ")
	require.NoError(t, err)
	assert.Equal(t, Middle, v)
	_, err = ParseVariant("weekly")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestList(t *testing.T) {
	store := seeded(t)
	items, err := List(context.Background(), store, Short, Filter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "tg-gb", items[0].ID)
	assert.Equal(t, "wa-gb", items[1].ID)
	assert.Equal(t, "wa-us", items[2].ID)
	assert.Equal(t, "US", items[2].IsoCountry)
	assert.False(t, items[0].Available)
	assert.InDelta(t, 1.1, items[0].Price, 1e-9)

	items, err = List(context.Background(), store, Short, Filter{Service: "WhatsApp", IsoCountry: "gb", AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "wa-gb", items[0].ID)

	items, err = List(context.Background(), store, Middle, Filter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGet(t *testing.T) {
	store := seeded(t)
	item, err := Get(context.Background(), store, Long, "any-de")
	require.NoError(t, err)
	assert.Equal(t, 30, item.DurationDays)
	assert.Equal(t, "any", item.DisplayName)

	_, err = Get(context.Background(), store, Short, "any-de")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = Get(context.Background(), store, Short, "../long")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
