// SPDX-License-Identifier: GPL-3.0-only

package docstore

import (
	"context"
	"encoding/json"
	"numdash-server/testutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentPath(t *testing.T) {
	cases := []struct {
		in         string
		path       string
		collection string
		ok         bool
	}{
		{"sms_prices/US", "sms_prices/US", "sms_prices", true},
		{"/catalog/short/services/wa-us/", "catalog/short/services/wa-us", "catalog/short/services", true},
		{"sms_prices", "", "", false},
		{"sms_prices//US", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		path, collection, err := DocumentPath(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidPath, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.path, path)
		assert.Equal(t, tc.collection, collection)
	}

	_, err := CollectionPath("sms_prices/US")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestFieldsAccessors(t *testing.T) {
	f := Fields{
		"maxPrice":  "0.25",
		"price":     1.5,
		"days":      json.Number("30"),
		"available": "false",
		"country":   "United States",
	}
	n, ok := f.Float("maxPrice")
	assert.True(t, ok)
	assert.InDelta(t, 0.25, n, 1e-9)
	n, ok = f.Float("price")
	assert.True(t, ok)
	assert.InDelta(t, 1.5, n, 1e-9)
	days, ok := f.Int("days")
	assert.True(t, ok)
	assert.Equal(t, 30, days)
	_, ok = f.Float("country")
	assert.False(t, ok)
	assert.False(t, f.Bool("available", true))
	assert.True(t, f.Bool("missing", true))
	assert.Equal(t, "United States", f.String("country"))
	assert.Equal(t, "1.5", f.String("price"))
}

func exerciseStore(t *testing.T, store interface {
	Store
	Writer
}) {
	ctx := context.Background()

	_, err := store.GetDocument(ctx, "sms_prices/US")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.PutDocument(ctx, "sms_prices/US", Fields{"maxPrice": 0.25, "priceUnit": "USD"}))
	require.NoError(t, store.PutDocument(ctx, "sms_prices/GB", Fields{"maxPrice": 1.0}))
	require.NoError(t, store.PutDocument(ctx, "catalog/short/services/wa-us", Fields{"service": "whatsapp"}))

	fields, err := store.GetDocument(ctx, "sms_prices/US")
	require.NoError(t, err)
	price, _ := fields.Float("maxPrice")
	assert.InDelta(t, 0.25, price, 1e-9)

	require.NoError(t, store.PutDocument(ctx, "sms_prices/US", Fields{"maxPrice": 0.3}))
	fields, err = store.GetDocument(ctx, "sms_prices/US")
	require.NoError(t, err)
	price, _ = fields.Float("maxPrice")
	assert.InDelta(t, 0.3, price, 1e-9)
	assert.Empty(t, fields.String("priceUnit"))

	docs, err := store.ListCollection(ctx, "sms_prices")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "GB", docs[0].ID())
	assert.Equal(t, "US", docs[1].ID())

	docs, err = store.ListCollection(ctx, "catalog/long/services")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestGormStore(t *testing.T) {
	exerciseStore(t, &GormStore{DB: testutil.OpenDB(t)})
}

func TestLoadSeedFile(t *testing.T) {
	seed := `{"documents": {
		"sms_prices/CA": {"country": "Canada", "isoCountry": "CA", "areaCode": "1", "maxPrice": 0.5},
		"catalog/middle/services/tg-gb": {"service": "telegram", "price": 3}
	}}`
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	store := NewMemoryStore()
	n, err := LoadSeedFile(context.Background(), store, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	fields, err := store.GetDocument(context.Background(), "sms_prices/CA")
	require.NoError(t, err)
	assert.Equal(t, "Canada", fields.String("country"))

	_, err = LoadSeedFile(context.Background(), store, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
