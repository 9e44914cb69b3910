// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"encoding/json"
	"numdash-server/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	event := models.TransactionEvent{
		Eid:       "e-1",
		Tid:       "t-1",
		Kind:      "sms.partial",
		AccountID: "acc_1",
		Amount:    1.25,
		PriceUnit: "USD",
		Numbers:   []string{"14155550123", "447400123456"},
		Countries: []string{"United States", "United Kingdom"},
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	assert.Equal(t,
		"2024-05-01T10:00:00Z sms.partial account=acc_1 tid=t-1 amount=1.2500 USD numbers=2 countries=United States,United Kingdom",
		describe("sms.partial", body))
	assert.Equal(t, "other.key not json", describe("other.key", []byte("not json")))
}
