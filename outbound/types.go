// SPDX-License-Identifier: GPL-3.0-only

package outbound

import (
	"context"
	"errors"
	"numdash-server/commons/prefix"
	"numdash-server/gateway"
)

// MaxMessageLength is counted in characters, not bytes.
const MaxMessageLength = 160

const PricesCollection = "sms_prices"

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message is longer than 160 characters")
	ErrBlockedNumber  = errors.New("destination calling code is blocked")
	ErrNoRecipients   = errors.New("no valid destination numbers")
	ErrUnpriced       = errors.New("no price available for destination")
)

// Sender delivers one outbound SMS request.
type Sender interface {
	Send(ctx context.Context, token string, req gateway.SendRequest) (*gateway.SendResult, error)
}

// Quote is the price check of a set of entered numbers.
type Quote struct {
	Numbers   []prefix.Verdict       `json:"numbers"`
	Priced    []prefix.PricedCountry `json:"priced"`
	Breakdown prefix.PriceBreakdown  `json:"breakdown"`
	// Unpriced lists classified countries without a price document.
	Unpriced []prefix.CountryCode `json:"unpriced,omitempty"`
}

// SendPlan is a send request ready for the upstream endpoint.
type SendPlan struct {
	Request  gateway.SendRequest    `json:"request"`
	Included []prefix.PendingNumber `json:"included"`
	Skipped  []prefix.Verdict       `json:"skipped,omitempty"`
}

// SendReport is what became of a send.
type SendReport struct {
	Plan    *SendPlan           `json:"plan"`
	Result  *gateway.SendResult `json:"result"`
	Charged float64             `json:"charged"`
	// PriceUnit is the unit of Charged.
	PriceUnit string `json:"price_unit"`
	// Retry is the input set left for the user after the send.
	Retry []prefix.PendingNumber `json:"retry"`
}
