// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionEvent is the message published for every recorded transaction.
type TransactionEvent struct {
	// Eid is the unique event identifier
	Eid string `json:"eid"`
	// Tid is the transaction the event describes
	Tid string `json:"tid"`
	// Kind is the routing key, e.g. sms.sent
	Kind      string    `json:"kind"`
	AccountID string    `json:"account_id"`
	Amount    float64   `json:"amount"`
	PriceUnit string    `json:"price_unit,omitempty"`
	Numbers   []string  `json:"numbers,omitempty"`
	Countries []string  `json:"countries,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTransactionEvent creates an event with a generated id.
func NewTransactionEvent(kind, accountID string, t Transaction) *TransactionEvent {
	return &TransactionEvent{
		Eid:       uuid.New().String(),
		Tid:       t.TID.String(),
		Kind:      kind,
		AccountID: accountID,
		Amount:    t.Amount,
		PriceUnit: t.PriceUnit,
		Numbers:   SplitList(t.Recipients),
		Countries: SplitList(t.Countries),
		CreatedAt: time.Now(),
	}
}
