// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionStatus string
type TransactionCategory string

const (
	Completed TransactionStatus = "COMPLETED"
	Partial   TransactionStatus = "PARTIAL"
	Pending   TransactionStatus = "PENDING"
	Failed    TransactionStatus = "FAILED"
)

const (
	SMS      TransactionCategory = "SMS"
	Purchase TransactionCategory = "PURCHASE"
)

type Transaction struct {
	ID          uint                `gorm:"primaryKey"`
	TID         uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	Category    TransactionCategory `gorm:"size:20;not null;index"`
	Status      TransactionStatus   `gorm:"size:20;not null;index"`
	Amount      float64             `gorm:"not null;default:0"`
	PriceUnit   string              `gorm:"size:10;default:null"`
	Description *string             `gorm:"type:text;default:null"`
	// Recipients and Countries are comma separated, in send order.
	Recipients *string `gorm:"type:text;default:null"`
	Countries  *string `gorm:"type:text;default:null"`
	Failed     *string `gorm:"type:text;default:null"`
	OrderID    *string `gorm:"size:255;default:null"`
	Variant    *string `gorm:"size:20;default:null"`
	Service    *string `gorm:"size:255;default:null"`
	Number     *string `gorm:"size:32;default:null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
	UserID     uint           `gorm:"index"`
	User       User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (transaction *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if transaction.TID == uuid.Nil {
		transaction.TID = uuid.New()
	}
	return
}

func init() {
	AllModels = append(AllModels, &Transaction{})
}
