// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"numdash-server/crypto"

	"gorm.io/gorm"
)

var AllModels []any

type User struct {
	ID        uint    `gorm:"primaryKey"`
	AccountID string  `gorm:"size:64;not null;uniqueIndex"`
	Email     string  `gorm:"size:255;not null;uniqueIndex"`
	Password  string  `gorm:"not null"`
	FullName  *string `gorm:"size:255;default:null"`
	// MFAEnabled is set once a TOTP secret has been activated.
	MFAEnabled bool `gorm:"not null;default:false"`
	// TOTPSecret holds the sealed secret, pending until MFAEnabled.
	TOTPSecret *string `gorm:"type:text;default:null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.AccountID == "" {
		user.AccountID, err = crypto.GenerateRandomString("acc_", 16, "hex")
	}
	return
}

func init() {
	AllModels = append(AllModels, &User{})
}
