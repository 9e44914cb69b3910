// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

// Document is one record of the document store. Fields holds a JSON object.
type Document struct {
	ID         uint   `gorm:"primaryKey"`
	Path       string `gorm:"size:512;not null;uniqueIndex"`
	Collection string `gorm:"size:512;not null;index"`
	Fields     string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func init() {
	AllModels = append(AllModels, &Document{})
}
