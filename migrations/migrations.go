// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"numdash-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(models.AllModels...); err != nil {
					return fmt.Errorf("failed to create tables: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				for i := len(models.AllModels) - 1; i >= 0; i-- {
					if err := tx.Migrator().DropTable(models.AllModels[i]); err != nil {
						return fmt.Errorf("failed to drop table: %w", err)
					}
				}
				return nil
			},
		},
	}
}
