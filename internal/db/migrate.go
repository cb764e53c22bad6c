package db

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"foodshare/internal/model"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.Account{},
		&model.RestaurantProfile{},
		&model.NGOProfile{},
		&model.Donation{},
	}
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops all tables in reverse dependency order. Missing tables are logged and skipped.
func Reset(db *gorm.DB, logger *slog.Logger) {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			logger.Warn("drop table failed (may not exist)", "error", err)
		}
	}
}
