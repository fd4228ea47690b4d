package models

import (
	"fmt"

	"github.com/inventorysoft/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and returns the handle. There is
// deliberately no package-level singleton: every service receives the handle
// through its constructor so tests can run against isolated instances.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&SystemLog{},
		&UserPreferences{},
		&Item{},
		&Sale{},
		&Purchase{},
		&CustomFieldDefinition{},
		&CustomFieldValue{},
		&TableColumnConfig{},
		&ChartDefinition{},
	)
}

// SeedDefaultData creates the preference row if it does not exist. Table
// columns and charts are seeded lazily by their services on first access.
func SeedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&UserPreferences{}).Where("id = ?", PreferencesRowID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		prefs := DefaultPreferences()
		if err := db.Create(&prefs).Error; err != nil {
			return err
		}
	}
	return nil
}
