package main

import (
	"github.com/inventorysoft/backend/internal/config"
	"github.com/inventorysoft/backend/internal/handlers"
	"github.com/inventorysoft/backend/internal/models"
	"github.com/inventorysoft/backend/internal/services"
	"github.com/inventorysoft/backend/internal/utils"
	"github.com/inventorysoft/backend/pkg/logger"
	"gorm.io/gorm"
)

// appServices holds the initialized database and handlers the router needs.
type appServices struct {
	db          *gorm.DB
	cfg         *config.Config
	authHandler *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, audit
// logging, seed data.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	db, err := models.Open(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedDefaultData(db); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Audit log sink for middleware
	services.InitAuditLogger(db)

	// Prune old audit entries once at startup
	systemLogService := services.NewSystemLogService(db)
	if removed, err := systemLogService.Cleanup(cfg.Audit.RetentionDays); err != nil {
		logger.Warn().Err(err).Msg("Failed to clean up system logs")
	} else if removed > 0 {
		logger.Info().Int64("removed", removed).Msg("Cleaned up old system logs")
	}

	// Create default admin user
	authHandler := handlers.NewAuthHandler(db, cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		db:          db,
		cfg:         cfg,
		authHandler: authHandler,
	}
}
