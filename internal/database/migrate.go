package database

import (
	"fmt"

	"github.com/pageza/pantrychef/backend/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// IsPostgres reports whether db talks to postgres.
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// AutoMigrate creates or updates the tables for every model. On postgres the
// vector extension is created first so saved recipe embeddings can be stored.
// Production deployments run cmd/migrate instead.
func AutoMigrate(db *gorm.DB) error {
	if IsPostgres(db) {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to create vector extension: %w", err)
		}
	}

	log.Info().Str("driver", db.Dialector.Name()).Msg("running auto-migration")
	if err := db.AutoMigrate(
		&model.Household{},
		&model.PantryItem{},
		&model.SavedRecipe{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
