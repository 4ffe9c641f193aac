package server

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/api"
	"github.com/pageza/pantrychef/backend/internal/llm"
	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/service"
)

// Wire builds the services from cfg. rdb may be nil, in which case
// suggestions are held in memory and rate limiting is off.
func Wire(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (api.Deps, error) {
	pantry := service.NewPantryService(db)
	settings := service.NewSettingsService(db, service.NewKeySealer(cfg.JWTSecret), llm.Endpoints{
		ProxyURL:  cfg.ProxyURL,
		DirectURL: cfg.DirectURL,
	})
	saved := service.NewSavedRecipeService(db)

	var store service.SuggestionStore
	if rdb != nil {
		store = service.NewRedisSuggestionStore(rdb, cfg.SuggestionTTL)
	} else {
		log.Warn().Msg("redis not configured, keeping suggestions in memory")
		store = service.NewMemorySuggestionStore(cfg.SuggestionTTL)
	}

	opts := service.DefaultCompletionOptions()
	opts.Model = cfg.Model
	opts.MaxTokens = cfg.MaxTokens
	opts.Temperature = cfg.Temperature
	if cfg.RequestTimeout > 0 {
		opts.Timeout = cfg.RequestTimeout
	}

	exports, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return api.Deps{}, fmt.Errorf("failed to configure export bucket: %w", err)
	}

	return api.Deps{
		DB:                db,
		Redis:             rdb,
		Sessions:          service.NewSessionService(db, cfg.JWTSecret, cfg.TokenTTL),
		Pantry:            pantry,
		Settings:          settings,
		Suggestions:       service.NewSuggestionService(pantry, settings, store, opts),
		Saved:             saved,
		Data:              service.NewDataService(db, pantry, saved, settings),
		SuggestionLimiter: middleware.NewSuggestionRateLimiter(rdb, cfg.SuggestionLimit),
		Exports:           exports,
		ExportURLTTL:      cfg.ExportTTL,
	}, nil
}
