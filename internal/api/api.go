package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/service"
)

// Deps are the services the handlers are built from. Redis, Exports and
// SuggestionLimiter are optional.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client

	Sessions    *service.SessionService
	Pantry      *service.PantryService
	Settings    *service.SettingsService
	Suggestions *service.SuggestionService
	Saved       *service.SavedRecipeService
	Data        *service.DataService

	SuggestionLimiter *middleware.RateLimiter
	Exports           *config.S3Config
	ExportURLTTL      time.Duration
}

// SetupAPI registers every route under /api/v1.
func SetupAPI(router *gin.Engine, deps Deps) {
	v1 := router.Group("/api/v1")

	NewHealthHandler(deps.DB, deps.Redis).RegisterRoutes(v1)
	NewSessionHandler(deps.Sessions).RegisterRoutes(v1)

	authed := v1.Group("", middleware.AuthMiddleware(deps.Sessions))
	{
		NewPantryHandler(deps.Pantry).RegisterRoutes(authed)
		NewSuggestionHandler(deps.Suggestions, deps.SuggestionLimiter).RegisterRoutes(authed)
		NewSavedRecipeHandler(deps.Saved, deps.Suggestions).RegisterRoutes(authed)
		NewSettingsHandler(deps.Settings).RegisterRoutes(authed)
		NewDataHandler(deps.Data, deps.Exports, deps.ExportURLTTL).RegisterRoutes(authed)
	}
}
