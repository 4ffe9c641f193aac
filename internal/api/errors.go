package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/transfer"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNoIngredients),
		errors.Is(err, service.ErrEmptyCraving),
		errors.Is(err, service.ErrEmptyIngredient),
		errors.Is(err, service.ErrInvalidAPIKey),
		errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrProxyMode),
		errors.Is(err, transfer.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateIngredient):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoAPIKey):
		return http.StatusPreconditionFailed
	case errors.Is(err, service.ErrConnection):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": ...}. Unexpected errors are logged
// and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}

// household returns the authenticated household. It aborts with 401 when the
// route was registered without AuthMiddleware.
func household(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.HouseholdID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "household not authenticated"})
		c.Abort()
	}
	return id, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
