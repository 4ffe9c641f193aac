package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
)

type SessionHandler struct {
	sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sessions", h.Create)
}

// Create starts a new household. The returned token identifies it on every
// later request.
func (h *SessionHandler) Create(c *gin.Context) {
	hh, token, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":        token,
		"household_id": hh.ID,
		"api_mode":     hh.APIMode,
	})
}
