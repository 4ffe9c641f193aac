package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/model"
	"github.com/pageza/pantrychef/backend/internal/service"
)

type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("", h.Get)
		settings.PUT("", h.Update)
		settings.PUT("/api-key", h.SetAPIKey)
		settings.DELETE("/api-key", h.ClearAPIKey)
		settings.POST("/test", h.Test)
		settings.POST("/welcome", h.DismissWelcome)
	}
}

type updateSettingsRequest struct {
	APIMode model.APIMode `json:"api_mode" binding:"required"`
}

type apiKeyRequest struct {
	APIKey string `json:"api_key"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	s, err := h.settings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_mode is required"})
		return
	}
	s, err := h.settings.SetMode(c.Request.Context(), id, req.APIMode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) SetAPIKey(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	var req apiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s, err := h.settings.SetAPIKey(c.Request.Context(), id, req.APIKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) ClearAPIKey(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	s, err := h.settings.ClearAPIKey(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Test checks that the household's endpoint answers.
func (h *SettingsHandler) Test(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	if err := h.settings.TestConnection(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SettingsHandler) DismissWelcome(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	s, err := h.settings.MarkWelcomeSeen(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
