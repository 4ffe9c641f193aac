package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
)

type PantryHandler struct {
	pantry *service.PantryService
}

func NewPantryHandler(pantry *service.PantryService) *PantryHandler {
	return &PantryHandler{pantry: pantry}
}

func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry")
	{
		pantry.GET("", h.List)
		pantry.POST("", h.Add)
		pantry.DELETE("/:name", h.Remove)
	}
}

type addIngredientRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *PantryHandler) List(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	list, err := h.pantry.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": list})
}

func (h *PantryHandler) Add(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	var req addIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	list, err := h.pantry.Add(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ingredients": list})
}

func (h *PantryHandler) Remove(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	list, err := h.pantry.Remove(c.Request.Context(), id, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": list})
}
