package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/parser"
	"github.com/pageza/pantrychef/backend/internal/render"
	"github.com/pageza/pantrychef/backend/internal/service"
)

type SavedRecipeHandler struct {
	saved       *service.SavedRecipeService
	suggestions *service.SuggestionService
}

func NewSavedRecipeHandler(saved *service.SavedRecipeService, suggestions *service.SuggestionService) *SavedRecipeHandler {
	return &SavedRecipeHandler{saved: saved, suggestions: suggestions}
}

func (h *SavedRecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	saved := router.Group("/saved-recipes")
	{
		saved.GET("", h.List)
		saved.POST("", h.Save)
		saved.GET("/:id", h.Get)
		saved.DELETE("/:id", h.Delete)
		saved.GET("/:id/share", h.Share)
		saved.GET("/:id/pdf", h.PDF)
	}
}

// saveRequest names a recipe of a stored suggestion, or carries the recipe
// itself.
type saveRequest struct {
	SuggestionID string                  `json:"suggestion_id"`
	Index        int                     `json:"index"`
	Recipe       *parser.AnnotatedRecipe `json:"recipe"`
}

// List returns all saved recipes, or the best matches for ?q=.
func (h *SavedRecipeHandler) List(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}

	query := c.Query("q")
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.saved.Search(c.Request.Context(), id, query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved_recipes": rows})
}

func (h *SavedRecipeHandler) Save(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var recipe *parser.AnnotatedRecipe
	switch {
	case req.SuggestionID != "":
		r, err := h.suggestions.Recipe(c.Request.Context(), id, req.SuggestionID, req.Index)
		if err != nil {
			respondError(c, err)
			return
		}
		recipe = r
	case req.Recipe != nil && req.Recipe.Title != "":
		recipe = req.Recipe
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "suggestion_id or recipe is required"})
		return
	}

	row, err := h.saved.Save(c.Request.Context(), id, *recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *SavedRecipeHandler) Get(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	row, err := h.saved.Get(c.Request.Context(), id, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *SavedRecipeHandler) Delete(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.saved.Delete(c.Request.Context(), id, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SavedRecipeHandler) Share(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	text, err := h.saved.Share(c.Request.Context(), id, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

// PDF downloads the saved recipe as a printable card.
func (h *SavedRecipeHandler) PDF(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	row, err := h.saved.Get(c.Request.Context(), id, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := render.PDF(&buf, row.Title, row.Text); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="recipe-%s.pdf"`, row.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
