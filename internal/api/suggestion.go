package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/parser"
	"github.com/pageza/pantrychef/backend/internal/render"
	"github.com/pageza/pantrychef/backend/internal/service"
)

type SuggestionHandler struct {
	suggestions *service.SuggestionService
	limiter     *middleware.RateLimiter
}

func NewSuggestionHandler(suggestions *service.SuggestionService, limiter *middleware.RateLimiter) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions, limiter: limiter}
}

func (h *SuggestionHandler) RegisterRoutes(router *gin.RouterGroup) {
	suggestions := router.Group("/suggestions")
	{
		create := []gin.HandlerFunc{h.Create}
		if h.limiter != nil {
			create = append([]gin.HandlerFunc{h.limiter.RateLimitMiddleware()}, create...)
		}
		suggestions.POST("", create...)
		suggestions.GET("/:id", h.Get)
		suggestions.GET("/:id/recipes/:index", h.GetRecipe)
		suggestions.GET("/:id/recipes/:index/share", h.ShareRecipe)
	}
}

type createSuggestionRequest struct {
	Craving string `json:"craving"`
}

// Create generates recipes for the household's pantry.
func (h *SuggestionHandler) Create(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	var req createSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sug, err := h.suggestions.Generate(c.Request.Context(), id, req.Craving)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sug)
}

func (h *SuggestionHandler) Get(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	sug, err := h.suggestions.Get(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sug)
}

func (h *SuggestionHandler) recipe(c *gin.Context) (*parser.AnnotatedRecipe, bool) {
	id, ok := household(c)
	if !ok {
		return nil, false
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return nil, false
	}
	r, err := h.suggestions.Recipe(c.Request.Context(), id, c.Param("id"), index)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return r, true
}

// GetRecipe returns one suggested recipe with its rendered card.
func (h *SuggestionHandler) GetRecipe(c *gin.Context) {
	r, ok := h.recipe(c)
	if !ok {
		return
	}
	content, err := render.HTML(*r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipe":   r,
		"html":     content,
		"markdown": render.Markdown(*r),
	})
}

// ShareRecipe returns the clipboard text for a suggested recipe.
func (h *SuggestionHandler) ShareRecipe(c *gin.Context) {
	r, ok := h.recipe(c)
	if !ok {
		return
	}
	content, err := render.HTML(*r)
	if err != nil {
		respondError(c, err)
		return
	}
	text, err := render.ShareText(r.Title, content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
