package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/internal/model"
	"github.com/pageza/pantrychef/backend/internal/parser"
	"github.com/pageza/pantrychef/backend/internal/render"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSearchLimit caps Search results when no limit is given.
const DefaultSearchLimit = 10

type SavedRecipeService struct {
	db *gorm.DB
}

func NewSavedRecipeService(db *gorm.DB) *SavedRecipeService {
	return &SavedRecipeService{db: db}
}

// newSavedRecipe builds the row for a card: plain text and embedding are
// derived from the HTML content.
func newSavedRecipe(householdID uuid.UUID, title, content string, savedAt time.Time) (*model.SavedRecipe, error) {
	text, err := render.PlainText(content)
	if err != nil {
		return nil, err
	}
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	return &model.SavedRecipe{
		HouseholdID: householdID,
		Title:       title,
		Content:     content,
		Text:        text,
		SavedAt:     savedAt.UTC(),
		Embedding:   GenerateEmbedding(title + "\n" + text),
	}, nil
}

// Save renders the recipe card and stores it.
func (s *SavedRecipeService) Save(ctx context.Context, householdID uuid.UUID, recipe parser.AnnotatedRecipe) (*model.SavedRecipe, error) {
	content, err := render.HTML(recipe)
	if err != nil {
		return nil, err
	}
	row, err := newSavedRecipe(householdID, recipe.Title, content, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return row, nil
}

// List returns saved recipes oldest first.
func (s *SavedRecipeService) List(ctx context.Context, householdID uuid.UUID) ([]model.SavedRecipe, error) {
	var rows []model.SavedRecipe
	if err := s.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("saved_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return rows, nil
}

func (s *SavedRecipeService) Get(ctx context.Context, householdID, id uuid.UUID) (*model.SavedRecipe, error) {
	var row model.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("household_id = ? AND id = ?", householdID, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved recipe: %w", err)
	}
	return &row, nil
}

func (s *SavedRecipeService) Delete(ctx context.Context, householdID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("household_id = ? AND id = ?", householdID, id).
		Delete(&model.SavedRecipe{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search ranks saved recipes by embedding distance on postgres. Other
// databases fall back to a case-insensitive substring match.
func (s *SavedRecipeService) Search(ctx context.Context, householdID uuid.UUID, query string, limit int) ([]model.SavedRecipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx, householdID)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	q := s.db.WithContext(ctx).Where("household_id = ?", householdID).Limit(limit)
	if s.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{GenerateEmbedding(query)}},
		})
	} else {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(text) LIKE ?", like, like).Order("saved_at ASC")
	}

	var rows []model.SavedRecipe
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search saved recipes: %w", err)
	}
	return rows, nil
}

// Share returns the clipboard text for a saved recipe.
func (s *SavedRecipeService) Share(ctx context.Context, householdID, id uuid.UUID) (string, error) {
	row, err := s.Get(ctx, householdID, id)
	if err != nil {
		return "", err
	}
	return render.ShareText(row.Title, row.Content)
}
