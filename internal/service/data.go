package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/internal/model"
	"github.com/pageza/pantrychef/backend/internal/transfer"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DataService backs up, restores and wipes a household.
type DataService struct {
	db       *gorm.DB
	pantry   *PantryService
	saved    *SavedRecipeService
	settings *SettingsService
	now      func() time.Time
}

func NewDataService(db *gorm.DB, pantry *PantryService, saved *SavedRecipeService, settings *SettingsService) *DataService {
	return &DataService{
		db:       db,
		pantry:   pantry,
		saved:    saved,
		settings: settings,
		now:      time.Now,
	}
}

func toTransfer(rows []model.SavedRecipe) []transfer.SavedRecipe {
	out := make([]transfer.SavedRecipe, len(rows))
	for i, r := range rows {
		out[i] = transfer.SavedRecipe{Title: r.Title, Content: r.Content, Timestamp: r.SavedAt}
	}
	return out
}

// Export returns the household backup document.
func (s *DataService) Export(ctx context.Context, householdID uuid.UUID) (*transfer.Document, error) {
	ingredients, err := s.pantry.List(ctx, householdID)
	if err != nil {
		return nil, err
	}
	rows, err := s.saved.List(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return transfer.NewDocument(ingredients, toTransfer(rows), s.now()), nil
}

// Import replaces the pantry and saved recipes with the document's. Names
// are normalized and blanks or repeats dropped.
func (s *DataService) Import(ctx context.Context, householdID uuid.UUID, doc *transfer.Document) error {
	seen := make(map[string]bool, len(doc.Ingredients))
	names := make([]string, 0, len(doc.Ingredients))
	for _, n := range doc.Ingredients {
		n = NormalizeIngredient(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}

	rows := make([]*model.SavedRecipe, 0, len(doc.SavedRecipes))
	for _, r := range doc.SavedRecipes {
		row, err := newSavedRecipe(householdID, r.Title, r.Content, r.Timestamp)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCollections(tx, householdID); err != nil {
			return err
		}
		if err := appendIngredients(tx, householdID, names); err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}

	log.Info().
		Str("household_id", householdID.String()).
		Int("ingredients", len(names)).
		Int("saved_recipes", len(rows)).
		Msg("imported household data")
	return nil
}

// StorageInfo reports counts and the approximate stored size.
func (s *DataService) StorageInfo(ctx context.Context, householdID uuid.UUID) (*transfer.StorageInfo, error) {
	doc, err := s.Export(ctx, householdID)
	if err != nil {
		return nil, err
	}
	key, err := s.settings.APIKey(ctx, householdID)
	if err != nil {
		return nil, err
	}
	info, err := transfer.Measure(doc.Ingredients, doc.SavedRecipes, key)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ClearAll removes ingredients, saved recipes and the API key, and resets
// the mode to proxy.
func (s *DataService) ClearAll(ctx context.Context, householdID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCollections(tx, householdID); err != nil {
			return err
		}
		return tx.Model(&model.Household{}).
			Where("id = ?", householdID).
			Updates(map[string]interface{}{
				"api_mode":       model.ModeProxy,
				"sealed_api_key": nil,
			}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	return nil
}

func deleteCollections(tx *gorm.DB, householdID uuid.UUID) error {
	if err := tx.Where("household_id = ?", householdID).Delete(&model.PantryItem{}).Error; err != nil {
		return err
	}
	return tx.Where("household_id = ?", householdID).Delete(&model.SavedRecipe{}).Error
}
