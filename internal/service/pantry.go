package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/internal/model"
	"gorm.io/gorm"
)

// NormalizeIngredient trims and lower-cases an ingredient name.
func NormalizeIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type PantryService struct {
	db *gorm.DB
}

func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// List returns ingredient names in the order they were added.
func (s *PantryService) List(ctx context.Context, householdID uuid.UUID) ([]string, error) {
	var items []model.PantryItem
	if err := s.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list pantry: %w", err)
	}

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names, nil
}

// Add appends an ingredient and returns the updated list.
func (s *PantryService) Add(ctx context.Context, householdID uuid.UUID, name string) ([]string, error) {
	name = NormalizeIngredient(name)
	if name == "" {
		return nil, ErrEmptyIngredient
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PantryItem{}).
			Where("household_id = ? AND name = ?", householdID, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateIngredient
		}
		return appendIngredients(tx, householdID, []string{name})
	})
	if err != nil {
		return nil, err
	}
	return s.List(ctx, householdID)
}

// Remove deletes an ingredient and returns the updated list.
func (s *PantryService) Remove(ctx context.Context, householdID uuid.UUID, name string) ([]string, error) {
	res := s.db.WithContext(ctx).
		Where("household_id = ? AND name = ?", householdID, NormalizeIngredient(name)).
		Delete(&model.PantryItem{})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to remove ingredient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.List(ctx, householdID)
}

// appendIngredients inserts names after the current last position. Callers
// normalize and deduplicate.
func appendIngredients(tx *gorm.DB, householdID uuid.UUID, names []string) error {
	if len(names) == 0 {
		return nil
	}
	var last struct{ Max *int }
	if err := tx.Model(&model.PantryItem{}).
		Select("MAX(position) AS max").
		Where("household_id = ?", householdID).
		Scan(&last).Error; err != nil {
		return err
	}
	next := 0
	if last.Max != nil {
		next = *last.Max + 1
	}

	items := make([]model.PantryItem, len(names))
	for i, n := range names {
		items[i] = model.PantryItem{HouseholdID: householdID, Name: n, Position: next + i}
	}
	return tx.Create(&items).Error
}
