package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PantryItem is an ingredient the household has on hand. Names are stored
// lower-cased and are unique per household.
type PantryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	HouseholdID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pantry_household_name" json:"household_id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:idx_pantry_household_name" json:"name"`
	Position    int       `gorm:"not null" json:"position"`
}

func (p *PantryItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
