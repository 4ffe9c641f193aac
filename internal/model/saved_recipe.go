package model

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// EmbeddingDimensions is the size of SavedRecipe.Embedding.
const EmbeddingDimensions = 32

// SavedRecipe is a recipe card the household kept. Content holds the rendered
// card body as HTML; Text holds the same body as plain text.
type SavedRecipe struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	HouseholdID uuid.UUID       `gorm:"type:uuid;not null;index" json:"household_id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Content     string          `gorm:"type:text;not null" json:"content"`
	Text        string          `gorm:"type:text;not null" json:"text"`
	SavedAt     time.Time       `gorm:"not null;index" json:"timestamp"`
	Embedding   pgvector.Vector `gorm:"type:vector(32);not null" json:"-"`
}

func (r *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.SavedAt.IsZero() {
		r.SavedAt = time.Now().UTC()
	}
	return nil
}
