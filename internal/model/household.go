package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// APIMode selects how a household reaches the chat completion endpoint.
type APIMode string

const (
	// ModeProxy sends requests through the shared proxy; no key is needed.
	ModeProxy APIMode = "proxy"
	// ModeDirect sends requests with the household's own API key.
	ModeDirect APIMode = "direct"
)

// Valid reports whether m is a known mode.
func (m APIMode) Valid() bool {
	return m == ModeProxy || m == ModeDirect
}

// Household owns a pantry, saved recipes and API settings. It is the server
// side equivalent of one browser's local storage.
type Household struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	APIMode      APIMode   `gorm:"size:16;not null" json:"api_mode"`
	SealedAPIKey []byte    `json:"-"`
	WelcomeSeen  bool      `gorm:"not null" json:"welcome_seen"`
}

func (h *Household) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.APIMode == "" {
		h.APIMode = ModeProxy
	}
	return nil
}

// HasAPIKey reports whether a sealed key is stored.
func (h *Household) HasAPIKey() bool {
	return len(h.SealedAPIKey) > 0
}
