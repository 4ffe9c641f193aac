package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/internal/llm"
	"github.com/pageza/pantrychef/backend/internal/model"
	"gorm.io/gorm"
)

// Settings is the household's API configuration as shown to the client.
// The key itself is never returned.
type Settings struct {
	APIMode     model.APIMode `json:"api_mode"`
	HasAPIKey   bool          `json:"has_api_key"`
	ShowWelcome bool          `json:"show_welcome"`
}

type SettingsService struct {
	db        *gorm.DB
	sealer    *KeySealer
	endpoints llm.Endpoints
}

func NewSettingsService(db *gorm.DB, sealer *KeySealer, endpoints llm.Endpoints) *SettingsService {
	return &SettingsService{
		db:        db,
		sealer:    sealer,
		endpoints: endpoints,
	}
}

func (s *SettingsService) household(ctx context.Context, id uuid.UUID) (*model.Household, error) {
	var h model.Household
	if err := s.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load household: %w", err)
	}
	return &h, nil
}

func settingsOf(h *model.Household) *Settings {
	return &Settings{
		APIMode:   h.APIMode,
		HasAPIKey: h.HasAPIKey(),
		// first visit without a key
		ShowWelcome: !h.WelcomeSeen && !h.HasAPIKey(),
	}
}

func (s *SettingsService) Get(ctx context.Context, householdID uuid.UUID) (*Settings, error) {
	h, err := s.household(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return settingsOf(h), nil
}

// SetMode switches between the shared proxy and the household's own key.
// A stored key is kept when switching to proxy.
func (s *SettingsService) SetMode(ctx context.Context, householdID uuid.UUID, mode model.APIMode) (*Settings, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	h, err := s.household(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(h).Update("api_mode", mode).Error; err != nil {
		return nil, fmt.Errorf("failed to update api mode: %w", err)
	}
	h.APIMode = mode
	return settingsOf(h), nil
}

// SetAPIKey stores a direct-mode key.
func (s *SettingsService) SetAPIKey(ctx context.Context, householdID uuid.UUID, key string) (*Settings, error) {
	h, err := s.household(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if h.APIMode == model.ModeProxy {
		return nil, ErrProxyMode
	}

	key = strings.TrimSpace(key)
	if !strings.HasPrefix(key, "sk-") {
		return nil, ErrInvalidAPIKey
	}

	sealed, err := s.sealer.Seal(key)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(h).Update("sealed_api_key", sealed).Error; err != nil {
		return nil, fmt.Errorf("failed to store api key: %w", err)
	}
	h.SealedAPIKey = sealed
	return settingsOf(h), nil
}

func (s *SettingsService) ClearAPIKey(ctx context.Context, householdID uuid.UUID) (*Settings, error) {
	h, err := s.household(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if h.APIMode == model.ModeProxy {
		return nil, ErrProxyMode
	}
	if err := s.db.WithContext(ctx).Model(h).Update("sealed_api_key", nil).Error; err != nil {
		return nil, fmt.Errorf("failed to clear api key: %w", err)
	}
	h.SealedAPIKey = nil
	return settingsOf(h), nil
}

func (s *SettingsService) MarkWelcomeSeen(ctx context.Context, householdID uuid.UUID) (*Settings, error) {
	h, err := s.household(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(h).Update("welcome_seen", true).Error; err != nil {
		return nil, fmt.Errorf("failed to update welcome flag: %w", err)
	}
	h.WelcomeSeen = true
	return settingsOf(h), nil
}

// APIKey returns the stored key in clear text, or "" when none is stored.
func (s *SettingsService) APIKey(ctx context.Context, householdID uuid.UUID) (string, error) {
	h, err := s.household(ctx, householdID)
	if err != nil {
		return "", err
	}
	return s.openKey(h)
}

func (s *SettingsService) openKey(h *model.Household) (string, error) {
	if !h.HasAPIKey() {
		return "", nil
	}
	return s.sealer.Open(h.SealedAPIKey)
}

// Provider returns the chat client for the household's current mode.
// Direct mode without a stored key fails with ErrNoAPIKey.
func (s *SettingsService) Provider(ctx context.Context, householdID uuid.UUID) (*llm.OpenAIProvider, error) {
	h, err := s.household(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if h.APIMode == model.ModeProxy {
		return s.endpoints.Provider(true, ""), nil
	}

	key, err := s.openKey(h)
	if err != nil {
		return nil, fmt.Errorf("failed to open api key: %w", err)
	}
	if key == "" {
		return nil, ErrNoAPIKey
	}
	return s.endpoints.Provider(false, key), nil
}

// TestConnection lists models on the household's endpoint.
func (s *SettingsService) TestConnection(ctx context.Context, householdID uuid.UUID) error {
	p, err := s.Provider(ctx, householdID)
	if err != nil {
		return err
	}
	if _, err := p.ListModels(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}
