package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/internal/llm"
	"github.com/pageza/pantrychef/backend/internal/parser"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// SystemPrompt asks for replies in the layout the parser reads.
const SystemPrompt = "You are a helpful cooking assistant. Generate 3 simple recipes based on available ingredients and user preferences. " +
	"Format each recipe with: 1. Ingredients list for 2 people, 2. Step-by-step method with cooking times, " +
	"3. Optional extras for garnish and alternatives. Keep it concise and easy to follow. " +
	"Return the response in a structured format that can be parsed."

// SampleNotice is shown with sample recipes served in place of a reply.
const SampleNotice = "API error, showing sample recipes"

// Suggestion is one round of generated recipes.
type Suggestion struct {
	ID          string                   `json:"id"`
	HouseholdID uuid.UUID                `json:"household_id"`
	Craving     string                   `json:"craving"`
	Ingredients []string                 `json:"ingredients"`
	Recipes     []parser.AnnotatedRecipe `json:"recipes"`
	Sample      bool                     `json:"sample"`
	Notice      string                   `json:"notice,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

// CompletionOptions tune the chat completion request.
type CompletionOptions struct {
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

func DefaultCompletionOptions() CompletionOptions {
	return CompletionOptions{
		Model:       openai.GPT3Dot5Turbo,
		MaxTokens:   1000,
		Temperature: 0.7,
		Timeout:     60 * time.Second,
	}
}

type SuggestionService struct {
	pantry   *PantryService
	settings *SettingsService
	store    SuggestionStore
	opts     CompletionOptions
}

func NewSuggestionService(pantry *PantryService, settings *SettingsService, store SuggestionStore, opts CompletionOptions) *SuggestionService {
	return &SuggestionService{
		pantry:   pantry,
		settings: settings,
		store:    store,
		opts:     opts,
	}
}

// UserPrompt is the user message for a request.
func UserPrompt(ingredients []string, craving string) string {
	return fmt.Sprintf("Available ingredients: %s. User request: %s", strings.Join(ingredients, ", "), craving)
}

// Generate asks the model for recipes from the household's pantry. When the
// call fails or the reply cannot be read, sample recipes are returned
// instead with Sample set.
func (s *SuggestionService) Generate(ctx context.Context, householdID uuid.UUID, craving string) (*Suggestion, error) {
	ingredients, err := s.pantry.List(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	craving = strings.TrimSpace(craving)
	if craving == "" {
		return nil, ErrEmptyCraving
	}

	client, err := s.settings.Provider(ctx, householdID)
	if err != nil {
		return nil, err
	}

	sug := &Suggestion{
		ID:          uuid.NewString(),
		HouseholdID: householdID,
		Craving:     craving,
		Ingredients: ingredients,
		CreatedAt:   time.Now().UTC(),
	}

	recipes, err := s.suggest(ctx, client, ingredients, craving)
	if err != nil {
		log.Warn().
			Err(err).
			Str("household_id", householdID.String()).
			Msg("serving sample recipes")
		recipes = FallbackRecipes(ingredients)
		sug.Sample = true
		sug.Notice = SampleNotice
	}
	sug.Recipes = recipes

	if err := s.store.Put(ctx, sug); err != nil {
		log.Error().Err(err).Str("suggestion_id", sug.ID).Msg("failed to store suggestion")
	}
	return sug, nil
}

func (s *SuggestionService) suggest(ctx context.Context, client llm.Client, ingredients []string, craving string) ([]parser.AnnotatedRecipe, error) {
	reply, err := s.complete(ctx, client, UserPrompt(ingredients, craving))
	if err != nil {
		return nil, err
	}

	recipes, err := parser.Parse(reply, ingredients)
	if err != nil {
		return nil, err
	}
	// titles alone are not worth showing
	for _, r := range recipes {
		if r.HasContent() {
			return recipes, nil
		}
	}
	return nil, parser.ErrUnparseable
}

func (s *SuggestionService) complete(ctx context.Context, client llm.Client, prompt string) (string, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Get returns a stored suggestion owned by the household.
func (s *SuggestionService) Get(ctx context.Context, householdID uuid.UUID, id string) (*Suggestion, error) {
	sug, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sug.HouseholdID != householdID {
		return nil, ErrNotFound
	}
	return sug, nil
}

// Recipe returns one recipe of a stored suggestion.
func (s *SuggestionService) Recipe(ctx context.Context, householdID uuid.UUID, id string, index int) (*parser.AnnotatedRecipe, error) {
	sug, err := s.Get(ctx, householdID, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(sug.Recipes) {
		return nil, ErrNotFound
	}
	return &sug.Recipes[index], nil
}
