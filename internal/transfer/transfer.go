// Package transfer reads and writes the household backup document.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// Version is written into every exported document.
const Version = "1.0.0"

var ErrInvalidFormat = errors.New("invalid data format")

// SavedRecipe is a saved recipe card as it appears in a backup.
type SavedRecipe struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Document is the backup of one household.
type Document struct {
	Ingredients  []string      `json:"ingredients"`
	SavedRecipes []SavedRecipe `json:"savedRecipes"`
	ExportDate   time.Time     `json:"exportDate"`
	Version      string        `json:"version"`
}

func NewDocument(ingredients []string, recipes []SavedRecipe, now time.Time) *Document {
	if ingredients == nil {
		ingredients = []string{}
	}
	if recipes == nil {
		recipes = []SavedRecipe{}
	}
	return &Document{
		Ingredients:  ingredients,
		SavedRecipes: recipes,
		ExportDate:   now.UTC(),
		Version:      Version,
	}
}

// Filename is the download name for a JSON export made at t.
func Filename(t time.Time) string {
	return "recipe-app-data-" + t.UTC().Format("2006-01-02") + ".json"
}

// XLSXFilename is Filename for spreadsheet exports.
func XLSXFilename(t time.Time) string {
	return "recipe-app-data-" + t.UTC().Format("2006-01-02") + ".xlsx"
}

// WriteJSON writes d indented by two spaces.
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// Decode reads a backup. Both ingredients and savedRecipes must be present
// and non-null; anything else fails with ErrInvalidFormat.
func Decode(r io.Reader) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	for _, key := range []string{"ingredients", "savedRecipes"} {
		v, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidFormat, key)
		}
	}

	var d Document
	if err := json.Unmarshal(raw["ingredients"], &d.Ingredients); err != nil {
		return nil, fmt.Errorf("%w: ingredients: %v", ErrInvalidFormat, err)
	}
	if err := json.Unmarshal(raw["savedRecipes"], &d.SavedRecipes); err != nil {
		return nil, fmt.Errorf("%w: savedRecipes: %v", ErrInvalidFormat, err)
	}
	// informational only
	if v, ok := raw["exportDate"]; ok {
		_ = json.Unmarshal(v, &d.ExportDate)
	}
	if v, ok := raw["version"]; ok {
		_ = json.Unmarshal(v, &d.Version)
	}
	return &d, nil
}

// StorageInfo summarizes what a household stores.
type StorageInfo struct {
	Ingredients  int    `json:"ingredients"`
	SavedRecipes int    `json:"saved_recipes"`
	Bytes        int    `json:"bytes"`
	SizeKB       string `json:"size_kb"`
}

// Measure sizes the household data as the compact JSON of both collections
// plus the API key.
func Measure(ingredients []string, recipes []SavedRecipe, apiKey string) (StorageInfo, error) {
	if ingredients == nil {
		ingredients = []string{}
	}
	if recipes == nil {
		recipes = []SavedRecipe{}
	}

	total := len(apiKey)
	for _, v := range []any{ingredients, recipes} {
		n, err := compactSize(v)
		if err != nil {
			return StorageInfo{}, err
		}
		total += n
	}

	return StorageInfo{
		Ingredients:  len(ingredients),
		SavedRecipes: len(recipes),
		Bytes:        total,
		SizeKB:       fmt.Sprintf("%.2f", float64(total)/1024),
	}, nil
}

func compactSize(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return len(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
