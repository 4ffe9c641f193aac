package parser

import (
	"html"
	"strings"
)

// MissingClass is the CSS class wrapped around ingredients that are not on hand.
const MissingClass = "missing-ingredient"

// Ingredient is an ingredient line with its availability.
type Ingredient struct {
	Text    string `json:"text"`
	Missing bool   `json:"missing"`
}

// HTML returns the escaped line, wrapped in the missing marker when needed.
func (i Ingredient) HTML() string {
	if i.Missing {
		return MarkMissing(i.Text)
	}
	return html.EscapeString(i.Text)
}

// AnnotatedRecipe is a Recipe whose ingredient lines carry availability.
type AnnotatedRecipe struct {
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients"`
	Method      []string     `json:"method"`
	Extras      []string     `json:"extras"`
}

// IngredientLines returns the ingredient lines in the format the recipe card
// expects: missing lines wrapped in a span, the rest escaped as-is.
func (r AnnotatedRecipe) IngredientLines() []string {
	lines := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		lines[i] = ing.HTML()
	}
	return lines
}

// Plain drops the availability marks.
func (r AnnotatedRecipe) Plain() Recipe {
	out := Recipe{
		Title:       r.Title,
		Ingredients: make([]string, len(r.Ingredients)),
		Method:      append([]string{}, r.Method...),
		Extras:      append([]string{}, r.Extras...),
	}
	for i, ing := range r.Ingredients {
		out.Ingredients[i] = ing.Text
	}
	return out
}

// HasContent reports whether any section of the recipe has a line.
func (r AnnotatedRecipe) HasContent() bool {
	return len(r.Ingredients) > 0 || len(r.Method) > 0 || len(r.Extras) > 0
}

// MarkMissing wraps an ingredient line in the missing-ingredient span.
func MarkMissing(line string) string {
	return `<span class="` + MissingClass + `">` + html.EscapeString(line) + `</span>`
}

// Available reports whether the lower-cased line contains any of the
// available ingredient names.
func Available(line string, available []string) bool {
	name := strings.ToLower(line)
	for _, a := range available {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" && strings.Contains(name, a) {
			return true
		}
	}
	return false
}

// Annotate classifies every ingredient line of every recipe.
func Annotate(recipes []Recipe, available []string) []AnnotatedRecipe {
	out := make([]AnnotatedRecipe, 0, len(recipes))
	for _, r := range recipes {
		ar := AnnotatedRecipe{
			Title:       r.Title,
			Ingredients: make([]Ingredient, 0, len(r.Ingredients)),
			Method:      nonNil(r.Method),
			Extras:      nonNil(r.Extras),
		}
		for _, line := range r.Ingredients {
			ar.Ingredients = append(ar.Ingredients, Ingredient{
				Text:    line,
				Missing: !Available(line, available),
			})
		}
		out = append(out, ar)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
