// Package parser turns a free-form assistant reply into structured recipes.
//
// A reply is scanned once, line by line. Numbered lines starting with an
// uppercase letter ("1. Quick Stir-Fry") open a recipe; header lines switch
// the section that following lines are collected into. When no numbered title
// exists anywhere, lines that mention "recipe" are used as titles instead.
package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnparseable is returned when no recipe could be read from a reply.
var ErrUnparseable = errors.New("unparseable recipe response")

// Recipe is one recipe read from a reply.
type Recipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Method      []string `json:"method"`
	Extras      []string `json:"extras"`
}

// HasContent reports whether any section of the recipe collected a line.
func (r Recipe) HasContent() bool {
	return len(r.Ingredients) > 0 || len(r.Method) > 0 || len(r.Extras) > 0
}

func newRecipe(title string) *Recipe {
	return &Recipe{
		Title:       title,
		Ingredients: []string{},
		Method:      []string{},
		Extras:      []string{},
	}
}

func (r *Recipe) add(section Section, line string) {
	switch section {
	case SectionIngredients:
		r.Ingredients = append(r.Ingredients, line)
	case SectionMethod:
		r.Method = append(r.Method, line)
	case SectionExtras:
		r.Extras = append(r.Extras, line)
	}
}

// parseState is the working state of one scan. It is never shared.
type parseState struct {
	current *Recipe
	section Section
	out     []Recipe
}

func (s *parseState) step(l Line) {
	switch l.Kind {
	case KindTitle:
		s.flush()
		s.current = newRecipe(l.Text)
		s.section = SectionNone
	case KindHeader:
		s.section = l.Section
	case KindContent:
		if s.current == nil || s.section == SectionNone || l.Text == "" {
			return
		}
		s.current.add(s.section, l.Text)
	}
}

func (s *parseState) flush() {
	if s.current != nil {
		s.out = append(s.out, *s.current)
		s.current = nil
	}
}

func scan(lines []string, loose bool) []Recipe {
	st := &parseState{}
	for _, raw := range lines {
		st.step(classify(raw, loose))
	}
	st.flush()
	return st.out
}

// ParseRecipes reads recipes from a reply in title order. It returns
// ErrUnparseable when no title was found.
func ParseRecipes(responseText string) ([]Recipe, error) {
	lines := strings.Split(strings.ReplaceAll(responseText, "\r\n", "\n"), "\n")

	recipes := scan(lines, false)
	if len(recipes) == 0 {
		// No numbered title matched anywhere, so the loose rule may apply.
		recipes = scan(lines, true)
	}
	if len(recipes) == 0 {
		return nil, ErrUnparseable
	}
	return recipes, nil
}

// Parse reads recipes from a reply and classifies every ingredient line
// against the available ingredients. Any failure, including an unexpected
// panic while scanning, is reported as ErrUnparseable. Recipes with a title
// but no section lines are still returned; use HasContent to filter them.
func Parse(responseText string, available []string) (result []AnnotatedRecipe, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrUnparseable, r)
		}
	}()

	recipes, err := ParseRecipes(responseText)
	if err != nil {
		return nil, err
	}
	return Annotate(recipes, available), nil
}
