package service

import (
	"strings"

	"github.com/pageza/pantrychef/backend/internal/parser"
)

// CommonStaples are assumed to be in every kitchen when marking the sample
// recipes.
var CommonStaples = []string{"olive oil", "salt", "pepper", "garlic", "onion", "butter"}

// fromPantry marks a line that refers to the pantry itself.
const fromPantry = "(from your available ingredients)"

var sampleRecipes = []parser.Recipe{
	{
		Title: "Quick Stir-Fry Delight",
		Ingredients: []string{
			"2 cups mixed vegetables " + fromPantry,
			"1 cup protein (chicken, tofu, or beef if available)",
			"2 tbsp olive oil",
			"2 cloves garlic, minced",
			"1 tbsp soy sauce",
			"Salt and pepper to taste",
		},
		Method: []string{
			"Heat olive oil in a large wok or pan over high heat (2 minutes)",
			"Add minced garlic and stir for 30 seconds",
			"Add protein and cook for 3-4 minutes until browned",
			"Add vegetables and stir-fry for 4-5 minutes",
			"Season with soy sauce, salt, and pepper",
			"Serve hot over rice or noodles",
		},
		Extras: []string{
			"Garnish with fresh herbs or green onions",
			"Add a squeeze of lime for brightness",
			"Serve with steamed rice or noodles",
		},
	},
	{
		Title: "One-Pan Wonder",
		Ingredients: []string{
			"1 lb protein of choice",
			"2 cups vegetables",
			"1 cup grains (rice, quinoa, or pasta)",
			"2 tbsp olive oil",
			"Herbs and spices to taste",
		},
		Method: []string{
			"Preheat oven to 400°F (5 minutes)",
			"Season protein with herbs and spices (2 minutes)",
			"Arrange protein and vegetables on a baking sheet (3 minutes)",
			"Drizzle with olive oil and bake for 20-25 minutes",
			"Cook grains separately according to package instructions",
			"Serve protein and vegetables over grains",
		},
		Extras: []string{
			"Add a simple sauce made from available ingredients",
			"Garnish with fresh herbs",
			"Serve with a side salad",
		},
	},
	{
		Title: "Quick Soup or Stew",
		Ingredients: []string{
			"4 cups broth or water",
			"2 cups mixed vegetables",
			"1 cup protein",
			"1 onion, diced",
			"2 cloves garlic, minced",
			"Herbs and spices to taste",
		},
		Method: []string{
			"Sauté onion and garlic in oil until softened (3 minutes)",
			"Add protein and brown for 2-3 minutes",
			"Add broth and bring to boil (5 minutes)",
			"Add vegetables and simmer for 10-15 minutes",
			"Season with herbs, salt, and pepper",
			"Serve hot with bread or crackers",
		},
		Extras: []string{
			"Add a dollop of yogurt or cream for richness",
			"Garnish with fresh herbs",
			"Serve with crusty bread",
		},
	},
}

// FallbackRecipes returns the three sample recipes, marking ingredients that
// are neither in the pantry nor a common staple.
func FallbackRecipes(available []string) []parser.AnnotatedRecipe {
	out := parser.Annotate(cloneRecipes(sampleRecipes), available)
	for i := range out {
		for j, ing := range out[i].Ingredients {
			if !ing.Missing {
				continue
			}
			if parser.Available(ing.Text, CommonStaples) || strings.Contains(ing.Text, fromPantry) {
				out[i].Ingredients[j].Missing = false
			}
		}
	}
	return out
}

func cloneRecipes(in []parser.Recipe) []parser.Recipe {
	out := make([]parser.Recipe, len(in))
	for i, r := range in {
		out[i] = parser.Recipe{
			Title:       r.Title,
			Ingredients: append([]string{}, r.Ingredients...),
			Method:      append([]string{}, r.Method...),
			Extras:      append([]string{}, r.Extras...),
		}
	}
	return out
}
