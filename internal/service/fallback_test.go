package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)


func TestFallbackRecipes(t *testing.T) {
	recipes := FallbackRecipes([]string{"rice"})
	require.Len(t, recipes, 3)
	assert.Equal(t, "Quick Stir-Fry Delight", recipes[0].Title)
	assert.Equal(t, "One-Pan Wonder", recipes[1].Title)
	assert.Equal(t, "Quick Soup or Stew", recipes[2].Title)

	marks := map[string]bool{}
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			marks[ing.Text] = ing.Missing
		}
	}

	assert.False(t, marks["2 cups mixed vegetables (from your available ingredients)"])
	assert.False(t, marks["2 tbsp olive oil"], "staple")
	assert.False(t, marks["Salt and pepper to taste"], "staple")
	assert.False(t, marks["1 onion, diced"], "staple")
	assert.False(t, marks["1 cup grains (rice, quinoa, or pasta)"], "in pantry")
	assert.True(t, marks["1 tbsp soy sauce"])
	assert.True(t, marks["4 cups broth or water"])
}

func TestFallbackRecipesAreFresh(t *testing.T) {
	a := FallbackRecipes(nil)
	a[0].Method[0] = "changed"
	b := FallbackRecipes(nil)
	assert.NotEqual(t, "changed", b[0].Method[0])
}
