package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReply = `1. Test Recipe
Ingredients:
- egg
- milk
Method:
- Mix well (2 minutes)
Optional Extras:
- Add salt`

func TestParseRecipesSample(t *testing.T) {
	recipes, err := ParseRecipes(sampleReply)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "Test Recipe", r.Title)
	assert.Equal(t, []string{"egg", "milk"}, r.Ingredients)
	assert.Equal(t, []string{"Mix well (2 minutes)"}, r.Method)
	assert.Equal(t, []string{"Add salt"}, r.Extras)
}

func TestParseRecipesCountsTitles(t *testing.T) {
	reply := `Here are some ideas:

1. Quick Stir-Fry
Ingredients:
- 2 cups rice
Method:
- Fry it

2. One-Pan Wonder

3. Quick Soup
Instructions:
- Boil water`

	recipes, err := ParseRecipes(reply)
	require.NoError(t, err)
	require.Len(t, recipes, 3)

	assert.Equal(t, "Quick Stir-Fry", recipes[0].Title)
	assert.Equal(t, "One-Pan Wonder", recipes[1].Title)
	assert.Equal(t, "Quick Soup", recipes[2].Title)

	// a title with no sections still produces a recipe
	assert.False(t, recipes[1].HasContent())
	assert.Equal(t, []string{"Boil water"}, recipes[2].Method)
}

func TestParseRecipesPreservesLineOrder(t *testing.T) {
	reply := "1. Pancakes\nMethod:\n- first\n- second\n- third"
	recipes, err := ParseRecipes(reply)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, recipes[0].Method)
}

func TestParseRecipesEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\t\n"} {
		recipes, err := ParseRecipes(in)
		assert.ErrorIs(t, err, ErrUnparseable)
		assert.Nil(t, recipes)
	}
}

func TestParseRecipesNoTitles(t *testing.T) {
	_, err := ParseRecipes("Ingredients:\n- egg\nMethod:\n- cook")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParseRecipesDropsContentBeforeHeader(t *testing.T) {
	reply := "1. Omelette\nA lovely breakfast\n- stray line\nIngredients:\n- egg"
	recipes, err := ParseRecipes(reply)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, []string{"egg"}, r.Ingredients)
	assert.Empty(t, r.Method)
	assert.Empty(t, r.Extras)
}

func TestParseRecipesDropsContentBeforeTitle(t *testing.T) {
	reply := "Ingredients:\n- orphan\n1. Toast\nIngredients:\n- bread"
	recipes, err := ParseRecipes(reply)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"bread"}, recipes[0].Ingredients)
}

func TestParseRecipesTitleResetsSection(t *testing.T) {
	reply := "1. Toast\nIngredients:\n- bread\n2. Tea\n- water\nIngredients:\n- tea bag"
	recipes, err := ParseRecipes(reply)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, []string{"tea bag"}, recipes[1].Ingredients)
}

func TestTitleTakesPrecedenceOverHeader(t *testing.T) {
	l := Classify("1. Ingredients: Garnish Special")
	assert.Equal(t, KindTitle, l.Kind)
	assert.Equal(t, "Ingredients: Garnish Special", l.Text)

	recipes, err := ParseRecipes("1. Ingredients: Garnish Special\nIngredients:\n- egg")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Ingredients: Garnish Special", recipes[0].Title)
	assert.Equal(t, []string{"egg"}, recipes[0].Ingredients)
}

func TestHeaderPriority(t *testing.T) {
	tests := []struct {
		line string
		want Section
	}{
		{"Ingredients:", SectionIngredients},
		{"INGREDIENTS (for 2 people):", SectionNone},
		{"Ingredients for 2:", SectionNone},
		{"**Ingredients:**", SectionIngredients},
		{"Method:", SectionMethod},
		{"Step-by-step Instructions:", SectionMethod},
		{"Optional Extras:", SectionExtras},
		{"Garnish", SectionExtras},
		{"Alternatives", SectionExtras},
		{"Garnish instructions:", SectionMethod},
		{"Ingredients: see method:", SectionIngredients},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			l := Classify(tt.line)
			if tt.want == SectionNone {
				assert.Equal(t, KindContent, l.Kind)
				return
			}
			assert.Equal(t, KindHeader, l.Kind)
			assert.Equal(t, tt.want, l.Section)
		})
	}
}

func TestClassifyBlank(t *testing.T) {
	assert.Equal(t, KindBlank, Classify("   \t").Kind)
}

func TestTitleNeedsUppercase(t *testing.T) {
	l := Classify("1. heat the pan")
	assert.Equal(t, KindContent, l.Kind)
	assert.Equal(t, "heat the pan", l.Text)
}

func TestCleanLineIdempotentMarkers(t *testing.T) {
	assert.Equal(t, CleanLine("egg"), CleanLine("- egg"))
	assert.Equal(t, CleanLine("egg"), CleanLine("• egg"))
	assert.Equal(t, "Mix well", CleanLine("-   Mix well  "))
	assert.Equal(t, "Boil water", CleanLine("2. Boil water"))
	assert.Equal(t, "Boil water", CleanLine("- 2. Boil water"))
	// only one marker is removed
	assert.Equal(t, "- egg", CleanLine("- - egg"))
}

func TestParseRecipesNumberedContent(t *testing.T) {
	reply := "1. Rice Bowl\nMethod:\n1. rinse the rice\n2. cook for 12 minutes"
	recipes, err := ParseRecipes(reply)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"rinse the rice", "cook for 12 minutes"}, recipes[0].Method)
}

func TestParseRecipesLooseFallback(t *testing.T) {
	reply := `Tomato Soup Recipe
Ingredients:
- tomatoes
Method:
- simmer
Another recipe: Garlic Bread
Ingredients:
- garlic`

	recipes, err := ParseRecipes(reply)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Tomato Soup Recipe", recipes[0].Title)
	assert.Equal(t, []string{"tomatoes"}, recipes[0].Ingredients)
	assert.Equal(t, []string{"simmer"}, recipes[0].Method)
	assert.Equal(t, "Another recipe: Garlic Bread", recipes[1].Title)
}

func TestParseRecipesLooseOnlyWithoutNumericTitles(t *testing.T) {
	reply := `1. Pasta Bake
Method:
- follow the recipe on the box`

	recipes, err := ParseRecipes(reply)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"follow the recipe on the box"}, recipes[0].Method)
}

func TestLooseFallbackKeepsHeaders(t *testing.T) {
	l := classify("Recipe ingredients:", true)
	assert.Equal(t, KindHeader, l.Kind)
	assert.Equal(t, SectionIngredients, l.Section)
}

func TestParseRecipesCRLF(t *testing.T) {
	reply := strings.ReplaceAll(sampleReply, "\n", "\r\n")
	recipes, err := ParseRecipes(reply)
	require.NoError(t, err)
	assert.Equal(t, []string{"egg", "milk"}, recipes[0].Ingredients)
}

func TestParseAnnotatesMissing(t *testing.T) {
	reply := "1. Duck Eggs\nIngredients:\n- egg\n- duck\n- Milk"
	recipes, err := Parse(reply, []string{"egg", "milk"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	ings := recipes[0].Ingredients
	require.Len(t, ings, 3)
	assert.False(t, ings[0].Missing)
	assert.True(t, ings[1].Missing)
	assert.False(t, ings[2].Missing, "matching is case-insensitive")

	lines := recipes[0].IngredientLines()
	assert.Equal(t, "egg", lines[0])
	assert.Equal(t, `<span class="missing-ingredient">duck</span>`, lines[1])
	assert.Equal(t, "Milk", lines[2])
}

func TestParseEmptyInputIsUnparseable(t *testing.T) {
	recipes, err := Parse("", []string{"egg"})
	assert.True(t, errors.Is(err, ErrUnparseable))
	assert.Nil(t, recipes)
}

func TestAvailable(t *testing.T) {
	assert.True(t, Available("egg", []string{"egg"}))
	assert.False(t, Available("duck", []string{"egg"}))
	assert.True(t, Available("2 Chicken Breasts", []string{"chicken"}))
	assert.False(t, Available("anything", nil))
	assert.False(t, Available("anything", []string{"", "  "}))
}

func TestMarkMissingEscapes(t *testing.T) {
	assert.Equal(t, `<span class="missing-ingredient">salt &amp; pepper</span>`, MarkMissing("salt & pepper"))
	assert.Equal(t, "a &lt;b&gt;", Ingredient{Text: "a <b>"}.HTML())
}

func TestAnnotatedPlainRoundTrip(t *testing.T) {
	recipes, err := ParseRecipes(sampleReply)
	require.NoError(t, err)
	annotated := Annotate(recipes, []string{"egg"})
	assert.Equal(t, recipes[0], annotated[0].Plain())
}

func TestKeywordLinesAreHeadersNotContent(t *testing.T) {
	l := Classify("- Garnish with chives")
	assert.Equal(t, KindHeader, l.Kind)
	assert.Equal(t, SectionExtras, l.Section)

	reply := "1. Soup\nIngredients:\n- stock\nOptional Extras:\n- Garnish with chives\n- Crusty bread"
	recipes, err := ParseRecipes(reply)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"Crusty bread"}, recipes[0].Extras)
}

func TestParseKeepsTitleOnlyRecipes(t *testing.T) {
	recipes, err := Parse("1. Mystery Dish\n2. Another Dish", nil)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.False(t, recipes[0].HasContent())
}
