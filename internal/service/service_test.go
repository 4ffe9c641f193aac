package service

import (
	"testing"
	"time"

	"github.com/pageza/pantrychef/backend/internal/llm"
	"github.com/pageza/pantrychef/backend/internal/model"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
	"gorm.io/gorm"
)

const sampleReply = `Here are three ideas.

1. Cheesy Omelette
Ingredients:
- 3 eggs
- 50g cheddar cheese
- 1 tbsp butter
Method:
- Whisk the eggs (1 minute)
- Cook in butter (3 minutes)
Optional Extras:
- Chopped chives on top

2. Egg Fried Rice
Ingredients:
- 2 eggs
- 1 cup rice
Instructions:
1. fry the rice (5 minutes)
2. stir in the eggs (2 minutes)

3. Boiled Eggs
Ingredients:
- 2 eggs
Method:
- Boil for 7 minutes`

type fixture struct {
	db          *gorm.DB
	household   *model.Household
	llm         *testhelpers.FakeLLM
	store       *MemorySuggestionStore
	pantry      *PantryService
	settings    *SettingsService
	saved       *SavedRecipeService
	suggestions *SuggestionService
	data        *DataService
}

func newFixture(t *testing.T, reply string) *fixture {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	fake := testhelpers.NewFakeLLM(t, reply)

	f := &fixture{
		db:        db,
		household: testhelpers.NewHousehold(t, db),
		llm:       fake,
		store:     NewMemorySuggestionStore(time.Hour),
		pantry:    NewPantryService(db),
		saved:     NewSavedRecipeService(db),
	}
	f.settings = NewSettingsService(db, NewKeySealer("test-secret"), llm.Endpoints{
		ProxyURL:  fake.URL,
		DirectURL: fake.URL,
	})
	f.suggestions = NewSuggestionService(f.pantry, f.settings, f.store, DefaultCompletionOptions())
	f.data = NewDataService(db, f.pantry, f.saved, f.settings)
	return f
}
