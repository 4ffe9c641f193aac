package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/llm"
	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
)

const testReply = `1. Tomato Pasta
Ingredients:
- 200g pasta
- 2 tomatoes
- basil
Method:
- Boil the pasta (10 minutes)
- Toss with tomatoes
Optional Extras:
- Grated parmesan on top

2. Tomato Salad
Ingredients:
- 3 tomatoes
- olive oil
Method:
- Slice and dress`

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	llm    *testhelpers.FakeLLM
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	fake := testhelpers.NewFakeLLM(t, testReply)

	pantry := service.NewPantryService(db)
	settings := service.NewSettingsService(db, service.NewKeySealer("test-secret"), llm.Endpoints{
		ProxyURL:  fake.URL,
		DirectURL: fake.URL,
	})
	saved := service.NewSavedRecipeService(db)
	suggestions := service.NewSuggestionService(pantry, settings,
		service.NewMemorySuggestionStore(time.Hour), service.DefaultCompletionOptions())

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	SetupAPI(router, Deps{
		DB:          db,
		Sessions:    service.NewSessionService(db, "test-secret", time.Hour),
		Pantry:      pantry,
		Settings:    settings,
		Suggestions: suggestions,
		Saved:       saved,
		Data:        service.NewDataService(db, pantry, saved, settings),
	})

	return &testEnv{router: router, db: db, llm: fake}
}

// PerformRequestWithToken sends a JSON request. body may be nil, a string
// (sent as-is) or any value (JSON encoded).
func PerformRequestWithToken(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewBuffer(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()
	w := PerformRequestWithToken(e.router, http.MethodPost, "/api/v1/sessions", nil, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) addIngredients(t *testing.T, token string, names ...string) {
	t.Helper()
	for _, n := range names {
		w := PerformRequestWithToken(e.router, http.MethodPost, "/api/v1/pantry", gin.H{"name": n}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
