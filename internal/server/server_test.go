package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:     config.Test,
		ServerHost:      "127.0.0.1",
		ServerPort:      "0",
		AllowedOrigins:  []string{"http://localhost:5173"},
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		ProxyURL:        "http://127.0.0.1:1/v1",
		DirectURL:       "http://127.0.0.1:1/v1",
		Model:           config.DefaultModel,
		MaxTokens:       1000,
		Temperature:     0.7,
		RequestTimeout:  time.Second,
		SuggestionTTL:   time.Hour,
		SuggestionLimit: 20,
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig()
	db := testhelpers.SetupSQLite(t)

	deps, err := Wire(context.Background(), cfg, db, nil)
	require.NoError(t, err)
	assert.Nil(t, deps.Exports)

	srv := New(cfg, deps)
	require.NotNil(t, srv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/pantry", nil)
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	cfg := testConfig()
	deps, err := Wire(context.Background(), cfg, testhelpers.SetupSQLite(t), nil)
	require.NoError(t, err)
	srv := New(cfg, deps)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/pantry", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartShutdown(t *testing.T) {
	cfg := testConfig()
	deps, err := Wire(context.Background(), cfg, testhelpers.SetupSQLite(t), nil)
	require.NoError(t, err)
	srv := New(cfg, deps)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
