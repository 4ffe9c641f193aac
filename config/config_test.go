package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "DB_DRIVER", "DB_HOST", "DB_PASSWORD", "JWT_SECRET",
		"REDIS_URL", "REDIS_HOST", "LLM_MODEL", "LLM_MAX_TOKENS", "LLM_TEMPERATURE",
		"SERVER_PORT", "ALLOWED_ORIGINS", "PANTRYCHEF_CONFIG", "SUGGESTION_TTL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, 1000, cfg.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 0.0001)
	assert.Equal(t, DefaultProxyURL, cfg.ProxyURL)
	assert.Equal(t, 24*time.Hour, cfg.SuggestionTTL)
	assert.Equal(t, "development-secret", cfg.JWTSecret)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestProductionRequiresSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "JWT_SECRET")
	assert.Contains(t, fields, "DB_PASSWORD")
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := fromEnv()
	cfg.DBDriver = "mysql"
	assert.Error(t, ValidateConfig(cfg))
}

func TestGetEnvironment(t *testing.T) {
	isolate(t)
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "prod")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, GetEnvironment().RequiresSecrets())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
	assert.False(t, Test.RequiresSecrets())
}

func TestConfigFileOverlay(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "pantrychef.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
database:
  driver: sqlite
  sqlitePath: /tmp/pc.db
llm:
  model: gpt-4o-mini
  temperature: 0.2
suggestions:
  ttl: 2h
`), 0o600))
	t.Setenv("PANTRYCHEF_CONFIG", path)
	t.Setenv("LLM_MODEL", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/pc.db", cfg.SQLitePath)
	assert.Equal(t, "from-env", cfg.Model, "environment wins over the file")
	assert.InDelta(t, 0.2, cfg.Temperature, 0.0001)
	assert.Equal(t, 2*time.Hour, cfg.SuggestionTTL)
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"llm":{"maxTokens":500}}`), 0o600))

	fc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 500, fc.LLM.MaxTokens)
}
