package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults for the chat completion endpoints.
const (
	DefaultProxyURL  = "https://openai-proxy.andy-parka.workers.dev/v1"
	DefaultDirectURL = "https://api.openai.com/v1"
	DefaultModel     = "gpt-3.5-turbo"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost     string
	ServerPort     string
	AllowedOrigins []string
	LogLevel       string

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. Redis is optional; without it suggestions are
	// kept in memory and requests are not rate limited.
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Session tokens
	JWTSecret string
	TokenTTL  time.Duration

	// Chat completion
	ProxyURL        string
	DirectURL       string
	Model           string
	MaxTokens       int
	Temperature     float32
	RequestTimeout  time.Duration
	SuggestionTTL   time.Duration
	SuggestionLimit int

	// Export uploads. Empty bucket disables S3 uploads.
	S3Bucket  string
	AWSRegion string
	ExportTTL time.Duration
}

// LoadConfig builds the configuration from environment variables, an
// optional config file named by PANTRYCHEF_CONFIG, and Docker secrets.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := fromEnv()
	cfg.Environment = env

	if path := os.Getenv("PANTRYCHEF_CONFIG"); path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		ApplyFile(cfg, fc)
	}

	// In CI secrets come from the environment only.
	if env != CI {
		applySecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		ServerHost:     envOr("SERVER_HOST", "0.0.0.0"),
		ServerPort:     envOr("SERVER_PORT", "8080"),
		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		LogLevel:       envOr("LOG_LEVEL", "info"),

		DBDriver:   envOr("DB_DRIVER", "postgres"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     envOr("DB_NAME", "pantrychef"),
		DBSSLMode:  envOr("DB_SSL_MODE", "disable"),
		SQLitePath: envOr("SQLITE_PATH", "pantrychef.db"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     envOr("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  envDuration("TOKEN_TTL", 30*24*time.Hour),

		ProxyURL:        envOr("LLM_PROXY_URL", DefaultProxyURL),
		DirectURL:       envOr("LLM_DIRECT_URL", DefaultDirectURL),
		Model:           envOr("LLM_MODEL", DefaultModel),
		MaxTokens:       envInt("LLM_MAX_TOKENS", 1000),
		Temperature:     float32(envFloat("LLM_TEMPERATURE", 0.7)),
		RequestTimeout:  envDuration("LLM_TIMEOUT", 60*time.Second),
		SuggestionTTL:   envDuration("SUGGESTION_TTL", 24*time.Hour),
		SuggestionLimit: envInt("SUGGESTION_LIMIT", 20),

		S3Bucket:  os.Getenv("S3_BUCKET_NAME"),
		AWSRegion: os.Getenv("AWS_REGION"),
		ExportTTL: envDuration("EXPORT_URL_TTL", 15*time.Minute),
	}
}

// RedisEnabled reports whether a Redis server was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// applySecrets overrides sensitive values with Docker secrets when present.
func applySecrets(cfg *Config) {
	if v := readSecret("db_password"); v != "" {
		cfg.DBPassword = v
	}
	if v := readSecret("jwt_secret"); v != "" {
		cfg.JWTSecret = v
	}
	if v := readSecret("redis_password"); v != "" {
		cfg.RedisPassword = v
	}
	if v := readSecret("redis_url"); v != "" {
		cfg.RedisURL = v
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
