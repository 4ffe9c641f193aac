package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional config file schema.
type FileConfig struct {
	Server struct {
		Host           string   `yaml:"host" json:"host"`
		Port           string   `yaml:"port" json:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins" json:"allowedOrigins"`
		LogLevel       string   `yaml:"logLevel" json:"logLevel"`
	} `yaml:"server" json:"server"`

	Database struct {
		Driver     string `yaml:"driver" json:"driver"`
		Host       string `yaml:"host" json:"host"`
		Port       string `yaml:"port" json:"port"`
		User       string `yaml:"user" json:"user"`
		Name       string `yaml:"name" json:"name"`
		SSLMode    string `yaml:"sslMode" json:"sslMode"`
		SQLitePath string `yaml:"sqlitePath" json:"sqlitePath"`
	} `yaml:"database" json:"database"`

	Redis struct {
		URL string `yaml:"url" json:"url"`
	} `yaml:"redis" json:"redis"`

	LLM struct {
		ProxyURL    string        `yaml:"proxyURL" json:"proxyURL"`
		DirectURL   string        `yaml:"directURL" json:"directURL"`
		Model       string        `yaml:"model" json:"model"`
		MaxTokens   int           `yaml:"maxTokens" json:"maxTokens"`
		Temperature *float32      `yaml:"temperature" json:"temperature"`
		Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"llm" json:"llm"`

	Suggestions struct {
		TTL   time.Duration `yaml:"ttl" json:"ttl"`
		Limit int           `yaml:"limit" json:"limit"`
	} `yaml:"suggestions" json:"suggestions"`

	Exports struct {
		Bucket string        `yaml:"bucket" json:"bucket"`
		Region string        `yaml:"region" json:"region"`
		URLTTL time.Duration `yaml:"urlTTL" json:"urlTTL"`
	} `yaml:"exports" json:"exports"`
}

// LoadFile reads YAML or JSON into FileConfig.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	}
	return fc, nil
}

// ApplyFile overlays file values onto cfg. Values set explicitly in the
// environment take precedence over the file.
func ApplyFile(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, envKey, v string) {
		if v != "" && os.Getenv(envKey) == "" {
			*dst = v
		}
	}

	setStr(&cfg.ServerHost, "SERVER_HOST", fc.Server.Host)
	setStr(&cfg.ServerPort, "SERVER_PORT", fc.Server.Port)
	setStr(&cfg.LogLevel, "LOG_LEVEL", fc.Server.LogLevel)
	if len(fc.Server.AllowedOrigins) > 0 && os.Getenv("ALLOWED_ORIGINS") == "" {
		cfg.AllowedOrigins = fc.Server.AllowedOrigins
	}

	setStr(&cfg.DBDriver, "DB_DRIVER", fc.Database.Driver)
	setStr(&cfg.DBHost, "DB_HOST", fc.Database.Host)
	setStr(&cfg.DBPort, "DB_PORT", fc.Database.Port)
	setStr(&cfg.DBUser, "DB_USER", fc.Database.User)
	setStr(&cfg.DBName, "DB_NAME", fc.Database.Name)
	setStr(&cfg.DBSSLMode, "DB_SSL_MODE", fc.Database.SSLMode)
	setStr(&cfg.SQLitePath, "SQLITE_PATH", fc.Database.SQLitePath)

	setStr(&cfg.RedisURL, "REDIS_URL", fc.Redis.URL)

	setStr(&cfg.ProxyURL, "LLM_PROXY_URL", fc.LLM.ProxyURL)
	setStr(&cfg.DirectURL, "LLM_DIRECT_URL", fc.LLM.DirectURL)
	setStr(&cfg.Model, "LLM_MODEL", fc.LLM.Model)
	if fc.LLM.MaxTokens > 0 && os.Getenv("LLM_MAX_TOKENS") == "" {
		cfg.MaxTokens = fc.LLM.MaxTokens
	}
	if fc.LLM.Temperature != nil && os.Getenv("LLM_TEMPERATURE") == "" {
		cfg.Temperature = *fc.LLM.Temperature
	}
	if fc.LLM.Timeout > 0 && os.Getenv("LLM_TIMEOUT") == "" {
		cfg.RequestTimeout = fc.LLM.Timeout
	}

	if fc.Suggestions.TTL > 0 && os.Getenv("SUGGESTION_TTL") == "" {
		cfg.SuggestionTTL = fc.Suggestions.TTL
	}
	if fc.Suggestions.Limit > 0 && os.Getenv("SUGGESTION_LIMIT") == "" {
		cfg.SuggestionLimit = fc.Suggestions.Limit
	}

	setStr(&cfg.S3Bucket, "S3_BUCKET_NAME", fc.Exports.Bucket)
	setStr(&cfg.AWSRegion, "AWS_REGION", fc.Exports.Region)
	if fc.Exports.URLTTL > 0 && os.Getenv("EXPORT_URL_TTL") == "" {
		cfg.ExportTTL = fc.Exports.URLTTL
	}
}
