package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks cfg for the current environment.
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_HOST", "host and database name are required for postgres"})
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "is required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.MaxTokens <= 0 {
		errs = append(errs, ValidationError{"LLM_MAX_TOKENS", "must be positive"})
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		errs = append(errs, ValidationError{"LLM_TEMPERATURE", "must be between 0 and 2"})
	}

	if cfg.Environment.RequiresSecrets() {
		if cfg.JWTSecret == "" {
			errs = append(errs, ValidationError{"JWT_SECRET", "is required"})
		}
		if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "is required"})
		}
	} else if cfg.JWTSecret == "" {
		cfg.JWTSecret = "development-secret"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
