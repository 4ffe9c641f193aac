package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/database"
	"github.com/pageza/pantrychef/backend/internal/logging"
)

const rollbackSuffix = "_rollback.sql"

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the .sql migrations")
	flag.Parse()

	logging.Setup(os.Getenv("LOG_LEVEL"), true)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("DATABASE_URL not set and configuration failed to load")
		}
		dsn = database.DSN(cfg)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if _, err := db.Exec(createMigrationsTable); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema_migrations")
	}

	if *rollback {
		if err := rollbackLast(db, *dir); err != nil {
			log.Fatal().Err(err).Msg("rollback failed")
		}
		return
	}

	files, err := migrationFiles(*dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read migrations directory")
	}
	for _, file := range files {
		if err := apply(db, *dir, file); err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("migration failed")
		}
	}
	log.Info().Msg("all migrations applied")
}

// migrationFiles lists forward migrations in apply order. Rollback scripts
// are skipped.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".sql" || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// versionOf extracts VERSION from VERSION_NAME.sql.
func versionOf(file string) string {
	return strings.SplitN(strings.TrimSuffix(file, ".sql"), "_", 2)[0]
}

// rollbackFile names the script that undoes file.
func rollbackFile(file string) string {
	return strings.TrimSuffix(file, ".sql") + rollbackSuffix
}

func apply(db *sql.DB, dir, file string) error {
	version := versionOf(file)

	var applied bool
	if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&applied); err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if applied {
		log.Debug().Str("file", file).Msg("migration already applied")
		return nil
	}

	content, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", version, file); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info().Str("file", file).Msg("applied migration")
	return nil
}

func rollbackLast(db *sql.DB, dir string) error {
	var version, name string
	err := db.QueryRow("SELECT version, name FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1").Scan(&version, &name)
	if err == sql.ErrNoRows {
		log.Info().Msg("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last migration: %w", err)
	}

	path := filepath.Join(dir, rollbackFile(name))
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rollback file %s: %w", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("DELETE FROM schema_migrations WHERE version = $1", version); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to remove migration record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info().Str("file", name).Msg("rolled back migration")
	return nil
}
