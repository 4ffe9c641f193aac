package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_search.sql", "0001_init.sql", "0001_init_rollback.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.sql"), 0o755))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_search.sql"}, files)
}

func TestRepositoryMigrations(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		_, err := os.Stat(filepath.Join("..", "..", "migrations", rollbackFile(f)))
		assert.NoError(t, err, "%s has no rollback script", f)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "0001", versionOf("0001_init.sql"))
	assert.Equal(t, "0003", versionOf("0003.sql"))
	assert.Equal(t, "0001_init_rollback.sql", rollbackFile("0001_init.sql"))
}
