package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "pantry.db"),
	}

	db, err := Open(cfg)
	require.NoError(t, err)
	assert.False(t, IsPostgres(db))

	require.NoError(t, AutoMigrate(db))
	require.NoError(t, HealthCheck(context.Background(), db))

	h := model.Household{}
	require.NoError(t, db.Create(&h).Error)
	assert.NotEqual(t, uuid.Nil, h.ID)
	assert.Equal(t, model.ModeProxy, h.APIMode)

	item := model.PantryItem{HouseholdID: h.ID, Name: "egg"}
	require.NoError(t, db.Create(&item).Error)

	dup := model.PantryItem{HouseholdID: h.ID, Name: "egg"}
	assert.Error(t, db.Create(&dup).Error, "names are unique per household")
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "require",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=require", DSN(cfg))
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := NewRedisClient(&config.Config{RedisURL: "not a url"})
	assert.Error(t, err)
}

func TestRedisOptions(t *testing.T) {
	opts, err := RedisOptions(&config.Config{RedisHost: "cache", RedisPort: "6380", RedisPassword: "pw", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, RedisClientName, opts.ClientName)

	opts, err = RedisOptions(&config.Config{
		RedisURL: "redis://redis.internal:6379/3", RedisHost: "ignored", RedisPort: "1",
		RedisPassword: "from-secret", RedisDB: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, 3, opts.DB, "db in the URL wins")
	assert.Equal(t, "from-secret", opts.Password)

	opts, err = RedisOptions(&config.Config{RedisURL: "redis://:urlpw@redis.internal:6379", RedisPassword: "other", RedisDB: 4})
	require.NoError(t, err)
	assert.Equal(t, "urlpw", opts.Password)
	assert.Equal(t, 4, opts.DB)
}
