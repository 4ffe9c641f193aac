package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSuggestionStore(t *testing.T) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("REDIS_HOST not set, skipping redis test")
	}
	client := redis.NewClient(&redis.Options{Addr: host + ":6379"})
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	store := NewRedisSuggestionStore(client, time.Minute)
	sug := &Suggestion{
		ID:          uuid.NewString(),
		HouseholdID: uuid.New(),
		Craving:     "soup",
		Recipes:     FallbackRecipes(nil),
		Sample:      true,
	}
	require.NoError(t, store.Put(ctx, sug))
	t.Cleanup(func() { client.Del(ctx, suggestionKey(sug.ID)) })

	got, err := store.Get(ctx, sug.ID)
	require.NoError(t, err)
	assert.Equal(t, sug.HouseholdID, got.HouseholdID)
	assert.Equal(t, sug.Recipes, got.Recipes)

	ttl, err := client.TTL(ctx, suggestionKey(sug.ID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
