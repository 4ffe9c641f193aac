package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SuggestionStore keeps generated suggestions for a limited time so the
// client can come back to them.
type SuggestionStore interface {
	Put(ctx context.Context, s *Suggestion) error
	// Get returns ErrNotFound for unknown or expired IDs.
	Get(ctx context.Context, id string) (*Suggestion, error)
}

func suggestionKey(id string) string {
	return fmt.Sprintf("pantry:suggestion:%s", id)
}

// RedisSuggestionStore stores suggestions as JSON with a TTL.
type RedisSuggestionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisSuggestionStore(client *redis.Client, ttl time.Duration) *RedisSuggestionStore {
	return &RedisSuggestionStore{redis: client, ttl: ttl}
}

func (r *RedisSuggestionStore) Put(ctx context.Context, s *Suggestion) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestion: %w", err)
	}
	if err := r.redis.Set(ctx, suggestionKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save suggestion to Redis: %w", err)
	}
	return nil
}

func (r *RedisSuggestionStore) Get(ctx context.Context, id string) (*Suggestion, error) {
	data, err := r.redis.Get(ctx, suggestionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion from Redis: %w", err)
	}

	var s Suggestion
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestion: %w", err)
	}
	return &s, nil
}

// MemorySuggestionStore is the single-process store used when Redis is not
// configured.
type MemorySuggestionStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryEntry
	now   func() time.Time
}

type memoryEntry struct {
	s       *Suggestion
	expires time.Time
}

func NewMemorySuggestionStore(ttl time.Duration) *MemorySuggestionStore {
	return &MemorySuggestionStore{
		ttl:   ttl,
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (m *MemorySuggestionStore) Put(_ context.Context, s *Suggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, e := range m.items {
		if now.After(e.expires) {
			delete(m.items, id)
		}
	}
	m.items[s.ID] = memoryEntry{s: s, expires: now.Add(m.ttl)}
	return nil
}

func (m *MemorySuggestionStore) Get(_ context.Context, id string) (*Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[id]
	if !ok || m.now().After(e.expires) {
		return nil, ErrNotFound
	}
	return e.s, nil
}
