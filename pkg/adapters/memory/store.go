// Package memory keeps snapshots in process memory. It backs tests and the
// --adapter=memory scratch mode of the CLI.
package memory

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/aretw0/timedpad/pkg/core"
)

// Store implements core.KeyValueStore on an in-memory cache.
// A zero TTL keeps values forever.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// New returns an empty store whose values expire after ttl.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := time.Duration(0)
	if ttl != cache.NoExpiration {
		cleanup = ttl
	}
	return &Store{cache: cache.New(ttl, cleanup), ttl: ttl}
}

// Load returns the snapshot stored under key.
func (s *Store) Load(_ context.Context, key string) (string, bool, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

// Save overwrites the snapshot stored under key.
func (s *Store) Save(_ context.Context, key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	s.cache.Set(key, value, cache.DefaultExpiration)
	return nil
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory"
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return map[string]any{"keys": s.cache.ItemCount()}
}

var _ core.KeyValueStore = (*Store)(nil)
