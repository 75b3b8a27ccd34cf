// Package redis stores snapshots as plain Redis string values.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aretw0/timedpad/pkg/core"
)

// Client is the subset of *redis.Client the store needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Store implements core.KeyValueStore on top of a Redis client.
type Store struct {
	client Client
	prefix string
	closer func() error
}

// New wraps an existing client. Keys are stored as prefix+key.
func New(client Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Open dials the server described by a redis:// URL. A bare host:port is
// accepted as well.
func Open(url, prefix string) (*Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	s := New(rdb, prefix)
	s.closer = rdb.Close
	return s, nil
}

// Initialize checks that the server is reachable.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}

// Load returns the snapshot stored under key.
func (s *Store) Load(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: get %q: %w", key, err)
	}
	return value, true, nil
}

// Save overwrites the snapshot stored under key. Values never expire.
func (s *Store) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection pool when the store owns it.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "redis"
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return map[string]any{"prefix": s.prefix}
}

var _ core.KeyValueStore = (*Store)(nil)
