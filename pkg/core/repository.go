package core

import "context"

// KeyValueStore is the persistence port of the note store.
// A snapshot is a single string value under a single key; every mutation
// overwrites it entirely.
type KeyValueStore interface {
	// Load returns the value stored under key. ok is false when the key is absent.
	Load(ctx context.Context, key string) (value string, ok bool, err error)

	// Save overwrites the value stored under key.
	Save(ctx context.Context, key, value string) error
}

// Initializer is implemented by stores that need setup before first use
// (create directories, buckets, databases).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Watchable is implemented by stores that can report external changes of a key.
type Watchable interface {
	// Watch emits an Event every time the value under key changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, key string) (<-chan Event, error)
}
