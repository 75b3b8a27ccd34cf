package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/timedpad/pkg/core"
	"github.com/aretw0/timedpad/pkg/notepad"
)

// options holds the internal configuration for a timedpad session.
type options struct {
	store   core.KeyValueStore
	logger  *slog.Logger
	adapter string
	format  string
	notepad []notepad.Option
	config  map[string]interface{}
}

// Option defines a functional option for configuring a session.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterFS,
		format:  "json",
		config:  make(map[string]interface{}),
	}
}

// WithLogger sets the logger shared by the store and the notepad.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a ready-made store (e.g. a test fake).
// If provided, the adapter selection is skipped.
func WithStore(store core.KeyValueStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name (fs, bolt, redis, couchdb, memory).
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithFormat selects the snapshot encoding ("json" or "yaml").
func WithFormat(format string) Option {
	return func(o *options) {
		if format != "" {
			o.format = format
		}
	}
}

// WithKey sets the key the snapshot is stored under.
func WithKey(key string) Option {
	return func(o *options) {
		o.notepad = append(o.notepad, notepad.WithKey(key))
	}
}

// WithClock sets the clock used to stamp new lines.
func WithClock(c core.Clock) Option {
	return func(o *options) {
		o.notepad = append(o.notepad, notepad.WithClock(c))
	}
}

// WithIDGenerator sets the generator for note and line identifiers.
func WithIDGenerator(g core.IDGenerator) Option {
	return func(o *options) {
		o.notepad = append(o.notepad, notepad.WithIDGenerator(g))
	}
}

// WithLayouts sets the time and date layouts of new lines.
func WithLayouts(timeLayout, dateLayout string) Option {
	return func(o *options) {
		o.notepad = append(o.notepad, notepad.WithLayouts(timeLayout, dateLayout))
	}
}

// WithSaveErrorHandler registers a callback for write-through failures.
func WithSaveErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.notepad = append(o.notepad, notepad.WithSaveErrorHandler(fn))
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode.
// Saves fail with core.ErrReadOnly, the data directory is never created and
// the dev sandbox is bypassed.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) file-based adapters are re-rooted into a temporary directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside the
// fs watch loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithWatchDebounce sets how long the fs watcher coalesces event bursts.
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) {
		o.config["debounce"] = d
	}
}

// WithRedisPrefix prefixes every redis key.
func WithRedisPrefix(prefix string) Option {
	return func(o *options) {
		o.config["redis_prefix"] = prefix
	}
}

// WithCouchDatabase names the CouchDB database. Defaults to "timedpad".
func WithCouchDatabase(name string) Option {
	return func(o *options) {
		o.config["couch_db"] = name
	}
}
