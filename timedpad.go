package timedpad

import (
	"context"
	"log/slog"

	"github.com/aretw0/timedpad/internal/platform"
	"github.com/aretw0/timedpad/pkg/core"
	"github.com/aretw0/timedpad/pkg/notepad"
)

// DefaultKey is the key notes are stored under unless WithKey says otherwise.
const DefaultKey = notepad.DefaultKey

// --- Types ---

// Notepad is the note store.
type Notepad = notepad.Notepad

// Note is a titled list of timed lines.
type Note = core.Note

// Line is a single stamped line of a note.
type Line = core.Line

// Config is the file/env session configuration.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring a session.
type Option = platform.Option

// WithLogger sets the logger shared by the store and the notepad.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithAdapter selects the storage adapter by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStore injects a custom store.
func WithStore(store core.KeyValueStore) Option {
	return platform.WithStore(store)
}

// WithFormat selects the snapshot encoding ("json" or "yaml").
func WithFormat(format string) Option {
	return platform.WithFormat(format)
}

// WithKey sets the key the snapshot is stored under.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithSaveErrorHandler registers a callback for write-through failures.
func WithSaveErrorHandler(fn func(error)) Option {
	return platform.WithSaveErrorHandler(fn)
}

// --- Factory ---

// New opens a notepad. See platform.New for the meaning of uri per adapter.
func New(ctx context.Context, uri string, opts ...Option) (*Notepad, error) {
	return platform.New(ctx, uri, opts...)
}

// OpenStore builds and initializes a store without loading any snapshot.
func OpenStore(ctx context.Context, uri string, opts ...Option) (core.KeyValueStore, error) {
	return platform.OpenStore(ctx, uri, opts...)
}

// LoadConfig reads .env, timedpad.yaml/.toml and TIMEDPAD_* overrides.
func LoadConfig(dir, path string) (Config, error) {
	return platform.LoadConfig(dir, path)
}

// --- Safety & Utils ---

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a directory holding timedpad.yaml, timedpad.toml or .timedpad.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
