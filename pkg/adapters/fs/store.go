// Package fs stores snapshots as files in a data directory, one file per key.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/timedpad/pkg/core"
)

// Store implements core.KeyValueStore on the local filesystem.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watchers      int
	lastWrite     *time.Time
	lastWriteSize int
}

// Config holds the configuration for the filesystem store.
type Config struct {
	Path      string
	Ext       string // appended to the key to form the file name, e.g. ".json"
	MustExist bool   // fail Initialize instead of creating Path
	ReadOnly  bool   // Save returns core.ErrReadOnly
	Perm      os.FileMode
	Logger    *slog.Logger

	// Debounce coalesces bursts of filesystem events in Watch. Zero means 50ms.
	Debounce time.Duration
	// ErrorHandler receives watcher runtime errors, which are otherwise only logged.
	ErrorHandler func(error)
}

// NewStore creates a filesystem store rooted at config.Path.
func NewStore(config Config) *Store {
	if config.Ext == "" {
		config.Ext = ".json"
	} else if !strings.HasPrefix(config.Ext, ".") {
		config.Ext = "." + config.Ext
	}
	if config.Perm == 0 {
		config.Perm = 0o644
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Store{Path: config.Path, config: config}
}

// Initialize makes sure the data directory exists.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Load reads the file backing key.
func (s *Store) Load(ctx context.Context, key string) (string, bool, error) {
	path, err := s.FilePath(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return string(data), true, nil
}

// Save atomically replaces the file backing key.
func (s *Store) Save(ctx context.Context, key, value string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.FilePath(key)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, []byte(value), s.config.Perm); err != nil {
		return err
	}

	now := time.Now()
	s.mu.Lock()
	s.lastWrite = &now
	s.lastWriteSize = len(value)
	s.mu.Unlock()

	s.config.Logger.Debug("snapshot written", "path", path, "bytes", len(value))
	return nil
}

// FilePath returns the file that backs key.
// Keys must be plain file names: no separators, no parent references.
func (s *Store) FilePath(key string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." || strings.HasPrefix(key, TempFilePrefix) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.Path, key+s.config.Ext), nil
}
