package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/timedpad/pkg/core"
)

// Watch reports changes of the file backing key made by any process.
// Bursts of events (temp file write + rename) are coalesced into one Event.
// The returned channel is closed once ctx is done.
func (s *Store) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.FilePath(key)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Atomic writes replace the file, so the directory is watched instead.
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	out := make(chan core.Event, 16)
	s.setWatching(1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer s.setWatching(-1)
		defer watcher.Close()
		return s.watchLoop(ctx, watcher, key, filepath.Base(path), out)
	}, lifecycle.WithErrorHandler(func(err error) {
		s.config.Logger.Error("watcher stopped", "error", err)
		if s.config.ErrorHandler != nil {
			s.config.ErrorHandler(err)
		}
	}))

	return out, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, key, name string, out chan<- core.Event) error {
	timer := time.NewTimer(s.config.Debounce)
	timer.Stop()
	defer timer.Stop()

	var pending core.EventType

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			eType := mapEventType(event)
			if eType == "" {
				continue
			}
			s.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			pending = eType
			timer.Reset(s.config.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			s.config.Logger.Error("fsnotify error", "error", err)
			if s.config.ErrorHandler != nil {
				s.config.ErrorHandler(err)
			}

		case <-timer.C:
			if pending == "" {
				continue
			}
			e := core.Event{Type: pending, Key: key, Timestamp: time.Now().Unix()}
			pending = ""
			select {
			case out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}
