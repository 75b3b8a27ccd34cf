package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/timedpad/pkg/adapters/fs"
	"github.com/aretw0/timedpad/pkg/core"
)

func waitEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "events channel closed early")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

func TestWatch(t *testing.T) {
	store, path := setupStore(t, func(c *fs.Config) { c.Debounce = 20 * time.Millisecond })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Initialize(ctx))

	events, err := store.Watch(ctx, "notes")
	require.NoError(t, err)

	t.Run("Save Emits Single Modify", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "notes", "[]"))
		e := waitEvent(t, events)
		assert.Equal(t, core.EventModify, e.Type)
		assert.Equal(t, "notes", e.Key)

		select {
		case extra := <-events:
			t.Errorf("expected burst to be coalesced, got extra event %v", extra)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("Other Files Are Ignored", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(path, "other.json"), []byte("x"), 0o644))
		select {
		case e := <-events:
			t.Errorf("unexpected event %v", e)
		case <-time.After(150 * time.Millisecond):
		}
	})

	t.Run("Remove Emits Delete", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(path, "notes.json")))
		e := waitEvent(t, events)
		assert.Equal(t, core.EventDelete, e.Type)
	})

	assert.Equal(t, 1, store.State().(fs.StoreState).Watchers)

	cancel()
	for range events {
	}
	assert.Eventually(t, func() bool {
		return store.State().(fs.StoreState).Watchers == 0
	}, time.Second, 10*time.Millisecond)
}

func TestWatch_CancelledContext(t *testing.T) {
	store, _ := setupStore(t)
	require.NoError(t, store.Initialize(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.Watch(ctx, "notes")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatch_StopsCleanly(t *testing.T) {
	store, _ := setupStore(t)
	require.NoError(t, store.Initialize(context.Background()))

	watchOnce := func() {
		ctx, cancel := context.WithCancel(context.Background())
		events, err := store.Watch(ctx, "notes")
		require.NoError(t, err)
		cancel()
		for range events {
		}
	}

	// First run lets any package-level goroutines start before the baseline.
	watchOnce()
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	watchOnce()
}
