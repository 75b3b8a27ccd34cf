package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timedpad/pkg/adapters/bolt"
	"github.com/aretw0/timedpad/pkg/notepad"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "timedpad.db")

	store, err := bolt.Open(path)
	require.NoError(t, err)

	_, ok, err := store.Load(ctx, "notes")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "notes", "v1"))
	require.NoError(t, store.Save(ctx, "notes", "v2"))
	require.Error(t, store.Save(ctx, "", "v"))
	require.NoError(t, store.Close())

	reopened, err := bolt.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Load(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := bolt.Open("  ")
	assert.Error(t, err)
}

func TestNotepadOverBolt(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "timedpad.db")

	store, err := bolt.Open(path)
	require.NoError(t, err)
	pad, err := notepad.Open(ctx, store)
	require.NoError(t, err)
	second := pad.CreateNote(ctx)
	require.NoError(t, pad.CommitRename(ctx, second.ID, "Ideas"))
	want := pad.Notes()
	require.NoError(t, pad.Close())

	store, err = bolt.Open(path)
	require.NoError(t, err)
	again, err := notepad.Open(ctx, store)
	require.NoError(t, err)
	defer again.Close()

	assert.Equal(t, want, again.Notes())
	assert.Equal(t, "bolt", again.State().(notepad.State).StoreType)
}
