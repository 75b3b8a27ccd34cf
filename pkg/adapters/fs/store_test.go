package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timedpad/pkg/adapters/fs"
	"github.com/aretw0/timedpad/pkg/core"
	"github.com/aretw0/timedpad/pkg/notepad"
)

// setupStore creates an initialized store in a fresh temp directory.
func setupStore(t *testing.T, opts ...func(*fs.Config)) (*fs.Store, string) {
	t.Helper()

	dataPath := filepath.Join(t.TempDir(), "data")
	cfg := fs.Config{Path: dataPath}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := fs.NewStore(cfg)
	return store, dataPath
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Directory if Missing", func(t *testing.T) {
		store, path := setupStore(t)
		require.NoError(t, store.Initialize(context.Background()))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		store, _ := setupStore(t, func(c *fs.Config) { c.MustExist = true })
		assert.Error(t, store.Initialize(context.Background()))
	})

	t.Run("Fails if Path is a File", func(t *testing.T) {
		store, path := setupStore(t, func(c *fs.Config) { c.MustExist = true })
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		assert.Error(t, store.Initialize(context.Background()))
	})
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	store, path := setupStore(t)
	require.NoError(t, store.Initialize(ctx))

	_, ok, err := store.Load(ctx, "notes")
	require.NoError(t, err)
	assert.False(t, ok, "absent key")

	require.NoError(t, store.Save(ctx, "notes", `[1]`))
	require.NoError(t, store.Save(ctx, "notes", `[2]`))

	value, ok, err := store.Load(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[2]`, value)

	raw, err := os.ReadFile(filepath.Join(path, "notes.json"))
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(raw))

	state := store.State().(fs.StoreState)
	assert.Equal(t, 3, state.LastWriteSize)
	assert.NotNil(t, state.LastWrite)
	assert.Equal(t, "fs", store.ComponentType())
}

func TestCustomExtension(t *testing.T) {
	ctx := context.Background()
	store, path := setupStore(t, func(c *fs.Config) { c.Ext = "yaml" })
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Save(ctx, "notes", "- id: a\n"))

	_, err := os.Stat(filepath.Join(path, "notes.yaml"))
	assert.NoError(t, err)
}

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	writable, path := setupStore(t)
	require.NoError(t, writable.Initialize(ctx))
	require.NoError(t, writable.Save(ctx, "notes", "seed"))

	ro := fs.NewStore(fs.Config{Path: path, ReadOnly: true})
	require.NoError(t, ro.Initialize(ctx))

	value, ok, err := ro.Load(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "seed", value)

	assert.ErrorIs(t, ro.Save(ctx, "notes", "other"), core.ErrReadOnly)
}

func TestInvalidKeys(t *testing.T) {
	store, _ := setupStore(t)
	for _, key := range []string{"", "../escape", "a/b", `a\b`, "..", fs.TempFilePrefix + "x"} {
		_, err := store.FilePath(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestNotepadOverFS(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)
	require.NoError(t, store.Initialize(ctx))

	pad, err := notepad.Open(ctx, store)
	require.NoError(t, err)
	require.NoError(t, pad.SetLineContent(ctx, pad.ActiveNoteID(), 0, "persisted"))
	pad.CreateNote(ctx)

	again, err := notepad.Open(ctx, store)
	require.NoError(t, err)
	assert.True(t, again.Restored())
	assert.Equal(t, pad.Notes(), again.Notes())
	assert.Equal(t, "persisted", again.Lines()[0].Content)
}
