package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timedpad"
	"github.com/aretw0/timedpad/pkg/core"
)

func TestResolveNote(t *testing.T) {
	ctx := context.Background()
	pad, err := timedpad.New(ctx, "", timedpad.WithAdapter("memory"))
	require.NoError(t, err)

	second := pad.CreateNote(ctx)
	third := pad.CreateNote(ctx)
	require.NoError(t, pad.CommitRename(ctx, third.ID, "2"))
	first := pad.Notes()[0]

	tests := []struct {
		name string
		ref  string
		want core.ID
	}{
		{"empty is active", "", third.ID},
		{"by id", string(second.ID), second.ID},
		{"by title", "Note 1", first.ID},
		{"title beats position", "2", third.ID},
		{"by position", "1", first.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveNote(pad, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ID)
		})
	}

	_, err = resolveNote(pad, "9")
	assert.ErrorIs(t, err, core.ErrNoteNotFound)

	require.NoError(t, pad.CommitRename(ctx, second.ID, "Note 1"))
	_, err = resolveNote(pad, "Note 1")
	assert.ErrorIs(t, err, errAmbiguousNote)
}

func TestParseLine(t *testing.T) {
	idx, err := parseLine(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	for _, bad := range []string{"0", "-1", "x", ""} {
		_, err := parseLine(bad)
		assert.Error(t, err, bad)
	}
}

func TestConfirm(t *testing.T) {
	assumeYes = false
	assert.True(t, confirm(strings.NewReader("y\n"), "ok?"))
	assert.True(t, confirm(strings.NewReader("YES\n"), "ok?"))
	assert.False(t, confirm(strings.NewReader("\n"), "ok?"))
	assert.False(t, confirm(strings.NewReader(""), "ok?"))

	assumeYes = true
	defer func() { assumeYes = false }()
	assert.True(t, confirm(strings.NewReader(""), "ok?"))
}
