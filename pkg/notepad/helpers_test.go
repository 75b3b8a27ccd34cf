package notepad_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/timedpad/pkg/core"
	"github.com/aretw0/timedpad/pkg/notepad"
)

// memStore is an in-memory core.KeyValueStore that records writes.
type memStore struct {
	mu      sync.Mutex
	data    map[string]string
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Load(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return "", false, m.loadErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Save(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = value
	m.saves++
	return nil
}

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var errBoom = errors.New("boom")

// fixedClock returns the same instant on every call.
var fixedClock = core.ClockFunc(func() time.Time {
	return time.Date(2025, time.March, 4, 14, 5, 9, 0, time.UTC)
})

// seqIDs issues "id-1", "id-2", ...
func seqIDs() core.IDGenerator {
	var mu sync.Mutex
	n := 0
	return core.IDGeneratorFunc(func() core.ID {
		mu.Lock()
		defer mu.Unlock()
		n++
		return core.ID(fmt.Sprintf("id-%d", n))
	})
}

func openPad(t *testing.T, store core.KeyValueStore, opts ...notepad.Option) *notepad.Notepad {
	t.Helper()
	base := []notepad.Option{
		notepad.WithClock(fixedClock),
		notepad.WithIDGenerator(seqIDs()),
	}
	p, err := notepad.Open(context.Background(), store, append(base, opts...)...)
	require.NoError(t, err)
	return p
}

// assertInvariants checks the properties every reachable state must hold.
func assertInvariants(t *testing.T, p *notepad.Notepad) {
	t.Helper()
	notes := p.Notes()
	require.NotEmpty(t, notes, "notes must never be empty")

	found := false
	for _, n := range notes {
		require.NotEmpty(t, n.Lines, "note %s has no lines", n.ID)
		if n.ID == p.ActiveNoteID() {
			found = true
		}
	}
	require.True(t, found, "active note %s does not exist", p.ActiveNoteID())

	if editing := p.EditingNoteID(); !editing.IsZero() {
		_, err := p.Note(editing)
		require.NoError(t, err, "editing note must exist")
	}
}
