package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timedpad/pkg/adapters/memory"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := memory.New(0)

	_, ok, err := s.Load(ctx, "notes")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "notes", "v"))
	v, ok, err := s.Load(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Error(t, s.Save(ctx, "", "v"))
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := memory.New(20 * time.Millisecond)
	require.NoError(t, s.Save(ctx, "notes", "v"))

	assert.Eventually(t, func() bool {
		_, ok, _ := s.Load(ctx, "notes")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
