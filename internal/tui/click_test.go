package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickTracker(t *testing.T) {
	c := newClickTracker(10 * time.Millisecond)

	cmd, double := c.click("a")
	require.NotNil(t, cmd)
	assert.False(t, double)

	msg, ok := cmd().(clickFiredMsg)
	require.True(t, ok)
	assert.Equal(t, clickFiredMsg{id: "a", seq: 1}, msg)
	assert.True(t, c.fire(msg))
	assert.False(t, c.fire(msg), "fires once")
}

func TestClickTracker_DoubleCancels(t *testing.T) {
	c := newClickTracker(0)
	assert.Equal(t, DefaultClickDelay, c.delay)

	_, _ = c.click("a")
	cmd, double := c.click("a")
	assert.Nil(t, cmd)
	assert.True(t, double)
	assert.False(t, c.fire(clickFiredMsg{id: "a", seq: 1}))

	// A third click starts a fresh sequence.
	_, double = c.click("a")
	assert.False(t, double)
	assert.True(t, c.fire(clickFiredMsg{id: "a", seq: 2}))
}

func TestClickTracker_IndependentTabs(t *testing.T) {
	c := newClickTracker(0)
	_, _ = c.click("a")
	_, double := c.click("b")
	assert.False(t, double)

	c.forget("a")
	assert.False(t, c.fire(clickFiredMsg{id: "a", seq: 1}))
	assert.True(t, c.fire(clickFiredMsg{id: "b", seq: 2}))
}
