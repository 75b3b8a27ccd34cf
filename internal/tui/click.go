package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/timedpad/pkg/core"
)

// DefaultClickDelay is how long a tab click waits for a second click.
const DefaultClickDelay = 300 * time.Millisecond

// clickFiredMsg is delivered when a pending single click on a tab expires.
type clickFiredMsg struct {
	id  core.ID
	seq int
}

// clickTracker tells single clicks from double clicks on note tabs.
// It lives inside the bubbletea model, so it is only touched from Update.
type clickTracker struct {
	delay   time.Duration
	seq     int
	pending map[core.ID]int
}

func newClickTracker(delay time.Duration) *clickTracker {
	if delay <= 0 {
		delay = DefaultClickDelay
	}
	return &clickTracker{delay: delay, pending: make(map[core.ID]int)}
}

// click registers a press on tab id. The first press schedules a fire
// message; a second press while that is pending cancels it and reports a
// double click instead.
func (c *clickTracker) click(id core.ID) (tea.Cmd, bool) {
	if _, ok := c.pending[id]; ok {
		delete(c.pending, id)
		return nil, true
	}

	c.seq++
	seq := c.seq
	c.pending[id] = seq
	return tea.Tick(c.delay, func(time.Time) tea.Msg {
		return clickFiredMsg{id: id, seq: seq}
	}), false
}

// fire reports whether msg is still the pending click for its tab.
// Stale messages (cancelled or superseded) return false.
func (c *clickTracker) fire(msg clickFiredMsg) bool {
	seq, ok := c.pending[msg.id]
	if !ok || seq != msg.seq {
		return false
	}
	delete(c.pending, msg.id)
	return true
}

// forget drops pending clicks for a tab that no longer exists.
func (c *clickTracker) forget(id core.ID) {
	delete(c.pending, id)
}
