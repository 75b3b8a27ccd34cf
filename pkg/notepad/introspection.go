package notepad

import (
	"time"

	"github.com/aretw0/introspection"
)

// State exposes internal state for observability.
type State struct {
	Key           string     `json:"key"`
	Codec         string     `json:"codec"`
	StoreType     string     `json:"store_type"`
	Notes         int        `json:"notes"`
	Lines         int        `json:"lines"`
	ActiveNoteID  string     `json:"active_note_id"`
	EditingNoteID string     `json:"editing_note_id,omitempty"`
	Restored      bool       `json:"restored"`
	Saves         int        `json:"saves"`
	LastSavedAt   *time.Time `json:"last_saved_at,omitempty"`
	LastSaveError string     `json:"last_save_error,omitempty"`
}

// State implements introspection.Introspectable.
func (p *Notepad) State() any {
	p.mu.Lock()
	defer p.mu.Unlock()

	storeType := "store"
	if comp, ok := p.store.(introspection.Component); ok {
		storeType = comp.ComponentType()
	}

	lines := 0
	for _, n := range p.notes {
		lines += len(n.Lines)
	}

	s := State{
		Key:           p.opts.key,
		Codec:         p.opts.codec.Name(),
		StoreType:     storeType,
		Notes:         len(p.notes),
		Lines:         lines,
		ActiveNoteID:  string(p.activeID),
		EditingNoteID: string(p.editingID),
		Restored:      p.restored,
		Saves:         p.saves,
		LastSavedAt:   p.lastSavedAt,
	}
	if p.lastSaveError != nil {
		s.LastSaveError = p.lastSaveError.Error()
	}
	return s
}

// ComponentType implements introspection.Component.
func (p *Notepad) ComponentType() string {
	return "notepad"
}

var _ introspection.Introspectable = (*Notepad)(nil)
var _ introspection.Component = (*Notepad)(nil)
