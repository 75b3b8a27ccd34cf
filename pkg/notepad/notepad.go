// Package notepad implements the note store: the collection of notes, the
// active and renaming selections, and the line editing operations.
//
// A Notepad is rehydrated from a core.KeyValueStore when opened and writes the
// full snapshot back after every mutation of the notes collection. Selection
// changes (active note, rename mode) are not persisted.
package notepad

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/timedpad/pkg/core"
)

// Notepad owns the notes collection.
type Notepad struct {
	mu    sync.Mutex
	store core.KeyValueStore
	opts  *options
	log   *slog.Logger

	notes     []core.Note
	activeID  core.ID
	editingID core.ID

	saves         int
	lastSaveError error
	lastSavedAt   *time.Time
	restored      bool
}

// Open loads the snapshot from store, or builds a fresh notepad holding a
// single empty "Note 1" when the snapshot is absent or malformed.
// Opening never writes to the store.
func Open(ctx context.Context, store core.KeyValueStore, opts ...Option) (*Notepad, error) {
	if store == nil {
		return nil, errors.New("notepad: store is required")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := &Notepad{
		store: store,
		opts:  o,
		log:   logger.With("component", "notepad", "key", o.key),
	}

	value, ok, err := store.Load(ctx, o.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if ok {
		notes, err := o.codec.Decode(value)
		if err == nil {
			p.notes = notes
			p.activeID = notes[0].ID
			p.restored = true
			p.log.Debug("snapshot restored", "notes", len(notes))
			return p, nil
		}
		p.log.Warn("failed to parse saved notes, starting fresh", "error", err)
	}

	first := core.Note{
		ID:    o.ids.NewID(),
		Title: "Note 1",
		Lines: []core.Line{p.newLine()},
	}
	p.notes = []core.Note{first}
	p.activeID = first.ID
	return p, nil
}

// Restored reports whether the notes came from a stored snapshot.
func (p *Notepad) Restored() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.restored
}

// Close releases the underlying store when it holds resources.
func (p *Notepad) Close() error {
	if c, ok := p.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// --- Queries ---

// Notes returns a copy of every note in order.
func (p *Notepad) Notes() []core.Note {
	p.mu.Lock()
	defer p.mu.Unlock()
	return core.CloneNotes(p.notes)
}

// Len returns the number of notes.
func (p *Notepad) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.notes)
}

// Note returns a copy of the note with the given id.
func (p *Notepad) Note(id core.ID) (core.Note, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(id)
	if i < 0 {
		return core.Note{}, fmt.Errorf("%w: %s", core.ErrNoteNotFound, id)
	}
	return p.notes[i].Clone(), nil
}

// ActiveNoteID returns the id of the note selected for editing.
func (p *Notepad) ActiveNoteID() core.ID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeID
}

// ActiveNote returns the active note, falling back to the first note.
func (p *Notepad) ActiveNote() core.Note {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active().Clone()
}

// Lines returns the lines of the active note.
func (p *Notepad) Lines() []core.Line {
	return p.ActiveNote().Lines
}

// EditingNoteID returns the note being renamed, or the zero ID.
func (p *Notepad) EditingNoteID() core.ID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editingID
}

// --- Note operations ---

// SelectNote makes the note with the given id active.
func (p *Notepad) SelectNote(id core.ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.indexOf(id) < 0 {
		return fmt.Errorf("select: %w: %s", core.ErrNoteNotFound, id)
	}
	p.activeID = id
	return nil
}

// BeginRename puts the note in title-rename mode. Only one note is renamed at a time.
func (p *Notepad) BeginRename(id core.ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.indexOf(id) < 0 {
		return fmt.Errorf("rename: %w: %s", core.ErrNoteNotFound, id)
	}
	p.editingID = id
	return nil
}

// CommitRename sets the note title and leaves rename mode.
// Blank and duplicate titles are accepted as-is.
func (p *Notepad) CommitRename(ctx context.Context, id core.ID, title string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(id)
	if i < 0 {
		return fmt.Errorf("rename: %w: %s", core.ErrNoteNotFound, id)
	}
	p.notes[i].Title = title
	p.editingID = ""
	p.persist(ctx)
	return nil
}

// CancelRename leaves rename mode without touching any title.
func (p *Notepad) CancelRename() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editingID = ""
}

// CreateNote appends "Note <n+1>" with one empty line and makes it active.
// Generated titles may repeat after deletions.
func (p *Notepad) CreateNote(ctx context.Context) core.Note {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := core.Note{
		ID:    p.opts.ids.NewID(),
		Title: "Note " + strconv.Itoa(len(p.notes)+1),
		Lines: []core.Line{p.newLine()},
	}
	p.notes = append(p.notes, n)
	p.activeID = n.ID
	p.persist(ctx)
	return n.Clone()
}

// DeleteNote removes a note. The last remaining note cannot be deleted.
func (p *Notepad) DeleteNote(ctx context.Context, id core.ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.notes) <= 1 {
		return fmt.Errorf("%w: must keep at least one note", core.ErrInvariantViolation)
	}
	i := p.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete: %w: %s", core.ErrNoteNotFound, id)
	}

	p.notes = append(p.notes[:i:i], p.notes[i+1:]...)
	if p.activeID == id {
		p.activeID = p.notes[0].ID
	}
	if p.editingID == id {
		p.editingID = ""
	}
	p.persist(ctx)
	return nil
}

// ClearNote replaces every line of the note with a single empty line.
// Callers are expected to confirm with the user first.
func (p *Notepad) ClearNote(ctx context.Context, id core.ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(id)
	if i < 0 {
		return fmt.Errorf("clear: %w: %s", core.ErrNoteNotFound, id)
	}
	p.notes[i].Lines = []core.Line{p.newLine()}
	p.persist(ctx)
	return nil
}

// --- internals (callers hold p.mu) ---

func (p *Notepad) indexOf(id core.ID) int {
	for i := range p.notes {
		if p.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Notepad) active() core.Note {
	if i := p.indexOf(p.activeID); i >= 0 {
		return p.notes[i]
	}
	return p.notes[0]
}

func (p *Notepad) newLine() core.Line {
	now := p.opts.clock.Now()
	return core.Line{
		ID:        p.opts.ids.NewID(),
		Timestamp: now.Format(p.opts.timeLayout),
		Date:      now.Format(p.opts.dateLayout),
		Content:   "",
	}
}

// Flush writes the current snapshot and returns the save error, if any.
// It is how callers materialise a fresh notepad that was never mutated.
func (p *Notepad) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.save(ctx)
}

// Reload replaces the notes with the stored snapshot. The active note is kept
// when it still exists. It reports false, leaving the notes untouched, when
// the snapshot is absent or malformed.
func (p *Notepad) Reload(ctx context.Context) (bool, error) {
	value, ok, err := p.store.Load(ctx, p.opts.key)
	if err != nil {
		return false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if !ok {
		return false, nil
	}
	notes, err := p.opts.codec.Decode(value)
	if err != nil {
		p.log.Warn("ignoring malformed snapshot on reload", "error", err)
		return false, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes = notes
	p.restored = true
	if p.indexOf(p.activeID) < 0 {
		p.activeID = notes[0].ID
	}
	if p.indexOf(p.editingID) < 0 {
		p.editingID = ""
	}
	p.log.Debug("snapshot reloaded", "notes", len(notes))
	return true, nil
}

// persist writes the full snapshot. Failures are reported, never returned.
func (p *Notepad) persist(ctx context.Context) {
	if err := p.save(ctx); err != nil {
		p.log.Error("failed to save notes", "error", err)
		if p.opts.onSaveError != nil {
			p.opts.onSaveError(err)
		}
	}
}

func (p *Notepad) save(ctx context.Context) error {
	value, err := p.opts.codec.Encode(p.notes)
	if err == nil {
		err = p.store.Save(ctx, p.opts.key, value)
	}
	if err != nil {
		p.lastSaveError = err
		return err
	}

	now := p.opts.clock.Now()
	p.saves++
	p.lastSaveError = nil
	p.lastSavedAt = &now
	p.log.Debug("snapshot saved", "notes", len(p.notes), "bytes", len(value))
	return nil
}
