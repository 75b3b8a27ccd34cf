package notepad

import (
	"context"
	"fmt"

	"github.com/aretw0/timedpad/pkg/core"
)

// InsertLineAfter inserts a new empty line, stamped with the current time,
// right after position index. It returns the new line's position so the
// caller can move focus there.
func (p *Notepad) InsertLineAfter(ctx context.Context, noteID core.ID, index int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, err := p.lineTarget(noteID, index)
	if err != nil {
		return -1, err
	}

	at := index + 1
	lines := make([]core.Line, 0, len(n.Lines)+1)
	lines = append(lines, n.Lines[:at]...)
	lines = append(lines, p.newLine())
	lines = append(lines, n.Lines[at:]...)
	n.Lines = lines

	p.persist(ctx)
	return at, nil
}

// DeleteLineAt removes the line at index unless it is the only line of the
// note. It returns the position that should receive focus (the preceding
// line, or 0 when the first line was removed) and whether a line was removed.
// Rejection is silent: (-1, false, nil).
func (p *Notepad) DeleteLineAt(ctx context.Context, noteID core.ID, index int) (int, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, err := p.lineTarget(noteID, index)
	if err != nil {
		return -1, false, err
	}
	if len(n.Lines) <= 1 {
		p.log.Debug("refusing to delete the last line", "note", noteID)
		return -1, false, nil
	}

	lines := make([]core.Line, 0, len(n.Lines)-1)
	lines = append(lines, n.Lines[:index]...)
	lines = append(lines, n.Lines[index+1:]...)
	n.Lines = lines

	p.persist(ctx)
	return max(index-1, 0), true, nil
}

// SetLineContent replaces the content of one line. Id, timestamp and date
// are left untouched.
func (p *Notepad) SetLineContent(ctx context.Context, noteID core.ID, index int, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, err := p.lineTarget(noteID, index)
	if err != nil {
		return err
	}
	n.Lines[index].Content = content

	p.persist(ctx)
	return nil
}

// lineTarget resolves the note and validates index against its lines.
func (p *Notepad) lineTarget(noteID core.ID, index int) (*core.Note, error) {
	i := p.indexOf(noteID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrNoteNotFound, noteID)
	}
	n := &p.notes[i]
	if index < 0 || index >= len(n.Lines) {
		return nil, fmt.Errorf("%w: %d (note has %d lines)", core.ErrLineOutOfRange, index, len(n.Lines))
	}
	return n, nil
}
