package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/timedpad"
	"github.com/aretw0/timedpad/internal/platform"
	"github.com/aretw0/timedpad/pkg/core"
)

// session is the resolved configuration of one CLI invocation.
type session struct {
	dir     string
	cfg     timedpad.Config
	uri     string
	saveErr error
}

// loadSession merges config file, environment and flags. Flags win.
func loadSession() *session {
	dir := dataDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}
		dir = cwd
		if root, err := timedpad.FindRoot(cwd); err == nil {
			dir = root
		}
	}

	cfg, err := timedpad.LoadConfig(dir, configPath)
	if err != nil {
		fatal("Failed to load config", err)
	}
	if adapterName != "" {
		cfg.Adapter = adapterName
	}
	if storeURI != "" {
		cfg.URI = storeURI
	}
	if snapshotKey != "" {
		cfg.Key = snapshotKey
	}
	if format != "" {
		cfg.Format = format
	}
	if err := cfg.Validate(); err != nil {
		fatal("Invalid flags", err)
	}

	s := &session{dir: dir, cfg: cfg, uri: cfg.URI}
	if s.uri == "" {
		switch cfg.Adapter {
		case platform.AdapterRedis:
			s.uri = "redis://localhost:6379/0"
		case platform.AdapterCouchDB:
			s.uri = "http://localhost:5984"
		default:
			s.uri = dir
		}
	}
	return s
}

func (s *session) options(extra ...timedpad.Option) []timedpad.Option {
	opts := append(s.cfg.Options(),
		timedpad.WithLogger(slog.Default()),
		timedpad.WithSaveErrorHandler(func(err error) { s.saveErr = err }),
	)
	return append(opts, extra...)
}

func (s *session) key() string {
	if s.cfg.Key != "" {
		return s.cfg.Key
	}
	return timedpad.DefaultKey
}

// openPad opens the notepad for this invocation.
func openPad(ctx context.Context) (*timedpad.Notepad, *session) {
	s := loadSession()
	pad, err := timedpad.New(ctx, s.uri, s.options()...)
	if err != nil {
		fatal("Failed to open notes", err)
	}
	return pad, s
}

// mustSaved exits when the last mutation could not be persisted.
func (s *session) mustSaved() {
	if s.saveErr != nil {
		fatal("Failed to save notes", s.saveErr)
	}
}

var errAmbiguousNote = errors.New("ambiguous note reference")

// resolveNote finds a note by exact id, then exact title, then 1-based position.
// An empty ref means the active note.
func resolveNote(pad *timedpad.Notepad, ref string) (core.Note, error) {
	if ref == "" {
		return pad.ActiveNote(), nil
	}

	notes := pad.Notes()
	for _, n := range notes {
		if string(n.ID) == ref {
			return n, nil
		}
	}

	var byTitle []core.Note
	for _, n := range notes {
		if n.Title == ref {
			byTitle = append(byTitle, n)
		}
	}
	switch len(byTitle) {
	case 1:
		return byTitle[0], nil
	case 0:
	default:
		return core.Note{}, fmt.Errorf("%w: %d notes are titled %q, use the id", errAmbiguousNote, len(byTitle), ref)
	}

	if pos, err := strconv.Atoi(ref); err == nil && pos >= 1 && pos <= len(notes) {
		return notes[pos-1], nil
	}
	return core.Note{}, fmt.Errorf("%w: %q", core.ErrNoteNotFound, ref)
}

// parseLine converts a 1-based line number to an index.
func parseLine(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("line must be a positive number, got %q", arg)
	}
	return n - 1, nil
}
