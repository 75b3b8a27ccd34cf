// Package snapshot encodes the notes collection into the single string value
// kept by a core.KeyValueStore.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/timedpad/pkg/core"
)

// ErrMalformed is returned by Decode when the value cannot be parsed or
// describes a collection that breaks the store invariants.
var ErrMalformed = errors.New("malformed snapshot")

// Codec defines how a notes collection is written to and read from a string.
type Codec interface {
	// Name identifies the codec ("json", "yaml").
	Name() string
	// Ext is the file extension used by file based stores (".json").
	Ext() string
	// Encode converts the notes to their stored representation.
	Encode(notes []core.Note) (string, error)
	// Decode parses a stored value and validates it.
	Decode(value string) ([]core.Note, error)
}

// Default is the codec used when none is configured. Its output is the bare
// JSON array the browser widget kept in localStorage.
var Default Codec = JSON{}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unknown snapshot format: %s", name)
	}
}

// --- JSON ---

// JSON stores the snapshot as a compact JSON array.
type JSON struct{}

func (JSON) Name() string { return "json" }
func (JSON) Ext() string  { return ".json" }

func (JSON) Encode(notes []core.Note) (string, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return string(data), nil
}

func (JSON) Decode(value string) ([]core.Note, error) {
	var notes []core.Note
	decoder := json.NewDecoder(bytes.NewReader([]byte(value)))
	if err := decoder.Decode(&notes); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrMalformed, err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after json array", ErrMalformed)
	}
	if err := Validate(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// --- YAML ---

// YAML stores the snapshot as a YAML sequence. It is friendlier to edit by
// hand and to diff in version control.
type YAML struct{}

func (YAML) Name() string { return "yaml" }
func (YAML) Ext() string  { return ".yaml" }

func (YAML) Encode(notes []core.Note) (string, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(notes); err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.String(), nil
}

func (YAML) Decode(value string) ([]core.Note, error) {
	var notes []core.Note
	if err := yaml.Unmarshal([]byte(value), &notes); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %v", ErrMalformed, err)
	}
	if err := Validate(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// --- Helpers ---

// Validate checks the invariants a loaded collection must satisfy:
// at least one note, and at least one line in every note.
func Validate(notes []core.Note) error {
	if len(notes) == 0 {
		return fmt.Errorf("%w: no notes", ErrMalformed)
	}
	for i, n := range notes {
		if len(n.Lines) == 0 {
			return fmt.Errorf("%w: note %d (%q) has no lines", ErrMalformed, i, n.ID)
		}
	}
	return nil
}
