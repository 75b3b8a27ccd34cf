// Package core holds the domain model of timedpad and the ports its
// persistence adapters implement.
package core

import "time"

// Line is a single timestamped block of free text within a Note.
// Timestamp and Date are display strings captured when the line is created
// and never change afterwards. Only Content is edited.
type Line struct {
	ID        ID     `json:"id" yaml:"id"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Date      string `json:"date" yaml:"date"`
	Content   string `json:"content" yaml:"content"`
}

// Note is a titled, ordered collection of lines.
// A Note always holds at least one Line.
type Note struct {
	ID    ID     `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Lines []Line `json:"lines" yaml:"lines"`
}

// Clone returns a deep copy of the note.
func (n Note) Clone() Note {
	lines := make([]Line, len(n.Lines))
	copy(lines, n.Lines)
	n.Lines = lines
	return n
}

// CloneNotes deep-copies a note sequence.
func CloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

// EventType represents the type of change observed on a stored snapshot.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of the value stored under Key.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}

// Clock abstracts the wall clock so line stamps are reproducible in tests.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads time.Now.
var SystemClock Clock = ClockFunc(time.Now)
