package notepad

import (
	"log/slog"

	"github.com/aretw0/timedpad/pkg/core"
	"github.com/aretw0/timedpad/pkg/snapshot"
)

const (
	// DefaultKey is the storage key the browser widget used in localStorage.
	DefaultKey = "timedNotepadNotes"

	// DefaultTimeLayout and DefaultDateLayout mirror the en-US
	// toLocaleTimeString / toLocaleDateString output.
	DefaultTimeLayout = "3:04:05 PM"
	DefaultDateLayout = "1/2/2006"
)

type options struct {
	key         string
	codec       snapshot.Codec
	clock       core.Clock
	ids         core.IDGenerator
	logger      *slog.Logger
	timeLayout  string
	dateLayout  string
	onSaveError func(error)
}

// Option configures a Notepad.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		key:        DefaultKey,
		codec:      snapshot.Default,
		clock:      core.SystemClock,
		ids:        core.UUIDGenerator,
		timeLayout: DefaultTimeLayout,
		dateLayout: DefaultDateLayout,
	}
}

// WithKey sets the key the snapshot is stored under.
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithCodec sets the snapshot encoding.
func WithCodec(c snapshot.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithClock sets the clock used to stamp new lines.
func WithClock(c core.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithIDGenerator sets the generator for note and line identifiers.
func WithIDGenerator(g core.IDGenerator) Option {
	return func(o *options) {
		if g != nil {
			o.ids = g
		}
	}
}

// WithLogger sets the logger. Nil discards logs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLayouts overrides the time.Format layouts of line timestamps and dates.
// Empty values keep the defaults.
func WithLayouts(timeLayout, dateLayout string) Option {
	return func(o *options) {
		if timeLayout != "" {
			o.timeLayout = timeLayout
		}
		if dateLayout != "" {
			o.dateLayout = dateLayout
		}
	}
}

// WithSaveErrorHandler registers a callback invoked when writing the snapshot
// fails. Mutations never return save errors; they are logged and handed here.
func WithSaveErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onSaveError = fn
	}
}
