// Package lifecycle exposes store change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/timedpad/pkg/core"
)

type snapshotSource struct {
	events <-chan core.Event
	key    string
	out    chan lifecycle.Event
}

// NewSource bridges a core.Watchable channel to the generic lifecycle Event
// interface. Events for other keys than key are dropped; an empty key keeps all.
func NewSource(events <-chan core.Event, key string) lifecycle.Source {
	return &snapshotSource{
		events: events,
		key:    key,
		out:    make(chan lifecycle.Event),
	}
}

func (s *snapshotSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *snapshotSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.key != "" && e.Key != s.key {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
