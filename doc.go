// Package timedpad is the composition root of the timed notepad.
//
// It wires the note store (pkg/notepad) to one of the key-value adapters
// (filesystem, bbolt, Redis, CouchDB or memory) behind the core.KeyValueStore
// port. Every line of a note carries the time and date it was created.
//
// Usage:
//
//	pad, err := timedpad.New(ctx, "./notes",
//		timedpad.WithLogger(logger),
//		timedpad.WithFormat("yaml"),
//	)
//
//	n := pad.CreateNote(ctx)
//	next, err := pad.InsertLineAfter(ctx, n.ID, 0)
//	err = pad.SetLineContent(ctx, n.ID, next, "call the bank")
package timedpad
