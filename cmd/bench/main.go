package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/aretw0/timedpad/internal/platform"
)

func main() {
	count := flag.Int("count", 1000, "Number of lines to write")
	adapter := flag.String("adapter", platform.AdapterFS, "Storage adapter to benchmark (fs, bolt, memory)")
	format := flag.String("format", "json", "Snapshot format (json, yaml)")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "timedpad_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	var saveErrors atomic.Int64
	ctx := context.Background()

	pad, err := platform.New(ctx, benchDir,
		platform.WithLogger(logger),
		platform.WithAdapter(*adapter),
		platform.WithFormat(*format),
		platform.WithSaveErrorHandler(func(error) { saveErrors.Add(1) }),
	)
	if err != nil {
		panic(err)
	}

	noteID := pad.ActiveNoteID()
	fmt.Printf("Writing %d lines through %s (%s) in %s...\n", *count, *adapter, *format, benchDir)

	// Every mutation rewrites the whole snapshot, so cost grows with the note.
	startInsert := time.Now()
	for i := 0; i < *count; i++ {
		idx, err := pad.InsertLineAfter(ctx, noteID, i)
		if err != nil {
			panic(err)
		}
		if err := pad.SetLineContent(ctx, noteID, idx, fmt.Sprintf("benchmark line %d", i)); err != nil {
			panic(err)
		}
	}
	insertDuration := time.Since(startInsert)
	if err := pad.Close(); err != nil {
		panic(err)
	}

	// Reopen to time restore of the full snapshot.
	startOpen := time.Now()
	pad2, err := platform.New(ctx, benchDir,
		platform.WithLogger(logger),
		platform.WithAdapter(*adapter),
		platform.WithFormat(*format),
	)
	if err != nil {
		panic(err)
	}
	openDuration := time.Since(startOpen)
	lines := len(pad2.ActiveNote().Lines)
	pad2.Close()

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d lines, %s):\n", *count, *adapter)
	fmt.Printf("  Write-through: %v (%v per mutation)\n", insertDuration, insertDuration/time.Duration(max(1, 2**count)))
	fmt.Printf("  Restore:       %v (lines: %d, restored: %v)\n", openDuration, lines, pad2.Restored())
	fmt.Printf("  Save errors:   %d\n", saveErrors.Load())
	fmt.Printf("--------------------------------------------------\n")
}
