package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aretw0/timedpad"
	"github.com/aretw0/timedpad/internal/tui"
	"github.com/aretw0/timedpad/pkg/core"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive notepad",
	Long: `Open the full-screen notepad. Click a tab to select it, double-click to
rename it, click × to delete it. Logs go to a rotating file since the UI
owns the terminal (log_file in the config, default in the user cache dir).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := loadSession()
		logger := tuiLogger(s.cfg.LogFile)

		store, err := timedpad.OpenStore(ctx, s.uri, s.options(timedpad.WithLogger(logger))...)
		if err != nil {
			fatal("Failed to open store", err)
		}
		pad, err := timedpad.New(ctx, s.uri, s.options(timedpad.WithStore(store), timedpad.WithLogger(logger))...)
		if err != nil {
			fatal("Failed to open notes", err)
		}
		defer pad.Close()

		opts := []tui.Option{tui.WithLogger(logger)}
		if w, ok := store.(core.Watchable); ok {
			events, err := w.Watch(ctx, s.key())
			if err != nil {
				logger.Warn("live reload disabled", "error", err)
			} else {
				opts = append(opts, tui.WithChanges(events))
			}
		}

		program := tea.NewProgram(tui.New(ctx, pad, opts...),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(ctx),
		)
		if _, err := program.Run(); err != nil {
			fatal("UI failed", err)
		}
	},
}

func tuiLogger(path string) *slog.Logger {
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		path = filepath.Join(dir, "timedpad", "tui.log")
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // Megabytes
		MaxBackups: 3,
		MaxAge:     28, // Days
	}
	return slog.New(slog.NewTextHandler(rotator, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
