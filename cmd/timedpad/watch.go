package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/timedpad"
	lifecycleadapter "github.com/aretw0/timedpad/pkg/adapters/lifecycle"
	"github.com/aretw0/timedpad/pkg/core"
)

var watchShow bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a line whenever the stored notes change",
	Long: `Watch the snapshot for changes made by other processes (the TUI, another
CLI call, a text editor). Only the fs adapter supports watching.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := loadSession()
		store, err := timedpad.OpenStore(ctx, s.uri, s.options()...)
		if err != nil {
			fatal("Failed to open store", err)
		}

		w, ok := store.(core.Watchable)
		if !ok {
			fatal("Cannot watch", fmt.Errorf("adapter %q does not support watching", s.cfg.Adapter))
		}
		events, err := w.Watch(ctx, s.key())
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		var pad *timedpad.Notepad
		if watchShow {
			if pad, err = timedpad.New(ctx, s.uri, s.options(timedpad.WithStore(store))...); err != nil {
				fatal("Failed to open notes", err)
			}
		}

		src := lifecycleadapter.NewSource(events, s.key())
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Printf("%s %s (ctrl+c to stop)\n", color.CyanString("Watching"), s.key())
		for e := range src.Events() {
			fmt.Printf("%s %s\n", color.HiBlackString(time.Now().Format(time.TimeOnly)), e.String())
			if pad == nil {
				continue
			}
			if ok, err := pad.Reload(ctx); err != nil {
				fmt.Fprintln(os.Stderr, color.RedString("reload failed: %v", err))
			} else if ok {
				printNote(pad.ActiveNote())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchShow, "show", false, "Print the active note after every change")
}
