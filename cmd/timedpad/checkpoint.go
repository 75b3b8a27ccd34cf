package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/timedpad/internal/platform"
	"github.com/aretw0/timedpad/pkg/git"
	"github.com/aretw0/timedpad/pkg/notepad"
	"github.com/aretw0/timedpad/pkg/snapshot"
)

var checkpointMsg string

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Commit the notes file to git",
	Long: `Record the current snapshot in a git repository rooted at the data directory
(created on first use). Works with the fs and bolt adapters.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		pad, s := openPad(ctx)
		if !pad.Restored() {
			if err := pad.Flush(ctx); err != nil {
				fatal("Failed to write notes", err)
			}
		}
		state := pad.State().(notepad.State)
		pad.Close()

		var files []string
		switch s.cfg.Adapter {
		case "", platform.AdapterFS:
			codec, err := snapshot.ByName(s.cfg.Format)
			if err != nil {
				fatal("Invalid format", err)
			}
			files = append(files, s.key()+codec.Ext())
		case platform.AdapterBolt:
			files = append(files, platform.BoltFileName)
		default:
			fatal("Cannot checkpoint", fmt.Errorf("adapter %q keeps no local files", s.cfg.Adapter))
		}
		for _, name := range platform.ConfigFileNames {
			if fileExists(filepath.Join(s.dir, name)) {
				files = append(files, name)
			}
		}

		msg := git.FormatCommitMessage(git.CommitTypeChore, "notes",
			fmt.Sprintf("checkpoint %d notes, %d lines", state.Notes, state.Lines), "")
		if checkpointMsg != "" {
			msg = git.AppendFooter(checkpointMsg)
		}

		client := git.NewClient(s.dir, slog.Default())
		err := client.Checkpoint(ctx, msg, files...)
		if errors.Is(err, git.ErrNothingToCommit) {
			fmt.Println(color.YellowString("Nothing to checkpoint."))
			return
		}
		if err != nil {
			fatal("Failed to checkpoint", err)
		}
		fmt.Printf("%s %s\n", color.GreenString("Checkpoint recorded:"), firstLine(msg))
	},
}

func init() {
	rootCmd.AddCommand(checkpointCmd)
	checkpointCmd.Flags().StringVarP(&checkpointMsg, "message", "m", "", "Commit message (default: chore(notes): checkpoint ...)")
}
