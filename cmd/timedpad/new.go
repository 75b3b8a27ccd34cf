package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a note and make it active",
	Long:  `Create a note titled "Note <n+1>", or with the given title, holding one empty line.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		pad, s := openPad(ctx)
		defer pad.Close()

		note := pad.CreateNote(ctx)
		if title := strings.Join(args, " "); title != "" {
			if err := pad.CommitRename(ctx, note.ID, title); err != nil {
				fatal("Failed to title note", err)
			}
			note.Title = title
		}
		s.mustSaved()

		fmt.Printf("%s %s (%s)\n", color.GreenString("Created"), note.Title, note.ID)
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <note> <title>",
	Short: "Change the title of a note",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		pad, s := openPad(ctx)
		defer pad.Close()

		note, err := resolveNote(pad, args[0])
		if err != nil {
			fatal("Failed to find note", err)
		}
		title := strings.Join(args[1:], " ")
		if err := pad.CommitRename(ctx, note.ID, title); err != nil {
			fatal("Failed to rename note", err)
		}
		s.mustSaved()

		fmt.Printf("%s %q → %q\n", color.GreenString("Renamed"), note.Title, title)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(renameCmd)
}
