package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var addAfter int

var addCmd = &cobra.Command{
	Use:   "add <note> [text...]",
	Short: "Insert a new stamped line",
	Long: `Insert a new line stamped with the current time and date. By default it goes
after the last line; --after N puts it after line N (1-based).`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		pad, s := openPad(ctx)
		defer pad.Close()

		note, err := resolveNote(pad, args[0])
		if err != nil {
			fatal("Failed to find note", err)
		}

		after := len(note.Lines) - 1
		if cmd.Flags().Changed("after") {
			if addAfter < 1 {
				fatal("Invalid --after", fmt.Errorf("line must be a positive number, got %d", addAfter))
			}
			after = addAfter - 1
		}

		idx, err := pad.InsertLineAfter(ctx, note.ID, after)
		if err != nil {
			fatal("Failed to add line", err)
		}
		if text := strings.Join(args[1:], " "); text != "" {
			if err := pad.SetLineContent(ctx, note.ID, idx, text); err != nil {
				fatal("Failed to set line", err)
			}
		}
		s.mustSaved()

		fmt.Printf("%s line %d to %s\n", color.GreenString("Added"), idx+1, note.Title)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <note> <line> <text...>",
	Short: "Replace the content of a line (1-based)",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		pad, s := openPad(ctx)
		defer pad.Close()

		note, err := resolveNote(pad, args[0])
		if err != nil {
			fatal("Failed to find note", err)
		}
		idx, err := parseLine(args[1])
		if err != nil {
			fatal("Invalid line", err)
		}

		if err := pad.SetLineContent(ctx, note.ID, idx, strings.Join(args[2:], " ")); err != nil {
			fatal("Failed to set line", err)
		}
		s.mustSaved()

		fmt.Printf("%s line %d of %s\n", color.GreenString("Updated"), idx+1, note.Title)
	},
}

var rmlineCmd = &cobra.Command{
	Use:   "rmline <note> <line>",
	Short: "Remove a line (1-based); the last line of a note is kept",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		pad, s := openPad(ctx)
		defer pad.Close()

		note, err := resolveNote(pad, args[0])
		if err != nil {
			fatal("Failed to find note", err)
		}
		idx, err := parseLine(args[1])
		if err != nil {
			fatal("Invalid line", err)
		}

		_, ok, err := pad.DeleteLineAt(ctx, note.ID, idx)
		if err != nil {
			fatal("Failed to remove line", err)
		}
		if !ok {
			fmt.Println(color.YellowString("Kept line %d: a note always has at least one line.", idx+1))
			return
		}
		s.mustSaved()

		fmt.Printf("%s line %d of %s\n", color.GreenString("Removed"), idx+1, note.Title)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(rmlineCmd)
	addCmd.Flags().IntVar(&addAfter, "after", 0, "Insert after this line (1-based)")
}
