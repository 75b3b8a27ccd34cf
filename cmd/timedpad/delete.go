package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const msgLastNote = "You must have at least one note!"

var assumeYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <note>",
	Short: "Delete a note",
	Long:  `Delete a note. The last remaining note cannot be deleted.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		pad, s := openPad(ctx)
		defer pad.Close()

		note, err := resolveNote(pad, args[0])
		if err != nil {
			fatal("Failed to find note", err)
		}
		if pad.Len() <= 1 {
			fmt.Fprintln(os.Stderr, color.RedString(msgLastNote))
			os.Exit(1)
		}
		if !confirm(os.Stdin, "Are you sure you want to delete this note?") {
			fmt.Println("Aborted.")
			return
		}

		if err := pad.DeleteNote(ctx, note.ID); err != nil {
			fatal("Failed to delete note", err)
		}
		s.mustSaved()

		fmt.Printf("%s %s\n", color.GreenString("Deleted"), note.Title)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear [note]",
	Short: "Replace every line of a note with one empty line",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		pad, s := openPad(ctx)
		defer pad.Close()

		note, err := resolveNote(pad, firstArg(args))
		if err != nil {
			fatal("Failed to find note", err)
		}
		if !confirm(os.Stdin, "Are you sure you want to clear all lines in this note?") {
			fmt.Println("Aborted.")
			return
		}

		if err := pad.ClearNote(ctx, note.ID); err != nil {
			fatal("Failed to clear note", err)
		}
		s.mustSaved()

		fmt.Printf("%s %s\n", color.GreenString("Cleared"), note.Title)
	},
}

// confirm asks a yes/no question on stdin unless --yes was given.
func confirm(in io.Reader, question string) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N] ", color.YellowString(question))
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	for _, c := range []*cobra.Command{deleteCmd, clearCmd} {
		c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	}
}

