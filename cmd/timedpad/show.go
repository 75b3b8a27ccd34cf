package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/timedpad/pkg/core"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [note]",
	Short: "Print the lines of a note (the active one by default)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pad, _ := openPad(context.Background())
		defer pad.Close()

		note, err := resolveNote(pad, firstArg(args))
		if err != nil {
			fatal("Failed to find note", err)
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}
		printNote(note)
	},
}

func printNote(note core.Note) {
	color.New(color.Bold).Println(note.Title)
	for i, l := range note.Lines {
		stamp := color.HiBlackString("%11s %10s", l.Timestamp, l.Date)
		fmt.Printf("%3d  %s │ %s\n", i+1, stamp, l.Content)
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
