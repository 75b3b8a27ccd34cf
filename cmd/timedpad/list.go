package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/timedpad/pkg/core"
)

var (
	listJSON  bool
	listMatch string
)

type listEntry struct {
	Position int     `json:"position"`
	ID       core.ID `json:"id"`
	Title    string  `json:"title"`
	Lines    int     `json:"lines"`
	Active   bool    `json:"active"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List notes in order. --match filters titles with a glob such as "Work*" or "{todo,ideas}".`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if listMatch != "" && !doublestar.ValidatePattern(listMatch) {
			fatal("Invalid --match pattern", fmt.Errorf("%q", listMatch))
		}

		pad, _ := openPad(context.Background())
		defer pad.Close()

		active := pad.ActiveNote().ID
		var entries []listEntry
		for i, n := range pad.Notes() {
			if listMatch != "" {
				if ok, _ := doublestar.Match(listMatch, n.Title); !ok {
					continue
				}
			}
			entries = append(entries, listEntry{
				Position: i + 1,
				ID:       n.ID,
				Title:    n.Title,
				Lines:    len(n.Lines),
				Active:   n.ID == active,
			})
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(entries); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, e := range entries {
			marker := " "
			title := e.Title
			if e.Active {
				marker = color.GreenString("*")
				title = color.New(color.Bold).Sprint(title)
			}
			fmt.Printf("%s %2d  %s  %s\n", marker, e.Position, title,
				color.HiBlackString("(%d lines, %s)", e.Lines, e.ID))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only list notes whose title matches this glob")
}
