package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/timedpad/internal/platform"
)

var initTOML bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory, a config file and the first note",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		pad, s := openPad(ctx)
		defer pad.Close()

		if !pad.Restored() {
			if err := pad.Flush(ctx); err != nil {
				fatal("Failed to write notes", err)
			}
		}

		existing := ""
		for _, name := range platform.ConfigFileNames {
			if path := filepath.Join(s.dir, name); fileExists(path) {
				existing = path
				break
			}
		}
		if existing == "" {
			name := "timedpad.yaml"
			if initTOML {
				name = "timedpad.toml"
			}
			existing = filepath.Join(s.dir, name)
			if err := s.cfg.Save(existing); err != nil {
				fatal("Failed to write config", err)
			}
		}

		fmt.Printf("%s timedpad in %s (%d notes, config %s)\n",
			color.GreenString("Initialized"), s.dir, pad.Len(), filepath.Base(existing))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initTOML, "toml", false, "Write timedpad.toml instead of timedpad.yaml")
}
