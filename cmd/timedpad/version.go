package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/timedpad"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of timedpad",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("timedpad version %s\n", strings.TrimSpace(timedpad.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
