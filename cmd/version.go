package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time metadata, injected via -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("themehub %s\n", Version)
		if GitCommit != "" {
			fmt.Printf("  commit: %s\n", GitCommit)
		}
		if BuildDate != "" {
			fmt.Printf("  built:  %s\n", BuildDate)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
