package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:           "themehub",
		Short:         "CLI tool for managing Lumo CMS theme bundles",
		SilenceErrors: true,
		Long: `themehub manages theme bundles for a Lumo CMS deployment.

It talks to the Lumo theme registry, keeps an inventory of
installed themes on disk, and swaps the active theme.

Commands:
  list       Show installed themes
  available  Browse themes on the registry
  details    Show registry metadata for one theme
  check      Check installed themes for updates
  install    Download and install a theme
  update     Update installed themes
  uninstall  Remove an installed theme
  use        Switch the active theme
  config     Manage configuration`,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(availableCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(configCmd)
}
