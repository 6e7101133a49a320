package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/lumocms/themehub/internal/i18n"
	"github.com/lumocms/themehub/internal/themes"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check installed themes for updates",
	Long: `Compare the stamped version of every installed theme against
the registry's latest version.

Example:
  themehub check`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	svc := themes.Get()

	fmt.Println(i18n.T("CheckHeader", nil))
	fmt.Println(strings.Repeat("-", 40))

	result, err := svc.Checker.CheckAll()
	if err != nil {
		return err
	}

	for _, info := range result.Themes {
		current := info.CurrentVer
		if current == "" {
			current = "unknown"
		}

		if info.HasUpdate {
			fmt.Printf("  %s: %s -> %s\n", info.Name, current, info.RemoteVer)
		} else if verbose {
			fmt.Printf("  %s: %s (current)\n", info.Name, current)
		}
	}

	for _, checkErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "  warning: %v\n", checkErr)
	}

	fmt.Println()
	if result.HasAnyUpdate {
		fmt.Println(i18n.T("CheckUpdates", map[string]any{"Count": result.TotalUpdates()}))
	} else {
		fmt.Println(i18n.T("CheckNoUpdates", nil))
	}

	return nil
}
