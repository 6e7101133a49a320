package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lumocms/themehub/internal/config"
	"github.com/lumocms/themehub/internal/i18n"
	"github.com/lumocms/themehub/internal/themes"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed themes",
	Long: `List the themes installed on this deployment.

Example:
  themehub list`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	svc := themes.Get()

	installed, err := svc.Inventory.ListInstalled()
	if err != nil {
		return err
	}

	fmt.Println(i18n.T("ListHeader", nil))
	fmt.Println(strings.Repeat("-", 40))

	if len(installed) == 0 {
		fmt.Println(i18n.T("NoThemesInstalled", nil))
		return nil
	}

	names := make([]string, 0, len(installed))
	for name := range installed {
		names = append(names, name)
	}
	sort.Strings(names)

	active := config.Get().ActiveTheme
	for _, name := range names {
		version, err := svc.Inventory.StampedVersion(name)
		if err != nil {
			return err
		}
		if version == "" {
			version = "unknown"
		}

		marker := ""
		if name == active {
			marker = " " + i18n.T("ActiveMarker", nil)
		}

		fmt.Printf("  %s (v%s)%s\n", name, version, marker)
		if verbose {
			fmt.Printf("    Path: %s\n", installed[name].Path)
		}
	}

	return nil
}
