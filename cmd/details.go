package cmd

import (
	"fmt"
	"strings"

	"github.com/lumocms/themehub/internal/i18n"
	"github.com/lumocms/themehub/internal/themes"
	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details <theme>",
	Short: "Show registry metadata for a theme",
	Long: `Show the registry's metadata for one theme, along with its
installation status on this deployment.

Example:
  themehub details aurora`,
	Args: cobra.ExactArgs(1),
	RunE: runDetails,
}

func runDetails(cmd *cobra.Command, args []string) error {
	name := args[0]
	svc := themes.Get()

	meta, err := svc.Registry.FetchDetails(name)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", meta.Name)
	fmt.Println(strings.Repeat("-", 40))
	if meta.Description != "" {
		fmt.Printf("  %s\n\n", meta.Description)
	}
	fmt.Printf("  Latest: %s\n", meta.LatestVersion)
	fmt.Printf("  Repository: %s\n", meta.Repository)
	fmt.Printf("  Source ref: %s\n", meta.SourceReference)
	fmt.Printf("  Download: %s\n", meta.DownloadURL)
	fmt.Printf("  Downloads: %d total, %d monthly, %d daily\n",
		meta.Downloads.Total, meta.Downloads.Monthly, meta.Downloads.Daily)

	fmt.Println("  Maintainers:")
	for _, m := range meta.Maintainers {
		line := "    - " + m.Name
		if m.Email != "" {
			line += " <" + m.Email + ">"
		}
		fmt.Println(line)
		if m.Homepage != "" {
			fmt.Printf("      %s\n", m.Homepage)
		}
	}

	fmt.Println()
	installed, err := svc.Inventory.IsInstalled(name)
	if err != nil {
		return err
	}
	if installed {
		version, err := svc.Inventory.StampedVersion(name)
		if err != nil {
			return err
		}
		if version == "" {
			version = "unknown"
		}
		fmt.Println(i18n.T("DetailsInstalled", map[string]any{"Version": version}))
	} else {
		fmt.Println(i18n.T("DetailsNotInstalled", nil))
	}

	return nil
}
