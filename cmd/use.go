package cmd

import (
	"fmt"
	"sort"

	"github.com/lumocms/themehub/internal/config"
	"github.com/lumocms/themehub/internal/i18n"
	"github.com/lumocms/themehub/internal/themes"
	"github.com/lumocms/themehub/internal/tui"
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use [theme]",
	Short: "Switch the active theme",
	Long: `Make an installed theme the active one. Without an argument an
interactive picker lists the installed themes.

Example:
  themehub use aurora
  themehub use`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUse,
}

func runUse(cmd *cobra.Command, args []string) error {
	svc := themes.Get()

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		picked, err := pickInstalledTheme(svc)
		if err != nil {
			return err
		}
		if picked == "" {
			fmt.Println(i18n.T("PickerCancelled", nil))
			return nil
		}
		name = picked
	}

	if err := svc.Active.SetActive(name); err != nil {
		return err
	}

	fmt.Println(i18n.T("UseSuccess", map[string]any{"Name": name}))
	return nil
}

func pickInstalledTheme(svc *themes.Service) (string, error) {
	installed, err := svc.Inventory.ListInstalled()
	if err != nil {
		return "", err
	}

	active := config.Get().ActiveTheme

	names := make([]string, 0, len(installed))
	for name := range installed {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]tui.ThemeItem, 0, len(names))
	for _, name := range names {
		version, err := svc.Inventory.StampedVersion(name)
		if err != nil {
			return "", err
		}

		description := ""
		if name == active {
			description = i18n.T("ActiveMarker", nil)
		}

		items = append(items, tui.ThemeItem{
			Name:        name,
			Description: description,
			Version:     version,
			Installed:   true,
		})
	}

	result, err := tui.RunThemePicker(items)
	if err != nil {
		return "", err
	}
	if result.Cancelled {
		return "", nil
	}
	return result.Name, nil
}
