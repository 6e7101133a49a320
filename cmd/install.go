package cmd

import (
	"fmt"

	"github.com/lumocms/themehub/internal/i18n"
	"github.com/lumocms/themehub/internal/themes"
	"github.com/lumocms/themehub/internal/tui"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [theme]",
	Short: "Download and install a theme",
	Long: `Install a theme from the registry. Without an argument an
interactive picker lists the available themes.

Example:
  themehub install aurora
  themehub install`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	svc := themes.Get()

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		picked, err := pickAvailableTheme(svc)
		if err != nil {
			return err
		}
		if picked == "" {
			fmt.Println(i18n.T("PickerCancelled", nil))
			return nil
		}
		name = picked
	}

	fmt.Printf("Installing %s...\n", name)

	meta, err := svc.Installer.Install(name)
	if err != nil {
		return err
	}

	fmt.Println(i18n.T("InstallSuccess", map[string]any{
		"Name":    name,
		"Version": meta.LatestVersion,
	}))
	return nil
}

// pickAvailableTheme runs the interactive picker over the registry
// listing. Per-theme detail lookups are best effort; a theme whose
// details fail to load still shows up by name.
func pickAvailableTheme(svc *themes.Service) (string, error) {
	listing, err := svc.Registry.FetchAvailable()
	if err != nil {
		return "", err
	}

	names := parseListing(listing)
	items := make([]tui.ThemeItem, 0, len(names))
	for _, name := range names {
		item := tui.ThemeItem{Name: name}

		if meta, err := svc.Registry.FetchDetails(name); err == nil {
			item.Description = meta.Description
			item.Version = meta.LatestVersion
		}
		if installed, err := svc.Inventory.IsInstalled(name); err == nil {
			item.Installed = installed
		}

		items = append(items, item)
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
