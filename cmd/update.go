package cmd

import (
	"fmt"
	"sort"

	"github.com/lumocms/themehub/internal/i18n"
	"github.com/lumocms/themehub/internal/themes"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [theme]",
	Short: "Update installed themes",
	Long: `Update one installed theme, or every installed theme when no
argument is given. Themes already at the registry's latest version
are left alone.

Example:
  themehub update aurora
  themehub update`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	svc := themes.Get()

	if len(args) == 1 {
		return updateOne(svc, args[0])
	}

	installed, err := svc.Inventory.ListInstalled()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(installed))
	for name := range installed {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := updateOne(svc, name); err != nil {
			return err
		}
	}

	fmt.Println(i18n.T("UpdateAllDone", nil))
	return nil
}

func updateOne(svc *themes.Service, name string) error {
	due, err := svc.Resolver.IsUpdateDue(name)
	if err != nil {
		return err
	}

	meta, err := svc.Installer.Update(name)
	if err != nil {
		return err
	}

	if due {
		fmt.Println(i18n.T("UpdateSuccess", map[string]any{
			"Name":    name,
			"Version": meta.LatestVersion,
		}))
	} else {
		fmt.Println(i18n.T("AlreadyCurrent", map[string]any{
			"Name":    name,
			"Version": meta.LatestVersion,
		}))
	}
	return nil
}
