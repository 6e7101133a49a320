package cmd

import (
	"fmt"

	"github.com/lumocms/themehub/internal/i18n"
	"github.com/lumocms/themehub/internal/themes"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <theme>",
	Short: "Remove an installed theme",
	Long: `Remove an installed theme from disk. The protected theme can
never be removed.

Example:
  themehub uninstall aurora`,
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"remove", "rm"},
	RunE:    runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	name := args[0]
	svc := themes.Get()

	if err := svc.Installer.Uninstall(name); err != nil {
		return err
	}

	fmt.Println(i18n.T("UninstallSuccess", map[string]any{"Name": name}))
	return nil
}
