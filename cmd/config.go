package cmd

import (
	"fmt"
	"strconv"

	"github.com/lumocms/themehub/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage themehub configuration",
	Long: `Manage themehub configuration settings.

Example:
  themehub config show
  themehub config set locale ko-KR`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Available keys:
  locale       - Language setting
                 Values: auto, en-US, ko-KR, etc.
  registryUrl  - Base URL of the theme package registry
  frozen       - Reject registry browsing on this deployment
                 Values: true, false

Example:
  themehub config set locale ko-KR
  themehub config set frozen true`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Configuration:")
	fmt.Println("----------------------------------------")
	fmt.Printf("  locale: %s\n", cfg.Locale)
	fmt.Printf("  registryUrl: %s\n", cfg.RegistryURL)
	fmt.Printf("  dataDir: %s\n", cfg.DataDir)
	fmt.Printf("  protectedTheme: %s\n", cfg.ProtectedTheme)
	fmt.Printf("  activeTheme: %s\n", cfg.ActiveTheme)
	fmt.Printf("  frozen: %t\n", cfg.Frozen)
	fmt.Printf("  downloadSeconds: %d\n", cfg.DownloadSeconds)

	fmt.Println()
	fmt.Println("Locale:")
	if cfg.Locale == "auto" {
		fmt.Println("  auto: System locale is auto-detected")
	} else {
		fmt.Printf("  %s: Using fixed locale\n", cfg.Locale)
	}

	if cfg.Frozen {
		fmt.Println()
		fmt.Println("Frozen:")
		fmt.Println("  Registry browsing is rejected on this deployment")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	switch key {
	case "locale":
		if err := config.SetLocale(value); err != nil {
			return err
		}
		fmt.Printf("Locale set to '%s'. Restart themehub to apply.\n", value)
		return nil
	case "registryUrl":
		return config.SetRegistryURL(value)
	case "frozen":
		frozen, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value '%s' for %s. Valid values: true, false", value, key)
		}
		return config.SetFrozen(frozen)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}
