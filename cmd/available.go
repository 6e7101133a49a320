package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/lumocms/themehub/internal/config"
	"github.com/lumocms/themehub/internal/i18n"
	"github.com/lumocms/themehub/internal/registry"
	"github.com/lumocms/themehub/internal/themes"
	"github.com/spf13/cobra"
)

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "Browse themes on the registry",
	Long: `List the themes published on the registry.

Frozen deployments reject registry browsing; the guard runs before
any network traffic.

Example:
  themehub available`,
	RunE: runAvailable,
}

func runAvailable(cmd *cobra.Command, args []string) error {
	if config.Get().Frozen {
		return fmt.Errorf("%s", i18n.T("AvailableFrozen", nil))
	}

	svc := themes.Get()

	listing, err := svc.Registry.FetchAvailable()
	if err != nil {
		return err
	}

	names := parseListing(listing)

	fmt.Println(i18n.T("AvailableHeader", nil))
	fmt.Println(strings.Repeat("-", 40))

	if len(names) == 0 {
		fmt.Println(i18n.T("NoThemesAvailable", nil))
		return nil
	}

	for _, name := range names {
		installed, err := svc.Inventory.IsInstalled(name)
		if err != nil {
			return err
		}

		marker := "   "
		if installed {
			marker = " * "
		}
		fmt.Printf("%s%s\n", marker, name)
	}

	return nil
}

// parseListing extracts theme names from the registry's listing
// document, dropping the vendor prefix.
func parseListing(listing json.RawMessage) []string {
	var doc struct {
		PackageNames []string `json:"packageNames"`
	}
	if err := json.Unmarshal(listing, &doc); err != nil {
		return nil
	}

	prefix := registry.Vendor + "/"
	names := make([]string, 0, len(doc.PackageNames))
	for _, pkg := range doc.PackageNames {
		names = append(names, strings.TrimPrefix(pkg, prefix))
	}
	sort.Strings(names)
	return names
}
