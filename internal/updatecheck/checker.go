// Package updatecheck reports which installed themes have registry
// updates pending.
package updatecheck

import (
	"sort"

	"github.com/lumocms/themehub/internal/inventory"
	"github.com/lumocms/themehub/internal/version"
)

// Checker handles update checking logic.
type Checker struct {
	inv      *inventory.Inventory
	resolver *version.Resolver
	latest   version.LatestSource
}

// NewChecker creates a new update checker.
func NewChecker(inv *inventory.Inventory, resolver *version.Resolver, latest version.LatestSource) *Checker {
	return &Checker{inv: inv, resolver: resolver, latest: latest}
}

// CheckAll checks every installed theme against the registry. Per-theme
// failures are collected as non-fatal errors so one unreachable package
// does not hide the rest.
func (c *Checker) CheckAll() (*CheckResult, error) {
	result := &CheckResult{
		Themes: []UpdateInfo{},
		Errors: []error{},
	}

	installed, err := c.inv.ListInstalled()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(installed))
	for name := range installed {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := UpdateInfo{Name: name}

		stamped, err := c.inv.StampedVersion(name)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		info.CurrentVer = stamped

		remote, err := c.latest.LatestVersion(name)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		info.RemoteVer = remote

		due, err := c.resolver.IsUpdateDue(name)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		info.HasUpdate = due

		result.Themes = append(result.Themes, info)
	}

	result.HasAnyUpdate = result.TotalUpdates() > 0
	return result, nil
}
