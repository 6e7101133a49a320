// Package themes wires the theme-management components around shared
// caches and exposes them as one service.
package themes

import (
	"sync"
	"time"

	"github.com/lumocms/themehub/internal/cache"
	"github.com/lumocms/themehub/internal/capability"
	"github.com/lumocms/themehub/internal/config"
	"github.com/lumocms/themehub/internal/installer"
	"github.com/lumocms/themehub/internal/inventory"
	"github.com/lumocms/themehub/internal/registry"
	"github.com/lumocms/themehub/internal/settings"
	"github.com/lumocms/themehub/internal/updatecheck"
	"github.com/lumocms/themehub/internal/version"
)

// Service bundles the theme-management components. Registry metadata
// and the installed listing live in two separate cache instances: the
// first expires on TTL, the second only by explicit invalidation.
type Service struct {
	Meta         *cache.Cache
	Registry     *registry.Client
	Inventory    *inventory.Inventory
	Resolver     *version.Resolver
	Installer    *installer.Installer
	Checker      *updatecheck.Checker
	Active       *settings.ActiveManager
	Capabilities *capability.Table
}

var (
	svc     *Service
	svcOnce sync.Once
)

// Get returns the singleton service built from the current config.
func Get() *Service {
	svcOnce.Do(func() {
		svc = NewService(config.Get())
	})
	return svc
}

// NewService builds a service from cfg.
func NewService(cfg *config.Config) *Service {
	meta := cache.New()
	listing := cache.New()

	reg := registry.NewClient(cfg.RegistryURL, meta)
	inv := inventory.New(config.ThemesDir(cfg.DataDir), listing)
	res := version.NewResolver(reg, inv)
	caps := capability.NewTable()

	ins := installer.New(installer.Options{
		ThemesRoot:      config.ThemesDir(cfg.DataDir),
		RuntimeRoot:     config.RuntimeDir(cfg.DataDir),
		ProtectedTheme:  cfg.ProtectedTheme,
		DownloadTimeout: time.Duration(cfg.DownloadSeconds) * time.Second,
	}, reg, inv, res, caps)

	active := settings.NewActiveManager(config.SetActiveTheme, inv.IsInstalled)
	// Switching themes invalidates every cached rendered artifact, so
	// the whole metadata cache namespace goes with it.
	active.OnSwitch(meta.Flush)

	return &Service{
		Meta:         meta,
		Registry:     reg,
		Inventory:    inv,
		Resolver:     res,
		Installer:    ins,
		Checker:      updatecheck.NewChecker(inv, res, reg),
		Active:       active,
		Capabilities: caps,
	}
}
