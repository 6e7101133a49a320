// Package inventory enumerates theme bundles present on local storage.
package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumocms/themehub/internal/cache"
)

// VersionFile is the single-line version marker stamped inside a bundle.
const VersionFile = ".version"

// listKey is the fixed cache key for the installed listing. The entry
// carries no TTL: it reflects local filesystem truth and is invalidated
// explicitly by install/uninstall.
const listKey = "themes.installed"

// ErrNotInstalled reports an operation on an unknown theme name.
var ErrNotInstalled = errors.New("theme is not installed")

// InstalledTheme describes one bundle under the themes root.
type InstalledTheme struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Inventory maps theme names to installed bundles under a themes root.
type Inventory struct {
	root  string
	cache *cache.Cache
}

// New creates an inventory over the given themes root, read through the
// given cache.
func New(root string, c *cache.Cache) *Inventory {
	return &Inventory{root: root, cache: c}
}

// Root returns the themes root directory.
func (inv *Inventory) Root() string {
	return inv.root
}

// Path returns the bundle path an installed theme of the given name
// would occupy, whether or not it exists.
func (inv *Inventory) Path(name string) string {
	return filepath.Join(inv.root, name)
}

// ListInstalled enumerates the immediate subdirectories of the themes
// root. The result is cached until Invalidate is called.
func (inv *Inventory) ListInstalled() (map[string]InstalledTheme, error) {
	if v, ok := inv.cache.Get(listKey); ok {
		if themes, ok := v.(map[string]InstalledTheme); ok {
			return themes, nil
		}
	}

	themes := make(map[string]InstalledTheme)

	entries, err := os.ReadDir(inv.root)
	if err != nil {
		if os.IsNotExist(err) {
			inv.cache.Set(listKey, themes, 0)
			return themes, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		themes[name] = InstalledTheme{
			Name: name,
			Path: filepath.Join(inv.root, name),
		}
	}

	inv.cache.Set(listKey, themes, 0)
	return themes, nil
}

// IsInstalled reports whether a bundle of the given name exists.
func (inv *Inventory) IsInstalled(name string) (bool, error) {
	themes, err := inv.ListInstalled()
	if err != nil {
		return false, err
	}
	_, ok := themes[name]
	return ok, nil
}

// StampedVersion reads the version marker inside an installed bundle.
// A missing marker returns "" (unknown/legacy install); an unknown
// theme name returns ErrNotInstalled.
func (inv *Inventory) StampedVersion(name string) (string, error) {
	installed, err := inv.IsInstalled(name)
	if err != nil {
		return "", err
	}
	if !installed {
		return "", ErrNotInstalled
	}

	data, err := os.ReadFile(filepath.Join(inv.root, name, VersionFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

// Invalidate drops the cached installed listing. Called after every
// filesystem mutation of the themes root.
func (inv *Inventory) Invalidate() {
	inv.cache.Delete(listKey)
}
