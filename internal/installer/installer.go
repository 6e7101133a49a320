// Package installer performs install, update, and uninstall of theme
// bundles on the local filesystem.
//
// Install runs a fixed sequence: download, extract, normalize, stamp,
// backup-existing, swap, purge backup. A failure before the swap leaves
// the pre-install state intact; once the swap has succeeded the new
// bundle stays live even if cleanup fails. The swap itself is two
// renames, so the destination name is briefly absent between backup and
// swap.
package installer

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/lumocms/themehub/internal/capability"
	"github.com/lumocms/themehub/internal/config"
	"github.com/lumocms/themehub/internal/inventory"
	"github.com/lumocms/themehub/internal/registry"
	"github.com/lumocms/themehub/internal/version"
)

// backupSuffix marks the sibling path holding the previous bundle
// during a swap.
const backupSuffix = "-old"

var (
	// ErrDownloadFailed reports a failed archive fetch.
	ErrDownloadFailed = errors.New("package download failed")

	// ErrExtractFailed reports a corrupt or unreadable archive.
	ErrExtractFailed = errors.New("package extract failed")

	// ErrLayoutInvalid reports an archive that does not contain the
	// expected single top-level bundle directory.
	ErrLayoutInvalid = errors.New("package layout invalid")

	// ErrProtectedTheme reports an attempt to uninstall the protected
	// default theme.
	ErrProtectedTheme = errors.New("protected theme cannot be uninstalled")
)

// MetadataSource resolves registry metadata for a theme.
type MetadataSource interface {
	FetchDetails(name string) (*registry.ThemeMetadata, error)
}

// Options configures an Installer.
type Options struct {
	ThemesRoot      string
	RuntimeRoot     string
	ProtectedTheme  string
	DownloadTimeout time.Duration // ceiling for the download step; 0 = unbounded
}

// Installer orchestrates the bundle install state machine. All public
// operations take a per-name lock for their full duration, so two
// callers mutating the same theme serialize.
type Installer struct {
	opts         Options
	registry     MetadataSource
	inventory    *inventory.Inventory
	resolver     *version.Resolver
	capabilities *capability.Table
	httpc        *http.Client
	locks        keyedMutex
}

// New creates an installer. capabilities may be nil when no callback
// dispatch is wired.
func New(opts Options, reg MetadataSource, inv *inventory.Inventory, res *version.Resolver, caps *capability.Table) *Installer {
	return &Installer{
		opts:         opts,
		registry:     reg,
		inventory:    inv,
		resolver:     res,
		capabilities: caps,
		// Downloads deliberately run on their own client: once started
		// they are not cancellable by the invoking caller, only bounded
		// by the configured ceiling.
		httpc: &http.Client{Timeout: opts.DownloadTimeout},
	}
}

// Install downloads and installs the latest registry version of the
// named theme. Installing an already-current theme is a no-op that
// returns the current details.
func (ins *Installer) Install(name string) (*registry.ThemeMetadata, error) {
	unlock := ins.locks.lock(name)
	defer unlock()

	return ins.install(name)
}

// Update installs the latest version if the stamped version has
// drifted; otherwise it returns the current details unchanged.
func (ins *Installer) Update(name string) (*registry.ThemeMetadata, error) {
	unlock := ins.locks.lock(name)
	defer unlock()

	installed, err := ins.inventory.IsInstalled(name)
	if err != nil {
		return nil, err
	}
	if !installed {
		return nil, fmt.Errorf("%w: %s", inventory.ErrNotInstalled, name)
	}

	due, err := ins.resolver.IsUpdateDue(name)
	if err != nil {
		return nil, err
	}
	if !due {
		return ins.registry.FetchDetails(name)
	}

	return ins.install(name)
}

// Uninstall removes an installed bundle. The protected theme is
// refused unconditionally, before any filesystem access.
func (ins *Installer) Uninstall(name string) error {
	if name == ins.opts.ProtectedTheme {
		return fmt.Errorf("%w: %s", ErrProtectedTheme, name)
	}

	unlock := ins.locks.lock(name)
	defer unlock()

	installed, err := ins.inventory.IsInstalled(name)
	if err != nil {
		return err
	}
	if !installed {
		return fmt.Errorf("%w: %s", inventory.ErrNotInstalled, name)
	}

	if err := removeTree(ins.inventory.Path(name)); err != nil {
		return err
	}

	if ins.capabilities != nil {
		ins.capabilities.DropTheme(name)
	}
	ins.inventory.Invalidate()
	return nil
}

func (ins *Installer) install(name string) (*registry.ThemeMetadata, error) {
	meta, err := ins.registry.FetchDetails(name)
	if err != nil {
		return nil, err
	}

	// Idempotence pre-check: an already-current install touches nothing.
	installed, err := ins.inventory.IsInstalled(name)
	if err != nil {
		return nil, err
	}
	if installed {
		stamped, err := ins.inventory.StampedVersion(name)
		if err != nil {
			return nil, err
		}
		if stamped == meta.LatestVersion {
			return meta, nil
		}
	}

	if err := config.EnsureDir(ins.opts.RuntimeRoot); err != nil {
		return nil, fmt.Errorf("prepare scratch root: %w", err)
	}

	// Download the archive named by the source reference.
	archivePath := filepath.Join(ins.opts.RuntimeRoot, meta.SourceReference+".zip")
	if err := ins.download(meta.DownloadURL, archivePath); err != nil {
		return nil, err
	}

	// Extract under a reference-scoped scratch path.
	extractDir := filepath.Join(ins.opts.RuntimeRoot, meta.SourceReference)
	if err := extractZip(archivePath, extractDir); err != nil {
		ins.cleanupScratch(archivePath, extractDir)
		return nil, fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	// Normalize: the archive must contain exactly one top-level
	// directory following the lumo-themes-<name>-<version> convention.
	inner := filepath.Join(extractDir, fmt.Sprintf("%s-%s-%s", registry.Vendor, name, meta.LatestVersion))
	ready := filepath.Join(ins.opts.RuntimeRoot, name)
	if fi, err := os.Stat(inner); err != nil || !fi.IsDir() {
		ins.cleanupScratch(archivePath, extractDir)
		return nil, fmt.Errorf("%w: archive missing %s", ErrLayoutInvalid, filepath.Base(inner))
	}
	ins.cleanupScratch(ready) // leftover ready bundle from a crashed run
	if err := os.Rename(inner, ready); err != nil {
		ins.cleanupScratch(archivePath, extractDir)
		return nil, fmt.Errorf("%w: %v", ErrLayoutInvalid, err)
	}

	// Stamp the resolved version inside the ready bundle.
	stamp := filepath.Join(ready, inventory.VersionFile)
	if err := os.WriteFile(stamp, []byte(meta.LatestVersion+"\n"), 0644); err != nil {
		ins.cleanupScratch(archivePath, extractDir, ready)
		return nil, fmt.Errorf("stamp version: %w", err)
	}

	if err := config.EnsureDir(ins.opts.ThemesRoot); err != nil {
		ins.cleanupScratch(archivePath, extractDir, ready)
		return nil, fmt.Errorf("prepare themes root: %w", err)
	}

	// Backup the existing bundle, if any.
	dest := ins.inventory.Path(name)
	backup := dest + backupSuffix
	haveBackup := false
	if _, err := os.Stat(dest); err == nil {
		ins.cleanupScratch(backup) // stale backup from a crashed run
		if err := os.Rename(dest, backup); err != nil {
			ins.cleanupScratch(archivePath, extractDir, ready)
			return nil, fmt.Errorf("backup existing bundle: %w", err)
		}
		haveBackup = true
	}

	// Swap the ready bundle into place. On failure, restore the backup
	// so the pre-install state is preserved.
	if err := os.Rename(ready, dest); err != nil {
		if haveBackup {
			if rerr := os.Rename(backup, dest); rerr != nil {
				log.Printf("warning: failed to restore backup %s: %v", backup, rerr)
			}
		}
		ins.cleanupScratch(archivePath, extractDir, ready)
		return nil, fmt.Errorf("swap bundle into place: %w", err)
	}

	// The new bundle is live. Cleanup failures from here on are
	// reported but never roll back the swap.
	if haveBackup {
		if err := os.RemoveAll(backup); err != nil {
			log.Printf("warning: failed to purge backup %s: %v", backup, err)
		}
	}
	ins.cleanupScratch(archivePath, extractDir)
	ins.inventory.Invalidate()

	return meta, nil
}

// cleanupScratch removes scratch artifacts, logging failures without
// masking the operation's primary error.
func (ins *Installer) cleanupScratch(paths ...string) {
	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			log.Printf("warning: failed to clean up %s: %v", p, err)
		}
	}
}

// removeTree deletes a bundle directory depth-first, children before
// parents.
func removeTree(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if err := removeTree(child); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(child); err != nil {
			return err
		}
	}

	return os.Remove(path)
}
