package installer_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/lumocms/themehub/internal/cache"
	"github.com/lumocms/themehub/internal/capability"
	"github.com/lumocms/themehub/internal/installer"
	"github.com/lumocms/themehub/internal/inventory"
	"github.com/lumocms/themehub/internal/registry"
	"github.com/lumocms/themehub/internal/version"
)

// stubRegistry serves fixed metadata without a remote registry.
type stubRegistry struct {
	meta *registry.ThemeMetadata
	err  error
}

func (s *stubRegistry) FetchDetails(string) (*registry.ThemeMetadata, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.meta, nil
}

func (s *stubRegistry) LatestVersion(string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.meta.LatestVersion, nil
}

// buildThemeZip assembles an archive with one top-level directory.
func buildThemeZip(t *testing.T, topDir string, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(path.Join(topDir, name))
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

type fixture struct {
	ins     *installer.Installer
	inv     *inventory.Inventory
	caps    *capability.Table
	themes  string
	runtime string
	hits    *atomic.Int32
}

// newFixture wires an installer against a local archive server that
// responds with archiveBody for every download.
func newFixture(t *testing.T, archiveBody []byte, archiveStatus int) (*fixture, *registry.ThemeMetadata) {
	t.Helper()

	hits := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if archiveStatus != http.StatusOK {
			w.WriteHeader(archiveStatus)
			return
		}
		w.Write(archiveBody)
	}))
	t.Cleanup(srv.Close)

	meta := &registry.ThemeMetadata{
		Name:            "aurora",
		Repository:      srv.URL,
		Maintainers:     []registry.Maintainer{{Name: "Mika"}},
		LatestVersion:   "1.10",
		SourceReference: "bbb222",
		DownloadURL:     srv.URL + "/archive/1.10.zip",
	}

	dataDir := t.TempDir()
	themes := filepath.Join(dataDir, "themes")
	runtime := filepath.Join(dataDir, "runtime")

	reg := &stubRegistry{meta: meta}
	inv := inventory.New(themes, cache.New())
	caps := capability.NewTable()
	res := version.NewResolver(reg, inv)

	ins := installer.New(installer.Options{
		ThemesRoot:     themes,
		RuntimeRoot:    runtime,
		ProtectedTheme: "default",
	}, reg, inv, res, caps)

	return &fixture{ins: ins, inv: inv, caps: caps, themes: themes, runtime: runtime, hits: hits}, meta
}

func (f *fixture) assertScratchClean(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.runtime)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		t.Fatalf("read runtime root: %v", err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected clean scratch root, found %v", names)
	}
}

func (f *fixture) stampOf(t *testing.T, name string) string {
	t.Helper()
	v, err := f.inv.StampedVersion(name)
	if err != nil {
		t.Fatalf("StampedVersion: %v", err)
	}
	return v
}

func seedTheme(t *testing.T, themes, name, stamped string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(themes, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("seed theme: %v", err)
	}
	if stamped != "" {
		if err := os.WriteFile(filepath.Join(dir, inventory.VersionFile), []byte(stamped+"\n"), 0644); err != nil {
			t.Fatalf("seed stamp: %v", err)
		}
	}
	for fname, content := range files {
		if err := os.WriteFile(filepath.Join(dir, fname), []byte(content), 0644); err != nil {
			t.Fatalf("seed file: %v", err)
		}
	}
}

func TestInstallSuccess(t *testing.T) {
	archive := buildThemeZip(t, "lumo-themes-aurora-1.10", map[string]string{
		"theme.json":           `{"name": "aurora"}`,
		"templates/index.html": "<html></html>",
	})
	f, meta := newFixture(t, archive, http.StatusOK)

	got, err := f.ins.Install("aurora")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if got != meta {
		t.Fatalf("expected returned details to be the fetched metadata")
	}

	themes, err := f.inv.ListInstalled()
	if err != nil {
		t.Fatalf("ListInstalled: %v", err)
	}
	if _, ok := themes["aurora"]; !ok {
		t.Fatalf("expected aurora in installed listing, got %v", themes)
	}

	if v := f.stampOf(t, "aurora"); v != "1.10" {
		t.Fatalf("expected stamp 1.10, got %q", v)
	}

	if _, err := os.Stat(filepath.Join(f.themes, "aurora-old")); !os.IsNotExist(err) {
		t.Fatalf("expected no -old sibling after install")
	}

	data, err := os.ReadFile(filepath.Join(f.themes, "aurora", "templates", "index.html"))
	if err != nil || string(data) != "<html></html>" {
		t.Fatalf("expected extracted bundle contents, got %q (%v)", data, err)
	}

	f.assertScratchClean(t)
}

func TestInstallIdempotentWhenCurrent(t *testing.T) {
	archive := buildThemeZip(t, "lumo-themes-aurora-1.10", map[string]string{"theme.json": "{}"})
	f, meta := newFixture(t, archive, http.StatusOK)

	if _, err := f.ins.Install("aurora"); err != nil {
		t.Fatalf("first Install: %v", err)
	}
	downloads := f.hits.Load()

	got, err := f.ins.Install("aurora")
	if err != nil {
		t.Fatalf("second Install: %v", err)
	}
	if got != meta {
		t.Fatalf("expected same details from idempotent install")
	}
	if f.hits.Load() != downloads {
		t.Fatalf("idempotent install must not download, hits went %d -> %d", downloads, f.hits.Load())
	}
}

func TestInstallReplacesExistingBundle(t *testing.T) {
	archive := buildThemeZip(t, "lumo-themes-aurora-1.10", map[string]string{"new.txt": "new"})
	f, _ := newFixture(t, archive, http.StatusOK)

	seedTheme(t, f.themes, "aurora", "1.2", map[string]string{"stale.txt": "old"})

	if _, err := f.ins.Install("aurora"); err != nil {
		t.Fatalf("Install: %v", err)
	}

	if v := f.stampOf(t, "aurora"); v != "1.10" {
		t.Fatalf("expected stamp 1.10 after upgrade, got %q", v)
	}
	if _, err := os.Stat(filepath.Join(f.themes, "aurora", "stale.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected previous bundle contents to be replaced")
	}
	if _, err := os.Stat(filepath.Join(f.themes, "aurora-old")); !os.IsNotExist(err) {
		t.Fatalf("expected backup to be purged after swap")
	}
	f.assertScratchClean(t)
}

func TestInstallLayoutInvalidPreservesExisting(t *testing.T) {
	// Archive's top-level directory does not follow the convention.
	archive := buildThemeZip(t, "wrong-dir", map[string]string{"theme.json": "{}"})
	f, _ := newFixture(t, archive, http.StatusOK)

	seedTheme(t, f.themes, "aurora", "1.2", map[string]string{"keep.txt": "precious"})

	_, err := f.ins.Install("aurora")
	if !errors.Is(err, installer.ErrLayoutInvalid) {
		t.Fatalf("expected ErrLayoutInvalid, got %v", err)
	}

	// Pre-existing bundle is byte-for-byte unchanged.
	data, rerr := os.ReadFile(filepath.Join(f.themes, "aurora", "keep.txt"))
	if rerr != nil || string(data) != "precious" {
		t.Fatalf("expected existing bundle untouched, got %q (%v)", data, rerr)
	}
	if v := f.stampOf(t, "aurora"); v != "1.2" {
		t.Fatalf("expected stamp unchanged, got %q", v)
	}
	f.assertScratchClean(t)
}

func TestInstallDownloadFailed(t *testing.T) {
	f, _ := newFixture(t, nil, http.StatusNotFound)

	_, err := f.ins.Install("aurora")
	if !errors.Is(err, installer.ErrDownloadFailed) {
		t.Fatalf("expected ErrDownloadFailed, got %v", err)
	}
	f.assertScratchClean(t)
}

func TestInstallExtractFailed(t *testing.T) {
	f, _ := newFixture(t, []byte("this is not a zip archive"), http.StatusOK)

	_, err := f.ins.Install("aurora")
	if !errors.Is(err, installer.ErrExtractFailed) {
		t.Fatalf("expected ErrExtractFailed, got %v", err)
	}
	f.assertScratchClean(t)
}

func TestInstallPropagatesRegistryError(t *testing.T) {
	f, _ := newFixture(t, nil, http.StatusOK)
	broken := &stubRegistry{err: registry.ErrRemoteUnavailable}

	ins := installer.New(installer.Options{
		ThemesRoot:     f.themes,
		RuntimeRoot:    f.runtime,
		ProtectedTheme: "default",
	}, broken, f.inv, version.NewResolver(broken, f.inv), nil)

	if _, err := ins.Install("aurora"); !errors.Is(err, registry.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestUpdateWhenCurrentReturnsDetails(t *testing.T) {
	archive := buildThemeZip(t, "lumo-themes-aurora-1.10", map[string]string{"theme.json": "{}"})
	f, meta := newFixture(t, archive, http.StatusOK)

	seedTheme(t, f.themes, "aurora", "1.10", nil)

	got, err := f.ins.Update("aurora")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got != meta {
		t.Fatalf("expected current details")
	}
	if f.hits.Load() != 0 {
		t.Fatalf("expected no download for current theme, got %d hits", f.hits.Load())
	}
}

func TestUpdateInstallsWhenDue(t *testing.T) {
	archive := buildThemeZip(t, "lumo-themes-aurora-1.10", map[string]string{"theme.json": "{}"})
	f, _ := newFixture(t, archive, http.StatusOK)

	seedTheme(t, f.themes, "aurora", "1.2", nil)

	if _, err := f.ins.Update("aurora"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v := f.stampOf(t, "aurora"); v != "1.10" {
		t.Fatalf("expected stamp 1.10 after update, got %q", v)
	}
}

func TestUpdateUnknownTheme(t *testing.T) {
	f, _ := newFixture(t, nil, http.StatusOK)

	if _, err := f.ins.Update("ghost"); !errors.Is(err, inventory.ErrNotInstalled) {
		t.Fatalf("expected ErrNotInstalled, got %v", err)
	}
}

func TestUninstall(t *testing.T) {
	f, _ := newFixture(t, nil, http.StatusOK)
	seedTheme(t, f.themes, "aurora", "1.2", map[string]string{"a.txt": "x"})
	if err := os.MkdirAll(filepath.Join(f.themes, "aurora", "nested"), 0755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	f.caps.Register("aurora", "palette", func(capability.Input) (any, error) { return nil, nil })

	if err := f.ins.Uninstall("aurora"); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}

	if _, err := os.Stat(filepath.Join(f.themes, "aurora")); !os.IsNotExist(err) {
		t.Fatalf("expected bundle directory removed")
	}
	if ok, _ := f.inv.IsInstalled("aurora"); ok {
		t.Fatalf("expected listing to drop aurora")
	}
	if got := f.caps.Methods("aurora"); len(got) != 0 {
		t.Fatalf("expected capabilities dropped, got %v", got)
	}
}

func TestUninstallProtectedTheme(t *testing.T) {
	f, _ := newFixture(t, nil, http.StatusOK)

	// Refused whether or not the bundle exists.
	if err := f.ins.Uninstall("default"); !errors.Is(err, installer.ErrProtectedTheme) {
		t.Fatalf("expected ErrProtectedTheme, got %v", err)
	}

	seedTheme(t, f.themes, "default", "1.0", nil)
	if err := f.ins.Uninstall("default"); !errors.Is(err, installer.ErrProtectedTheme) {
		t.Fatalf("expected ErrProtectedTheme, got %v", err)
	}
	if ok, _ := f.inv.IsInstalled("default"); !ok {
		t.Fatalf("expected protected bundle to survive")
	}
}

func TestUninstallUnknownTheme(t *testing.T) {
	f, _ := newFixture(t, nil, http.StatusOK)

	if err := f.ins.Uninstall("ghost"); !errors.Is(err, inventory.ErrNotInstalled) {
		t.Fatalf("expected ErrNotInstalled, got %v", err)
	}
}
