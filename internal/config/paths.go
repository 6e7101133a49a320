package config

import (
	"os"
	"path/filepath"
)

var (
	homeDir string
)

func init() {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		homeDir = "~"
	}
}

// ThemeHubDir returns the themehub config directory path
// ~/.config/themehub/
func ThemeHubDir() string {
	return filepath.Join(homeDir, ".config", "themehub")
}

// ConfigPath returns the config.json file path
// ~/.config/themehub/config.json
func ConfigPath() string {
	return filepath.Join(ThemeHubDir(), "config.json")
}

// DefaultDataDir returns the default data root holding themes/ and runtime/
// ~/.local/share/themehub/
func DefaultDataDir() string {
	return filepath.Join(homeDir, ".local", "share", "themehub")
}

// ThemesDir returns the live themes root under the given data root.
// One subdirectory per installed theme.
func ThemesDir(dataDir string) string {
	return filepath.Join(dataDir, "themes")
}

// RuntimeDir returns the scratch root for in-flight downloads and
// extractions under the given data root.
func RuntimeDir(dataDir string) string {
	return filepath.Join(dataDir, "runtime")
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
