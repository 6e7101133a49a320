package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Defaults applied when the config file is absent or partial.
const (
	DefaultRegistryURL     = "https://packages.lumocms.org"
	DefaultProtectedTheme  = "default"
	DefaultDownloadSeconds = 600
)

// Config represents the main configuration file structure.
type Config struct {
	Locale          string `json:"locale"`          // "auto" or ISO format (e.g., "ko-KR", "en-US")
	RegistryURL     string `json:"registryUrl"`     // base URL of the theme package registry
	DataDir         string `json:"dataDir"`         // root holding themes/ and runtime/; empty = default
	ProtectedTheme  string `json:"protectedTheme"`  // theme name that can never be uninstalled
	Frozen          bool   `json:"frozen"`          // frozen deployments reject registry browsing
	DownloadSeconds int    `json:"downloadSeconds"` // ceiling for archive downloads; 0 = unbounded
	ActiveTheme     string `json:"activeTheme"`     // currently active installed theme
}

var (
	cfg     *Config
	cfgOnce sync.Once
	cfgMu   sync.RWMutex
)

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Locale:          "auto",
		RegistryURL:     DefaultRegistryURL,
		DataDir:         DefaultDataDir(),
		ProtectedTheme:  DefaultProtectedTheme,
		Frozen:          false,
		DownloadSeconds: DefaultDownloadSeconds,
		ActiveTheme:     DefaultProtectedTheme,
	}
}

// Load loads the configuration from file.
func Load() (*Config, error) {
	cfgMu.RLock()
	defer cfgMu.RUnlock()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Fill defaults for fields older config files may lack
	if config.Locale == "" {
		config.Locale = "auto"
	}
	if config.RegistryURL == "" {
		config.RegistryURL = DefaultRegistryURL
	}
	if config.DataDir == "" {
		config.DataDir = DefaultDataDir()
	}
	if config.ProtectedTheme == "" {
		config.ProtectedTheme = DefaultProtectedTheme
	}
	if config.ActiveTheme == "" {
		config.ActiveTheme = config.ProtectedTheme
	}

	return &config, nil
}

// Save saves the configuration to file.
func Save(config *Config) error {
	cfgMu.Lock()
	defer cfgMu.Unlock()

	if err := EnsureDir(ThemeHubDir()); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0644)
}

// Get returns the current configuration (singleton).
func Get() *Config {
	cfgOnce.Do(func() {
		var err error
		cfg, err = Load()
		if err != nil {
			cfg = NewConfig()
		}
	})
	return cfg
}

// GetLocale returns the configured locale.
func GetLocale() string {
	return Get().Locale
}

// SetLocale sets the locale and saves.
func SetLocale(locale string) error {
	config := Get()
	config.Locale = locale
	return Save(config)
}

// SetActiveTheme persists the active theme name.
func SetActiveTheme(name string) error {
	config := Get()
	config.ActiveTheme = name
	return Save(config)
}

// SetFrozen sets the frozen flag and saves.
func SetFrozen(frozen bool) error {
	config := Get()
	config.Frozen = frozen
	return Save(config)
}

// SetRegistryURL sets the registry base URL and saves.
func SetRegistryURL(url string) error {
	config := Get()
	config.RegistryURL = url
	return Save(config)
}
