// Package config handles the configuration directory, settings file and
// persisted client state (token and theme preference).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "gnotes"

	// SettingsFile is the YAML settings filename.
	SettingsFile = "config.yaml"

	// TokenFile is the stored authentication token filename.
	TokenFile = "token"

	// DefaultAPIURL is used when neither the settings file nor the environment name a backend.
	DefaultAPIURL = "http://localhost:8000"

	// DefaultSearchDebounce is the quiet window before a search query is committed.
	DefaultSearchDebounce = 300 * time.Millisecond

	// DefaultTimeout bounds each backend call.
	DefaultTimeout = 10 * time.Second
)

// Theme names accepted by the settings file.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Environment variables that override the settings file.
const (
	EnvAPIURL    = "GNOTES_API_URL"
	EnvConfigDir = "GNOTES_CONFIG_DIR"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the backend base URL, without the /api suffix.
	APIURL string

	// Theme is the persisted presentation preference.
	Theme string

	// SearchDebounce is the search settle window.
	SearchDebounce time.Duration

	// Timeout bounds each backend call.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Log receives debug output. Nil means discard.
	Log *slog.Logger
}

// fileSettings is the YAML-unmarshaling intermediary.
type fileSettings struct {
	APIURL         string `yaml:"api_url,omitempty"`
	Theme          string `yaml:"theme,omitempty"`
	SearchDebounce string `yaml:"search_debounce,omitempty"`
	Timeout        string `yaml:"timeout,omitempty"`
}

// New creates a Config rooted at configDir, or the default directory when empty.
// Settings come from config.yaml, then .env and the process environment.
func New(configDir string) (*Config, error) {
	_ = godotenv.Load()

	dir := configDir
	if dir == "" {
		dir = os.Getenv(EnvConfigDir)
	}
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := Default()
	cfg.Dir = dir

	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}

// Default returns a Config with built-in defaults and no directory.
func Default() *Config {
	return &Config{
		APIURL:         DefaultAPIURL,
		Theme:          ThemeLight,
		SearchDebounce: DefaultSearchDebounce,
		Timeout:        DefaultTimeout,
	}
}

// Logger returns Log, or a discarding logger when unset.
func (c *Config) Logger() *slog.Logger {
	if c.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Log
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) loadSettings() error {
	raw, err := c.readSettings()
	if err != nil {
		return err
	}
	if raw.APIURL != "" {
		c.APIURL = raw.APIURL
	}
	if raw.Theme != "" {
		if !ValidTheme(raw.Theme) {
			return fmt.Errorf("invalid theme in %s: %s", SettingsFile, raw.Theme)
		}
		c.Theme = raw.Theme
	}
	if raw.SearchDebounce != "" {
		d, err := time.ParseDuration(raw.SearchDebounce)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid search_debounce in %s: %s", SettingsFile, raw.SearchDebounce)
		}
		c.SearchDebounce = d
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid timeout in %s: %s", SettingsFile, raw.Timeout)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) readSettings() (fileSettings, error) {
	var raw fileSettings
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, os.ErrNotExist) {
		return raw, nil
	}
	if err != nil {
		return raw, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return raw, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return raw, nil
}

// SaveTheme persists the theme preference, keeping the other settings intact.
func (c *Config) SaveTheme(theme string) error {
	if !ValidTheme(theme) {
		return fmt.Errorf("invalid theme: %s", theme)
	}
	raw, err := c.readSettings()
	if err != nil {
		return err
	}
	raw.Theme = theme

	data, err := yaml.Marshal(&raw)
	if err != nil {
		return err
	}
	if err := c.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(c.SettingsPath(), data, 0600); err != nil {
		return err
	}
	c.Theme = theme
	return nil
}

// ValidTheme reports whether name is a known theme.
func ValidTheme(name string) bool {
	return name == ThemeLight || name == ThemeDark
}

// SettingsPath returns the path to the YAML settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// Tokens returns the persisted token store for this config directory.
func (c *Config) Tokens() *TokenStore {
	return &TokenStore{cfg: c}
}
