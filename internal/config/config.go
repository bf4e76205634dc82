// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete deskchat configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Chat   ChatConfig   `toml:"chat"`
	UI     UIConfig     `toml:"ui"`

	// DataDir is where conversations and the auth token are kept.
	// Defaults to the config directory itself.
	DataDir string `toml:"data_dir"`
}

// ServerConfig contains backend connection settings.
type ServerConfig struct {
	// URL is the base URL of the Q&A backend.
	URL string `toml:"url"`
	// TimeoutSecs bounds every request to the backend.
	TimeoutSecs int `toml:"timeout_secs"`
}

// ChatConfig contains chat behavior settings.
type ChatConfig struct {
	// DefaultDepartment selects the department active at startup.
	DefaultDepartment string `toml:"default_department"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Theme is the UI theme: "dark" or "light".
	Theme string `toml:"theme"`
	// MarkdownReplies renders department replies through the markdown
	// renderer when true.
	MarkdownReplies bool `toml:"markdown_replies"`
	// ShowTimestamps displays message timestamps in the transcript.
	ShowTimestamps bool `toml:"show_timestamps"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:         "http://127.0.0.1:8000",
			TimeoutSecs: 8,
		},
		Chat: ChatConfig{
			DefaultDepartment: "engineering",
		},
		UI: UIConfig{
			Theme:           "dark",
			MarkdownReplies: true,
			ShowTimestamps:  false,
		},
	}
}

// Timeout returns the server timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// Dir returns the deskchat configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".deskchat"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD
// =============================================================================

// Load loads configuration from the default config file, falling back to
// defaults when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path. A missing
// file is not an error; the defaults apply.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
		fillDefaults(cfg)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Server.URL == "" {
		cfg.Server.URL = defaults.Server.URL
	}
	if cfg.Server.TimeoutSecs == 0 {
		cfg.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if cfg.Chat.DefaultDepartment == "" {
		cfg.Chat.DefaultDepartment = defaults.Chat.DefaultDepartment
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - DESKCHAT_SERVER_URL: overrides server.url
//   - DESKCHAT_TIMEOUT_SECS: overrides server.timeout_secs
//   - DESKCHAT_DEPARTMENT: overrides chat.default_department
//   - DESKCHAT_DATA_DIR: overrides data_dir
//   - DESKCHAT_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("DESKCHAT_SERVER_URL"); u != "" {
		c.Server.URL = u
	}
	if secs := os.Getenv("DESKCHAT_TIMEOUT_SECS"); secs != "" {
		var n int
		if _, err := fmt.Sscanf(secs, "%d", &n); err == nil && n > 0 {
			c.Server.TimeoutSecs = n
		}
	}
	if dept := os.Getenv("DESKCHAT_DEPARTMENT"); dept != "" {
		c.Chat.DefaultDepartment = dept
	}
	if dir := os.Getenv("DESKCHAT_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if theme := os.Getenv("DESKCHAT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate validates the configuration and returns the first error found.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("server.url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("server.url: unsupported scheme %q", parsed.Scheme)
	}

	if c.Server.TimeoutSecs <= 0 {
		return fmt.Errorf("server.timeout_secs: must be positive, got %d", c.Server.TimeoutSecs)
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.theme: must be dark or light, got %q", c.UI.Theme)
	}

	return nil
}

// =============================================================================
// SAVE
// =============================================================================

// Save saves the configuration to the default TOML file with owner-only
// permissions.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# deskchat configuration file")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ResolveDataDir returns the directory where conversations and the auth
// token live, creating it if needed.
func (c *Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		var err error
		dir, err = Dir()
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}
