// Package config loads recipe-cli settings from <dir>/config.json.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robertmeta/recipe-cli/model"
)

// FileName is the config file name inside the config directory.
const FileName = "config.json"

// Config holds application configuration.
type Config struct {
	// APIBaseURL is the root of the recipe API.
	APIBaseURL string `json:"api_base_url,omitempty"`

	// TopN is how many predictions a search asks for.
	TopN int `json:"top_n,omitempty"`

	// TimeoutSeconds bounds each API request. 0, the default, disables the
	// timeout.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`

	// DBPath is the SQLite file holding the access token.
	// Relative paths are resolved against the config directory.
	DBPath string `json:"db_path,omitempty"`

	// LogLevel is a zerolog level name.
	LogLevel string `json:"log_level,omitempty"`

	// LatestSearchOnly discards responses of superseded searches.
	LatestSearchOnly bool `json:"latest_search_only,omitempty"`
}

// DefaultConfig returns the default configuration for baseDir.
func DefaultConfig(baseDir string) *Config {
	return &Config{
		APIBaseURL: "http://localhost:5000",
		TopN:       model.DefaultTopN,
		DBPath:     filepath.Join(baseDir, "recipe-cli.db"),
		LogLevel:   "info",
	}
}

// DefaultDir returns ~/.config/recipe-cli, or the working directory when
// the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "recipe-cli")
}

// Load reads baseDir/config.json over the defaults. A missing file yields
// the defaults.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, FileName))
	if err != nil {
		return nil, err
	}
	if cfg.DBPath != "" && !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(baseDir, cfg.DBPath)
	}

	merged := Merge(DefaultConfig(baseDir), cfg)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filepath.Join(baseDir, FileName), err)
	}
	return merged, nil
}

// loadFileRaw returns a zero config when the file does not exist.
func loadFileRaw(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Merge combines base and overlay. Non-zero overlay values win.
func Merge(base, overlay *Config) *Config {
	result := *base

	if overlay.APIBaseURL != "" {
		result.APIBaseURL = overlay.APIBaseURL
	}
	if overlay.TopN != 0 {
		result.TopN = overlay.TopN
	}
	if overlay.TimeoutSeconds != 0 {
		result.TimeoutSeconds = overlay.TimeoutSeconds
	}
	if overlay.DBPath != "" {
		result.DBPath = overlay.DBPath
	}
	if overlay.LogLevel != "" {
		result.LogLevel = overlay.LogLevel
	}
	if overlay.LatestSearchOnly {
		result.LatestSearchOnly = true
	}

	return &result
}

// Validate rejects values no client could use.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api_base_url is required")
	}
	if c.TopN < 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the request timeout as a duration. Zero means none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
