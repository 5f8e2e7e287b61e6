// Package config loads the application configuration from
// ~/.cfbmetrics/config.toml, falling back to defaults when absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Data     DataConfig     `toml:"data"`
	Teams    TeamsConfig    `toml:"teams"`
}

// DatabaseConfig contains storage settings.
type DatabaseConfig struct {
	Path string `toml:"path"` // SQLite database path; empty = ~/.cfbmetrics/metrics.db
}

// DataConfig contains input locations.
type DataConfig struct {
	Dir string `toml:"dir"` // Default directory of game JSON files
}

// TeamsConfig extends penalty attribution with extra team abbreviations.
type TeamsConfig struct {
	// Abbreviations maps a full team name to the extra short forms its
	// penalty text may carry, e.g. "Washington" = ["WASH", "UW"].
	Abbreviations map[string][]string `toml:"abbreviations"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Data:     DataConfig{Dir: "."},
		Teams:    TeamsConfig{Abbreviations: map[string][]string{}},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".cfbmetrics")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if the
// file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
