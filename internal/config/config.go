// Package config loads tada's TOML settings.
//
// Lookup order, later wins: built-in defaults, the config file, TADA_* env vars.
// Command-line flags are applied on top by the caller, which then calls Validate.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const fileName = "config.toml"

// Config is the decoded config file.
type Config struct {
	Theme       string `toml:"theme"`
	IDs         string `toml:"ids"`
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	CharLimit   int    `toml:"char_limit"`
	Placeholder string `toml:"placeholder"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Theme:       "classic",
		IDs:         "uuid",
		LogLevel:    "warn",
		CharLimit:   200,
		Placeholder: "New item...",
	}
}

// DefaultPath is ~/.config/tada/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".config", "tada", fileName), nil
}

// Load reads path (DefaultPath when empty) and applies env overrides.
// A missing file is not an error. The result is not validated yet, so a
// later source can still replace a bad value.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if _, err := toml.Decode(string(b), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("TADA_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_IDS")); v != "" {
		c.IDs = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_LOG_FILE")); v != "" {
		c.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_CHAR_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TADA_CHAR_LIMIT: %w", err)
		}
		c.CharLimit = n
	}
	return nil
}

// Validate checks enumerated values and normalises their case.
func (c *Config) Validate() error {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	c.IDs = strings.ToLower(strings.TrimSpace(c.IDs))
	switch c.IDs {
	case "uuid", "counter":
	default:
		return fmt.Errorf("unknown id scheme %q", c.IDs)
	}
	if c.CharLimit < 0 {
		return fmt.Errorf("char_limit must not be negative, got %d", c.CharLimit)
	}
	return nil
}
