// Package config holds the settings shared by every enigma front end: where
// the catalog and key-sheet database live, how to log, and how to lay out
// output.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"enigma/internal/format"
	"enigma/internal/logging"
)

const (
	// DefaultPath is read when no --config flag is given and the file exists.
	DefaultPath = ".enigma/config.yaml"

	// DefaultDBPath is the key-sheet database location.
	DefaultDBPath = ".enigma/keysheets.db"
)

// Environment variables that override file values.
const (
	EnvCatalog   = "ENIGMA_CATALOG"
	EnvDB        = "ENIGMA_DB"
	EnvLogLevel  = "ENIGMA_LOG_LEVEL"
	EnvLogFormat = "ENIGMA_LOG_FORMAT"
)

// Config is the on-disk configuration (YAML or JSON).
type Config struct {
	Catalog   []string `json:"catalog,omitempty" yaml:"catalog,omitempty"` // extra catalog files or directories
	DBPath    string   `json:"db,omitempty" yaml:"db,omitempty"`
	LogLevel  string   `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string   `json:"log_format,omitempty" yaml:"log_format,omitempty"`
	GroupSize int      `json:"group_size,omitempty" yaml:"group_size,omitempty"` // letters per output group, 0 = no grouping
	Table     string   `json:"table,omitempty" yaml:"table,omitempty"`           // ascii or markdown
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:    DefaultDBPath,
		LogLevel:  "info",
		LogFormat: "text",
		GroupSize: 5,
		Table:     "ascii",
	}
}

// LoadFromPath reads a config file (YAML or JSON) over the defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes over the defaults. ext is the file extension
// used as a format hint; empty = detect from content.
func Load(data []byte, ext string) (*Config, error) {
	c := Default()
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}
	if ext == ".json" {
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
		return c, nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return c, nil
}

// Resolve loads path, or DefaultPath when path is empty and that file
// exists, then applies the environment.
func Resolve(path string) (*Config, error) {
	c := Default()
	switch {
	case path != "":
		loaded, err := LoadFromPath(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	default:
		if _, err := os.Stat(DefaultPath); err == nil {
			loaded, err := LoadFromPath(DefaultPath)
			if err != nil {
				return nil, err
			}
			c = loaded
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}
	c.ApplyEnv(os.LookupEnv)
	return c, nil
}

// ApplyEnv overrides fields from the ENIGMA_* variables that are set.
// ENIGMA_CATALOG is a list separated like PATH.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvCatalog); ok && v != "" {
		c.Catalog = filepath.SplitList(v)
	}
	if v, ok := lookup(EnvDB); ok && v != "" {
		c.DBPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.LogFormat = v
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.GroupSize < 0 {
		return fmt.Errorf("config: group_size must not be negative, got %d", c.GroupSize)
	}
	if _, err := format.ParseMode(c.Table); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
