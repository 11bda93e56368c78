// Package config loads the voltactl configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	// StorePath is the schema store directory.  Empty selects an
	// in-memory store.
	StorePath string `yaml:"store_path"`
	Limits    Limits `yaml:"limits"`
	Cache     Cache  `yaml:"cache"`
	Log       Log    `yaml:"log"`
}

// Limits bounds expression checking.
type Limits struct {
	MaxExprDepth      int `yaml:"max_expr_depth"`
	MaxFunctionArgs   int `yaml:"max_function_args"`
	MaxContainerElems int `yaml:"max_container_elems"`
}

// Cache sizes the schema read caches.
type Cache struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

// Log controls file logging and rotation.
type Log struct {
	Path       string `yaml:"path"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Limits: Limits{
			MaxExprDepth:      100,
			MaxFunctionArgs:   256,
			MaxContainerElems: 65535,
		},
		Cache: Cache{Enabled: true, Size: 1024},
		Log:   Log{Level: "info", MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 28},
	}
}

// Load reads path and overlays it on the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Limits.MaxExprDepth <= 0 {
		return fmt.Errorf("limits.max_expr_depth must be positive, got %d", c.Limits.MaxExprDepth)
	}
	if c.Limits.MaxFunctionArgs <= 0 {
		return fmt.Errorf("limits.max_function_args must be positive, got %d", c.Limits.MaxFunctionArgs)
	}
	if c.Limits.MaxContainerElems <= 0 {
		return fmt.Errorf("limits.max_container_elems must be positive, got %d", c.Limits.MaxContainerElems)
	}
	if c.Cache.Enabled && c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
