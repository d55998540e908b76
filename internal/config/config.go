// Package config loads the optional YAML configuration shared by every CLI.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

// Config holds the engine-wide tunables a deployment may override.
type Config struct {
	Storage struct {
		PageSize int `mapstructure:"page_size"`
	} `mapstructure:"storage"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	cfg := &Config{}
	cfg.Storage.PageSize = 4096
	cfg.Log.Level = "info"
	return cfg
}

// Load reads path (YAML) and overlays it on Defaults(). A missing file is
// not an error: the CLIs run with defaults. A present-but-unparsable file
// is a config error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}

// SlogLevel parses the configured log level, defaulting to Info on an
// unrecognized value.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
