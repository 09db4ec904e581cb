// Package config loads the optional cove.yaml configuration file. Flags
// always win; the file only supplies defaults for values the user did not
// pass on the command line.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "cove.yaml"

// Duration decodes "30s"-style strings from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds the CLI and server defaults.
type Config struct {
	// RootDir is the directory relative workspace paths resolve against.
	RootDir string `yaml:"root_dir"`
	// Listen is the serve command's bind address.
	Listen string `yaml:"listen"`
	// Remote is the workspace service address the CLI talks to instead of
	// operating locally. Empty means local mode.
	Remote string `yaml:"remote"`
	// Timeout bounds remote calls.
	Timeout Duration `yaml:"timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Cache selects the result cache backend.
	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig selects and parametrizes the result cache.
type CacheConfig struct {
	// Backend is "", "memory" or "redis". Empty disables caching.
	Backend  string        `yaml:"backend"`
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      Duration      `yaml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RootDir:  ".",
		Listen:   ":9090",
		Timeout:  Duration(2 * time.Minute),
		LogLevel: "info",
	}
}

// Load reads cove.yaml from dir, falling back to defaults when the file does
// not exist. A file that exists but cannot be parsed is an error.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Level translates the configured log level name.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
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
