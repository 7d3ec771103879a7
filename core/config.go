package core

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

const DefaultConfigFile = "config.toml"

// LoggingConfig is the [logging] table.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

// Config is read from an optional TOML file; command line flags are applied
// on top with ApplyOptions.
type Config struct {
	SteamPath       string        `toml:"steam_path"`
	ExtraCandidates []string      `toml:"extra_candidates"`
	ShortcutUser    string        `toml:"shortcut_user"`
	ParallelScan    bool          `toml:"parallel_scan"`
	Logging         LoggingConfig `toml:"logging"`
}

func DefaultConfig() *Config {
	return &Config{
		ParallelScan: true,
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, APP_NAME, DefaultConfigFile), nil
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; unknown keys are an error. Values are checked by Validate once
// command line flags have been applied.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		Logger.Debug("no config file", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ShortcutUser != "" {
		if _, err := strconv.ParseUint(c.ShortcutUser, 10, 64); err != nil {
			return fmt.Errorf("shortcut_user %q is not a numeric user id", c.ShortcutUser)
		}
	}
	if c.Logging.Level != "" {
		if _, err := log.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging.level %q: %w", c.Logging.Level, err)
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("logging.format %q: want text, json or logfmt", c.Logging.Format)
	}
	return nil
}

// ApplyOptions overrides config values with the flags that were set.
func (c *Config) ApplyOptions(ops *Options) {
	if ops.SteamPath != "" {
		c.SteamPath = ops.SteamPath
	}
	if ops.ShortcutUser != "" {
		c.ShortcutUser = ops.ShortcutUser
	}
	if ops.NoParallel {
		c.ParallelScan = false
	}
	if ops.LogLocation != "" {
		c.Logging.Path = ops.LogLocation
	}
	if ops.Verbose {
		c.Logging.Level = "debug"
	}
	c.ExtraCandidates = append(c.ExtraCandidates, ops.Extra...)
}
