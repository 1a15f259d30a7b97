// Package config loads bcalm2dot defaults from a TOML file.
//
// The file is optional. Its default location follows the XDG base directory
// layout ($XDG_CONFIG_HOME/bcalm2dot/config.toml, falling back to
// ~/.config/bcalm2dot/config.toml):
//
//	oriented = true
//	symbols = false
//
//	[dot]
//	path = "/usr/bin/env dot"
//	format = "svg"
//	args = ["-Gdpi=150"]
//
//	[render]
//	format = "png"
//	cache = true
//	ttl = "720h"
//
//	[log]
//	level = "debug"
//
// Command-line flags override file values; the DOT_PATH environment variable
// overrides dot.path.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/bcalm2dot/pkg/cache"
	"github.com/matzehuels/bcalm2dot/pkg/errors"
	"github.com/matzehuels/bcalm2dot/pkg/render"
)

const (
	appName  = "bcalm2dot"
	fileName = "config.toml"
)

// Config holds user defaults.
type Config struct {
	Oriented bool   `toml:"oriented"`
	Symbols  bool   `toml:"symbols"`
	Dot      Dot    `toml:"dot"`
	Render   Render `toml:"render"`
	Log      Log    `toml:"log"`
}

// Dot configures the external dot executable.
type Dot struct {
	Path   string   `toml:"path"`
	Format string   `toml:"format"`
	Args   []string `toml:"args"`
}

// Render configures in-process rendering.
type Render struct {
	Format string   `toml:"format"`
	Cache  bool     `toml:"cache"`
	TTL    Duration `toml:"ttl"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration that decodes from a TOML string like "720h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Oriented: true,
		Render: Render{
			Cache: true,
			TTL:   Duration{cache.DefaultTTL},
		},
		Log: Log{Level: "info"},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the file at path on top of [Default] and applies environment
// overrides. An empty path means [DefaultPath]; a missing default file is
// not an error, but a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg.withEnv(), nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case os.IsNotExist(err) && !explicit:
		return Default().withEnv(), nil
	case os.IsNotExist(err):
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	case err != nil:
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg.withEnv(), nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.Render.Format != "" {
		if err := render.ValidateFormat(c.Render.Format); err != nil {
			return err
		}
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return level, nil
}

func (c Config) withEnv() Config {
	if p := os.Getenv(render.DotPathEnv); p != "" {
		c.Dot.Path = p
	}
	return c
}
