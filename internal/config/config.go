// Package config reads bajzel.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "bajzel.toml"

// Config is the decoded file. Use IsSet to tell a zero value from an absent key.
type Config struct {
	Path     string         `toml:"-"`
	Generate GenerateConfig `toml:"generate"`
	Output   OutputConfig   `toml:"output"`

	meta toml.MetaData
}

type GenerateConfig struct {
	Seed       uint64 `toml:"seed"`
	Count      int    `toml:"count"`
	Jobs       int    `toml:"jobs"`
	OutDir     string `toml:"out_dir"`
	AppendTerm bool   `toml:"append_term"`
}

type OutputConfig struct {
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// IsSet reports whether the file defines the dotted key, e.g. IsSet("generate", "seed").
func (c *Config) IsSet(key ...string) bool {
	if c == nil {
		return false
	}
	return c.meta.IsDefined(key...)
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest config; ok is false when none exists.
func Discover(startDir string) (cfg *Config, ok bool, err error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Load decodes and validates path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := &Config{Path: path}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.meta = meta
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Output.Color) {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto, on or off, got %q", c.Output.Color)
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must not be negative")
	}
	if c.Generate.Count < 0 {
		return fmt.Errorf("[generate].count must not be negative")
	}
	if c.Generate.Jobs < 0 {
		return fmt.Errorf("[generate].jobs must not be negative")
	}
	return nil
}
