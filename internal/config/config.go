package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Output formats for the summary table of an export bundle.
const (
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

type Config struct {
	OutputFormat      string `toml:"output_format"`
	ExportDir         string `toml:"export_dir"`
	UniformSingletons bool   `toml:"uniform_singletons"`
	CopySource        bool   `toml:"copy_source"`
	Overwrite         bool   `toml:"overwrite"`
	LogLevel          string `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		OutputFormat: FormatJSON,
		ExportDir:    "exports",
		CopySource:   true,
		LogLevel:     "info",
	}
}

// DefaultPath is ~/.config/fitsummary/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fitsummary", "config.toml"), nil
}

// Load reads path over the defaults. An empty path falls back to
// DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.ExportDir = expandHome(cfg.ExportDir, home)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate normalizes case and rejects unknown values.
func (c *Config) Validate() error {
	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	switch c.OutputFormat {
	case FormatJSON, FormatCSV, FormatParquet:
	default:
		return fmt.Errorf("output_format %q: want json, csv or parquet", c.OutputFormat)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		return errors.New("export_dir is empty")
	}
	return nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
