package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ponymatrix/internal/logging"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "ponymatrix.yaml"

// Config holds all ponymatrix configuration.
type Config struct {
	// Data catalog location
	Data DataConfig `yaml:"data"`

	// Prompt output file
	Output OutputConfig `yaml:"output"`

	// Interactive session behaviour
	Session SessionConfig `yaml:"session"`

	// Logging
	Logging logging.Options `yaml:"logging"`
}

// DataConfig configures where the tag tables live.
type DataConfig struct {
	Dir    string `yaml:"dir"`
	Themes string `yaml:"themes"` // auto, on, off
}

// OutputConfig configures the append-only prompt file.
type OutputConfig struct {
	File   string `yaml:"file"`
	Format string `yaml:"format"` // fenced, break
}

// SessionConfig configures the interactive flow.
type SessionConfig struct {
	// Seed for random menu choices; 0 draws a fresh seed per run.
	Seed        int64  `yaml:"seed"`
	ClearScreen bool   `yaml:"clear_screen"`
	Interface   string `yaml:"interface"` // line, tui
}

// Valid values for the enumerated settings.
var (
	ValidThemeModes    = []string{"auto", "on", "off"}
	ValidOutputFormats = []string{"fenced", "break"}
	ValidInterfaces    = []string{"line", "tui"}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:    "data",
			Themes: "auto",
		},
		Output: OutputConfig{
			File:   "prompts.txt",
			Format: "fenced",
		},
		Session: SessionConfig{
			Seed:        0,
			ClearScreen: true,
			Interface:   "line",
		},
		Logging: logging.Options{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults when the file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if dir := os.Getenv("PONYMATRIX_DATA_DIR"); dir != "" {
		c.Data.Dir = dir
	}
	if out := os.Getenv("PONYMATRIX_OUTPUT"); out != "" {
		c.Output.File = out
	}
	if format := os.Getenv("PONYMATRIX_FORMAT"); format != "" {
		c.Output.Format = format
	}
	if level := os.Getenv("PONYMATRIX_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if seed := os.Getenv("PONYMATRIX_SEED"); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid PONYMATRIX_SEED %q: %w", seed, err)
		}
		c.Session.Seed = n
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data directory not configured")
	}
	if c.Output.File == "" {
		return fmt.Errorf("output file not configured")
	}
	if !contains(ValidThemeModes, c.Data.Themes) {
		return fmt.Errorf("invalid theme mode: %s (valid: %v)", c.Data.Themes, ValidThemeModes)
	}
	if !contains(ValidOutputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, ValidOutputFormats)
	}
	if !contains(ValidInterfaces, c.Session.Interface) {
		return fmt.Errorf("invalid session interface: %s (valid: %v)", c.Session.Interface, ValidInterfaces)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// OutputPath returns the absolute output file path when it can be resolved.
func (c *Config) OutputPath() string {
	abs, err := filepath.Abs(c.Output.File)
	if err != nil {
		return c.Output.File
	}
	return abs
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
