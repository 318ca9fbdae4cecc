// Package config loads the editor settings from a YAML file, with
// environment overrides and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"microscope/internal/application/layout"
)

// Environment variables read by Load
const (
	EnvConfigPath = "MICROSCOPE_CONFIG"
	EnvLogLevel   = "MICROSCOPE_LOG_LEVEL"
	EnvLogFile    = "MICROSCOPE_LOG_FILE"
	EnvSeed       = "MICROSCOPE_SEED"
)

// Log levels accepted in the config file
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// Config represents the application configuration
type Config struct {
	Layout    LayoutConfig `yaml:"layout"`
	Theme     ThemeConfig  `yaml:"theme"`
	Log       LogConfig    `yaml:"log"`
	Seed      bool         `yaml:"seed"`
	WheelStep int          `yaml:"wheel_step"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.WheelStep, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

// MetricsConfig sizes the cards of one level, in terminal cells
type MetricsConfig struct {
	Unit    int `yaml:"unit"`
	Cross   int `yaml:"cross"`
	Spacing int `yaml:"spacing"`
}

// Validate validates the metrics
func (m *MetricsConfig) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Unit, validation.Required, validation.Min(3)),
		validation.Field(&m.Cross, validation.Required, validation.Min(3)),
		// boundary dividers take half the spacing and must stay clickable
		validation.Field(&m.Spacing, validation.Required, validation.Min(2)),
	)
}

func (m MetricsConfig) metrics() layout.Metrics {
	return layout.Metrics{Unit: m.Unit, Cross: m.Cross, Spacing: m.Spacing}
}

// LayoutConfig holds the metrics of the three levels
type LayoutConfig struct {
	Periods MetricsConfig `yaml:"periods"`
	Events  MetricsConfig `yaml:"events"`
	Scenes  MetricsConfig `yaml:"scenes"`
}

// Validate validates every level
func (c *LayoutConfig) Validate() error {
	if err := c.Periods.Validate(); err != nil {
		return fmt.Errorf("periods: %w", err)
	}
	if err := c.Events.Validate(); err != nil {
		return fmt.Errorf("events: %w", err)
	}
	if err := c.Scenes.Validate(); err != nil {
		return fmt.Errorf("scenes: %w", err)
	}
	return nil
}

// Engine returns the layout engine configuration
func (c LayoutConfig) Engine() layout.Config {
	return layout.Config{
		Periods: c.Periods.metrics(),
		Events:  c.Events.metrics(),
		Scenes:  c.Scenes.metrics(),
	}
}

// ThemeConfig holds the colours of the terminal UI. Values are hex colours
// or ANSI colour numbers.
type ThemeConfig struct {
	Accent string `yaml:"accent"`
	Light  string `yaml:"light"`
	Dark   string `yaml:"dark"`
	Text   string `yaml:"text"`
	Muted  string `yaml:"muted"`
	Error  string `yaml:"error"`
}

// Validate validates the colours
func (c *ThemeConfig) Validate() error {
	color := []validation.Rule{validation.Required, validation.Match(colorPattern).Error("must be #rrggbb or an ANSI colour number")}
	return validation.ValidateStruct(c,
		validation.Field(&c.Accent, color...),
		validation.Field(&c.Light, color...),
		validation.Field(&c.Dark, color...),
		validation.Field(&c.Text, color...),
		validation.Field(&c.Muted, color...),
		validation.Field(&c.Error, color...),
	)
}

// LogConfig controls logging output
type LogConfig struct {
	Level string `yaml:"level"`
	// File receives log output while the terminal UI owns the screen
	File string `yaml:"file"`
}

// Validate validates the log configuration
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In(LevelDebug, LevelInfo, LevelWarn, LevelError)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values
func NewDefaultConfig() *Config {
	m := layout.DefaultConfig()
	return &Config{
		Layout: LayoutConfig{
			Periods: MetricsConfig{Unit: m.Periods.Unit, Cross: m.Periods.Cross, Spacing: m.Periods.Spacing},
			Events:  MetricsConfig{Unit: m.Events.Unit, Cross: m.Events.Cross, Spacing: m.Events.Spacing},
			Scenes:  MetricsConfig{Unit: m.Scenes.Unit, Cross: m.Scenes.Cross, Spacing: m.Scenes.Spacing},
		},
		Theme: ThemeConfig{
			Accent: "#7D56F4",
			Light:  "#E8E4D9",
			Dark:   "#3B3B4F",
			Text:   "#FAFAFA",
			Muted:  "#626262",
			Error:  "#FF5F87",
		},
		Log: LogConfig{
			Level: LevelInfo,
			File:  defaultLogFile(),
		},
		WheelStep: 3,
	}
}

// Path returns the config file path from MICROSCOPE_CONFIG, falling back to
// ~/.config/microscope/config.yaml
func Path() string {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "microscope", "config.yaml")
}

// Load reads the config file at path over the defaults. A missing file
// leaves the defaults in place. Environment variables are expanded in the
// file and then override it.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	return nil
}

// defaultLogFile returns the log path under the XDG state directory
func defaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "microscope", "microscope.log")
}
