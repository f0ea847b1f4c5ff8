// Package config loads the visualizer settings from YAML, layered over the
// embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ripple/internal/palette"
	"ripple/internal/wave"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the visualizer.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Wave      WaveConfig      `yaml:"wave"`
	Render    RenderConfig    `yaml:"render"`
	Generator GeneratorConfig `yaml:"generator"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds grid dimensions and display pacing.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`
	TPS    int `yaml:"tps"`
}

// WaveConfig holds the physical parameters applied at startup.
type WaveConfig struct {
	Beta   float64 `yaml:"beta"`
	Omega  float64 `yaml:"omega"`
	Lambda float64 `yaml:"lambda"`
}

// RenderConfig selects the initial palette by name.
type RenderConfig struct {
	Palette string `yaml:"palette"`
}

// GeneratorConfig picks the field backend.
type GeneratorConfig struct {
	Backend       string `yaml:"backend"`
	Workers       int    `yaml:"workers"`         // <= 0 uses GOMAXPROCS
	ClearOnOrigin bool   `yaml:"clear_on_origin"` // zero the grid on every new origin
}

// TelemetryConfig controls frame timing summaries.
type TelemetryConfig struct {
	Dir      string  `yaml:"dir"`
	Window   int     `yaml:"window"`
	BudgetMS float64 `yaml:"budget_ms"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Params returns the wave parameters as a wave.Params.
func (c *Config) Params() wave.Params {
	return wave.Params{Beta: c.Wave.Beta, Omega: c.Wave.Omega, Lambda: c.Wave.Lambda}
}

// PaletteID resolves the configured palette name.
func (c *Config) PaletteID() (palette.ID, error) {
	return palette.Lookup(c.Render.Palette)
}

// Validate reports every invalid field joined into one error.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen: size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.Scale <= 0 {
		errs = append(errs, fmt.Errorf("screen: scale %d must be positive", c.Screen.Scale))
	}
	if c.Screen.TPS <= 0 {
		errs = append(errs, fmt.Errorf("screen: tps %d must be positive", c.Screen.TPS))
	}
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("wave: %w", err))
	}
	if _, err := c.PaletteID(); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if c.Telemetry.Window < 0 {
		errs = append(errs, fmt.Errorf("telemetry: window %d must not be negative", c.Telemetry.Window))
	}
	if c.Telemetry.BudgetMS < 0 {
		errs = append(errs, fmt.Errorf("telemetry: budget %.2fms must not be negative", c.Telemetry.BudgetMS))
	}
	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
