package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	View   ViewConfig   `yaml:"view"`
	Line   LineConfig   `yaml:"line"`
	Window WindowConfig `yaml:"window"`
	Mock   MockConfig   `yaml:"mock"`
}

// SourceConfig contains serial port configuration.
type SourceConfig struct {
	Port           string `yaml:"port"`
	BaudRate       int    `yaml:"baud_rate"`
	BufferSize     int    `yaml:"buffer_size"`
	AverageSamples int    `yaml:"average_samples"` // Samples per averaged point (0 = disabled)
}

// ViewConfig contains render surface parameters.
type ViewConfig struct {
	Width       float64 `yaml:"width"`                // Render width in pixels
	Height      float64 `yaml:"height"`               // Render height in pixels
	Scale       string  `yaml:"scale"`                // "linear" or "log"
	DPIIncrease float64 `yaml:"dpi_increase"`         // Render pixels per column step
	Percentile  float64 `yaml:"percentile"`           // Y bounds percentile (100 = full range)
	Asymmetry   float64 `yaml:"percentile_asymmetry"` // Shifts the percentile window up (+) or down (-), in percentage points
	Padding     float64 `yaml:"padding"`              // Fraction of the y range added above and below
}

// LineConfig contains line style parameters.
type LineConfig struct {
	Width  float64 `yaml:"width"`
	Dashed bool    `yaml:"dashed"`
	Dash   [2]int  `yaml:"dash"` // On and off lengths in path points
}

// WindowConfig contains the sliding window of retained samples.
type WindowConfig struct {
	Seconds float64 `yaml:"seconds"`
}

// MockConfig contains mock source configuration.
type MockConfig struct {
	Offset     float64       `yaml:"offset"`      // Signal offset
	Amplitude  float64       `yaml:"amplitude"`   // Sine amplitude
	Period     time.Duration `yaml:"period"`      // Sine period
	NoiseLevel float64       `yaml:"noise_level"` // Noise amplitude
	GapEvery   time.Duration `yaml:"gap_every"`   // Time between gaps (0 = no gaps)
	GapLength  time.Duration `yaml:"gap_length"`  // Duration of each gap
	SampleRate time.Duration `yaml:"sample_rate"` // Sample interval
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Port:       "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate:   115200,
			BufferSize: 100,
		},
		View: ViewConfig{
			Width:       1200,
			Height:      600,
			Scale:       "linear",
			DPIIncrease: 2,
			Percentile:  100,
			Padding:     0.1,
		},
		Line: LineConfig{
			Width:  1,
			Dashed: false,
			Dash:   [2]int{5, 5},
		},
		Window: WindowConfig{
			Seconds: 10,
		},
		Mock: MockConfig{
			Offset:     2.0,
			Amplitude:  1.0,
			Period:     4 * time.Second,
			NoiseLevel: 0.05,
			GapEvery:   7 * time.Second,
			GapLength:  500 * time.Millisecond,
			SampleRate: 5 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults repairs missing or unusable values.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Source.Port == "" {
		c.Source.Port = def.Source.Port
	}
	if c.Source.BaudRate <= 0 {
		c.Source.BaudRate = def.Source.BaudRate
	}
	if c.Source.BufferSize <= 0 {
		c.Source.BufferSize = def.Source.BufferSize
	}
	if c.Source.AverageSamples < 0 {
		c.Source.AverageSamples = 0
	}

	if c.View.Width <= 1 {
		c.View.Width = def.View.Width
	}
	if c.View.Height <= 0 {
		c.View.Height = def.View.Height
	}
	if c.View.Scale != "log" && c.View.Scale != "linear" {
		c.View.Scale = def.View.Scale
	}
	if c.View.DPIIncrease <= 0 {
		c.View.DPIIncrease = def.View.DPIIncrease
	}
	if c.View.Percentile <= 0 || c.View.Percentile > 100 {
		c.View.Percentile = def.View.Percentile
	}
	if c.View.Asymmetry < -100 || c.View.Asymmetry > 100 {
		c.View.Asymmetry = def.View.Asymmetry
	}
	if c.View.Padding < 0 {
		c.View.Padding = def.View.Padding
	}

	if c.Line.Width <= 0 {
		c.Line.Width = def.Line.Width
	}
	if c.Line.Dash[0] < 0 || c.Line.Dash[1] < 0 {
		c.Line.Dash = def.Line.Dash
	}

	if c.Window.Seconds <= 0 {
		c.Window.Seconds = def.Window.Seconds
	}

	if c.Mock.SampleRate <= 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
	if c.Mock.Period <= 0 {
		c.Mock.Period = def.Mock.Period
	}
}

// WindowDuration returns the sliding window as a duration.
func (c *Config) WindowDuration() time.Duration {
	return time.Duration(c.Window.Seconds * float64(time.Second))
}
