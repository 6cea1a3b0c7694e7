package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial      SerialConfig      `yaml:"serial"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Display     DisplayConfig     `yaml:"display"`
	Export      ExportConfig      `yaml:"export"`
	History     HistoryConfig     `yaml:"history"`
	Mock        MockConfig        `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// CalibrationConfig points at the persisted calibration record and sets the
// tare sampling parameters.
type CalibrationConfig struct {
	File        string        `yaml:"file"`
	TareSamples int           `yaml:"tare_samples"`
	TareDelay   time.Duration `yaml:"tare_delay"`
}

// DisplayConfig controls the monitor's terminal output.
type DisplayConfig struct {
	Period          time.Duration `yaml:"period"`           // Minimum time between displayed readings
	SmoothingWindow int           `yaml:"smoothing_window"` // Rolling median window (1 = no smoothing)
	StatsEvery      int           `yaml:"stats_every"`      // Print session statistics every N readings
}

// ExportConfig controls CSV export.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// HistoryConfig points at the session-history database.
type HistoryConfig struct {
	File string `yaml:"file"`
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	BaseVoltage   float64       `yaml:"base_voltage"`   // Idle sensor output (V)
	NoiseLevel    float64       `yaml:"noise_level"`    // Noise level (V)
	PressNewtons  float64       `yaml:"press_newtons"`  // Simulated press force (N)
	PressDuration time.Duration `yaml:"press_duration"` // Press duration
	PressPeriod   time.Duration `yaml:"press_period"`   // Time between presses
	SampleRate    time.Duration `yaml:"sample_rate"`    // Sample rate
	Temperature   float64       `yaml:"temperature"`    // Reported temperature (C)
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			Baud: 9600,
		},
		Calibration: CalibrationConfig{
			File:        "fc2231_calibration.json",
			TareSamples: 20,
			TareDelay:   50 * time.Millisecond,
		},
		Display: DisplayConfig{
			Period:          5 * time.Second,
			SmoothingWindow: 10,
			StatsEvery:      100,
		},
		Export: ExportConfig{
			Dir: ".",
		},
		History: HistoryConfig{
			File: "forcemon_sessions.db",
		},
		Mock: MockConfig{
			BaseVoltage:   0.52,
			NoiseLevel:    0.002,
			PressNewtons:  25.0,
			PressDuration: 2 * time.Second,
			PressPeriod:   10 * time.Second,
			SampleRate:    100 * time.Millisecond,
			Temperature:   22.0,
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

	// Ensure minimum required fields are set (use defaults if missing)
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

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = def.Serial.Baud
	}

	if c.Calibration.File == "" {
		c.Calibration.File = def.Calibration.File
	}
	if c.Calibration.TareSamples == 0 {
		c.Calibration.TareSamples = def.Calibration.TareSamples
	}
	if c.Calibration.TareDelay == 0 {
		c.Calibration.TareDelay = def.Calibration.TareDelay
	}

	if c.Display.Period == 0 {
		c.Display.Period = def.Display.Period
	}
	if c.Display.SmoothingWindow == 0 {
		c.Display.SmoothingWindow = def.Display.SmoothingWindow
	}
	if c.Display.StatsEvery == 0 {
		c.Display.StatsEvery = def.Display.StatsEvery
	}

	if c.Export.Dir == "" {
		c.Export.Dir = def.Export.Dir
	}

	if c.History.File == "" {
		c.History.File = def.History.File
	}

	if c.Mock.BaseVoltage == 0 {
		c.Mock.BaseVoltage = def.Mock.BaseVoltage
	}
	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
	if c.Mock.PressPeriod == 0 {
		c.Mock.PressPeriod = def.Mock.PressPeriod
	}
	if c.Mock.PressDuration == 0 {
		c.Mock.PressDuration = def.Mock.PressDuration
	}
}
