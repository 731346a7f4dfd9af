// Package config provides configuration loading for morse.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Config represents the morse configuration file structure.
type Config struct {
	WPM           int     `json:"wpm"`
	EffectiveWPM  int     `json:"effective_wpm,omitempty"` // Farnsworth speed, 0 = off
	FrequencyHz   float64 `json:"frequency_hz"`
	Volume        float64 `json:"volume"`
	Driver        string  `json:"driver,omitempty"` // speaker, beep or bell
	Notifications bool    `json:"notifications"`
	SpeechCommand string  `json:"speech_command,omitempty"`
	LogLevel      string  `json:"log_level,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		WPM:         15,
		FrequencyHz: 700,
		Volume:      0.5,
		Driver:      "speaker",
		LogLevel:    "info",
	}
}

// ConfigDir returns the morse config directory (~/.morse).
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".morse")
}

// ConfigPath returns the config file path. MORSE_CONFIG overrides the
// default ~/.morse/config.json.
func ConfigPath() string {
	if p := os.Getenv("MORSE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.json")
}

// Load loads the config from ConfigPath.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.WPM <= 0 {
		config.WPM = defaults.WPM
	}
	if config.FrequencyHz <= 0 {
		config.FrequencyHz = defaults.FrequencyHz
	}
	if config.Volume <= 0 || config.Volume > 1 {
		config.Volume = defaults.Volume
	}
	if config.Driver == "" {
		config.Driver = defaults.Driver
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	return &config, nil
}

// Save saves the config to ConfigPath.
func Save(config *Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
