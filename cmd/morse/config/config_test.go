package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("MORSE_CONFIG", filepath.Join(t.TempDir(), "nope.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Load = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoadAppliesFieldDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("MORSE_CONFIG", path)
	if err := os.WriteFile(path, []byte(`{"wpm": 25, "notifications": true, "volume": 7}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.WPM != 25 || !cfg.Notifications {
		t.Errorf("Load lost configured fields: %+v", cfg)
	}
	if cfg.FrequencyHz != 700 || cfg.Volume != 0.5 || cfg.Driver != "speaker" {
		t.Errorf("Load did not apply defaults: %+v", cfg)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("MORSE_CONFIG", path)
	if err := os.WriteFile(path, []byte(`{wpm:`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("MORSE_CONFIG", filepath.Join(t.TempDir(), "sub", "config.json"))

	cfg := DefaultConfig()
	cfg.EffectiveWPM = 10
	cfg.SpeechCommand = "whisper-listen --once"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load = %+v, want %+v", loaded, cfg)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.expected {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.expected)
		}
	}
}
