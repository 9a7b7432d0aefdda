package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/san-kum/frical/internal/calib"
	"github.com/san-kum/frical/internal/trial"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TrueFriction != 0.9 {
		t.Errorf("expected true friction 0.9, got %f", cfg.TrueFriction)
	}
	if cfg.Steps != 150 {
		t.Errorf("expected 150 steps, got %d", cfg.Steps)
	}
	if cfg.Impulse.X != 10000 || cfg.Impulse.Y != 0 {
		t.Errorf("unexpected default impulse: %+v", cfg.Impulse)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero steps", func(c *Config) { c.Steps = 0 }, trial.ErrInvalidStepCount},
		{"negative steps", func(c *Config) { c.Steps = -1 }, trial.ErrInvalidStepCount},
		{"zero dt", func(c *Config) { c.Dt = 0 }, trial.ErrInvalidDt},
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }, calib.ErrInvalidIterations},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }, calib.ErrInvalidTolerance},
		{"negative tolerance", func(c *Config) { c.Tolerance = -2 }, calib.ErrInvalidTolerance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := DefaultConfig()
	cfg.TrueFriction = 0.42
	cfg.Steps = 99
	cfg.Impulse.X = 1234

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("steps: 42\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Steps != 42 {
		t.Errorf("expected overridden steps 42, got %d", cfg.Steps)
	}
	if cfg.Tolerance != DefaultTolerance {
		t.Errorf("expected default tolerance, got %f", cfg.Tolerance)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("paper")
	if cfg == nil {
		t.Fatal("expected the paper preset")
	}
	if cfg.TrueFriction != 0.9 || cfg.Steps != 150 {
		t.Errorf("paper preset drifted from the original scenario: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate, got %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for an unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("preset names should be sorted: %v", names)
	}
	for _, name := range names {
		if err := Presets[name].Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}
