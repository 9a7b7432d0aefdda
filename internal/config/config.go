package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/frical/internal/calib"
	"github.com/san-kum/frical/internal/trial"
	"github.com/san-kum/frical/internal/world"
)

const (
	DefaultTrueFriction  = 0.9
	DefaultOracleStart   = 0.2
	DefaultSteps         = 150
	DefaultImpulseX      = 10000.0
	DefaultImpulseY      = 0.0
	DefaultMaxIterations = 10
	DefaultTolerance     = 1.0
)

type ImpulseConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Config is one complete calibration scenario. The values that the
// original demonstration hard-coded as module constants live here so
// independent calibrations can carry independent settings.
type Config struct {
	TrueFriction  float64       `yaml:"true_friction"`
	OracleStart   float64       `yaml:"oracle_start_friction"`
	Steps         int           `yaml:"steps"`
	Dt            float64       `yaml:"dt"`
	Impulse       ImpulseConfig `yaml:"impulse"`
	MaxIterations int           `yaml:"max_iterations"`
	Tolerance     float64       `yaml:"tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		TrueFriction:  DefaultTrueFriction,
		OracleStart:   DefaultOracleStart,
		Steps:         DefaultSteps,
		Dt:            world.DefaultDt,
		Impulse:       ImpulseConfig{X: DefaultImpulseX, Y: DefaultImpulseY},
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects a scenario before any trial runs.
func (c *Config) Validate() error {
	if c.Steps < 1 {
		return fmt.Errorf("%w, got %d", trial.ErrInvalidStepCount, c.Steps)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w, got %f", trial.ErrInvalidDt, c.Dt)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w, got %d", calib.ErrInvalidIterations, c.MaxIterations)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w, got %f", calib.ErrInvalidTolerance, c.Tolerance)
	}
	return nil
}

func (c *Config) ImpulseVec() mgl64.Vec2 {
	return mgl64.Vec2{c.Impulse.X, c.Impulse.Y}
}
