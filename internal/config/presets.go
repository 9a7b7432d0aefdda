package config

import "sort"

// Presets are named scenarios for the demo and calibrate commands.
// "paper" matches the original demonstration exactly.
var Presets = map[string]*Config{
	"paper": {
		TrueFriction: 0.9, OracleStart: 0.2,
		Steps: 150, Dt: 1.0 / 60.0,
		Impulse:       ImpulseConfig{X: 10000, Y: 0},
		MaxIterations: 10, Tolerance: 1.0,
	},
	"slick": {
		TrueFriction: 0.15, OracleStart: 0.8,
		Steps: 150, Dt: 1.0 / 60.0,
		Impulse:       ImpulseConfig{X: 10000, Y: 0},
		MaxIterations: 12, Tolerance: 1.0,
	},
	"gentle": {
		TrueFriction: 0.5, OracleStart: 0.2,
		Steps: 300, Dt: 1.0 / 60.0,
		Impulse:       ImpulseConfig{X: 5000, Y: 0},
		MaxIterations: 10, Tolerance: 1.0,
	},
	"coarse": {
		TrueFriction: 0.9, OracleStart: 0.2,
		Steps: 150, Dt: 1.0 / 60.0,
		Impulse:       ImpulseConfig{X: 10000, Y: 0},
		MaxIterations: 6, Tolerance: 5.0,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
