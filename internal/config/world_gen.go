package config

import (
	"fmt"
	"math"

	"mini-voxel/internal/world"
)

// GeneratorConfig holds world generation configuration
type GeneratorConfig struct {
	Seed       int64   `yaml:"seed"`
	Mode       string  `yaml:"mode"`
	SeaLevel   int     `yaml:"sea_level"`
	BaseHeight int     `yaml:"base_height"`
	Amplitude  float64 `yaml:"amplitude"`
	Scale      float64 `yaml:"scale"`
	Trees      bool    `yaml:"trees"`
}

func defaultGenerator() GeneratorConfig {
	s := world.DefaultGenSettings()
	return GeneratorConfig{
		Seed:       s.Seed,
		Mode:       string(s.Mode),
		SeaLevel:   s.SeaLevel,
		BaseHeight: s.BaseHeight,
		Amplitude:  s.Amplitude,
		Scale:      s.Scale,
		Trees:      s.Trees,
	}
}

// Settings converts the section into generator settings. Octave shaping
// keeps its defaults.
func (g GeneratorConfig) Settings() world.GenSettings {
	s := world.DefaultGenSettings()
	s.Seed = g.Seed
	s.Mode = world.GenMode(g.Mode)
	s.SeaLevel = g.SeaLevel
	s.BaseHeight = g.BaseHeight
	s.Amplitude = g.Amplitude
	s.Scale = g.Scale
	s.Trees = g.Trees
	return s
}

func (g GeneratorConfig) validate() error {
	switch world.GenMode(g.Mode) {
	case world.GenModeFlat, world.GenModeNoise:
	default:
		return fmt.Errorf("%w: generator mode %q", ErrInvalidConfig, g.Mode)
	}
	if !(g.Scale > 0) || !(g.Amplitude >= 0) || math.IsInf(g.Scale, 0) || math.IsInf(g.Amplitude, 0) {
		return fmt.Errorf("%w: generator scale %v amplitude %v", ErrInvalidConfig, g.Scale, g.Amplitude)
	}
	return nil
}
