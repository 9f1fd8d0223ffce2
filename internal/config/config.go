package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"mini-voxel/internal/physics"
	"mini-voxel/internal/world"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no config path is given.
const EnvPath = "VOXEL_CONFIG"

// ErrInvalidConfig is returned by Validate and Load for unusable values.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of the YAML configuration.
type Config struct {
	Chunk     ChunkConfig     `yaml:"chunk"`
	Player    PlayerConfig    `yaml:"player"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Raycast   RaycastConfig   `yaml:"raycast"`
	Generator GeneratorConfig `yaml:"generator"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// ChunkConfig sizes the chunk grid in cells.
type ChunkConfig struct {
	SizeX int `yaml:"size_x"`
	SizeY int `yaml:"size_y"`
	SizeZ int `yaml:"size_z"`
}

// Dims returns the configured chunk dimensions.
func (c ChunkConfig) Dims() world.Dims {
	return world.Dims{X: c.SizeX, Y: c.SizeY, Z: c.SizeZ}
}

// PlayerConfig is the player collision box, measured from the eye.
type PlayerConfig struct {
	HalfWidth float32 `yaml:"half_width"`
	EyeUp     float32 `yaml:"eye_up"`
	EyeDown   float32 `yaml:"eye_down"`
}

// Box converts the section to a collision box.
func (p PlayerConfig) Box() physics.Box {
	return physics.Box{HalfWidth: p.HalfWidth, Up: p.EyeUp, Down: p.EyeDown}
}

// PhysicsConfig holds the body movement constants and the tick rate.
type PhysicsConfig struct {
	Gravity          float32 `yaml:"gravity"`
	TerminalVelocity float32 `yaml:"terminal_velocity"`
	JumpVelocity     float32 `yaml:"jump_velocity"`
	MaxStepDistance  float32 `yaml:"max_step_distance"`
	TickRate         int     `yaml:"tick_rate"`
}

// TickDuration is the fixed simulation step in seconds.
func (p PhysicsConfig) TickDuration() float32 {
	return 1 / float32(p.TickRate)
}

// RaycastConfig tunes block targeting.
type RaycastConfig struct {
	Step        float32 `yaml:"step"`
	MaxDistance float32 `yaml:"max_distance"`
}

// StorageConfig locates the world library.
type StorageConfig struct {
	// Path is the world library directory. Empty keeps it in memory.
	Path string `yaml:"path"`
}

// LogConfig sets the slog level by name: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, l.Level)
	}
	return lvl, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	box := physics.DefaultBox()
	return &Config{
		Chunk: ChunkConfig{
			SizeX: world.ChunkSizeX,
			SizeY: world.ChunkSizeY,
			SizeZ: world.ChunkSizeZ,
		},
		Player: PlayerConfig{
			HalfWidth: box.HalfWidth,
			EyeUp:     box.Up,
			EyeDown:   box.Down,
		},
		Physics: PhysicsConfig{
			Gravity:          physics.Gravity,
			TerminalVelocity: physics.TerminalVelocity,
			JumpVelocity:     physics.JumpVelocity,
			MaxStepDistance:  physics.MaxStepDistance,
			TickRate:         20,
		},
		Raycast: RaycastConfig{
			Step:        physics.DefaultStepSize,
			MaxDistance: physics.MaxReachDistance,
		},
		Generator: defaultGenerator(),
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. An empty path falls back to
// $VOXEL_CONFIG; if that is unset too the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with. Reach is clamped
// into [MinReachDistance, MaxReachDistance] rather than rejected.
func (c *Config) Validate() error {
	if d := c.Chunk.Dims(); !d.Valid() {
		return fmt.Errorf("%w: chunk size %s", ErrInvalidConfig, d)
	}
	if !finite32(c.Player.HalfWidth, c.Player.EyeUp, c.Player.EyeDown) ||
		c.Player.HalfWidth <= 0 || c.Player.EyeDown <= 0 || c.Player.EyeUp < 0 {
		return fmt.Errorf("%w: player box %+v", ErrInvalidConfig, c.Player)
	}
	p := c.Physics
	if !finite32(p.Gravity, p.TerminalVelocity, p.JumpVelocity, p.MaxStepDistance) ||
		p.Gravity < 0 || p.TerminalVelocity <= 0 || p.JumpVelocity < 0 || p.MaxStepDistance < 0 {
		return fmt.Errorf("%w: physics %+v", ErrInvalidConfig, p)
	}
	if p.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate %d", ErrInvalidConfig, p.TickRate)
	}
	if !finite32(c.Raycast.Step) || c.Raycast.Step <= 0 {
		return fmt.Errorf("%w: raycast step %v", ErrInvalidConfig, c.Raycast.Step)
	}
	if !finite32(c.Raycast.MaxDistance) {
		return fmt.Errorf("%w: raycast max distance %v", ErrInvalidConfig, c.Raycast.MaxDistance)
	}
	c.Raycast.MaxDistance = clampReach(c.Raycast.MaxDistance)
	if err := c.Generator.validate(); err != nil {
		return err
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// PhysicsParams combines the player box and physics section.
func (c *Config) PhysicsParams() physics.Params {
	return physics.Params{
		Box:              c.Player.Box(),
		Gravity:          c.Physics.Gravity,
		TerminalVelocity: c.Physics.TerminalVelocity,
		JumpVelocity:     c.Physics.JumpVelocity,
		MaxStepDistance:  c.Physics.MaxStepDistance,
	}
}

// finite32 reports whether none of vs is NaN or infinite.
func finite32(vs ...float32) bool {
	for _, v := range vs {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

func clampReach(d float32) float32 {
	if d < physics.MinReachDistance {
		return physics.MinReachDistance
	}
	if d > physics.MaxReachDistance {
		return physics.MaxReachDistance
	}
	return d
}
