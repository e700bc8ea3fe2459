package config

import (
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/physics"
	"github.com/san-kum/dropsim/internal/sim"
)

const (
	DefaultWidth       = 1280.0
	DefaultHeight      = 720.0
	DefaultDt          = 1.0 / 60
	DefaultDuration    = 10.0
	DefaultRadius      = 15.0
	DefaultGravity     = 200.0
	DefaultRestitution = 0.8
	DefaultColor       = "#4fc3f7"
	DefaultBoost       = -200.0
	DefaultKickX       = 200.0
	// DefaultSpacing separates batch droplets by this many radii.
	DefaultSpacing     = 3.0
)

type Config struct {
	Viewport   ViewportConfig `yaml:"viewport"`
	Dt         float64        `yaml:"dt"`
	Duration   float64        `yaml:"duration"`
	Seed       int64          `yaml:"seed"`
	Integrator string         `yaml:"integrator"`
	Collision  string         `yaml:"collision"`
	Damping    float64        `yaml:"damping"`
	Ceiling    bool           `yaml:"ceiling"`
	Particle   ParticleConfig `yaml:"particle"`
	Spawn      SpawnConfig    `yaml:"spawn"`
	Boost      BoostConfig    `yaml:"boost"`
	Batch      BatchConfig    `yaml:"batch"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ParticleConfig struct {
	Radius      float64 `yaml:"radius"`
	Gravity     float64 `yaml:"gravity"`
	Restitution float64 `yaml:"restitution"`
	ColorMode   string  `yaml:"color_mode"`
	Color       string  `yaml:"color"`
}

type SpawnConfig struct {
	Mode  string  `yaml:"mode"`
	KickX float64 `yaml:"kick_x"`
	MinX  float64 `yaml:"min_x"`
	MaxX  float64 `yaml:"max_x"`
	MinY  float64 `yaml:"min_y"`
	MaxY  float64 `yaml:"max_y"`
}

type BoostConfig struct {
	Velocity float64 `yaml:"velocity"`
	RerollX  bool    `yaml:"reroll_x"`
	MinX     float64 `yaml:"min_x"`
	MaxX     float64 `yaml:"max_x"`
}

type BatchConfig struct {
	Count       int     `yaml:"count"`
	GravityStep float64 `yaml:"gravity_step"`
	Spacing     float64 `yaml:"spacing"`
}

func DefaultConfig() *Config {
	return &Config{
		Viewport:   ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Integrator: "semi_implicit",
		Collision:  "snapshot",
		Damping:    physics.DefaultDamping,
		Particle: ParticleConfig{
			Radius:      DefaultRadius,
			Gravity:     DefaultGravity,
			Restitution: DefaultRestitution,
			ColorMode:   string(dynamo.ColorVelocity),
			Color:       DefaultColor,
		},
		Spawn: SpawnConfig{
			Mode:  string(dynamo.SpawnRest),
			KickX: DefaultKickX,
			MinX:  -200,
			MaxX:  200,
		},
		Boost: BoostConfig{
			Velocity: DefaultBoost,
			MinX:     -200,
			MaxX:     200,
		},
		Batch: BatchConfig{Spacing: DefaultSpacing},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Validate checks everything that can be checked without a registry.
// Integrator and collision names are resolved by the experiment package.
func (c *Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt %v", dynamo.ErrInvalidTimestep, c.Dt)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	if _, err := c.Bounds(); err != nil {
		return err
	}
	if _, err := c.ParticleDefaults(); err != nil {
		return err
	}
	if _, err := c.SpawnPolicy(); err != nil {
		return err
	}
	if c.Damping < 0 || c.Damping > 1 {
		return fmt.Errorf("damping must be within [0, 1], got %v", c.Damping)
	}
	if c.Batch.Count < 0 {
		return fmt.Errorf("batch count must not be negative, got %d", c.Batch.Count)
	}
	return nil
}

func (c *Config) Bounds() (physics.Bounds, error) {
	return physics.NewBounds(c.Viewport.Width, c.Viewport.Height, c.Ceiling)
}

func (c *Config) ParticleDefaults() (dynamo.ParticleConfig, error) {
	mode, err := dynamo.ParseColorMode(c.Particle.ColorMode)
	if err != nil {
		return dynamo.ParticleConfig{}, err
	}
	color, err := ParseColor(c.Particle.Color)
	if err != nil {
		return dynamo.ParticleConfig{}, err
	}
	pc := dynamo.ParticleConfig{
		Radius:      c.Particle.Radius,
		Gravity:     c.Particle.Gravity,
		Restitution: c.Particle.Restitution,
		ColorMode:   mode,
		Color:       color,
	}
	return pc, pc.Validate()
}

func (c *Config) SpawnPolicy() (dynamo.SpawnPolicy, error) {
	mode := dynamo.SpawnMode(c.Spawn.Mode)
	switch mode {
	case "":
		mode = dynamo.SpawnRest
	case dynamo.SpawnRest, dynamo.SpawnKick, dynamo.SpawnRandom:
	default:
		return dynamo.SpawnPolicy{}, fmt.Errorf("%w: spawn mode %q", dynamo.ErrUnknownComponent, c.Spawn.Mode)
	}
	return dynamo.SpawnPolicy{
		Mode:  mode,
		KickX: c.Spawn.KickX,
		MinX:  c.Spawn.MinX,
		MaxX:  c.Spawn.MaxX,
		MinY:  c.Spawn.MinY,
		MaxY:  c.Spawn.MaxY,
	}, nil
}

func (c *Config) BoostConfig() dynamo.BoostConfig {
	return dynamo.BoostConfig{
		Velocity: c.Boost.Velocity,
		RerollX:  c.Boost.RerollX,
		MinX:     c.Boost.MinX,
		MaxX:     c.Boost.MaxX,
	}
}

func (c *Config) BatchSpec() sim.Batch {
	return sim.Batch{
		Count:       c.Batch.Count,
		GravityStep: c.Batch.GravityStep,
		Spacing:     c.Batch.Spacing,
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.Dt, Duration: c.Duration}
}

// ParseColor reads a "#rrggbb" colour. An empty string is white.
func ParseColor(s string) (dynamo.RGB, error) {
	if s == "" {
		return dynamo.RGB{R: 255, G: 255, B: 255}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return dynamo.RGB{}, fmt.Errorf("particle colour: %w", err)
	}
	r, g, b := c.RGB255()
	return dynamo.RGB{R: r, G: g, B: b}, nil
}
