package config

import "sort"

// Presets are complete configurations selectable by name.
var Presets = map[string]*Config{
	"droplets": withDefaults(func(c *Config) {
		c.Particle.Radius = 40
		c.Particle.Gravity = 100
		c.Spawn.Mode = "kick"
		c.Batch = BatchConfig{Count: 5, GravityStep: 100, Spacing: 3}
	}),
	"single": withDefaults(func(c *Config) {
		c.Batch = BatchConfig{Count: 1}
	}),
	"rain": withDefaults(func(c *Config) {
		c.Particle.Radius = 8
		c.Particle.Restitution = 0.6
		c.Particle.ColorMode = "heat"
		c.Spawn = SpawnConfig{Mode: "random", MinX: -150, MaxX: 150, MinY: 0, MaxY: 300}
		c.Batch = BatchConfig{Count: 12, Spacing: 2.5}
		c.Duration = 20
	}),
	"box": withDefaults(func(c *Config) {
		c.Ceiling = true
		c.Particle.Restitution = 1
		c.Spawn = SpawnConfig{Mode: "random", MinX: -300, MaxX: 300, MinY: -300, MaxY: 300}
		c.Batch = BatchConfig{Count: 8, Spacing: 3}
		c.Collision = "snapshot"
	}),
}

func withDefaults(apply func(c *Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
