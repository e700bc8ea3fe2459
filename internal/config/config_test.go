package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/dropsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "semi_implicit" {
		t.Errorf("expected integrator semi_implicit, got %s", cfg.Integrator)
	}
	if cfg.Collision != "snapshot" {
		t.Errorf("expected collision snapshot, got %s", cfg.Collision)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Batch.Spacing != DefaultSpacing {
		t.Errorf("expected batch spacing %v, got %v", DefaultSpacing, cfg.Batch.Spacing)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := []byte(`
viewport:
  width: 800
  height: 600
dt: 0.005
particle:
  radius: 20
  color_mode: static
  color: "#ff0000"
spawn:
  mode: kick
  kick_x: 50
batch:
  count: 3
  spacing: 3
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Viewport.Width != 800 || cfg.Viewport.Height != 600 {
		t.Errorf("viewport not loaded: %+v", cfg.Viewport)
	}
	if cfg.Particle.Gravity != DefaultGravity {
		t.Errorf("unset gravity should keep default, got %f", cfg.Particle.Gravity)
	}

	pc, err := cfg.ParticleDefaults()
	if err != nil {
		t.Fatalf("particle defaults: %v", err)
	}
	if pc.ColorMode != dynamo.ColorStatic || pc.Color != (dynamo.RGB{R: 255}) {
		t.Errorf("unexpected colour config: %+v", pc)
	}

	policy, err := cfg.SpawnPolicy()
	if err != nil {
		t.Fatalf("spawn policy: %v", err)
	}
	if policy.Mode != dynamo.SpawnKick || policy.KickX != 50 {
		t.Errorf("unexpected spawn policy: %+v", policy)
	}
	if b := cfg.BatchSpec(); b.Count != 3 || b.Spacing != 3 {
		t.Errorf("unexpected batch: %+v", b)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("box")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.Ceiling || loaded.Batch.Count != cfg.Batch.Count {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		target error
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }, dynamo.ErrInvalidTimestep},
		{"empty viewport", func(c *Config) { c.Viewport.Width = 0 }, dynamo.ErrInvalidViewport},
		{"zero radius", func(c *Config) { c.Particle.Radius = 0 }, dynamo.ErrInvalidRadius},
		{"restitution", func(c *Config) { c.Particle.Restitution = 1.5 }, dynamo.ErrInvalidRestitution},
		{"colour mode", func(c *Config) { c.Particle.ColorMode = "plaid" }, dynamo.ErrUnknownComponent},
		{"spawn mode", func(c *Config) { c.Spawn.Mode = "teleport" }, dynamo.ErrUnknownComponent},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, tt.target) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.target, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Particle.Color = "not-a-colour"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad colour")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("droplets")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Particle.Radius != 40 || cfg.Batch.Count != 5 {
		t.Errorf("unexpected droplets preset: %+v", cfg)
	}

	cfg.Particle.Radius = 1
	if GetPreset("droplets").Particle.Radius != 40 {
		t.Error("preset should be returned as a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}
