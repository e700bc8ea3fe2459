package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/dropsim/internal/config"
	"github.com/san-kum/dropsim/internal/dynamo"
)

func TestRegistryLookups(t *testing.T) {
	reg := NewRegistry()

	for _, name := range reg.ListIntegrators() {
		integ, err := reg.GetIntegrator(name)
		if err != nil {
			t.Fatalf("integrator %s: %v", name, err)
		}
		if integ.Name() != name {
			t.Errorf("integrator %s reports name %s", name, integ.Name())
		}
	}
	for _, name := range reg.ListResolvers() {
		res, err := reg.GetResolver(name, 0.5)
		if err != nil {
			t.Fatalf("resolver %s: %v", name, err)
		}
		if res.Name() != name {
			t.Errorf("resolver %s reports name %s", name, res.Name())
		}
	}

	if _, err := reg.GetIntegrator("rk4"); !errors.Is(err, dynamo.ErrUnknownComponent) {
		t.Errorf("expected ErrUnknownComponent, got %v", err)
	}
	if _, err := reg.GetResolver("grid", 0.5); !errors.Is(err, dynamo.ErrUnknownComponent) {
		t.Errorf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestExperimentRunsPreset(t *testing.T) {
	cfg := config.GetPreset("droplets")
	cfg.Duration = 3
	reg := NewRegistry()
	bounds, err := cfg.Bounds()
	if err != nil {
		t.Fatal(err)
	}

	exp := New(cfg)
	if err := exp.Setup(reg, reg.DefaultMetrics(bounds)); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if len(exp.Batch()) != 5 {
		t.Fatalf("expected 5 droplets, got %d", len(exp.Batch()))
	}

	result, err := exp.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.StepsTaken != 180 {
		t.Errorf("expected 180 steps, got %d", result.StepsTaken)
	}
	if got := result.Metrics["containment"]; got < 0 || got > 1 {
		t.Errorf("containment out of range: %f", got)
	}
	if got := result.Metrics["energy_loss"]; !(got > 0) {
		t.Errorf("bouncing droplets should dissipate energy, got %f", got)
	}
}

func TestSingleDropletStaysContained(t *testing.T) {
	cfg := config.GetPreset("single")
	reg := NewRegistry()
	bounds, _ := cfg.Bounds()

	exp := New(cfg)
	if err := exp.Setup(reg, reg.DefaultMetrics(bounds)); err != nil {
		t.Fatalf("setup: %v", err)
	}
	result, err := exp.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := result.Metrics["containment"]; got != 1 {
		t.Errorf("single droplet left the viewport: containment %f", got)
	}
	if got := result.Metrics["max_overlap"]; got > 0 {
		t.Errorf("single droplet cannot overlap, got %f", got)
	}
}

func TestExperimentNotSetup(t *testing.T) {
	exp := New(config.DefaultConfig())
	if _, err := exp.Run(context.Background(), nil); err == nil {
		t.Error("expected error when running before setup")
	}
}

func TestBuildWorldRejectsUnknownIntegrator(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Integrator = "rk45"
	if _, err := BuildWorld(NewRegistry(), cfg); !errors.Is(err, dynamo.ErrUnknownComponent) {
		t.Errorf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestDefaultBatchIsSpread(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Batch.Count = 3

	exp := New(cfg)
	if err := exp.Setup(NewRegistry(), nil); err != nil {
		t.Fatalf("setup: %v", err)
	}
	ps := exp.World().Particles()
	if len(ps) != 3 {
		t.Fatalf("expected 3 droplets, got %d", len(ps))
	}
	for i := 1; i < len(ps); i++ {
		gap := ps[i].Pos.X - ps[i-1].Pos.X
		if want := cfg.Batch.Spacing * cfg.Particle.Radius; gap != want {
			t.Errorf("droplets %d and %d: expected gap %v, got %v", i-1, i, want, gap)
		}
	}
}
