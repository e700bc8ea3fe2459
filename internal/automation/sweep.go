package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/dropsim/internal/config"
	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/experiment"
	"github.com/san-kum/dropsim/internal/sim"
)

// ParameterSweep runs the same configuration across a range of one
// particle parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Progress  func(i, n int, value float64)
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue  float64
	EnergyLoss  float64
	MaxOverlap  float64
	Containment float64
}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "restitution":
		cfg.Particle.Restitution = v
	case "gravity":
		cfg.Particle.Gravity = v
	case "radius":
		cfg.Particle.Radius = v
	case "damping":
		cfg.Damping = v
	case "dt":
		cfg.Dt = v
	default:
		return fmt.Errorf("%w: sweep parameter %q", dynamo.ErrUnknownComponent, name)
	}
	return nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := *sweep.Base
		if err := setParam(&cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}
		bounds, err := cfg.Bounds()
		if err != nil {
			return nil, err
		}

		exp := experiment.New(&cfg)
		if err := exp.Setup(registry, registry.DefaultMetrics(bounds)); err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}
		result, err := exp.Run(ctx, nil)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue:  paramVal,
			EnergyLoss:  result.Metrics["energy_loss"],
			MaxOverlap:  result.Metrics["max_overlap"],
			Containment: result.Metrics["containment"],
		})
		if sweep.Progress != nil {
			sweep.Progress(i+1, sweep.NumSteps, paramVal)
		}
	}

	return results, nil
}

// MonteCarloConfig runs one configuration over consecutive seeds, so the
// random spawn and boost policies are sampled independently per trial.
type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
	SeedStart int64
}

type MonteCarloResult struct {
	TrialID     int
	Seed        int64
	Particles   int
	EnergyLoss  float64
	Containment float64
}

// RunMonteCarlo runs the trials in parallel, one world per goroutine.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least 1 trial, got %d", cfg.NumTrials)
	}
	if err := cfg.Base.Validate(); err != nil {
		return nil, err
	}
	factory := func(seed int64) (*sim.Simulator, error) {
		c := *cfg.Base
		c.Seed = seed
		w, err := experiment.BuildWorld(registry, &c)
		if err != nil {
			return nil, err
		}
		if _, err := w.SpawnBatch(c.BatchSpec()); err != nil {
			return nil, err
		}
		s := sim.New(w)
		for _, m := range registry.DefaultMetrics(w.Bounds()) {
			s.AddMetric(m)
		}
		return s, nil
	}

	ens := sim.NewEnsemble(factory, cfg.NumTrials, cfg.SeedStart)
	runs, err := ens.Run(ctx, func() dynamo.InputSource { return sim.AutoStart{} }, cfg.Base.SimConfig())
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		last := 0
		if n := len(r.Frames); n > 0 {
			last = len(r.Frames[n-1])
		}
		results[i] = MonteCarloResult{
			TrialID:     i,
			Seed:        cfg.SeedStart + int64(i),
			Particles:   last,
			EnergyLoss:  r.Metrics["energy_loss"],
			Containment: r.Metrics["containment"],
		}
	}
	return results, nil
}

// MonteCarloStats counts trials that kept every particle inside the viewport
// on every frame.
func MonteCarloStats(results []MonteCarloResult) (containedCount int, escapedCount int) {
	for _, r := range results {
		if r.Containment == 1 {
			containedCount++
		} else {
			escapedCount++
		}
	}
	return
}
