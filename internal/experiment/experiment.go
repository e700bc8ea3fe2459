package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/dropsim/internal/config"
	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/sim"
)

// Experiment is a configured world plus its headless simulator.
type Experiment struct {
	cfg       *config.Config
	world     *sim.World
	simulator *sim.Simulator
	batch     []uint64
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// BuildWorld assembles a World from cfg using the registry's components.
func BuildWorld(reg *Registry, cfg *config.Config) (*sim.World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	integ, err := reg.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	resolver, err := reg.GetResolver(cfg.Collision, cfg.Damping)
	if err != nil {
		return nil, err
	}
	bounds, err := cfg.Bounds()
	if err != nil {
		return nil, err
	}
	defaults, err := cfg.ParticleDefaults()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.SpawnPolicy()
	if err != nil {
		return nil, err
	}
	return sim.NewWorld(sim.Options{
		Bounds:     bounds,
		Defaults:   defaults,
		Spawn:      policy,
		Boost:      cfg.BoostConfig(),
		Integrator: integ,
		Resolver:   resolver,
		Seed:       cfg.Seed,
	})
}

// Setup builds the world, spawns the configured batch and attaches metrics.
func (e *Experiment) Setup(reg *Registry, metrics []dynamo.Metric) error {
	w, err := BuildWorld(reg, e.cfg)
	if err != nil {
		return err
	}
	ids, err := w.SpawnBatch(e.cfg.BatchSpec())
	if err != nil {
		return err
	}
	e.world = w
	e.batch = ids
	e.simulator = sim.New(w)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context, input dynamo.InputSource) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, input, e.cfg.SimConfig())
}

func (e *Experiment) World() *sim.World { return e.world }

// Batch returns the IDs of the particles spawned by Setup.
func (e *Experiment) Batch() []uint64 { return e.batch }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
