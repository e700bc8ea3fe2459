package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/integrators"
	"github.com/san-kum/dropsim/internal/physics"
)

type Options struct {
	Bounds     physics.Bounds
	Defaults   dynamo.ParticleConfig
	Spawn      dynamo.SpawnPolicy
	Boost      dynamo.BoostConfig
	Integrator dynamo.Integrator
	Resolver   dynamo.Resolver
	Seed       int64
}

// World owns the particle set and the one-way "started" latch, and runs the
// frame pipeline: integrate, resolve boundaries, resolve contacts.
type World struct {
	set        *ParticleSet
	bounds     physics.Bounds
	defaults   dynamo.ParticleConfig
	spawn      dynamo.SpawnPolicy
	boost      dynamo.BoostConfig
	integrator dynamo.Integrator
	resolver   dynamo.Resolver
	rng        *rand.Rand

	started bool
	frame   int
	clock   float64
	elapsed float64
}

func NewWorld(opts Options) (*World, error) {
	if !(opts.Bounds.Width > 0) || !(opts.Bounds.Height > 0) {
		return nil, fmt.Errorf("%w: %vx%v", dynamo.ErrInvalidViewport, opts.Bounds.Width, opts.Bounds.Height)
	}
	if err := opts.Defaults.Validate(); err != nil {
		return nil, err
	}
	if opts.Integrator == nil {
		opts.Integrator = integrators.NewSemiImplicitEuler()
	}
	if opts.Resolver == nil {
		opts.Resolver = physics.NewSnapshot(physics.DefaultDamping)
	}
	if opts.Spawn.Mode == "" {
		opts.Spawn = dynamo.DefaultSpawnPolicy()
	}
	if opts.Boost == (dynamo.BoostConfig{}) {
		opts.Boost = dynamo.DefaultBoostConfig()
	}
	return &World{
		set:        NewParticleSet(),
		bounds:     opts.Bounds,
		defaults:   opts.Defaults,
		spawn:      opts.Spawn,
		boost:      opts.Boost,
		integrator: opts.Integrator,
		resolver:   opts.Resolver,
		rng:        rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

func (w *World) Set() *ParticleSet               { return w.set }
func (w *World) Particles() []dynamo.Particle    { return w.set.Particles() }
func (w *World) Bounds() physics.Bounds          { return w.bounds }
func (w *World) Defaults() dynamo.ParticleConfig { return w.defaults }
func (w *World) Integrator() dynamo.Integrator   { return w.integrator }
func (w *World) Resolver() dynamo.Resolver       { return w.resolver }
func (w *World) Started() bool                   { return w.started }
func (w *World) Frame() int                      { return w.frame }
func (w *World) Clock() float64                  { return w.clock }
func (w *World) Elapsed() float64                { return w.elapsed }
func (w *World) Samples() []dynamo.Sample        { return w.set.Samples() }
func (w *World) Clear()                          { w.set.Clear() }
func (w *World) Start()                          { w.started = true }

// Spawn adds a particle at pos with cfg, taking its velocity from the spawn
// policy.
func (w *World) Spawn(pos dynamo.Vec2, cfg dynamo.ParticleConfig) (uint64, error) {
	return w.set.Spawn(pos, cfg, InitialVelocity(w.spawn, w.rng))
}

// SpawnDefault adds a particle with the world's default configuration.
func (w *World) SpawnDefault(pos dynamo.Vec2) (uint64, error) {
	return w.Spawn(pos, w.defaults)
}

// SpawnBatch places b.Count droplets along the top edge starting at the
// horizontal centre. Droplet i gets gravity defaults.Gravity + i*GravityStep.
func (w *World) SpawnBatch(b Batch) ([]uint64, error) {
	ids := make([]uint64, 0, b.Count)
	r := w.defaults.Radius
	for i := 0; i < b.Count; i++ {
		cfg := w.defaults
		cfg.Gravity += float64(i) * b.GravityStep
		pos := dynamo.Vec2{X: w.bounds.Width/2 + (b.Spacing*r*float64(i) - 1), Y: r}
		id, err := w.Spawn(pos, cfg)
		if err != nil {
			return ids, fmt.Errorf("batch droplet %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Step runs one frame and returns the number of contacts resolved. Clear and
// spawn requests are applied before any pass runs. Until the start trigger
// has been seen, particles stay inert at their spawn positions.
func (w *World) Step(dt float64, in dynamo.InputState) (int, error) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0, &dynamo.SimulationError{Frame: w.frame, Time: w.clock, Wrapped: fmt.Errorf("%w: %v", dynamo.ErrInvalidTimestep, dt)}
	}

	if in.Clear {
		w.set.Clear()
	}
	for _, pos := range in.Spawns {
		if _, err := w.SpawnDefault(pos); err != nil {
			return 0, &dynamo.SimulationError{Frame: w.frame, Time: w.clock, Wrapped: err}
		}
	}
	if in.Start {
		w.started = true
	}

	w.frame++
	w.clock += dt
	if !w.started {
		return 0, nil
	}
	w.elapsed += dt

	ps := w.set.Particles()
	for i := range ps {
		physics.Integrate(&ps[i], dt, w.integrator)
		if in.Boost {
			physics.ApplyBoost(&ps[i], w.boost, w.rng)
		}
	}
	for i := range ps {
		physics.ResolveBoundaries(&ps[i], w.bounds)
	}
	contacts := w.resolver.Resolve(ps)
	for i := range ps {
		ps[i].UpdateColor()
	}
	return contacts, nil
}
