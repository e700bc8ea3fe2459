package sim

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/dropsim/internal/dynamo"
)

// ParticleSet is the ordered collection of live particles. Insertion order is
// draw order and the visiting order of order-dependent resolvers.
type ParticleSet struct {
	particles []dynamo.Particle
	nextID    uint64
}

func NewParticleSet() *ParticleSet {
	return &ParticleSet{particles: make([]dynamo.Particle, 0, 16)}
}

// Spawn appends a particle at pos with the given configuration and initial
// velocity and returns its handle. Handles are never reused, even after
// Clear.
func (s *ParticleSet) Spawn(pos dynamo.Vec2, cfg dynamo.ParticleConfig, vel dynamo.Vec2) (uint64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if !pos.IsValid() || !vel.IsValid() {
		return 0, fmt.Errorf("%w: spawn at %v with velocity %v", dynamo.ErrNonFinite, pos, vel)
	}

	s.nextID++
	p := dynamo.Particle{
		ID:     s.nextID,
		Pos:    pos,
		Vel:    vel,
		Spawn:  pos,
		Config: cfg,
	}
	p.UpdateColor()
	s.particles = append(s.particles, p)
	return p.ID, nil
}

// Clear removes every particle. It must not be called mid-frame.
func (s *ParticleSet) Clear() {
	s.particles = s.particles[:0]
}

func (s *ParticleSet) Len() int { return len(s.particles) }

// Particles exposes the live ordered slice for in-place updates.
func (s *ParticleSet) Particles() []dynamo.Particle { return s.particles }

// Get returns the particle with the given handle, or nil if it is not live.
func (s *ParticleSet) Get(id uint64) *dynamo.Particle {
	for i := range s.particles {
		if s.particles[i].ID == id {
			return &s.particles[i]
		}
	}
	return nil
}

// Samples copies the renderable state of every particle.
func (s *ParticleSet) Samples() []dynamo.Sample {
	out := make([]dynamo.Sample, len(s.particles))
	for i := range s.particles {
		out[i] = dynamo.SampleOf(&s.particles[i])
	}
	return out
}

// InitialVelocity draws a spawn velocity according to policy.
func InitialVelocity(policy dynamo.SpawnPolicy, rng *rand.Rand) dynamo.Vec2 {
	switch policy.Mode {
	case dynamo.SpawnKick:
		return dynamo.Vec2{X: policy.KickX}
	case dynamo.SpawnRandom:
		return dynamo.Vec2{
			X: policy.MinX + rng.Float64()*(policy.MaxX-policy.MinX),
			Y: policy.MinY + rng.Float64()*(policy.MaxY-policy.MinY),
		}
	default:
		return dynamo.Vec2{}
	}
}

// Batch describes a pre-populated row of droplets spaced along the top of the
// viewport, each with progressively stronger gravity.
type Batch struct {
	Count       int
	GravityStep float64
	Spacing     float64
}

type Config struct {
	Dt       float64
	Duration float64
}

// AutoStart asserts the start trigger on the first frame only.
type AutoStart struct{}

func (AutoStart) Input(frame int, _ float64) dynamo.InputState {
	return dynamo.InputState{Start: frame == 0}
}

// InputFunc adapts a function to dynamo.InputSource.
type InputFunc func(frame int, t float64) dynamo.InputState

func (f InputFunc) Input(frame int, t float64) dynamo.InputState { return f(frame, t) }

// Progress is an Observer that calls Report at most once per Interval of
// simulated time. A non-positive Interval means one second.
type Progress struct {
	Interval float64
	Report   func(t float64, particles int)
	next     float64
}

func (p *Progress) OnFrame(ps []dynamo.Particle, t float64) {
	if p.Report == nil || t < p.next {
		return
	}
	p.Report(t, len(ps))
	interval := p.Interval
	if interval <= 0 {
		interval = 1
	}
	p.next = t + interval
}
