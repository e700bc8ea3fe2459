package dynamo

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector in world (screen) coordinates. Y grows downwards.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) IsValid() bool        { return isFinite(v.X) && isFinite(v.Y) }

func (v Vec2) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// Equal reports whether v and o agree component-wise within tol.
func (v Vec2) Equal(o Vec2, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

// Normalize returns the unit vector along v, or fallback when v has no length.
func (v Vec2) Normalize(fallback Vec2) Vec2 {
	l := v.Len()
	if l == 0 {
		return fallback
	}
	return Vec2{v.X / l, v.Y / l}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParticleConfig is the per-particle physical configuration chosen at spawn.
type ParticleConfig struct {
	Radius      float64
	Gravity     float64
	Restitution float64
	ColorMode   ColorMode
	Color       RGB // used by ColorStatic
}

func (c ParticleConfig) Validate() error {
	if !(c.Radius > 0) || !isFinite(c.Radius) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, c.Radius)
	}
	if !isFinite(c.Gravity) {
		return fmt.Errorf("%w: gravity %v", ErrNonFinite, c.Gravity)
	}
	if !(c.Restitution >= 0 && c.Restitution <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidRestitution, c.Restitution)
	}
	return nil
}

// Particle is a single droplet. Membership in a ParticleSet is its liveness.
type Particle struct {
	ID     uint64
	Pos    Vec2
	Vel    Vec2
	Spawn  Vec2
	Config ParticleConfig
	Color  RGB
}

func (p *Particle) Radius() float64 { return p.Config.Radius }

// UpdateColor recomputes the display colour from the particle's colour mode.
func (p *Particle) UpdateColor() {
	p.Color = p.Config.ColorMode.Resolve(p.Config.Color, p.Vel)
}

// SpawnMode selects how a freshly spawned particle's velocity is chosen.
type SpawnMode string

const (
	SpawnRest   SpawnMode = "rest"
	SpawnKick   SpawnMode = "kick"
	SpawnRandom SpawnMode = "random"
)

type SpawnPolicy struct {
	Mode  SpawnMode
	KickX float64
	MinX  float64
	MaxX  float64
	MinY  float64
	MaxY  float64
}

func DefaultSpawnPolicy() SpawnPolicy {
	return SpawnPolicy{Mode: SpawnRest, KickX: 200, MinX: -200, MaxX: 200}
}

// BoostConfig describes the held "boost" impulse.
type BoostConfig struct {
	Velocity float64 // vertical velocity pinned while held, negative is up
	RerollX  bool
	MinX     float64
	MaxX     float64
}

func DefaultBoostConfig() BoostConfig {
	return BoostConfig{Velocity: -200, MinX: -200, MaxX: 200}
}

// InputState is the read-only input snapshot for one frame.
type InputState struct {
	Start  bool
	Boost  bool
	Clear  bool
	Spawns []Vec2
}

// Integrator advances one particle under its own gravity.
type Integrator interface {
	Name() string
	Step(p *Particle, dt float64)
}

// Resolver resolves pairwise contacts in place and returns the number of
// contacts it handled.
type Resolver interface {
	Name() string
	Resolve(ps []Particle) int
}

type Metric interface {
	Name() string
	Observe(ps []Particle, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(ps []Particle, t float64)
}

// InputSource supplies the input snapshot for a given frame of a headless run.
type InputSource interface {
	Input(frame int, t float64) InputState
}

// Sample is a recorded particle state in a Result.
type Sample struct {
	ID     uint64
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Color  RGB
}

func SampleOf(p *Particle) Sample {
	return Sample{ID: p.ID, Pos: p.Pos, Vel: p.Vel, Radius: p.Config.Radius, Color: p.Color}
}

type Result struct {
	Frames     [][]Sample
	Times      []float64
	Contacts   []int
	Metrics    map[string]float64
	StepsTaken int
	Started    bool
	Errors     []error
}

// Track extracts the recorded positions of one particle.
func (r *Result) Track(id uint64) ([]float64, []Vec2) {
	times := make([]float64, 0, len(r.Frames))
	track := make([]Vec2, 0, len(r.Frames))
	for i, frame := range r.Frames {
		for _, s := range frame {
			if s.ID == id {
				times = append(times, r.Times[i])
				track = append(track, s.Pos)
				break
			}
		}
	}
	return times, track
}
