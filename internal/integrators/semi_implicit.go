package integrators

import "github.com/san-kum/dropsim/internal/dynamo"

// SemiImplicitEuler updates velocity from gravity first and then moves the
// particle with the updated velocity.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (s *SemiImplicitEuler) Name() string { return "semi_implicit" }

func (s *SemiImplicitEuler) Step(p *dynamo.Particle, dt float64) {
	p.Vel.Y += p.Config.Gravity * dt
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
}
