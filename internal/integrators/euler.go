package integrators

import "github.com/san-kum/dropsim/internal/dynamo"

// Euler is explicit Euler: position advances with the velocity from the start
// of the step, then gravity is applied.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(p *dynamo.Particle, dt float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Vel.Y += p.Config.Gravity * dt
}
