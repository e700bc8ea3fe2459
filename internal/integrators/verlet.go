package integrators

import "github.com/san-kum/dropsim/internal/dynamo"

// Verlet is velocity Verlet. Gravity is constant per particle, so the
// half-step accelerations coincide and the step is exact for free flight.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Step(p *dynamo.Particle, dt float64) {
	g := p.Config.Gravity
	p.Pos.X += p.Vel.X * dt
	p.Pos.Y += p.Vel.Y*dt + 0.5*g*dt*dt
	p.Vel.Y += g * dt
}
