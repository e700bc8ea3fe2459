package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/dropsim/internal/dynamo"
)

// RestEpsilon is the speed, in units per second, at or below which a velocity
// component is snapped to zero after integration.
const RestEpsilon = 0.5

// Integrate advances p by dt with integ and then snaps negligible velocity
// components to exactly zero so restitution decay terminates.
func Integrate(p *dynamo.Particle, dt float64, integ dynamo.Integrator) {
	integ.Step(p, dt)
	ClampNegligible(&p.Vel)
}

// ClampNegligible zeroes each component of v independently when
// |component| <= RestEpsilon.
func ClampNegligible(v *dynamo.Vec2) {
	if math.Abs(v.Y) <= RestEpsilon {
		v.Y = 0
	}
	if math.Abs(v.X) <= RestEpsilon {
		v.X = 0
	}
}

// ApplyBoost pins the vertical velocity to the boost value. With RerollX set
// the horizontal velocity is redrawn from [MinX, MaxX) using rng.
func ApplyBoost(p *dynamo.Particle, cfg dynamo.BoostConfig, rng *rand.Rand) {
	p.Vel.Y = cfg.Velocity
	if cfg.RerollX && rng != nil {
		p.Vel.X = cfg.MinX + rng.Float64()*(cfg.MaxX-cfg.MinX)
	}
}
