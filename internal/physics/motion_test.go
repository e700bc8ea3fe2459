package physics_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/integrators"
	"github.com/san-kum/dropsim/internal/physics"
)

func drop(x, y, radius, gravity, restitution float64) *dynamo.Particle {
	return &dynamo.Particle{
		Pos:   dynamo.Vec2{X: x, Y: y},
		Spawn: dynamo.Vec2{X: x, Y: y},
		Config: dynamo.ParticleConfig{
			Radius:      radius,
			Gravity:     gravity,
			Restitution: restitution,
			ColorMode:   dynamo.ColorVelocity,
		},
	}
}

var _ = Describe("Integrate", func() {
	integ := integrators.NewSemiImplicitEuler()

	It("applies gravity before moving", func() {
		p := drop(0, 0, 10, 200, 0.8)
		physics.Integrate(p, 0.1, integ)
		Expect(p.Vel.Y).To(BeNumerically("==", 20))
		Expect(p.Pos.Y).To(BeNumerically("~", 2, 1e-12))
	})

	It("snaps negligible components independently", func() {
		p := drop(0, 0, 10, 0, 0.8)
		p.Vel = dynamo.Vec2{X: 0.5, Y: -0.4}
		physics.Integrate(p, 0.01, integ)
		Expect(p.Vel).To(Equal(dynamo.Vec2{}))

		p.Vel = dynamo.Vec2{X: 0.51, Y: 0.3}
		physics.Integrate(p, 0.01, integ)
		Expect(p.Vel.X).To(Equal(0.51))
		Expect(p.Vel.Y).To(BeZero())
	})
})

var _ = Describe("ApplyBoost", func() {
	It("pins vertical velocity every time it is applied", func() {
		p := drop(0, 0, 10, 200, 0.8)
		p.Vel = dynamo.Vec2{X: 30, Y: 500}
		cfg := dynamo.DefaultBoostConfig()

		physics.ApplyBoost(p, cfg, nil)
		Expect(p.Vel).To(Equal(dynamo.Vec2{X: 30, Y: -200}))

		physics.Integrate(p, 1.0/60, integrators.NewSemiImplicitEuler())
		physics.ApplyBoost(p, cfg, nil)
		Expect(p.Vel.Y).To(Equal(-200.0))
	})

	It("rerolls horizontal velocity within range", func() {
		rng := rand.New(rand.NewSource(7))
		cfg := dynamo.BoostConfig{Velocity: -200, RerollX: true, MinX: -50, MaxX: 50}
		p := drop(0, 0, 10, 200, 0.8)
		for i := 0; i < 100; i++ {
			physics.ApplyBoost(p, cfg, rng)
			Expect(p.Vel.X).To(BeNumerically(">=", -50))
			Expect(p.Vel.X).To(BeNumerically("<", 50))
		}
	})
})
