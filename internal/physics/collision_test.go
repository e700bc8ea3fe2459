package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/physics"
)

func pair(ax, bx float64) []dynamo.Particle {
	return []dynamo.Particle{*drop(ax, 100, 15, 0, 0.8), *drop(bx, 100, 15, 0, 0.8)}
}

var _ = Describe("ResolvePair", func() {
	It("ignores separated and touching circles", func() {
		ps := pair(0, 30)
		Expect(physics.ResolvePair(&ps[0], &ps[1], physics.DefaultDamping)).To(BeFalse())
		Expect(ps[0].Pos.X).To(Equal(0.0))
	})

	It("splits the positional correction evenly along the normal", func() {
		ps := pair(0, 20)
		Expect(physics.ResolvePair(&ps[0], &ps[1], physics.DefaultDamping)).To(BeTrue())
		Expect(ps[0].Pos.X).To(Equal(-5.0))
		Expect(ps[1].Pos.X).To(Equal(25.0))
		Expect(ps[0].Pos.Dist(ps[1].Pos)).To(Equal(30.0))
	})

	It("exchanges a damped fraction of the normal velocity difference", func() {
		ps := pair(0, 20)
		ps[0].Vel = dynamo.Vec2{X: 40, Y: 7}
		ps[1].Vel = dynamo.Vec2{X: -10, Y: -3}

		// n points from b to a, i.e. (-1, 0)
		van, vbn := -40.0, 10.0
		damping := 0.3
		physics.ResolvePair(&ps[0], &ps[1], damping)

		dva := damping * (vbn - van)
		dvb := damping * (van - vbn)
		Expect(ps[0].Vel.X).To(BeNumerically("~", 40-dva, 1e-12))
		Expect(ps[1].Vel.X).To(BeNumerically("~", -10-dvb, 1e-12))
		Expect(ps[0].Vel.Y).To(Equal(7.0))
		Expect(ps[1].Vel.Y).To(Equal(-3.0))
		Expect(ps[0].Vel.X + ps[1].Vel.X).To(BeNumerically("~", 30, 1e-12))
	})

	It("uses the fallback normal for coincident centres", func() {
		ps := pair(50, 50)
		Expect(physics.ResolvePair(&ps[0], &ps[1], physics.DefaultDamping)).To(BeTrue())
		Expect(ps[0].Pos).To(Equal(dynamo.Vec2{X: 65, Y: 100}))
		Expect(ps[1].Pos).To(Equal(dynamo.Vec2{X: 35, Y: 100}))
	})
})

var _ = Describe("Resolvers", func() {
	resolvers := map[string]func() dynamo.Resolver{
		"sequential": func() dynamo.Resolver { return physics.NewSequential(physics.DefaultDamping) },
		"snapshot":   func() dynamo.Resolver { return physics.NewSnapshot(physics.DefaultDamping) },
	}

	for name, mk := range resolvers {
		name, mk := name, mk
		Context(name, func() {
			It("separates an isolated pair in one pass", func() {
				ps := pair(0, 20)
				Expect(mk().Resolve(ps)).To(BeNumerically(">=", 1))
				Expect(physics.MaxOverlap(ps)).To(BeNumerically("<=", 1e-9))
			})

			It("never increases overlap for resting contacts", func() {
				ps := []dynamo.Particle{
					*drop(100, 100, 15, 0, 0.8),
					*drop(118, 104, 15, 0, 0.8),
					*drop(109, 120, 15, 0, 0.8),
				}
				r := mk()
				prev := physics.MaxOverlap(ps)
				for i := 0; i < 50; i++ {
					r.Resolve(ps)
					cur := physics.MaxOverlap(ps)
					Expect(cur).To(BeNumerically("<=", prev+1e-9))
					prev = cur
				}
				Expect(prev).To(BeNumerically("<", 1e-3))
			})

			It("leaves head-on normal velocities averaged at damping 0.5", func() {
				ps := pair(0, 20)
				ps[0].Vel = dynamo.Vec2{X: 10}
				ps[1].Vel = dynamo.Vec2{X: -10}
				mk().Resolve(ps)
				Expect(ps[0].Vel.X).To(BeNumerically("~", 0, 1e-12))
				Expect(ps[1].Vel.X).To(BeNumerically("~", 0, 1e-12))
			})
		})
	}

	It("snapshot results do not depend on insertion order", func() {
		a := []dynamo.Particle{*drop(100, 100, 15, 0, 0.8), *drop(118, 104, 15, 0, 0.8), *drop(109, 120, 15, 0, 0.8)}
		b := []dynamo.Particle{a[2], a[0], a[1]}
		a[0].ID, a[1].ID, a[2].ID = 1, 2, 3
		b[0].ID, b[1].ID, b[2].ID = 3, 1, 2

		physics.NewSnapshot(0.5).Resolve(a)
		physics.NewSnapshot(0.5).Resolve(b)

		byID := map[uint64]dynamo.Vec2{}
		for _, p := range b {
			byID[p.ID] = p.Pos
		}
		for _, p := range a {
			Expect(p.Pos.Equal(byID[p.ID], 1e-9)).To(BeTrue())
		}
	})
})
