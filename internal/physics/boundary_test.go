package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/integrators"
	"github.com/san-kum/dropsim/internal/physics"
)

var _ = Describe("ResolveBoundaries", func() {
	var bounds physics.Bounds

	BeforeEach(func() {
		var err error
		bounds, err = physics.NewBounds(1280, 720, false)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an empty viewport", func() {
		_, err := physics.NewBounds(0, 720, false)
		Expect(err).To(MatchError(dynamo.ErrInvalidViewport))
	})

	It("reflects off the floor with restitution and friction", func() {
		p := drop(100, 710, 15, 200, 0.8)
		p.Vel = dynamo.Vec2{X: 100, Y: 300}

		hit := physics.ResolveBoundaries(p, bounds)
		Expect(hit.Has(physics.SideFloor)).To(BeTrue())
		Expect(p.Pos.Y).To(Equal(705.0))
		Expect(p.Vel.Y).To(BeNumerically("~", -240, 1e-9))
		Expect(p.Vel.X).To(BeNumerically("~", 95, 1e-9))
	})

	It("keeps correcting a particle resting exactly on the floor", func() {
		p := drop(100, 705, 15, 200, 0.8)
		Expect(physics.ResolveBoundaries(p, bounds).Has(physics.SideFloor)).To(BeTrue())
		Expect(physics.ResolveBoundaries(p, bounds).Has(physics.SideFloor)).To(BeTrue())
		Expect(p.Pos.Y).To(Equal(705.0))
	})

	It("applies both corrections in a corner", func() {
		p := drop(1279, 719, 15, 200, 0.5)
		p.Vel = dynamo.Vec2{X: 100, Y: 100}

		hit := physics.ResolveBoundaries(p, bounds)
		Expect(hit.Has(physics.SideFloor)).To(BeTrue())
		Expect(hit.Has(physics.SideRight)).To(BeTrue())
		Expect(p.Pos).To(Equal(dynamo.Vec2{X: 1265, Y: 705}))
		Expect(p.Vel.X).To(BeNumerically("~", -47.5, 1e-9))
		Expect(p.Vel.Y).To(BeNumerically("~", -50, 1e-9))
	})

	It("only has a ceiling when enabled", func() {
		p := drop(100, -40, 15, 200, 0.8)
		p.Vel = dynamo.Vec2{Y: -100}
		Expect(physics.ResolveBoundaries(p, bounds).Has(physics.SideCeiling)).To(BeFalse())

		bounds.Ceiling = true
		Expect(physics.ResolveBoundaries(p, bounds).Has(physics.SideCeiling)).To(BeTrue())
		Expect(p.Pos.Y).To(Equal(15.0))
		Expect(p.Vel.Y).To(BeNumerically("~", 80, 1e-9))
	})

	It("contains particles regardless of speed", func() {
		bounds.Ceiling = true
		integ := integrators.NewSemiImplicitEuler()
		speeds := []dynamo.Vec2{{X: 1e6, Y: 1e6}, {X: -1e7, Y: -3e5}, {X: 5e4, Y: -9e8}}
		for _, v := range speeds {
			p := drop(640, 360, 15, 200, 0.8)
			p.Vel = v
			for i := 0; i < 30; i++ {
				physics.Integrate(p, 1.0/60, integ)
				physics.ResolveBoundaries(p, bounds)
				Expect(bounds.Contains(p)).To(BeTrue(), "velocity %v escaped at %v", v, p.Pos)
			}
		}
	})

	It("decays bounce peaks by restitution squared", func() {
		const (
			gravity     = 600.0
			restitution = 0.8
			dt          = 1.0 / 1000
			h0          = 300.0
		)
		b, err := physics.NewBounds(400, 1000, false)
		Expect(err).NotTo(HaveOccurred())

		floor := 1000.0 - 10
		p := drop(200, floor-h0, 10, gravity, restitution)
		integ := integrators.NewSemiImplicitEuler()

		var peaks []float64
		rising := false
		for i := 0; i < 20000 && len(peaks) < 3; i++ {
			physics.Integrate(p, dt, integ)
			physics.ResolveBoundaries(p, b)
			if p.Vel.Y < 0 {
				rising = true
			} else if rising {
				peaks = append(peaks, floor-p.Pos.Y)
				rising = false
			}
		}

		Expect(peaks).To(HaveLen(3))
		expected := h0
		for _, peak := range peaks {
			expected *= restitution * restitution
			Expect(peak).To(BeNumerically("~", expected, expected*0.02))
		}
	})
})
