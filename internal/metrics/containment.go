package metrics

import (
	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/physics"
)

// Containment is the fraction of frames in which every particle lies inside
// the viewport inset by its radius.
type Containment struct {
	name       string
	bounds     physics.Bounds
	tolerance  float64
	violations int
	samples    int
}

func NewContainment(bounds physics.Bounds, tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		bounds:    bounds,
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(ps []dynamo.Particle, t float64) {
	c.samples++
	for i := range ps {
		if !c.bounds.ContainsWithin(&ps[i], c.tolerance) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
