package metrics

import (
	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/physics"
)

// Overlap tracks the deepest residual penetration left after resolution.
type Overlap struct {
	name    string
	deepest float64
}

func NewOverlap() *Overlap {
	return &Overlap{name: "max_overlap"}
}

func (o *Overlap) Name() string { return o.name }

func (o *Overlap) Observe(ps []dynamo.Particle, t float64) {
	if d := physics.MaxOverlap(ps); d > o.deepest {
		o.deepest = d
	}
}

func (o *Overlap) Value() float64 { return o.deepest }

func (o *Overlap) Reset() { o.deepest = 0 }

// Contacts is the mean number of touching pairs per frame.
type Contacts struct {
	name    string
	slop    float64
	total   int
	samples int
}

func NewContacts(slop float64) *Contacts {
	return &Contacts{name: "contacts", slop: slop}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(ps []dynamo.Particle, t float64) {
	c.samples++
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			reach := ps[i].Config.Radius + ps[j].Config.Radius + c.slop
			if ps[i].Pos.Dist(ps[j].Pos) <= reach {
				c.total++
			}
		}
	}
}

func (c *Contacts) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.total) / float64(c.samples)
}

func (c *Contacts) Reset() {
	c.total = 0
	c.samples = 0
}
