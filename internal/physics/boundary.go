package physics

import (
	"fmt"

	"github.com/san-kum/dropsim/internal/dynamo"
)

// FloorFriction scales the tangential velocity on floor and ceiling contact.
const FloorFriction = 0.95

// Bounds are the viewport half-planes particles are kept inside.
type Bounds struct {
	Width, Height float64
	Ceiling       bool
}

func NewBounds(width, height float64, ceiling bool) (Bounds, error) {
	if !(width > 0) || !(height > 0) {
		return Bounds{}, fmt.Errorf("%w: %vx%v", dynamo.ErrInvalidViewport, width, height)
	}
	return Bounds{Width: width, Height: height, Ceiling: ceiling}, nil
}

// Side identifies which boundaries a particle touched in one resolution.
type Side uint8

const (
	SideFloor Side = 1 << iota
	SideCeiling
	SideRight
	SideLeft
)

func (s Side) Has(o Side) bool { return s&o != 0 }

// ResolveBoundaries clamps p inside b, reflecting the normal velocity
// component scaled by the particle's restitution. Every boundary is tested
// on every call, so a particle resting on a limit keeps being corrected and
// a corner contact gets both corrections.
func ResolveBoundaries(p *dynamo.Particle, b Bounds) Side {
	var hit Side
	r := p.Config.Radius
	e := p.Config.Restitution

	if p.Pos.Y >= b.Height-r {
		p.Pos.Y = b.Height - r
		p.Vel.Y = -p.Vel.Y * e
		p.Vel.X *= FloorFriction
		hit |= SideFloor
	}
	if b.Ceiling && p.Pos.Y <= r {
		p.Pos.Y = r
		p.Vel.Y = -p.Vel.Y * e
		p.Vel.X *= FloorFriction
		hit |= SideCeiling
	}
	if p.Pos.X >= b.Width-r {
		p.Pos.X = b.Width - r
		p.Vel.X = -p.Vel.X * e
		hit |= SideRight
	}
	if p.Pos.X <= r {
		p.Pos.X = r
		p.Vel.X = -p.Vel.X * e
		hit |= SideLeft
	}
	return hit
}

// Contains reports whether p lies within b inset by its radius.
func (b Bounds) Contains(p *dynamo.Particle) bool {
	return b.ContainsWithin(p, 0)
}

// ContainsWithin is Contains with the limits relaxed by tol.
func (b Bounds) ContainsWithin(p *dynamo.Particle, tol float64) bool {
	r := p.Config.Radius - tol
	if p.Pos.X < r || p.Pos.X > b.Width-r {
		return false
	}
	if p.Pos.Y > b.Height-r {
		return false
	}
	if b.Ceiling && p.Pos.Y < r {
		return false
	}
	return true
}
