package physics

import (
	"github.com/san-kum/dropsim/internal/dynamo"
)

// DefaultDamping is the fraction of the normal-velocity difference exchanged
// on contact.
const DefaultDamping = 0.5

// FallbackNormal is used when two centres coincide exactly.
var FallbackNormal = dynamo.Vec2{X: 1, Y: 0}

// contact computes the unit normal from b to a and the half overlap.
func contact(pa, pb dynamo.Vec2, ra, rb float64) (dynamo.Vec2, float64, bool) {
	d := pa.Dist(pb)
	sum := ra + rb
	if !(d < sum) {
		return dynamo.Vec2{}, 0, false
	}
	n := pa.Sub(pb).Normalize(FallbackNormal)
	return n, (sum - d) / 2, true
}

// ResolvePair separates a and b along their contact normal, splitting the
// correction evenly, and exchanges damping times the difference of their
// normal velocities. Tangential components are untouched.
func ResolvePair(a, b *dynamo.Particle, damping float64) bool {
	n, overlap, ok := contact(a.Pos, b.Pos, a.Config.Radius, b.Config.Radius)
	if !ok {
		return false
	}

	a.Pos = a.Pos.Add(n.Scale(overlap))
	b.Pos = b.Pos.Sub(n.Scale(overlap))

	van, vbn := a.Vel.Dot(n), b.Vel.Dot(n)
	a.Vel = a.Vel.Add(n.Scale(damping * (vbn - van)))
	b.Vel = b.Vel.Add(n.Scale(damping * (van - vbn)))
	return true
}

// Sequential visits every ordered pair (a, b), a != b, and mutates both
// particles immediately. Later pairs see earlier corrections, so results
// depend on insertion order.
type Sequential struct {
	Damping float64
}

func NewSequential(damping float64) *Sequential {
	return &Sequential{Damping: damping}
}

func (s *Sequential) Name() string { return "sequential" }

func (s *Sequential) Resolve(ps []dynamo.Particle) int {
	contacts := 0
	for i := range ps {
		for j := range ps {
			if i == j {
				continue
			}
			if ResolvePair(&ps[i], &ps[j], s.Damping) {
				contacts++
			}
		}
	}
	return contacts
}

// Snapshot computes every unordered pair's correction against the positions
// and velocities at the start of the pass, then applies the summed
// corrections once. The outcome is independent of insertion order.
type Snapshot struct {
	Damping float64

	pos, vel []dynamo.Vec2
	dp, dv   []dynamo.Vec2
}

func NewSnapshot(damping float64) *Snapshot {
	return &Snapshot{Damping: damping}
}

func (s *Snapshot) Name() string { return "snapshot" }

func (s *Snapshot) ensure(n int) {
	if cap(s.pos) < n {
		s.pos = make([]dynamo.Vec2, n)
		s.vel = make([]dynamo.Vec2, n)
		s.dp = make([]dynamo.Vec2, n)
		s.dv = make([]dynamo.Vec2, n)
	}
	s.pos, s.vel = s.pos[:n], s.vel[:n]
	s.dp, s.dv = s.dp[:n], s.dv[:n]
}

func (s *Snapshot) Resolve(ps []dynamo.Particle) int {
	n := len(ps)
	s.ensure(n)
	for i := range ps {
		s.pos[i], s.vel[i] = ps[i].Pos, ps[i].Vel
		s.dp[i], s.dv[i] = dynamo.Vec2{}, dynamo.Vec2{}
	}

	contacts := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			normal, overlap, ok := contact(s.pos[i], s.pos[j], ps[i].Config.Radius, ps[j].Config.Radius)
			if !ok {
				continue
			}
			contacts++

			s.dp[i] = s.dp[i].Add(normal.Scale(overlap))
			s.dp[j] = s.dp[j].Sub(normal.Scale(overlap))

			van, vbn := s.vel[i].Dot(normal), s.vel[j].Dot(normal)
			s.dv[i] = s.dv[i].Add(normal.Scale(s.Damping * (vbn - van)))
			s.dv[j] = s.dv[j].Add(normal.Scale(s.Damping * (van - vbn)))
		}
	}

	if contacts == 0 {
		return 0
	}
	for i := range ps {
		ps[i].Pos = ps[i].Pos.Add(s.dp[i])
		ps[i].Vel = ps[i].Vel.Add(s.dv[i])
	}
	return contacts
}

// MaxOverlap returns the deepest pairwise penetration among ps.
func MaxOverlap(ps []dynamo.Particle) float64 {
	deepest := 0.0
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := ps[i].Pos.Dist(ps[j].Pos)
			if pen := ps[i].Config.Radius + ps[j].Config.Radius - d; pen > deepest {
				deepest = pen
			}
		}
	}
	return deepest
}
