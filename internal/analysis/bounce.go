package analysis

import (
	"github.com/san-kum/dropsim/internal/dynamo"
)

// Bounce is one floor contact of a tracked particle.
type Bounce struct {
	Time       float64
	ImpactVel  float64 // downward speed at contact, before reflection
	ReboundVel float64 // upward speed just after contact
}

// Restitution is the observed coefficient for this contact.
func (b Bounce) Restitution() float64 {
	if b.ImpactVel == 0 {
		return 0
	}
	return b.ReboundVel / b.ImpactVel
}

// Series extracts the recorded height above floor and vertical velocity of
// one particle. Height is measured upwards from the resting position.
func Series(result *dynamo.Result, id uint64, floor float64) (times, heights, vy []float64) {
	for i, frame := range result.Frames {
		for _, s := range frame {
			if s.ID != id {
				continue
			}
			times = append(times, result.Times[i])
			heights = append(heights, floor-s.Radius-s.Pos.Y)
			vy = append(vy, s.Vel.Y)
			break
		}
	}
	return times, heights, vy
}

// FindBounces detects floor contacts as frames where the vertical velocity
// flips from falling to rising while the particle sits on the floor.
//
// The contact frame integrates gravity before reflecting, so the impact speed
// is the last recorded velocity plus one frame of the acceleration measured
// over the two frames before contact. Without two free-flight frames the last
// recorded velocity is used as is.
func FindBounces(result *dynamo.Result, id uint64, floor float64) []Bounce {
	times, heights, vy := Series(result, id, floor)
	bounces := make([]Bounce, 0)
	for i := 1; i < len(vy); i++ {
		if !(vy[i-1] > 0 && vy[i] < 0 && heights[i] <= 1e-9) {
			continue
		}
		impact := vy[i-1]
		if i >= 2 && vy[i-2] >= 0 && times[i-1] > times[i-2] {
			accel := (vy[i-1] - vy[i-2]) / (times[i-1] - times[i-2])
			impact += accel * (times[i] - times[i-1])
		}
		bounces = append(bounces, Bounce{
			Time:       times[i],
			ImpactVel:  impact,
			ReboundVel: -vy[i],
		})
	}
	return bounces
}

// BounceFrequency is the dominant frequency of a particle's height.
func BounceFrequency(result *dynamo.Result, id uint64, floor, dt float64) float64 {
	_, heights, _ := Series(result, id, floor)
	return DominantFrequency(heights, dt)
}
