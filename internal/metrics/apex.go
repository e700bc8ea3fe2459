package metrics

import (
	"github.com/san-kum/dropsim/internal/dynamo"
)

// Apex records the peak heights reached by one particle between floor
// contacts. Heights are measured upwards from the particle's resting
// position on a floor at y = floor.
type Apex struct {
	name   string
	id     uint64
	floor  float64
	peaks  []float64
	rising bool
	lastY  float64
	seen   bool
}

func NewApex(id uint64, floor float64) *Apex {
	return &Apex{name: "apex", id: id, floor: floor}
}

func (a *Apex) Name() string { return a.name }

func (a *Apex) Observe(ps []dynamo.Particle, t float64) {
	for i := range ps {
		if ps[i].ID == a.id {
			a.track(ps[i].Pos.Y, ps[i].Config.Radius)
			return
		}
	}
}

// ObserveFrame feeds one recorded frame, so peaks can be recovered from a
// stored run.
func (a *Apex) ObserveFrame(frame []dynamo.Sample) {
	for _, s := range frame {
		if s.ID == a.id {
			a.track(s.Pos.Y, s.Radius)
			return
		}
	}
}

func (a *Apex) track(y, radius float64) {
	if a.seen {
		switch {
		case y < a.lastY:
			a.rising = true
		case y > a.lastY && a.rising:
			a.rising = false
			a.peaks = append(a.peaks, a.floor-radius-a.lastY)
		}
	}
	a.lastY = y
	a.seen = true
}

// Peaks returns the recorded apex heights in order.
func (a *Apex) Peaks() []float64 {
	return append([]float64(nil), a.peaks...)
}

// Value is the ratio of the last two apex heights, which approaches e² for
// a particle bouncing with restitution e.
func (a *Apex) Value() float64 {
	n := len(a.peaks)
	if n < 2 || a.peaks[n-2] == 0 {
		return 0
	}
	return a.peaks[n-1] / a.peaks[n-2]
}

func (a *Apex) Reset() {
	a.peaks = nil
	a.rising = false
	a.lastY = 0
	a.seen = false
}
