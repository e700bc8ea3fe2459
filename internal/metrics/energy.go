package metrics

import (
	"github.com/san-kum/dropsim/internal/dynamo"
)

// mechanical returns the per-unit-mass kinetic plus potential energy of the
// particles, with potential measured from each particle's resting height on
// a floor at y = floor.
func mechanical(ps []dynamo.Particle, floor float64) float64 {
	total := 0.0
	for i := range ps {
		p := &ps[i]
		ke := 0.5 * p.Vel.Dot(p.Vel)
		pe := p.Config.Gravity * (floor - p.Config.Radius - p.Pos.Y)
		total += ke + pe
	}
	return total
}

type Energy struct {
	name        string
	floor       float64
	samples     int
	totalEnergy float64
	current     float64
}

func NewEnergy(floor float64) *Energy {
	return &Energy{
		name:  "energy",
		floor: floor,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(ps []dynamo.Particle, t float64) {
	e.current = mechanical(ps, e.floor)
	e.totalEnergy += e.current
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

// Current is the energy of the most recent frame.
func (e *Energy) Current() float64 { return e.current }

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.current = 0
	e.samples = 0
}

// EnergyLoss reports the fraction of the first observed mechanical energy
// that has been dissipated by the latest frame.
type EnergyLoss struct {
	name          string
	floor         float64
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyLoss(floor float64) *EnergyLoss {
	return &EnergyLoss{
		name:  "energy_loss",
		floor: floor,
	}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(ps []dynamo.Particle, t float64) {
	energy := mechanical(ps, e.floor)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return 1 - e.currentEnergy/e.initialEnergy
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}
