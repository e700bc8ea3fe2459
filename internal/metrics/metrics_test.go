package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/physics"
	"github.com/san-kum/dropsim/internal/sim"
)

const floor = 720.0

func dropWorld(t *testing.T) (*sim.World, uint64) {
	t.Helper()
	bounds, err := physics.NewBounds(1000, floor, false)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	w, err := sim.NewWorld(sim.Options{
		Bounds: bounds,
		Defaults: dynamo.ParticleConfig{
			Radius:      10,
			Gravity:     600,
			Restitution: 0.8,
			ColorMode:   dynamo.ColorVelocity,
		},
	})
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	id, err := w.SpawnDefault(dynamo.Vec2{X: 500, Y: floor - 10 - 300})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	return w, id
}

func run(t *testing.T, w *sim.World, frames int, ms ...dynamo.Metric) {
	t.Helper()
	in := dynamo.InputState{Start: true}
	for i := 0; i < frames; i++ {
		if _, err := w.Step(0.001, in); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		in = dynamo.InputState{}
		for _, m := range ms {
			m.Observe(w.Particles(), w.Clock())
		}
	}
}

func TestApexDecaysWithRestitution(t *testing.T) {
	w, id := dropWorld(t)
	apex := NewApex(id, floor)
	run(t, w, 4000, apex)

	peaks := apex.Peaks()
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d: %v", len(peaks), peaks)
	}
	if math.Abs(peaks[0]-192)/192 > 0.02 {
		t.Errorf("first apex: expected ~192, got %.2f", peaks[0])
	}
	if ratio := apex.Value(); math.Abs(ratio-0.64) > 0.02 {
		t.Errorf("apex ratio: expected ~0.64, got %.4f", ratio)
	}

	apex.Reset()
	if len(apex.Peaks()) != 0 || apex.Value() != 0 {
		t.Error("reset should clear recorded peaks")
	}
}

func TestApexFromRecordedFrames(t *testing.T) {
	w, id := dropWorld(t)
	live := NewApex(id, floor)
	recorded := NewApex(id, floor)

	in := dynamo.InputState{Start: true}
	for i := 0; i < 4000; i++ {
		if _, err := w.Step(0.001, in); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		in = dynamo.InputState{}
		live.Observe(w.Particles(), w.Clock())
		recorded.ObserveFrame(w.Samples())
	}

	a, b := live.Peaks(), recorded.Peaks()
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("peak counts differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("peak %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestEnergyConservedInFreeFall(t *testing.T) {
	w, _ := dropWorld(t)
	e := NewEnergy(floor)
	loss := NewEnergyLoss(floor)
	run(t, w, 500, e, loss)

	initial := 600.0 * 300
	if math.Abs(e.Current()-initial)/initial > 0.01 {
		t.Errorf("energy drifted: expected ~%.0f, got %.2f", initial, e.Current())
	}
	if math.Abs(loss.Value()) > 0.01 {
		t.Errorf("no energy should be lost before contact, got %.4f", loss.Value())
	}
}

func TestEnergyLossAfterBounce(t *testing.T) {
	w, _ := dropWorld(t)
	loss := NewEnergyLoss(floor)
	run(t, w, 1500, loss)

	// one bounce keeps e² of the energy
	if math.Abs(loss.Value()-0.36) > 0.03 {
		t.Errorf("expected ~0.36 loss after one bounce, got %.4f", loss.Value())
	}

	loss.Reset()
	if loss.Value() != 0 {
		t.Error("reset should clear energy loss")
	}
}

func TestContainment(t *testing.T) {
	bounds, _ := physics.NewBounds(100, 100, false)
	c := NewContainment(bounds, 1e-9)
	if c.Value() != 1 {
		t.Errorf("empty containment should be 1, got %f", c.Value())
	}

	cfg := dynamo.ParticleConfig{Radius: 5, Gravity: 10, Restitution: 0.5}
	inside := []dynamo.Particle{{Pos: dynamo.Vec2{X: 50, Y: 50}, Config: cfg}}
	outside := []dynamo.Particle{{Pos: dynamo.Vec2{X: 2, Y: 50}, Config: cfg}}
	c.Observe(inside, 0)
	c.Observe(outside, 0.1)
	if c.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", c.Value())
	}

	w, _ := dropWorld(t)
	c = NewContainment(w.Bounds(), 1e-9)
	run(t, w, 3000, c)
	if c.Value() != 1 {
		t.Errorf("resolved particles should stay inside, got %f", c.Value())
	}
}

func TestOverlapAndContacts(t *testing.T) {
	cfg := dynamo.ParticleConfig{Radius: 10, Gravity: 10, Restitution: 0.5}
	ps := []dynamo.Particle{
		{ID: 1, Pos: dynamo.Vec2{X: 0, Y: 0}, Config: cfg},
		{ID: 2, Pos: dynamo.Vec2{X: 16, Y: 0}, Config: cfg},
		{ID: 3, Pos: dynamo.Vec2{X: 100, Y: 0}, Config: cfg},
	}

	o := NewOverlap()
	o.Observe(ps, 0)
	if math.Abs(o.Value()-4) > 1e-9 {
		t.Errorf("expected overlap 4, got %f", o.Value())
	}

	c := NewContacts(0)
	c.Observe(ps, 0)
	ps[1].Pos.X = 50
	c.Observe(ps, 0.1)
	if c.Value() != 0.5 {
		t.Errorf("expected 0.5 contacts per frame, got %f", c.Value())
	}

	o.Reset()
	c.Reset()
	if o.Value() != 0 || c.Value() != 0 {
		t.Error("reset should zero metrics")
	}
}
