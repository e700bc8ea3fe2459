package viz

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/physics"
	"github.com/san-kum/dropsim/internal/sim"
)

func testModel(t *testing.T) Model {
	t.Helper()
	bounds, err := physics.NewBounds(800, 480, false)
	if err != nil {
		t.Fatal(err)
	}
	w, err := sim.NewWorld(sim.Options{
		Bounds: bounds,
		Defaults: dynamo.ParticleConfig{
			Radius:      20,
			Gravity:     200,
			Restitution: 0.8,
			ColorMode:   dynamo.ColorVelocity,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(w, 1.0/60, "test", "dusk")
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelStartAndTick(t *testing.T) {
	m := testModel(t)
	if _, err := m.World().SpawnDefault(dynamo.Vec2{X: 400, Y: 100}); err != nil {
		t.Fatal(err)
	}

	m, _ = update(m, TickMsg{})
	if m.World().Started() {
		t.Fatal("world should wait for enter")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(m, TickMsg{})
	if !m.World().Started() {
		t.Fatal("enter should start the world on the next tick")
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if p := m.World().Particles()[0]; p.Vel.Y <= 0 {
		t.Errorf("particle should be falling, vy=%f", p.Vel.Y)
	}
	if m.Input().Start {
		t.Error("start should be consumed by the frame")
	}
}

func TestModelBoostHeldForFrames(t *testing.T) {
	m := testModel(t)
	m.World().Start()
	if _, err := m.World().SpawnDefault(dynamo.Vec2{X: 400, Y: 100}); err != nil {
		t.Fatal(err)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace})
	for i := 0; i < BoostHold; i++ {
		if !m.Input().Boost {
			t.Fatalf("boost should be held on frame %d", i)
		}
		m, _ = update(m, TickMsg{})
		if vy := m.World().Particles()[0].Vel.Y; vy != -200 {
			t.Fatalf("frame %d: expected vy -200, got %f", i, vy)
		}
	}
	if m.Input().Boost {
		t.Error("boost should release after BoostHold frames")
	}
}

func TestModelClearAndSpawn(t *testing.T) {
	m := testModel(t)
	m.World().Start()
	if _, err := m.World().SpawnDefault(dynamo.Vec2{X: 400, Y: 100}); err != nil {
		t.Fatal(err)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m, _ = update(m, TickMsg{})
	if n := m.World().Set().Len(); n != 0 {
		t.Fatalf("expected empty world after clear, got %d", n)
	}

	click := tea.MouseMsg{X: canvasPadX + width/2, Y: canvasPadY + height/2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(m, click)
	m, _ = update(m, TickMsg{})
	if n := m.World().Set().Len(); n != 1 {
		t.Fatalf("expected one spawned particle, got %d", n)
	}
	p := m.World().Particles()[0]
	if p.Pos.X < 390 || p.Pos.X > 420 {
		t.Errorf("click should spawn near the centre, got %v", p.Pos)
	}

	outside := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(m, outside)
	if len(m.Input().Spawns) != 0 {
		t.Error("clicks outside the canvas should be ignored")
	}
}

func TestModelPauseThemeQuit(t *testing.T) {
	m := testModel(t)
	m.World().Start()

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	clock := m.World().Clock()
	m, _ = update(m, TickMsg{})
	if m.World().Clock() != clock {
		t.Error("paused model should not step")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if m.theme.Name != "ocean" {
		t.Errorf("expected next theme ocean, got %s", m.theme.Name)
	}

	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message")
	}
	if m.View() == "" {
		t.Error("view should render")
	}
}

func TestDrawFloorAndCeiling(t *testing.T) {
	m := testModel(t)
	m, _ = update(m, TickMsg{})
	c := m.Canvas()
	floor := c.PixelHeight() - 1
	for x := 0; x < c.PixelWidth(); x++ {
		if !c.IsSet(x, floor) {
			t.Fatalf("floor gap at x=%d", x)
		}
	}
	if c.IsSet(c.PixelWidth()/2, 0) {
		t.Error("open top should not draw a ceiling")
	}

	bounds, err := physics.NewBounds(800, 480, true)
	if err != nil {
		t.Fatal(err)
	}
	w, err := sim.NewWorld(sim.Options{
		Bounds:   bounds,
		Defaults: dynamo.ParticleConfig{Radius: 20, Gravity: 200, Restitution: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	boxed, _ := update(NewModel(w, 1.0/60, "box", "mono"), TickMsg{})
	if !boxed.Canvas().IsSet(boxed.Canvas().PixelWidth()/2, 0) {
		t.Error("ceiling should be drawn when enabled")
	}
}
