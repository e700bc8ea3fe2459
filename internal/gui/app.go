package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/metrics"
	"github.com/san-kum/dropsim/internal/sim"
)

const maxTelemetry = 240

var (
	ColBg      = rl.Purple
	ColText    = rl.NewColor(245, 235, 255, 255)
	ColTextDim = rl.NewColor(200, 170, 230, 255)
	ColAccent  = rl.NewColor(255, 255, 255, 255)
)

// App is the windowed front end: it polls raylib for input once per frame,
// steps the world with the frame time and draws every particle.
type App struct {
	World     *sim.World
	Title     string
	FixedDt   float64 // when positive, used instead of the measured frame time
	ShowHUD   bool
	Telemetry []float64
	energy    *metrics.Energy
	contacts  int
	warned    bool
}

func NewApp(world *sim.World, title string) *App {
	return &App{
		World:     world,
		Title:     title,
		ShowHUD:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		energy:    metrics.NewEnergy(world.Bounds().Height),
	}
}

// Run opens a window the size of the world's viewport and blocks until it is
// closed.
func Run(world *sim.World, title string, fixedDt float64) {
	b := world.Bounds()
	rl.InitWindow(int32(b.Width), int32(b.Height), title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	app := NewApp(world, title)
	app.FixedDt = fixedDt
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// pollInput builds the input snapshot for this frame. Start and boost are
// level-triggered on held keys; clear and spawn are edge-triggered.
func pollInput() dynamo.InputState {
	in := dynamo.InputState{
		Start: rl.IsKeyDown(rl.KeyEnter),
		Boost: rl.IsKeyDown(rl.KeySpace),
		Clear: rl.IsKeyPressed(rl.KeyC),
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		in.Spawns = append(in.Spawns, dynamo.Vec2{X: float64(pos.X), Y: float64(pos.Y)})
	}
	return in
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	dt := a.FixedDt
	if dt <= 0 {
		dt = float64(rl.GetFrameTime())
	}
	a.Advance(dt, pollInput())
}

// Advance steps the world once with in and records telemetry. A failing step
// is logged once until a later step succeeds.
func (a *App) Advance(dt float64, in dynamo.InputState) {
	contacts, err := a.World.Step(dt, in)
	if err != nil {
		if !a.warned {
			log.Printf("frame skipped: %v", err)
			a.warned = true
		}
		return
	}
	a.warned = false
	a.contacts = contacts

	if !a.World.Started() {
		return
	}
	a.energy.Observe(a.World.Particles(), a.World.Clock())
	a.Telemetry = append(a.Telemetry, a.energy.Current())
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawParticles()
	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawText(a.Title, 20, 20, 20, ColAccent)

	status := "RUNNING"
	if !a.World.Started() {
		status = "PRESS ENTER"
	}
	rl.DrawText(status, 20, 46, 14, ColText)
	rl.DrawText(fmt.Sprintf("particles %d  contacts %d  t %.2fs", a.World.Set().Len(), a.contacts, a.World.Elapsed()), 20, 66, 14, ColTextDim)

	h := int32(a.World.Bounds().Height)
	rl.DrawText("[ENTER] START  [SPACE] BOOST  [C] CLEAR  [CLICK] SPAWN  [H] HUD", 20, h-24, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(a.World.Bounds().Width)-80, 20, 14, ColTextDim)

	a.DrawTelemetry(20, float32(h-100), 300, 50)
}
