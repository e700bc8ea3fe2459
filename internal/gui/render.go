package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/dropsim/internal/dynamo"
)

func toColor(c dynamo.RGB) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}

func (a *App) drawParticles() {
	for _, s := range a.World.Samples() {
		center := rl.NewVector2(float32(s.Pos.X), float32(s.Pos.Y))
		rl.DrawCircleV(center, float32(s.Radius), toColor(s.Color))
	}
}

// telemetryPoints scales values into the rectangle (x, y, w, h), oldest
// sample on the left.
func telemetryPoints(values []float64, x, y, w, h float32) []rl.Vector2 {
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(values))
	for i, val := range values {
		px := x + float32(i)/float32(len(values))*w
		norm := (val - minVal) / (maxVal - minVal)
		points[i] = rl.NewVector2(px, y+h-float32(norm)*h)
	}
	return points
}

func (a *App) DrawTelemetry(x, y, w, h float32) {
	if len(a.Telemetry) < 2 {
		return
	}
	rl.DrawLineStrip(telemetryPoints(a.Telemetry, x, y, w, h), ColAccent)
	rl.DrawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), int32(x+w+10), int32(y+h-10), 14, ColText)
}
