package export

import (
	"strings"
	"testing"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/viz"
)

func TestFrameToSVG(t *testing.T) {
	frame := []dynamo.Sample{
		{ID: 1, Pos: dynamo.Vec2{X: 10, Y: 20}, Radius: 5, Color: dynamo.RGB{R: 255}},
		{ID: 2, Pos: dynamo.Vec2{X: 30, Y: 40}, Radius: 6, Color: dynamo.RGB{G: 255}},
	}
	svg := FrameToSVG(frame, 100, 50)

	if !strings.Contains(svg, `viewBox="0 0 100 50"`) {
		t.Error("viewBox should match the viewport")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, `cx="10.00" cy="20.00" r="5.00" fill="#ff0000"`) {
		t.Error("circle attributes not written in world coordinates")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("svg not closed")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]dynamo.Vec2{{X: 1, Y: 1}}, 10, 10, "#fff") != "" {
		t.Error("a single point has no trajectory")
	}
	svg := TrajectoryToSVG([]dynamo.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}}, 10, 10, "#00ff00")
	if !strings.Contains(svg, `d="M1.0,2.0 L3.0,4.0"`) {
		t.Errorf("unexpected path: %s", svg)
	}
}

func TestRunToSVG(t *testing.T) {
	result := &dynamo.Result{
		Frames: [][]dynamo.Sample{
			{{ID: 7, Pos: dynamo.Vec2{X: 1, Y: 1}, Radius: 2}},
			{{ID: 7, Pos: dynamo.Vec2{X: 2, Y: 3}, Radius: 2}},
		},
		Times: []float64{0, 0.1},
	}
	svg := RunToSVG(result, 20, 20)
	if !strings.Contains(svg, `points="1.0,1.0 2.0,3.0"`) {
		t.Errorf("trail missing: %s", svg)
	}
	if strings.Count(svg, "<circle") != 1 {
		t.Error("only the final frame should be drawn as circles")
	}
	if !strings.Contains(RunToSVG(&dynamo.Result{}, 5, 5), "</svg>") {
		t.Error("empty run should still produce an svg")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.SetColor(0, 0, "#abcdef")
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2)
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected one circle per lit dot: %s", svg)
	}
	if !strings.Contains(svg, `fill="#abcdef"`) || !strings.Contains(svg, `fill="#ffffff"`) {
		t.Error("dot colours not preserved")
	}
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should produce nothing")
	}
}
