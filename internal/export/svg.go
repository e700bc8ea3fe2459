package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/viz"
)

const background = "#6a0dad"

func header(sb *strings.Builder, width, height float64, fill string) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, fill))
}

// FrameToSVG draws one recorded frame in world coordinates. SVG and the
// world share a top-left origin with Y growing downwards, so no flip is
// needed.
func FrameToSVG(frame []dynamo.Sample, width, height float64) string {
	var sb strings.Builder
	header(&sb, width, height, background)
	for _, s := range frame {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, s.Pos.X, s.Pos.Y, s.Radius, s.Color.Hex()))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG draws a polyline through points in world coordinates.
func TrajectoryToSVG(points []dynamo.Vec2, width, height float64, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder
	header(&sb, width, height, background)
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// RunToSVG draws the final frame of result over the trail of every particle
// still alive in it.
func RunToSVG(result *dynamo.Result, width, height float64) string {
	if len(result.Frames) == 0 {
		return FrameToSVG(nil, width, height)
	}
	last := result.Frames[len(result.Frames)-1]

	var sb strings.Builder
	header(&sb, width, height, background)
	for _, s := range last {
		_, track := result.Track(s.ID)
		if len(track) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-opacity="0.5" stroke-width="1" points="`, s.Color.Hex()))
		for i, p := range track {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		}
		sb.WriteString("\"/>\n")
	}
	for _, s := range last {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, s.Pos.X, s.Pos.Y, s.Radius, s.Color.Hex()))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format, keeping each cell's
// colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	header(&sb, width, height, "#0a0a0a")

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fill := canvas.Colors[y/4][x/2]
			if fill == "" {
				fill = "#ffffff"
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
