package analysis

import (
	"strings"

	"github.com/san-kum/dropsim/internal/dynamo"
)

// PhasePortrait is a particle's trajectory in (height, vertical velocity)
// space. Velocity is flipped so that rising is positive.
type PhasePortrait struct {
	ID     uint64
	Points []dynamo.Vec2
}

func NewPhasePortrait(result *dynamo.Result, id uint64, floor float64) *PhasePortrait {
	_, heights, vy := Series(result, id, floor)
	p := &PhasePortrait{ID: id, Points: make([]dynamo.Vec2, len(heights))}
	for i := range heights {
		p.Points[i] = dynamo.Vec2{X: heights[i], Y: -vy[i]}
	}
	return p
}

// ToASCII plots the portrait on a width x height character grid with axes
// drawn where they cross the visible area.
func (p *PhasePortrait) ToASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && grid[row][col] == ' ' {
				grid[row][col] = '─'
			}
		}
	}
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && grid[row][col] == ' ' {
				grid[row][col] = '│'
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
