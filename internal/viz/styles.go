package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles derived from a Theme.
type Styles struct {
	Canvas  lipgloss.Style
	Stats   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Graph   lipgloss.Style
	Help    lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
}

const (
	canvasPadX = 2
	canvasPadY = 1
	statsWidth = 42
)

func NewStyles(t Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().Padding(canvasPadY, canvasPadX),
		Stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(statsWidth),
		Header:  lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		Label:   lipgloss.NewStyle().Foreground(t.Label).Width(12),
		Value:   lipgloss.NewStyle().Foreground(t.Value),
		Graph:   lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		Help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		Running: lipgloss.NewStyle().Foreground(t.Active).Bold(true),
		Paused:  lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
	}
}

// Row renders a label/value pair on one line.
func (s Styles) Row(label, value string) string {
	return s.Label.Render(label) + s.Value.Render(value) + "\n"
}

// Separator is a muted horizontal rule.
func Separator(width int) string {
	return strings.Repeat("─", width)
}
