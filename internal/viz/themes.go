package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Border lipgloss.Color
	Title  lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Graph  lipgloss.Color
	Muted  lipgloss.Color
	Active lipgloss.Color
	Paused lipgloss.Color
	Floor  string
}

// Available themes
var (
	ThemeDusk = Theme{
		Name:   "dusk",
		Border: lipgloss.Color("#6a3d9a"),
		Title:  lipgloss.Color("#d6a6ff"),
		Label:  lipgloss.Color("#8b7fa3"),
		Value:  lipgloss.Color("#f3e8ff"),
		Graph:  lipgloss.Color("#b07aff"),
		Muted:  lipgloss.Color("#5c5070"),
		Active: lipgloss.Color("#00ff88"),
		Paused: lipgloss.Color("#ffaa00"),
		Floor:  "#6a3d9a",
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Border: lipgloss.Color("#0077be"),
		Title:  lipgloss.Color("#00a8cc"),
		Label:  lipgloss.Color("#4488aa"),
		Value:  lipgloss.Color("#e0f0ff"),
		Graph:  lipgloss.Color("#00d1ff"),
		Muted:  lipgloss.Color("#2f5a73"),
		Active: lipgloss.Color("#00ff88"),
		Paused: lipgloss.Color("#ffcc00"),
		Floor:  "#0077be",
	}

	ThemeMono = Theme{
		Name:   "mono",
		Border: lipgloss.Color("#888888"),
		Title:  lipgloss.Color("#ffffff"),
		Label:  lipgloss.Color("#999999"),
		Value:  lipgloss.Color("#eeeeee"),
		Graph:  lipgloss.Color("#cccccc"),
		Muted:  lipgloss.Color("#555555"),
		Active: lipgloss.Color("#ffffff"),
		Paused: lipgloss.Color("#aaaaaa"),
		Floor:  "#888888",
	}

	// All available themes
	Themes = []Theme{
		ThemeDusk,
		ThemeOcean,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
