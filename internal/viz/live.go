package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/metrics"
	"github.com/san-kum/dropsim/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600

	// BoostHold is how many frames one Space press keeps boost asserted.
	// Terminals report key presses but never key releases.
	BoostHold = 6
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live terminal front end. It collects keyboard and mouse input
// between ticks and feeds the world one input snapshot per frame.
type Model struct {
	world         *sim.World
	dt            float64
	name          string
	canvas        *Canvas
	theme         Theme
	styles        Styles
	paused        bool
	showHelp      bool
	pending       dynamo.InputState
	boostFrames   int
	contacts      int
	energy        *metrics.Energy
	energyHistory []float64
	err           error
}

func NewModel(world *sim.World, dt float64, name, theme string) Model {
	th := GetTheme(theme)
	return Model{
		world:         world,
		dt:            dt,
		name:          name,
		canvas:        NewCanvas(width, height),
		theme:         th,
		styles:        NewStyles(th),
		energy:        metrics.NewEnergy(world.Bounds().Height),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

// Run starts the Bubble Tea program with mouse reporting enabled and returns
// the model as it was when the program quit.
func Run(m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.pending.Start = true
		case " ":
			m.boostFrames = BoostHold
		case "c":
			m.pending.Clear = true
			m.pending.Spawns = nil
		case "p":
			m.paused = !m.paused
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = NewStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if pos, ok := m.toWorld(msg.X, msg.Y); ok {
				m.pending.Spawns = append(m.pending.Spawns, pos)
			}
		}
	case tea.WindowSizeMsg:
		w := msg.Width - statsWidth - 2*canvasPadX - 2
		h := msg.Height - 2*canvasPadY - 1
		if w >= 10 && h >= 5 && (w != m.canvas.Width || h != m.canvas.Height) {
			m.canvas = NewCanvas(w, h)
		}
	case TickMsg:
		if !m.paused {
			m.step()
		}
		m.draw()
		return m, tick()
	}
	return m, nil
}

// Input returns the snapshot the next frame will consume.
func (m *Model) Input() dynamo.InputState {
	in := m.pending
	in.Boost = m.boostFrames > 0
	return in
}

func (m *Model) step() {
	in := m.Input()
	m.pending = dynamo.InputState{}
	if m.boostFrames > 0 {
		m.boostFrames--
	}

	contacts, err := m.world.Step(m.dt, in)
	if err != nil {
		m.err = err
		return
	}
	m.contacts = contacts

	m.energy.Observe(m.world.Particles(), m.world.Clock())
	m.energyHistory = append(m.energyHistory, m.energy.Current())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// toWorld maps a terminal cell to world coordinates at the cell centre.
func (m *Model) toWorld(x, y int) (dynamo.Vec2, bool) {
	col, row := x-canvasPadX, y-canvasPadY
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return dynamo.Vec2{}, false
	}
	b := m.world.Bounds()
	return dynamo.Vec2{
		X: (float64(col) + 0.5) / float64(m.canvas.Width) * b.Width,
		Y: (float64(row) + 0.5) / float64(m.canvas.Height) * b.Height,
	}, true
}

// draw projects every particle onto the canvas as a filled ellipse; cells
// are taller than wide so the two axes scale independently.
func (m *Model) draw() {
	m.canvas.Clear()
	b := m.world.Bounds()
	sx := float64(m.canvas.PixelWidth()) / b.Width
	sy := float64(m.canvas.PixelHeight()) / b.Height

	right := m.canvas.PixelWidth() - 1
	floor := m.canvas.PixelHeight() - 1
	m.canvas.DrawLine(0, floor, right, floor, m.theme.Floor)
	if b.Ceiling {
		m.canvas.DrawLine(0, 0, right, 0, m.theme.Floor)
	}
	for _, s := range m.world.Samples() {
		m.canvas.FillEllipse(s.Pos.X*sx, s.Pos.Y*sy, s.Radius*sx, s.Radius*sy, s.Color.Hex())
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.styles
	var s strings.Builder
	s.WriteString(st.Header.Render(strings.ToUpper(m.name)) + "\n")

	switch {
	case m.paused:
		s.WriteString(st.Paused.Render("PAUSED") + "\n\n")
	case !m.world.Started():
		s.WriteString(st.Paused.Render("WAITING (Enter to start)") + "\n\n")
	default:
		s.WriteString(st.Running.Render("RUNNING") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Energy"))
		s.WriteString(st.Graph.Render(chart) + "\n\n")
	}

	s.WriteString(st.Row("Time", fmt.Sprintf("%.2fs", m.world.Clock())))
	s.WriteString(st.Row("Elapsed", fmt.Sprintf("%.2fs", m.world.Elapsed())))
	s.WriteString(st.Row("Particles", fmt.Sprintf("%d", m.world.Set().Len())))
	s.WriteString(st.Row("Contacts", fmt.Sprintf("%d", m.contacts)))
	s.WriteString(st.Row("Energy", fmt.Sprintf("%.1f", m.energy.Current())))
	s.WriteString(st.Row("Resolver", m.world.Resolver().Name()))
	s.WriteString(st.Row("Theme", m.theme.Name))
	if m.boostFrames > 0 {
		s.WriteString(st.Row("Boost", "held"))
	}
	if m.err != nil {
		s.WriteString("\n" + st.Paused.Render(m.err.Error()) + "\n")
	}

	s.WriteString(st.Help.Render(Separator(20) + "\nEnter:Start SP:Boost C:Clear\nClick:Spawn P:Pause T:Theme\n?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, st.Canvas.Render(m.canvas.Render()), st.Stats.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Enter    - Start the simulation     ║
║  Space    - Boost droplets upwards   ║
║  C        - Clear all droplets       ║
║  Click    - Spawn a droplet          ║
║  P        - Pause/Resume             ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Canvas exposes the current frame buffer.
func (m Model) Canvas() *Canvas { return m.canvas }

// World returns the simulated world.
func (m Model) World() *sim.World { return m.world }
