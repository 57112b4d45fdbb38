package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ewerall/gravsim/internal/config"
	"github.com/ewerall/gravsim/internal/engine"
	"github.com/ewerall/gravsim/internal/scene"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Model drives the engine on a frame tick and renders it as a braille
// canvas with a stats panel.
type Model struct {
	cfg    *config.Config
	eng    *engine.Engine
	canvas *Canvas

	t         float64
	savedDt   float64
	running   bool
	frameRate int
	showHelp  bool

	energyHistory []float64
}

// NewModel builds the initial scene from cfg.
func NewModel(cfg *config.Config, frameRate int) (Model, error) {
	eng, err := scene.NewEngine(cfg)
	if err != nil {
		return Model{}, err
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		cfg:           cfg,
		eng:           eng,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		savedDt:       cfg.Dt,
		running:       true,
		frameRate:     frameRate,
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.togglePause()
		case "r":
			m.reset()
		case "+", "=":
			m.eng.SetG(m.eng.G() + 10)
		case "-", "_":
			g := m.eng.G() - 10
			if g < 0.1 {
				g = 0.1
			}
			m.eng.SetG(g)
		case "]":
			m.eng.SetDt(m.eng.Dt() + 0.01)
		case "[":
			dt := m.eng.Dt() - 0.01
			if dt < 0 {
				dt = 0
			}
			m.eng.SetDt(dt)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		// Stepping with dt zeroed is a no-op integration but still
		// resolves collisions while paused.
		m.eng.Step()
		m.t += m.eng.Dt()

		if m.running {
			m.energyHistory = append(m.energyHistory, m.eng.TotalEnergy())
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// togglePause zeroes dt and restores the previous value on resume, so a
// paused engine still resolves collisions.
func (m *Model) togglePause() {
	if m.running {
		m.savedDt = m.eng.Dt()
		m.eng.SetDt(0)
		m.running = false
	} else {
		m.eng.SetDt(m.savedDt)
		m.running = true
	}
}

func (m *Model) reset() {
	eng, err := scene.NewEngine(m.cfg)
	if err != nil {
		return
	}
	m.eng = eng
	m.t = 0
	m.savedDt = m.cfg.Dt
	m.running = true
	m.energyHistory = m.energyHistory[:0]
}

// project maps simulation coordinates to canvas sub-pixels.
func (m *Model) project(p engine.Vec2) (int, int) {
	sx := p.X / m.eng.Width * float64(canvasWidth*2-1)
	sy := p.Y / m.eng.Height * float64(canvasHeight*4-1)
	return int(sx), int(sy)
}

func (m *Model) draw() {
	m.canvas.Clear()

	for _, b := range m.eng.Bodies() {
		if !b.Active {
			continue
		}

		for i := 1; i < len(b.Trail); i++ {
			x0, y0 := m.project(b.Trail[i-1])
			x1, y1 := m.project(b.Trail[i])
			m.canvas.DrawLine(x0, y0, x1, y1)
		}

		cx, cy := m.project(b.Pos)
		r := int(b.Radius / m.eng.Width * float64(canvasWidth*2))
		m.canvas.DrawCircle(cx, cy, r)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("GRAVITY") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("Energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	p := m.eng.Momentum()
	rows := []struct {
		label string
		value string
	}{
		{"Time", fmt.Sprintf("%.2fs", m.t)},
		{"Bodies", fmt.Sprintf("%d active", m.eng.ActiveCount())},
		{"G", fmt.Sprintf("%.1f", m.eng.G())},
		{"dt", fmt.Sprintf("%.3f", m.eng.Dt())},
		{"Energy", fmt.Sprintf("%.2f", m.eng.TotalEnergy())},
		{"|P|", fmt.Sprintf("%.2f", p.Length())},
	}
	for _, row := range rows {
		s.WriteString(labelStyle.Render(row.label) + valueStyle.Render(row.value) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:G  [ ]:dt  T:Theme ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to initial scene   ║
║  Q        - Quit                     ║
║  + / -    - Increase/decrease G      ║
║  ] / [    - Increase/decrease dt     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
