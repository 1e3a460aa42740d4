// Package viz renders simulations in the terminal. The live view pulls
// exactly one sequence advance per displayed frame; frame rate, scaling and
// legends belong here, never to the engine.
package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/planetary/internal/engine"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(38)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a StepSequence from frame ticks. It keeps the source system
// untouched so reset can start a fresh sequence from the same state.
type Model struct {
	source *engine.System
	seq    *engine.StepSequence
	view   *engine.System
	name   string
	fps    int

	canvas  *Canvas
	extent  float64
	running bool
	failed  error
}

func NewModel(sys *engine.System, name string, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	m := Model{
		source:  sys,
		seq:     engine.NewSequence(sys),
		name:    name,
		fps:     fps,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
	}
	m.view = sys
	m.extent = initialExtent(sys)
	return m
}

// initialExtent picks a world half-width covering every body with headroom.
func initialExtent(sys *engine.System) float64 {
	e := 1.0
	for _, p := range sys.Pos {
		e = math.Max(e, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	return e * 1.2
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.seq = engine.NewSequence(m.source)
			m.view = m.source
			m.failed = nil
			m.running = true
		case "+", "=":
			m.extent /= 1.25
		case "-", "_":
			m.extent *= 1.25
		}
		return m, nil

	case TickMsg:
		if m.running && m.failed == nil && !m.seq.Exhausted() {
			sys, err := m.seq.Next()
			switch {
			case errors.Is(err, engine.ErrEndOfSequence):
				m.running = false
			case err != nil:
				m.failed = err
				m.running = false
			default:
				m.view = sys
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// toPixel maps world coordinates into canvas sub-pixels, y up.
func (m Model) toPixel(p engine.Vec2) (int, int) {
	px := (p.X/m.extent + 1) / 2 * float64(canvasWidth*2-1)
	py := (1 - p.Y/m.extent) / 2 * float64(canvasHeight*4-1)
	return int(px), int(py)
}

func (m Model) draw() string {
	m.canvas.Clear()

	// Trails first, current positions on top.
	if m.view.History != nil {
		for b := range m.view.Labels {
			prev := [2]int{}
			for i, snap := range m.view.History {
				x, y := m.toPixel(snap[b])
				if i > 0 {
					m.canvas.Line(prev[0], prev[1], x, y)
				}
				prev = [2]int{x, y}
			}
		}
	}
	for _, p := range m.view.Pos {
		x, y := m.toPixel(p)
		m.canvas.Set(x, y)
	}
	return m.canvas.String()
}

func (m Model) statsPanel() string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}

	row("scenario", m.name)
	row("step", fmt.Sprintf("%d / %d", m.seq.Index(), m.seq.Len()))
	row("dt", fmt.Sprintf("%g", m.view.Dt))
	row("bodies", fmt.Sprintf("%d", m.view.N()))
	row("zoom", fmt.Sprintf("±%.3g", m.extent))
	b.WriteByte('\n')

	for i, label := range m.view.Labels {
		p := m.view.Pos[i]
		row(label, fmt.Sprintf("(%.3g, %.3g)", p.X, p.Y))
	}

	b.WriteByte('\n')
	switch {
	case m.failed != nil:
		b.WriteString(errStyle.Render(m.failed.Error()))
	case m.seq.Exhausted():
		b.WriteString(doneStyle.Render("sequence exhausted"))
	case !m.running:
		b.WriteString(doneStyle.Render("paused"))
	}

	return statsStyle.Render(b.String())
}

func (m Model) View() string {
	header := headerStyle.Render("planetary · " + m.name)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.draw(), m.statsPanel())
	help := helpStyle.Render("space pause · r reset · +/- zoom · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

// RunLive starts the live view and blocks until the user quits.
func RunLive(sys *engine.System, name string, fps int) error {
	_, err := tea.NewProgram(NewModel(sys, name, fps), tea.WithAltScreen()).Run()
	return err
}
