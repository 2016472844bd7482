// Package tui renders a live terminal view of a running simulation.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/langevin/internal/md"
	"github.com/san-kum/langevin/internal/units"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const historyLen = 120

// Observer forwards engine samples to the view without blocking the
// simulation loop; samples the view cannot keep up with are dropped.
type Observer struct {
	ch chan md.ThermoSample
}

func NewObserver() *Observer {
	return &Observer{ch: make(chan md.ThermoSample, 256)}
}

func (o *Observer) OnStep(sample md.ThermoSample) {
	select {
	case o.ch <- sample:
	default:
	}
}

type tickMsg time.Time

type doneMsg struct {
	result *md.Result
	err    error
}

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	obs     *Observer
	cancel  context.CancelFunc
	target  float64
	steps   int
	latest  md.ThermoSample
	history []float64
	done    bool
	err     error
	width   int
}

// Run drives the engine in the background while rendering the live view.
// The returned error is the engine's, not the terminal's.
func Run(ctx context.Context, eng *md.Engine, cfg md.RunConfig, target float64) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	obs := NewObserver()
	eng.AddObserver(obs)
	cfg.Verbose = true

	m := model{
		obs:     obs,
		cancel:  cancel,
		target:  target,
		steps:   cfg.Steps,
		history: make([]float64, 0, historyLen),
		width:   80,
	}
	p := tea.NewProgram(m)

	errc := make(chan error, 1)
	go func() {
		result, err := eng.Run(runCtx, cfg)
		errc <- err
		p.Send(doneMsg{result: result, err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-errc
		return err
	}
	// Quitting the view cancels the run; that is not a failure.
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.drain()
		if m.done {
			return m, tea.Quit
		}
		return m, tick()
	case doneMsg:
		m.drain()
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) drain() {
	for {
		select {
		case s := <-m.obs.ch:
			m.latest = s
			m.history = append(m.history, s.Temperature)
			if len(m.history) > historyLen {
				m.history = m.history[1:]
			}
		default:
			return
		}
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("langevin dynamics") + dim.Render("  live view") + "\n\n")

	pct := 0.0
	if m.steps > 0 {
		pct = 100 * float64(m.latest.Step+1) / float64(m.steps)
	}
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s\n",
		dim.Render("step"), white.Render(fmt.Sprintf("%d/%d (%.0f%%)", m.latest.Step+1, m.steps, pct)),
		dim.Render("time"), white.Render(fmt.Sprintf("%.3f ps", m.latest.Time/units.Picosecond)),
		dim.Render("KE"), white.Render(fmt.Sprintf("%.3e J", m.latest.KineticEnergy))))

	b.WriteString(fmt.Sprintf("  %s %s   %s %s\n\n",
		dim.Render("T"), yellow.Render(fmt.Sprintf("%.2f K", m.latest.Temperature)),
		dim.Render("target"), green.Render(fmt.Sprintf("%.2f K", m.target))))

	if len(m.history) > 1 {
		graphWidth := m.width - 12
		if graphWidth > 100 {
			graphWidth = 100
		}
		if graphWidth < 20 {
			graphWidth = 20
		}
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(12),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("temperature (K)"))
		b.WriteString(graph + "\n")
	}

	b.WriteString("\n" + dim.Render("  q: quit") + "\n")
	return b.String()
}
