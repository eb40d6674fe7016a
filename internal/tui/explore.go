// Package tui provides an interactive explorer for the summation
// parameters: adjust c0 and c1 and watch the derived cutoffs, neighbor
// count and energy respond.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ewald/internal/config"
	"github.com/san-kum/ewald/internal/ewald"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type model struct {
	cfg    *config.Config
	source string

	c0     float64
	c1     float64
	cursor int // 0 = c0, 1 = c1

	energy    float64
	neighbors int
	sigma     float64
	rc        float64
	kc        float64
	stale     bool
	err       error
}

// NewExplorer builds the explorer model for a crystal config.
func NewExplorer(cfg *config.Config, source string) tea.Model {
	m := model{cfg: cfg, source: source, c0: cfg.C0, c1: cfg.C1}
	if m.c0 == 0 {
		m.c0 = ewald.DefaultC0
	}
	if m.c1 == 0 {
		m.c1 = ewald.DefaultC1
	}
	m.recompute()
	return m
}

// Run starts the explorer.
func Run(cfg *config.Config, source string) error {
	_, err := tea.NewProgram(NewExplorer(cfg, source)).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < 1 {
			m.cursor++
		}
	case "left", "h", "-":
		m.adjust(-1)
	case "right", "l", "+", "=":
		m.adjust(1)
	case "enter", "r", " ":
		m.recompute()
	}
	return m, nil
}

func (m *model) adjust(dir int) {
	step := 0.5
	if m.cursor == 1 {
		step = 0.2
	}
	v := &m.c0
	if m.cursor == 1 {
		v = &m.c1
	}
	*v += float64(dir) * step
	if *v < step {
		*v = step
	}
	m.stale = true
}

func (m *model) recompute() {
	m.stale = false
	m.err = nil

	sys, err := m.systemAt(m.c0, m.c1)
	if err != nil {
		m.err = err
		return
	}
	m.sigma = sys.Sigma()
	m.rc = sys.RealSpaceCutoff()
	m.kc = sys.FourierSpaceCutoff()

	nbrs, err := sys.Neighbors()
	if err != nil {
		m.err = err
		return
	}
	count := 0
	for _, g := range nbrs {
		count += len(g)
	}
	m.neighbors = count

	e, err := sys.Energy(ewald.EnergyOptions{
		Charges:   m.cfg.ChargeArray(),
		Dipoles:   m.cfg.DipoleArray(),
		Neighbors: nbrs,
	})
	if err != nil {
		m.err = err
		return
	}
	m.energy = e
}

func (m *model) systemAt(c0, c1 float64) (*ewald.System, error) {
	cfg := *m.cfg
	cfg.C0 = c0
	cfg.C1 = c1
	return cfg.System()
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(cyan.Render("ewald explorer") + dim.Render("  "+m.source) + "\n\n")

	params := []struct {
		name  string
		value float64
		hint  string
	}{
		{"c0", m.c0, "accuracy (larger = tighter truncation)"},
		{"c1", m.c1, "real/Fourier balance"},
	}
	for i, p := range params {
		marker := "  "
		style := white
		if i == m.cursor {
			marker = cyan.Render("> ")
			style = yellow
		}
		sb.WriteString(fmt.Sprintf("%s%s %s  %s\n",
			marker, style.Render(fmt.Sprintf("%-3s", p.name)),
			style.Render(fmt.Sprintf("%7.2f", p.value)), dim.Render(p.hint)))
	}
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(red.Render("error: "+m.err.Error()) + "\n")
	} else {
		sb.WriteString(fmt.Sprintf("  %s %s\n", dim.Render("sigma          "), white.Render(fmt.Sprintf("%.6f", m.sigma))))
		sb.WriteString(fmt.Sprintf("  %s %s\n", dim.Render("real cutoff    "), white.Render(fmt.Sprintf("%.6f", m.rc))))
		sb.WriteString(fmt.Sprintf("  %s %s\n", dim.Render("fourier cutoff "), white.Render(fmt.Sprintf("%.6f", m.kc))))
		sb.WriteString(fmt.Sprintf("  %s %s\n", dim.Render("neighbors      "), white.Render(fmt.Sprintf("%d", m.neighbors))))
		energy := green.Render(fmt.Sprintf("%.12f", m.energy))
		if m.stale {
			energy = dim.Render(fmt.Sprintf("%.12f", m.energy)) + yellow.Render("  (stale, press enter)")
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", dim.Render("energy         "), energy))
	}

	sb.WriteString("\n" + dim.Render("arrows/hjkl adjust · enter recompute · q quit") + "\n")
	return sb.String()
}
