package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tinyrange/gosdl/internal/input"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateSelect browserState = iota
	stateStrength
)

// browser lists the haptic devices and rumbles the selected one. SDL calls
// happen in Update, which runs on the goroutine that called Program.Run.
type browser struct {
	sys      *sdl.System
	rep      report
	duration time.Duration

	selected int
	state    browserState
	input    textinput.Model
	status   string
	err      error

	open map[int]*input.Haptic
}

func newBrowser(sys *sdl.System, rep report, duration time.Duration) *browser {
	ti := textinput.New()
	ti.Prompt = "strength %: "
	ti.Placeholder = "75"
	ti.CharLimit = 3
	ti.Width = 8
	return &browser{
		sys:      sys,
		rep:      rep,
		duration: duration,
		input:    ti,
		open:     make(map[int]*input.Haptic),
	}
}

func (m *browser) Init() tea.Cmd { return nil }

func (m *browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.state {
	case stateSelect:
		switch key.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.rep.Haptics)-1 {
				m.selected++
			}
		case "enter":
			if len(m.rep.Haptics) > 0 {
				m.state = stateStrength
				m.input.SetValue("")
				return m, m.input.Focus()
			}
		case "s":
			m.stop()
		}
		return m, nil

	case stateStrength:
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.input.Blur()
			m.state = stateSelect
			return m, nil
		case "enter":
			m.input.Blur()
			m.state = stateSelect
			m.rumble(m.input.Value())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *browser) device() (*input.Haptic, error) {
	index := m.rep.Haptics[m.selected].Index
	if h, ok := m.open[index]; ok {
		return h, nil
	}
	h, err := input.OpenHaptic(m.sys, index)
	if err != nil {
		return nil, err
	}
	if err := h.RumbleInit(); err != nil {
		h.Close()
		return nil, err
	}
	m.open[index] = h
	return h, nil
}

func (m *browser) rumble(value string) {
	m.status, m.err = "", nil

	percent := 75
	if v := strings.TrimSpace(value); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 || p > 100 {
			m.err = fmt.Errorf("strength %q: want 0 to 100", v)
			return
		}
		percent = p
	}

	h, err := m.device()
	if err != nil {
		m.err = err
		return
	}
	if err := h.RumblePlay(float32(percent)/100, m.duration); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("rumbling %s at %d%% for %v", m.rep.Haptics[m.selected].Name, percent, m.duration)
}

func (m *browser) stop() {
	m.status, m.err = "", nil
	if len(m.rep.Haptics) == 0 {
		return
	}
	h, ok := m.open[m.rep.Haptics[m.selected].Index]
	if !ok {
		return
	}
	if err := h.RumbleStop(); err != nil {
		m.err = err
		return
	}
	m.status = "stopped"
}

// Close releases every device opened while browsing.
func (m *browser) Close() {
	for index, h := range m.open {
		h.Close()
		delete(m.open, index)
	}
	resource.Logger().Debug("browser closed")
}

func (m *browser) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SDL " + m.rep.Version))
	b.WriteString(" ")
	b.WriteString(m.rep.Platform)
	b.WriteString("\n\n")

	if len(m.rep.Haptics) == 0 {
		b.WriteString("No haptic devices.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	b.WriteString("Haptic devices:\n\n")
	for i, h := range m.rep.Haptics {
		line := fmt.Sprintf("%d  %s  %s", h.Index, h.Name, featureList(h.Features))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.state == stateStrength {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter rumble • esc back"))
		return b.String()
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	case m.status != "":
		b.WriteString(resultStyle.Render(m.status))
		b.WriteString("\n\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select • enter rumble • s stop • q quit"))
	return b.String()
}

func runBrowser(sys *sdl.System, rep report, duration time.Duration) error {
	m := newBrowser(sys, rep, duration)
	defer m.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		resource.Logger().Error("browser", zap.Error(err))
	}
	return err
}
