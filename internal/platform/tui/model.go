package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridpreview/internal/core"
	"github.com/vovakirdan/gridpreview/internal/preview"
	"github.com/vovakirdan/gridpreview/internal/registry"
	"github.com/vovakirdan/gridpreview/internal/runtimeops"
)

var (
	summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model showing one preview. The preview must be
// manual: the model advances its clock from the frame tick.
type Model struct {
	preview  *preview.Preview
	ops      runtimeops.Ops
	info     preview.RunInfo
	keys     KeyMap
	help     help.Model
	screen   *core.Screen
	width    int
	height   int
	lastTick time.Time
	err      error
	quitting bool
}

// NewModel creates a model for a preview whose run has already started.
// ops is kept so the run can be restarted.
func NewModel(p *preview.Preview, ops runtimeops.Ops, info preview.RunInfo) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		preview: p,
		ops:     ops,
		info:    info,
		keys:    DefaultKeyMap(),
		help:    h,
		screen:  core.NewScreen(0, 0),
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(FrameInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Directional keys become press edges
// for the preview's translator.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.err = m.preview.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		info, err := m.preview.Switch(context.Background(), m.ops)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.info, m.err = info, nil
		return m, nil
	}

	if k, ok := m.keys.InputKey(msg); ok {
		m.preview.Press(k)
	}
	return m, nil
}

// handleTick advances the simulation by the wall time since the last frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := FrameInterval
	if !m.lastTick.IsZero() {
		elapsed = min(now.Sub(m.lastTick), maxCatchUp)
	}
	m.lastTick = now
	if elapsed > 0 {
		m.preview.Advance(elapsed)
	}
	return m, tickCmd(FrameInterval)
}

// View renders the summary, the grid, a status line and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	f, ok := m.preview.Frame()
	if !ok {
		return errorStyle.Render("no active run")
	}

	fw, fh := FrameSize(f)
	if m.width > 0 && (fw > m.width || fh+3 > m.height) {
		return errorStyle.Render(fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
			fw, fh+3, m.width, m.height))
	}

	m.screen.Resize(fw, fh)
	m.screen.Clear()
	DrawFrame(m.screen, f, core.Pt(0, 0))

	return lipgloss.JoinVertical(lipgloss.Left,
		summaryStyle.Render(m.info.Summary),
		RenderScreen(m.screen),
		m.statusLine(f),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

func (m Model) statusLine(f registry.Frame) string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error())
	}
	line := fmt.Sprintf("%s  score %d  resets %d  ticks %d",
		f.Genre, f.Stats.Score, f.Stats.Resets, f.Stats.Ticks)
	if f.Event != "" {
		line += "  " + f.Event
	}
	return statusStyle.Render(line)
}

// Info returns the current run description.
func (m Model) Info() preview.RunInfo {
	return m.info
}

// Run starts the Bubble Tea program for a started preview.
func Run(p *preview.Preview, ops runtimeops.Ops, info preview.RunInfo) error {
	program := tea.NewProgram(
		NewModel(p, ops, info),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := program.Run()
	return err
}
