package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/game"
)

// footerHeight is the number of terminal rows reserved for the help bar.
const footerHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// releases holds mouse releases observed since the last tick.
type releases struct {
	buttons []core.MouseButton
}

// Model is the Bubble Tea model driving one game.
type Model struct {
	game     *game.Game
	input    *core.Input
	canvas   *Canvas
	keys     KeyMap
	help     help.Model
	tickRate int
	logger   *log.Logger
	pending  *releases
	quitting bool
}

// NewModel creates a model for g drawn into a width x height terminal.
func NewModel(g *game.Game, cfg core.RuntimeConfig, width, height int, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	screen := core.NewScreen(width, max(height-footerHeight, 1))
	h := help.New()
	h.Width = width

	return Model{
		game:     g,
		input:    g.Input(),
		canvas:   NewCanvas(screen, cfg.WindowW, cfg.WindowH),
		keys:     DefaultKeyMap(),
		help:     h,
		tickRate: cfg.TickRate,
		logger:   logger.WithPrefix("tui"),
		pending:  &releases{},
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Shot):
		m.saveScreenshot()
		return m, nil
	}

	// Terminals never report key releases, so presses last until the next tick.
	if action := m.keys.Action(msg); action != core.ActionNone {
		m.input.Press(action)
	}
	return m, nil
}

func mouseButton(b tea.MouseButton) (core.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return core.MouseLeft, true
	case tea.MouseButtonRight:
		return core.MouseRight, true
	case tea.MouseButtonMiddle:
		return core.MouseMiddle, true
	}
	return 0, false
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := m.canvas.ToPixel(msg.X, msg.Y)
	m.input.MoveMouse(p.X, p.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if b, ok := mouseButton(msg.Button); ok {
			m.input.SetMouse(b, true)
		}
	case tea.MouseActionRelease:
		// Applied after the next tick so a click shorter than a tick is still seen.
		if b, ok := mouseButton(msg.Button); ok {
			m.pending.buttons = append(m.pending.buttons, b)
		} else {
			m.pending.buttons = append(m.pending.buttons, core.MouseLeft, core.MouseRight, core.MouseMiddle)
		}
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.canvas.Screen().Resize(msg.Width, max(msg.Height-footerHeight, 1))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	running := m.game.Tick()

	m.input.ReleaseKeys()
	for _, b := range m.pending.buttons {
		m.input.SetMouse(b, false)
	}
	m.pending.buttons = m.pending.buttons[:0]

	if !running {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

// saveScreenshot saves the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.canvas.Clear()
	m.game.Draw(m.canvas)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".siege", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	name := fmt.Sprintf("siege_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.canvas.Screen().String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current frame and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.canvas.Clear()
	m.game.Draw(m.canvas)

	return RenderScreen(m.canvas.Screen()) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for g and blocks until the game ends.
func Run(g *game.Game, cfg core.RuntimeConfig, width, height int, logger *log.Logger) error {
	model := NewModel(g, cfg, width, height, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
