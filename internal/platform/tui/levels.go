package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/level"
	"github.com/vovakirdan/siege/internal/monster"
)

// Level browser layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the level list sidebar
	sidebarWidth       = 20 // Width of the level list sidebar
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginBottom(1)
	roadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// LevelEntry is one row of the level browser.
type LevelEntry struct {
	Summary level.Summary
	Err     error
}

// LevelsKeyMap defines the key bindings for the level browser.
type LevelsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k LevelsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Select, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k LevelsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev},
		{k.Select, k.Quit},
	}
}

// DefaultLevelsKeyMap returns the default level browser bindings.
func DefaultLevelsKeyMap() LevelsKeyMap {
	return LevelsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LevelsModel is the Bubble Tea model for browsing level files.
type LevelsModel struct {
	entries  []LevelEntry
	units    []config.UnitStats
	cursor   int
	table    table.Model
	help     help.Model
	keys     LevelsKeyMap
	width    int
	height   int
	selected *level.Summary
	quitting bool
}

// NewLevelsModel creates a browser over entries. units gives the per-type
// stats shown next to each count.
func NewLevelsModel(entries []LevelEntry, units []config.UnitStats, width, height int) LevelsModel {
	h := help.New()
	h.Width = width

	m := LevelsModel{
		entries: entries,
		units:   units,
		keys:    DefaultLevelsKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *LevelsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Type", Width: 10},
		{Title: "Count", Width: 6},
		{Title: "Speed", Width: 6},
		{Title: "HP", Width: 4},
		{Title: "Armor", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(int(monster.TypeCount)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *LevelsModel) updateTableRows() {
	if len(m.entries) == 0 || m.entries[m.cursor].Err != nil {
		m.table.SetRows(nil)
		return
	}
	sum := m.entries[m.cursor].Summary
	rows := make([]table.Row, 0, monster.TypeCount)
	for i, n := range sum.Remaining {
		row := table.Row{monster.Type(i).String(), strconv.Itoa(n), "-", "-", "-"}
		if i < len(m.units) {
			u := m.units[i]
			row[2] = strconv.FormatFloat(u.Velocity, 'f', -1, 64)
			row[3] = strconv.Itoa(u.HP)
			row[4] = strconv.Itoa(u.Armor)
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser.
func (m LevelsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m LevelsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.entries) > 0 && m.entries[m.cursor].Err == nil {
				sum := m.entries[m.cursor].Summary
				m.selected = &sum
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if len(m.entries) > 0 {
				m.cursor = (m.cursor + 1) % len(m.entries)
				m.updateTableRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.entries) > 0 {
				m.cursor = (m.cursor - 1 + len(m.entries)) % len(m.entries)
				m.updateTableRows()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m LevelsModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	title := "LEVELS"
	if len(m.entries) > 0 {
		title = fmt.Sprintf("LEVELS - %d", m.entries[m.cursor].Summary.Index)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.width >= minWidthForSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", m.renderDetail()))
	} else {
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m LevelsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Levels\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, e := range m.entries {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := fmt.Sprintf("LEVEL%d", e.Summary.Index)
		if e.Err != nil {
			name += " !"
		}
		sb.WriteString(style.Render(cursor + name))
		sb.WriteString("\n")
	}
	return sidebarStyle.Render(sb.String())
}

func (m LevelsModel) renderDetail() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return boxStyle.Render(emptyStyle.Render("No level files found."))
	}

	e := m.entries[m.cursor]
	if e.Err != nil {
		return boxStyle.Render(errStyle.Render(e.Err.Error()))
	}

	s := e.Summary
	header := fmt.Sprintf("%s  grid %dx%d  cell %dpx  units %d  road %d",
		s.Path, s.GridW, s.GridH, s.CellSize, s.Units(), len(s.Road))
	return boxStyle.Render(header + "\n\n" + m.table.View() + "\n\n" + RenderMap(s))
}

// RenderMap draws a level grid with the road highlighted.
func RenderMap(s level.Summary) string {
	rows := s.Map()
	out := make([]string, len(rows))
	for i, row := range rows {
		var sb strings.Builder
		for _, r := range row {
			if r == '#' {
				sb.WriteString(roadStyle.Render("██"))
			} else {
				sb.WriteString(fieldStyle.Render("··"))
			}
		}
		out[i] = sb.String()
	}
	return strings.Join(out, "\n")
}

// Selected returns the level chosen with enter, or nil.
func (m LevelsModel) Selected() *level.Summary {
	return m.selected
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunLevelBrowser shows the browser and returns the level chosen to play,
// or nil when the user quit.
func RunLevelBrowser(entries []LevelEntry, units []config.UnitStats, width, height int) (*level.Summary, error) {
	model := NewLevelsModel(entries, units, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelsModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
