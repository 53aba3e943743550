package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/level"
	"github.com/vovakirdan/siege/internal/monster"
)

func testEntries() []LevelEntry {
	return []LevelEntry{
		{Summary: level.Summary{
			Index:     0,
			Path:      "level/LEVEL0.txt",
			CellSize:  100,
			GridW:     3,
			GridH:     2,
			Remaining: [monster.TypeCount]int{4, 1, 0, 0},
			Road:      []core.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}},
		}},
		{Summary: level.Summary{Index: 1}, Err: errors.New("level 1: asset missing")},
	}
}

func levelsUpdate(t *testing.T, m LevelsModel, msg tea.Msg) (LevelsModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	lm, ok := next.(LevelsModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return lm, cmd
}

func TestLevelsModelBrowse(t *testing.T) {
	units := config.DefaultSiegeConfig().Units.ByIndex()
	m := NewLevelsModel(testEntries(), units, 100, 30)

	rows := m.table.Rows()
	if len(rows) != int(monster.TypeCount) {
		t.Fatalf("rows = %d, expected one per unit type", len(rows))
	}
	if rows[0][0] != "normal" || rows[0][1] != "4" || rows[1][3] != "40" {
		t.Errorf("unexpected rows %v", rows)
	}

	view := m.View()
	for _, want := range []string{"LEVEL0", "LEVEL1 !", "grid 3x2", "units 5"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = levelsUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d after tab", m.cursor)
	}
	if !strings.Contains(m.View(), "asset missing") {
		t.Error("broken level should show its error")
	}

	m, cmd := levelsUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != nil || cmd != nil {
		t.Error("a broken level cannot be selected")
	}

	m, _ = levelsUpdate(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, cmd = levelsUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().Index != 0 {
		t.Fatalf("selected = %v, expected level 0", m.Selected())
	}
	if cmd == nil {
		t.Error("selecting should quit the browser")
	}
	if m.View() != "" {
		t.Error("view should be empty after selecting")
	}
}

func TestLevelsModelEmpty(t *testing.T) {
	m := NewLevelsModel(nil, nil, 60, 20)
	if !strings.Contains(m.View(), "No level files found.") {
		t.Error("empty browser should say so")
	}
	m, _ = levelsUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := levelsUpdate(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || m.View() != "" {
		t.Error("q should quit")
	}
}

func TestRenderMap(t *testing.T) {
	out := RenderMap(level.Summary{GridW: 2, GridH: 1, Road: []core.Cell{{X: 0, Y: 0}}})
	if !strings.Contains(out, "██") || !strings.Contains(out, "··") {
		t.Errorf("map = %q", out)
	}
}
