package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/level"
	"github.com/vovakirdan/siege/internal/monster"
	"github.com/vovakirdan/siege/internal/platform/tui"
)

func TestPrintLevels(t *testing.T) {
	var buf bytes.Buffer
	printLevels(&buf, []tui.LevelEntry{
		{Summary: level.Summary{Index: 0, Path: "level/LEVEL0.txt", GridW: 12, GridH: 6, Remaining: [monster.TypeCount]int{3, 1, 0, 0}}},
		{Summary: level.Summary{Index: 2}, Err: errors.New("malformed level")},
	})

	out := buf.String()
	for _, want := range []string{"level/LEVEL0.txt", "12x6", "error: malformed level"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printLevels(&buf, nil)
	if !strings.Contains(buf.String(), "No level files found.") {
		t.Error("empty list should say so")
	}
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(level.Summary{
		Index:     1,
		Path:      "level/LEVEL1.txt",
		CellSize:  100,
		GridW:     3,
		GridH:     2,
		Declared:  2,
		Remaining: [monster.TypeCount]int{2, 0, 0, 0},
		Road:      []core.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}},
	})
	for _, want := range []string{"LEVEL 1", "3x2 cells of 100px", "(0,0) (1,0)", "normal"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	got, err := expandHome("~/.siege/siege.log")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/home/tester/.siege/siege.log" {
		t.Errorf("expandHome = %q", got)
	}
	if got, _ := expandHome("logs/a.log"); got != "logs/a.log" {
		t.Errorf("relative path changed to %q", got)
	}
}
