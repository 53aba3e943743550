package level

import (
	"errors"
	"io"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/monster"
)

func TestInspect(t *testing.T) {
	fsys := fstest.MapFS{
		"level/LEVEL1.txt": {Data: []byte("3 2 1 0 0\n0 1 2")},
	}
	set := testSettings(500)

	s, err := Inspect(fsys, set, 1, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	if s.Path != "level/LEVEL1.txt" || s.CellSize != 100 {
		t.Errorf("path/cell = %q/%d", s.Path, s.CellSize)
	}
	if s.GridW != 5 || s.GridH != 6 {
		t.Errorf("grid = %dx%d, expected 5x6", s.GridW, s.GridH)
	}
	if s.Declared != 3 || s.Units() != 3 {
		t.Errorf("declared/units = %d/%d", s.Declared, s.Units())
	}
	if s.Remaining != [monster.TypeCount]int{2, 1, 0, 0} {
		t.Errorf("remaining = %v", s.Remaining)
	}

	m := s.Map()
	if len(m) != 6 || m[0] != "###.." || m[1] != "....." {
		t.Errorf("map = %q", m)
	}
}

func TestInspectMissing(t *testing.T) {
	_, err := Inspect(fstest.MapFS{}, testSettings(500), 2, log.New(io.Discard))
	if !errors.Is(err, core.ErrAssetMissing) {
		t.Errorf("err = %v, expected ErrAssetMissing", err)
	}
}

func TestSummaryMapSkipsCellsOutsideGrid(t *testing.T) {
	s := Summary{GridW: 2, GridH: 2, Road: []core.Cell{{X: 1, Y: 1}, {X: 0, Y: 5}}}
	if got := s.Map(); !slices.Equal(got, []string{"..", ".#"}) {
		t.Errorf("map = %q", got)
	}
	if (Summary{}).Map() != nil {
		t.Error("unloaded summary has no map")
	}
}

func TestAvailable(t *testing.T) {
	fsys := fstest.MapFS{
		"level/LEVEL0.txt": {Data: []byte("0 0 0 0 0")},
		"level/LEVEL3.txt": {Data: []byte("0 0 0 0 0")},
		"level/LEVEL9.txt": {Data: []byte("0 0 0 0 0")},
	}
	if got := Available(fsys, testSettings(1200)); !slices.Equal(got, []int{0, 3}) {
		t.Errorf("available = %v, expected [0 3]", got)
	}
}
