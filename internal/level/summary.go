package level

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/monster"
)

// Summary describes a decoded level file without running it.
type Summary struct {
	Index     int
	Path      string
	CellSize  int
	GridW     int
	GridH     int
	Declared  int
	Remaining [monster.TypeCount]int
	Road      []core.Cell
}

// Units returns the number of units the level will spawn.
func (s Summary) Units() int {
	total := 0
	for _, n := range s.Remaining {
		total += n
	}
	return total
}

// Map draws the grid one row per string: '#' for road cells and '.'
// elsewhere. Road cells that decode outside the grid are not drawn.
func (s Summary) Map() []string {
	if s.GridW <= 0 || s.GridH <= 0 {
		return nil
	}
	rows := make([][]byte, s.GridH)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", s.GridW))
	}
	for _, c := range s.Road {
		if c.X >= 0 && c.X < s.GridW && c.Y >= 0 && c.Y < s.GridH {
			rows[c.Y][c.X] = '#'
		}
	}
	out := make([]string, len(rows))
	for y, r := range rows {
		out[y] = string(r)
	}
	return out
}

// Inspect loads level idx and returns its summary.
func Inspect(fsys fs.FS, set Settings, idx int, logger *log.Logger) (Summary, error) {
	l := New(fsys, set, nil, 1, logger)
	if err := l.Load(idx); err != nil {
		return Summary{Index: idx}, err
	}
	return Summary{
		Index:     idx,
		Path:      fmt.Sprintf(set.PathFormat, idx),
		CellSize:  set.CellSizes[idx],
		GridW:     l.GridWidth(),
		GridH:     l.GridHeight(),
		Declared:  l.Declared(),
		Remaining: l.Remaining(),
		Road:      l.Road(),
	}, nil
}

// Available returns the level indices whose files exist in fsys.
func Available(fsys fs.FS, set Settings) []int {
	var out []int
	for idx := range set.CellSizes {
		if _, err := fs.Stat(fsys, fmt.Sprintf(set.PathFormat, idx)); err == nil {
			out = append(out, idx)
		}
	}
	return out
}
