// Package level loads wave descriptions and runs the spawn gate.
//
// A level file is whitespace separated integers: the total unit count
// (informational), one remaining count per unit type in monster.Type order,
// then any number of road cells. Road cell n decodes to
// (n mod gridWidth, n div gridHeight). Grid width follows the field length
// while grid height is a fixed setting, so the decode is not a true inverse of
// row-major numbering when the two differ; that is the file format.
package level

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/monster"
	"github.com/vovakirdan/siege/internal/render"
)

var (
	// ErrUnknownLevel means the index has no entry in the cell size table.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrMalformedLevel means the level file is not a valid description.
	ErrMalformedLevel = errors.New("malformed level")
)

// Spawner receives units released by the spawn gate.
type Spawner interface {
	Spawn(t monster.Type, path []core.Cell)
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(t monster.Type, path []core.Cell)

func (f SpawnerFunc) Spawn(t monster.Type, path []core.Cell) { f(t, path) }

// Settings are the fixed parameters of the level table and spawn gate.
type Settings struct {
	PathFormat    string
	FieldLength   int
	CellSizes     []int
	RowOffset     float64
	GridHeight    int
	Lanes         int
	SpawnRate     int
	SpawnRecovery int
	SpawnCeiling  int
}

// SettingsFromConfig extracts level settings from the siege config.
func SettingsFromConfig(cfg config.SiegeConfig) Settings {
	return Settings{
		PathFormat:    cfg.Level.PathFormat,
		FieldLength:   cfg.Window.FieldLength,
		CellSizes:     cfg.Level.CellSizes,
		RowOffset:     cfg.Level.RowOffset,
		GridHeight:    cfg.Level.GridHeight,
		Lanes:         cfg.Level.Lanes,
		SpawnRate:     cfg.Level.SpawnRate,
		SpawnRecovery: cfg.Level.SpawnRecovery,
		SpawnCeiling:  cfg.Level.SpawnCeiling,
	}
}

// Level holds the loaded wave and the spawn counter.
type Level struct {
	fsys    fs.FS
	set     Settings
	spawner Spawner
	logger  *log.Logger
	seed    int64
	rng     *rand.Rand

	index     int
	gridW     int
	gridH     int
	counter   int
	declared  int
	remaining [monster.TypeCount]int
	road      []core.Cell
}

// New creates an unloaded level reading descriptions from fsys.
// A zero seed seeds from the clock on every Init.
func New(fsys fs.FS, set Settings, spawner Spawner, seed int64, logger *log.Logger) *Level {
	l := &Level{
		fsys:    fsys,
		set:     set,
		spawner: spawner,
		logger:  logger,
		seed:    seed,
	}
	l.Init()
	return l
}

// Init resets to the unloaded state and reseeds the lane generator.
func (l *Level) Init() {
	l.index = -1
	l.gridW = -1
	l.gridH = -1
	l.counter = 0
	l.declared = 0
	l.remaining = [monster.TypeCount]int{}
	l.road = nil

	seed := l.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	l.rng = rand.New(rand.NewSource(seed))
}

// Load reads and applies level idx. On failure the level is unchanged.
// The spawn counter is left alone.
func (l *Level) Load(idx int) error {
	if idx < 0 || idx >= len(l.set.CellSizes) {
		return fmt.Errorf("level %d: %w", idx, ErrUnknownLevel)
	}
	cell := l.set.CellSizes[idx]
	gridW := 0
	if cell > 0 {
		gridW = l.set.FieldLength / cell
	}
	gridH := l.set.GridHeight
	if gridW <= 0 || gridH <= 0 {
		return fmt.Errorf("level %d: grid %dx%d: %w", idx, gridW, gridH, ErrMalformedLevel)
	}

	name := fmt.Sprintf(l.set.PathFormat, idx)
	f, err := l.fsys.Open(name)
	if err != nil {
		return fmt.Errorf("level %d (%s): %w: %w", idx, name, core.ErrAssetMissing, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)

	var nums []int
	for sc.Scan() {
		n, err := strconv.Atoi(sc.Text())
		if err != nil {
			return fmt.Errorf("level %d: token %d %q: %w", idx, len(nums)+1, sc.Text(), ErrMalformedLevel)
		}
		nums = append(nums, n)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("level %d: read: %w", idx, err)
	}

	header := 1 + int(monster.TypeCount)
	if len(nums) < header {
		return fmt.Errorf("level %d: %d counts, expected %d: %w", idx, len(nums), header, ErrMalformedLevel)
	}

	var remaining [monster.TypeCount]int
	for i := range remaining {
		if nums[1+i] < 0 {
			return fmt.Errorf("level %d: negative count for %v: %w", idx, monster.Type(i), ErrMalformedLevel)
		}
		remaining[i] = nums[1+i]
	}
	road := make([]core.Cell, 0, len(nums)-header)
	for _, n := range nums[header:] {
		if n < 0 {
			return fmt.Errorf("level %d: negative road cell %d: %w", idx, n, ErrMalformedLevel)
		}
		road = append(road, core.Cell{X: n % gridW, Y: n / gridH})
	}

	l.index = idx
	l.gridW = gridW
	l.gridH = gridH
	l.declared = nums[0]
	l.remaining = remaining
	l.road = road
	l.logger.Info("level loaded", "level", idx, "grid", fmt.Sprintf("%dx%d", gridW, gridH),
		"units", l.RemainMonsters(), "road", len(road))
	return nil
}

// Update runs the spawn gate for one tick.
//
// An out-of-range counter is reset to the recovery value and nothing else
// happens this tick. A positive counter counts down. At zero the first type
// with units left spawns one unit on a random lane, and the counter restarts
// at the spawn rate whether or not anything spawned.
func (l *Level) Update() {
	if l.counter < 0 || l.counter > l.set.SpawnCeiling {
		l.logger.Warn("spawn counter out of range", "counter", l.counter,
			"reset", l.set.SpawnRecovery, "err", core.ErrStateCorruption)
		l.counter = l.set.SpawnRecovery
		return
	}
	if l.counter > 0 {
		l.counter--
		return
	}

	for i, n := range l.remaining {
		if n == 0 {
			continue
		}
		t := monster.Type(i)
		path := l.GenerateRightToLeftPath()
		l.spawner.Spawn(t, path)
		l.remaining[i]--
		l.logger.Debug("unit spawned", "type", t, "lane", path[0].Y, "left", l.remaining[i])
		break
	}
	l.counter = l.set.SpawnRate
}

// GenerateRightToLeftPath returns a lane walk from the right edge to column 0
// on a random lane. Unrelated to the road cells of the level file.
func (l *Level) GenerateRightToLeftPath() []core.Cell {
	lanes := max(l.set.Lanes, 1)
	row := l.rng.Intn(lanes)
	if l.gridW <= 0 {
		return []core.Cell{{X: 0, Y: row}}
	}
	path := make([]core.Cell, 0, l.gridW)
	for x := l.gridW - 1; x >= 0; x-- {
		path = append(path, core.Cell{X: x, Y: row})
	}
	return path
}

// cellSize returns the current level's cell size. Before a level is loaded
// the first table entry is used.
func (l *Level) cellSize() float64 {
	idx := l.index
	if idx < 0 || idx >= len(l.set.CellSizes) {
		idx = 0
	}
	if len(l.set.CellSizes) == 0 {
		return 0
	}
	return float64(l.set.CellSizes[idx])
}

// GridToRegion returns the pixel region of cell c.
func (l *Level) GridToRegion(c core.Cell) core.Region {
	size := l.cellSize()
	x1 := float64(c.X) * size
	y1 := float64(c.Y)*size + l.set.RowOffset
	return core.NewRegion(x1, y1, x1+size, y1+size)
}

// RegionToGrid returns the cell whose region has r's top-left corner.
func (l *Level) RegionToGrid(r core.Region) core.Cell {
	return l.PointToGrid(core.Pt(r.X1, r.Y1))
}

// PointToGrid returns the cell containing p.
func (l *Level) PointToGrid(p core.Point) core.Cell {
	size := l.cellSize()
	if size == 0 {
		return core.Cell{}
	}
	return core.Cell{
		X: int(math.Floor(p.X / size)),
		Y: int(math.Floor((p.Y - l.set.RowOffset) / size)),
	}
}

// Draw fills every road cell. Nothing is drawn before a level is loaded.
func (l *Level) Draw(c render.Canvas) {
	if !l.Loaded() {
		return
	}
	for _, cell := range l.road {
		c.FillRect(l.GridToRegion(cell), render.ColorRoad)
	}
}

// IsOnRoad reports whether r overlaps any road cell.
func (l *Level) IsOnRoad(r core.Region) bool {
	for _, cell := range l.road {
		if l.GridToRegion(cell).Overlap(r) {
			return true
		}
	}
	return false
}

// RemainMonsters returns how many units are still to be spawned.
func (l *Level) RemainMonsters() int {
	total := 0
	for _, n := range l.remaining {
		total += n
	}
	return total
}

func (l *Level) Index() int      { return l.index }
func (l *Level) GridWidth() int  { return l.gridW }
func (l *Level) GridHeight() int { return l.gridH }
func (l *Level) Loaded() bool    { return l.index != -1 }

// Declared returns the informational unit total from the file header.
func (l *Level) Declared() int { return l.declared }

// Remaining returns the per-type spawn counts.
func (l *Level) Remaining() [monster.TypeCount]int { return l.remaining }

// Road returns a copy of the road cells.
func (l *Level) Road() []core.Cell { return append([]core.Cell(nil), l.road...) }

func (l *Level) SpawnCounter() int     { return l.counter }
func (l *Level) SetSpawnCounter(n int) { l.counter = n }
