package level

import (
	"errors"
	"io"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/monster"
	"github.com/vovakirdan/siege/internal/render"
)

type spawn struct {
	kind monster.Type
	path []core.Cell
}

type recorder struct {
	spawns []spawn
}

func (r *recorder) Spawn(t monster.Type, path []core.Cell) {
	r.spawns = append(r.spawns, spawn{t, path})
}

func testSettings(fieldLength int) Settings {
	set := SettingsFromConfig(config.DefaultSiegeConfig())
	set.FieldLength = fieldLength
	return set
}

func newTestLevel(t *testing.T, fieldLength int, files map[string]string) (*Level, *recorder) {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	rec := &recorder{}
	return New(fsys, testSettings(fieldLength), rec, 42, log.New(io.Discard)), rec
}

func TestEndToEndLevel(t *testing.T) {
	l, rec := newTestLevel(t, 500, map[string]string{
		"level/LEVEL1.txt": "10 2 0 0 0 \n 0 1 2",
	})
	if err := l.Load(1); err != nil {
		t.Fatal(err)
	}

	if l.GridWidth() != 5 || l.GridHeight() != 6 {
		t.Errorf("grid = %dx%d, expected 5x6", l.GridWidth(), l.GridHeight())
	}
	if got := l.Remaining(); got != [monster.TypeCount]int{2, 0, 0, 0} {
		t.Errorf("remaining = %v", got)
	}
	road := l.Road()
	expected := []core.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	if len(road) != len(expected) {
		t.Fatalf("road = %v", road)
	}
	for i := range expected {
		if road[i] != expected[i] {
			t.Errorf("road[%d] = %v, expected %v", i, road[i], expected[i])
		}
	}

	var spawnTicks []int
	for tick := 1; tick <= 5000; tick++ {
		before := len(rec.spawns)
		l.Update()
		if len(rec.spawns) > before {
			spawnTicks = append(spawnTicks, tick)
		}
	}
	if len(spawnTicks) != 2 || spawnTicks[0] != 1 || spawnTicks[1] != 802 {
		t.Errorf("spawn ticks = %v, expected [1 802]", spawnTicks)
	}
	for _, s := range rec.spawns {
		if s.kind != monster.Normal {
			t.Errorf("spawned %v, expected normal", s.kind)
		}
	}
	if l.RemainMonsters() != 0 {
		t.Errorf("RemainMonsters = %d", l.RemainMonsters())
	}
}

func TestRoadDecodeUsesFixedGridHeight(t *testing.T) {
	// Width 12 but rows divide by 6: cell 13 lands on row 2, not row 1.
	l, _ := newTestLevel(t, 1200, map[string]string{
		"level/LEVEL0.txt": "1 1 0 0 0 13 5 12",
	})
	if err := l.Load(0); err != nil {
		t.Fatal(err)
	}
	expected := []core.Cell{{X: 1, Y: 2}, {X: 5, Y: 0}, {X: 0, Y: 2}}
	road := l.Road()
	for i := range expected {
		if road[i] != expected[i] {
			t.Errorf("cell %d decoded to %v, expected %v", i, road[i], expected[i])
		}
	}
}

func TestSpawnCounterClamp(t *testing.T) {
	for _, counter := range []int{-5, 5000, 2001} {
		l, rec := newTestLevel(t, 500, map[string]string{"level/LEVEL1.txt": "1 1 0 0 0"})
		if err := l.Load(1); err != nil {
			t.Fatal(err)
		}
		l.SetSpawnCounter(counter)
		l.Update()
		if l.SpawnCounter() != 180 {
			t.Errorf("counter %d: after update %d, expected 180", counter, l.SpawnCounter())
		}
		if len(rec.spawns) != 0 {
			t.Errorf("counter %d: clamp tick must not spawn", counter)
		}
	}

	l, _ := newTestLevel(t, 500, nil)
	l.SetSpawnCounter(2000)
	l.Update()
	if l.SpawnCounter() != 1999 {
		t.Errorf("ceiling is inclusive, counter = %d", l.SpawnCounter())
	}
}

func TestSpawnGateIdempotence(t *testing.T) {
	l, rec := newTestLevel(t, 500, map[string]string{"level/LEVEL1.txt": "5 5 0 0 0"})
	if err := l.Load(1); err != nil {
		t.Fatal(err)
	}
	l.SetSpawnCounter(10)
	for i := 9; i >= 0; i-- {
		l.Update()
		if l.SpawnCounter() != i {
			t.Fatalf("counter = %d, expected %d", l.SpawnCounter(), i)
		}
		if len(rec.spawns) != 0 {
			t.Fatal("positive counter must not spawn")
		}
	}
	l.Update()
	if len(rec.spawns) != 1 || l.SpawnCounter() != 800 {
		t.Errorf("spawns=%d counter=%d", len(rec.spawns), l.SpawnCounter())
	}
}

func TestDepletionInTypeOrder(t *testing.T) {
	l, rec := newTestLevel(t, 500, map[string]string{"level/LEVEL2.txt": "4 0 3 1 0"})
	if err := l.Load(2); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		l.SetSpawnCounter(0)
		l.Update()
	}
	expected := []monster.Type{monster.Bucket, monster.Bucket, monster.Bucket, monster.Newspaper}
	if len(rec.spawns) != len(expected) {
		t.Fatalf("got %d spawns, expected %d", len(rec.spawns), len(expected))
	}
	for i, want := range expected {
		if rec.spawns[i].kind != want {
			t.Errorf("spawn %d = %v, expected %v", i, rec.spawns[i].kind, want)
		}
	}
	if l.Remaining()[monster.Bucket] != 0 || l.RemainMonsters() != 0 {
		t.Error("counts should be depleted")
	}
	// Idle cadence still resets the counter
	if l.SpawnCounter() != 800 {
		t.Errorf("counter = %d", l.SpawnCounter())
	}
}

func TestGenerateRightToLeftPath(t *testing.T) {
	l, _ := newTestLevel(t, 1200, map[string]string{"level/LEVEL1.txt": "0 0 0 0 0"})
	if err := l.Load(1); err != nil {
		t.Fatal(err)
	}
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		path := l.GenerateRightToLeftPath()
		if len(path) != 12 {
			t.Fatalf("path length %d, expected 12", len(path))
		}
		row := path[0].Y
		if row < 0 || row >= 5 {
			t.Fatalf("lane %d out of range", row)
		}
		seen[row] = true
		for j, c := range path {
			if c.X != 11-j || c.Y != row {
				t.Fatalf("path[%d] = %v", j, c)
			}
		}
	}
	if len(seen) != 5 {
		t.Errorf("200 paths used lanes %v", seen)
	}
}

func TestGridRoundTrip(t *testing.T) {
	l, _ := newTestLevel(t, 1200, map[string]string{"level/LEVEL3.txt": "0 0 0 0 0"})
	if err := l.Load(3); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 12; x++ {
		for y := 0; y < 6; y++ {
			c := core.Cell{X: x, Y: y}
			r := l.GridToRegion(c)
			want := core.Region{
				X1: float64(x * 100), Y1: float64(y*100 + 25),
				X2: float64(x*100 + 100), Y2: float64(y*100 + 125),
			}
			if r != want {
				t.Fatalf("GridToRegion(%v) = %v, expected %v", c, r, want)
			}
			if back := l.RegionToGrid(r); back != c {
				t.Fatalf("round trip %v -> %v", c, back)
			}
		}
	}
	if got := l.PointToGrid(core.Pt(250, 130)); got != (core.Cell{X: 2, Y: 1}) {
		t.Errorf("PointToGrid = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	l, _ := newTestLevel(t, 500, map[string]string{
		"level/LEVEL0.txt": "10 2 x 0 0",
		"level/LEVEL1.txt": "10 2",
		"level/LEVEL2.txt": "1 1 0 0 0 -4",
		"level/LEVEL3.txt": "1 1 0 0 0 3",
	})

	tests := []struct {
		idx int
		err error
	}{
		{0, ErrMalformedLevel},
		{1, ErrMalformedLevel},
		{2, ErrMalformedLevel},
		{7, ErrUnknownLevel},
		{-1, ErrUnknownLevel},
	}
	for _, tc := range tests {
		if err := l.Load(tc.idx); !errors.Is(err, tc.err) {
			t.Errorf("Load(%d) = %v, expected %v", tc.idx, err, tc.err)
		}
		if l.Loaded() {
			t.Errorf("failed Load(%d) must leave the level unloaded", tc.idx)
		}
	}

	if err := l.Load(3); err != nil {
		t.Fatal(err)
	}
	empty, _ := newTestLevel(t, 500, nil)
	if err := empty.Load(1); !errors.Is(err, core.ErrAssetMissing) {
		t.Errorf("missing file: %v", err)
	}
}

func TestInitResets(t *testing.T) {
	l, _ := newTestLevel(t, 500, map[string]string{"level/LEVEL1.txt": "1 1 0 0 0 1"})
	if err := l.Load(1); err != nil {
		t.Fatal(err)
	}
	l.SetSpawnCounter(55)
	l.Init()
	if l.Index() != -1 || l.GridWidth() != -1 || l.SpawnCounter() != 0 || l.RemainMonsters() != 0 || len(l.Road()) != 0 {
		t.Error("Init should reset every field")
	}
}

func TestDrawAndRoad(t *testing.T) {
	l, _ := newTestLevel(t, 500, map[string]string{"level/LEVEL1.txt": "10 2 0 0 0 0 1 2"})
	rec := render.NewRecorder()

	l.Draw(rec)
	if len(rec.Ops) != 0 {
		t.Error("unloaded level should draw nothing")
	}

	if err := l.Load(1); err != nil {
		t.Fatal(err)
	}
	l.Draw(rec)
	if rec.Count(render.OpFillRect) != 3 {
		t.Errorf("expected 3 road tiles, got %v", rec.Ops)
	}

	if !l.IsOnRoad(core.NewRegion(140, 60, 160, 90)) {
		t.Error("region inside road cell (1,0) should be on road")
	}
	if l.IsOnRoad(core.NewRegion(400, 400, 420, 420)) {
		t.Error("region far from road should not be on road")
	}
}
