package game

import (
	"errors"
	"io"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege/internal/audio"
	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/render"
)

type harness struct {
	g           *Game
	audio       *audio.Null
	transitions []Transition
}

func testConfig() config.SiegeConfig {
	cfg := config.DefaultSiegeConfig()
	cfg.Window.FPS = 10
	cfg.Difficulty.Enabled = false
	return cfg
}

func newHarness(t *testing.T, levelText string) *harness {
	t.Helper()
	h := &harness{audio: audio.NewNull()}
	g, err := New(Options{
		Config: testConfig(),
		Assets: fstest.MapFS{
			"level/LEVEL1.txt": {Data: []byte(levelText)},
		},
		Audio:        h.audio,
		Logger:       log.New(io.Discard),
		Seed:         7,
		OnTransition: func(tr Transition) { h.transitions = append(h.transitions, tr) },
	})
	if err != nil {
		t.Fatal(err)
	}
	h.g = g
	return h
}

// click presses the left button at the centre of hs for one tick. The release
// is only seen after the next tick commits it, so two clicks need a tick
// between them.
func (h *harness) click(hs config.Hotspot) bool {
	return h.clickAt((hs.X1+hs.X2)/2, (hs.Y1+hs.Y2)/2)
}

func (h *harness) clickAt(x, y float64) bool {
	in := h.g.Input()
	in.MoveMouse(x, y)
	in.SetMouse(core.MouseLeft, true)
	ok := h.g.Tick()
	in.SetMouse(core.MouseLeft, false)
	return ok
}

func (h *harness) tap(a core.Action) {
	h.g.Input().Press(a)
	h.g.Tick()
	h.g.Input().Release(a)
}

func (h *harness) startRound(t *testing.T) {
	t.Helper()
	h.click(h.g.Config().Menu.Start)
	if h.g.State() != StateRoundStart {
		t.Fatalf("after start click state = %v", h.g.State())
	}
	h.g.Tick()
	if h.g.State() != StateActive {
		t.Fatalf("after intro state = %v", h.g.State())
	}
}

func (h *harness) path() []State {
	var out []State
	for _, tr := range h.transitions {
		if len(out) == 0 {
			out = append(out, tr.From)
		}
		out = append(out, tr.To)
	}
	return out
}

func TestMenuTransitions(t *testing.T) {
	h := newHarness(t, "10 10 0 0 0")
	menu := h.g.Config().Menu

	h.click(menu.About)
	if h.g.State() != StateAbout {
		t.Fatalf("about click: state = %v", h.g.State())
	}
	h.g.Tick()
	h.clickAt(5, 5)
	if h.g.State() != StateMenu {
		t.Fatalf("any click in about: state = %v", h.g.State())
	}

	// A click outside every hotspot does nothing
	h.g.Tick()
	h.clickAt(500, 600)
	if h.g.State() != StateMenu {
		t.Fatalf("stray click: state = %v", h.g.State())
	}

	h.g.Tick()
	if ok := h.click(menu.Quit); ok {
		t.Error("Tick should return false once the game ends")
	}
	if h.g.State() != StateEnd {
		t.Errorf("quit click: state = %v", h.g.State())
	}
	if h.g.Tick() {
		t.Error("End is terminal")
	}

	expected := []State{StateMenu, StateAbout, StateMenu, StateEnd}
	if !slices.Equal(h.path(), expected) {
		t.Errorf("path = %v, expected %v", h.path(), expected)
	}
}

func TestHeldButtonDoesNotRepeat(t *testing.T) {
	h := newHarness(t, "10 10 0 0 0")
	in := h.g.Input()
	about := h.g.Config().Menu.About
	in.MoveMouse(about.X1+1, about.Y1+1)
	in.SetMouse(core.MouseLeft, true)
	h.g.Tick()
	h.g.Tick() // still held: no new edge, About stays
	if h.g.State() != StateAbout {
		t.Errorf("held click bounced back to %v", h.g.State())
	}
}

func TestRoundStartWaitsForIntro(t *testing.T) {
	h := newHarness(t, "10 10 0 0 0")
	h.audio.FinishAfter = 3

	h.click(h.g.Config().Menu.Start)
	h.g.Tick()
	h.g.Tick()
	if h.g.State() != StateRoundStart {
		t.Fatalf("intro still playing, state = %v", h.g.State())
	}
	if h.g.Session().Level.SpawnCounter() != 0 || len(h.g.Session().Units()) != 0 {
		t.Error("no simulation while the intro plays")
	}
	h.g.Tick()
	if h.g.State() != StateActive {
		t.Fatalf("state = %v, expected active", h.g.State())
	}
	// The first Active tick already runs the spawn gate
	if len(h.g.Session().Units()) != 1 {
		t.Errorf("units = %d, expected 1", len(h.g.Session().Units()))
	}
}

func TestWaveClearedReturnsToMenu(t *testing.T) {
	h := newHarness(t, "0 0 0 0 0")
	h.startRound(t)
	h.g.Tick()
	if h.g.State() != StateMenu {
		t.Errorf("empty wave: state = %v", h.g.State())
	}
	expected := []State{StateMenu, StateRoundStart, StateActive, StateMenu}
	if !slices.Equal(h.path(), expected) {
		t.Errorf("path = %v, expected %v", h.path(), expected)
	}
}

func TestWaveClearedBeatsPauseEdge(t *testing.T) {
	h := newHarness(t, "0 0 0 0 0")
	h.startRound(t)
	h.tap(core.ActionPause)
	if h.g.State() != StateMenu {
		t.Errorf("pause on a cleared wave: state = %v, expected menu", h.g.State())
	}
	expected := []State{StateMenu, StateRoundStart, StateActive, StateMenu}
	if !slices.Equal(h.path(), expected) {
		t.Errorf("path = %v, expected %v", h.path(), expected)
	}
}

func TestEndingCountdownBeatsPauseEdge(t *testing.T) {
	h := newHarness(t, "50 50 0 0 0")
	h.startRound(t)
	h.g.Session().Player.HP = 0
	for range 10*8 - 1 {
		h.g.Tick()
	}
	if h.g.State() != StateActive {
		t.Fatalf("state = %v before the countdown ends", h.g.State())
	}
	h.tap(core.ActionPause)
	if h.g.State() != StateMenu {
		t.Errorf("pause on the last countdown tick: state = %v, expected menu", h.g.State())
	}
}

func TestEndingLatchesOnce(t *testing.T) {
	h := newHarness(t, "50 50 0 0 0")
	h.startRound(t)
	s := h.g.Session()
	endTicks := 10 * 8

	s.Player.HP = 0
	for i := 1; i < endTicks; i++ {
		h.g.Tick()
		if !h.g.Ending() {
			t.Fatalf("tick %d: ending flag not set", i)
		}
		if h.g.EndTimer() != i {
			t.Fatalf("tick %d: countdown = %d, latch re-armed", i, h.g.EndTimer())
		}
		if i == 40 {
			s.Player.HP = 0
		}
		if h.g.State() != StateActive {
			t.Fatalf("tick %d: left Active early (%v)", i, h.g.State())
		}
	}
	h.g.Tick()
	if h.g.State() != StateMenu {
		t.Errorf("after FPS*8 ticks state = %v, expected menu", h.g.State())
	}
}

func TestPauseToggle(t *testing.T) {
	h := newHarness(t, "50 50 0 0 0")
	h.startRound(t)
	in := h.g.Input()

	in.Press(core.ActionPause)
	h.g.Tick()
	if h.g.State() != StatePaused {
		t.Fatalf("pause edge: state = %v", h.g.State())
	}
	counter := h.g.Session().Level.SpawnCounter()

	// Holding the key is not a second edge
	h.g.Tick()
	h.g.Tick()
	if h.g.State() != StatePaused {
		t.Fatalf("held key toggled again: %v", h.g.State())
	}
	if h.g.Session().Level.SpawnCounter() != counter {
		t.Error("paused game must not advance the spawn gate")
	}

	in.Release(core.ActionPause)
	h.g.Tick()
	in.Press(core.ActionPause)
	h.g.Tick()
	if h.g.State() != StateActive {
		t.Errorf("second edge: state = %v", h.g.State())
	}
}

func TestPauseRapidTogglesWithinTick(t *testing.T) {
	tests := []struct {
		name   string
		events []bool
		state  State
	}{
		{"press release press", []bool{true, false, true}, StatePaused},
		{"press release", []bool{true, false}, StateActive},
		{"many toggles", []bool{true, false, true, false, true, false, true}, StatePaused},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, "50 50 0 0 0")
			h.startRound(t)
			before := len(h.transitions)

			for _, down := range tc.events {
				h.g.Input().SetKey(core.ActionPause, down)
			}
			h.g.Tick()

			if h.g.State() != tc.state {
				t.Errorf("state = %v, expected %v", h.g.State(), tc.state)
			}
			if n := len(h.transitions) - before; n > 1 {
				t.Errorf("%d transitions in one tick", n)
			}
		})
	}
}

func TestPauseToggleMusic(t *testing.T) {
	h := newHarness(t, "50 50 0 0 0")
	h.startRound(t)
	bgm := h.g.bgm
	if bgm == nil || !h.audio.IsPlaying(bgm) {
		t.Fatal("background music should start with the round")
	}

	h.tap(core.ActionPause)
	if !bgm.Paused() {
		t.Error("pause should pause the music")
	}
	h.g.Tick()
	h.tap(core.ActionPause)
	if bgm.Paused() {
		t.Error("unpause should resume the music")
	}
}

func TestPausedBackToMenu(t *testing.T) {
	h := newHarness(t, "50 50 0 0 0")
	h.startRound(t)
	h.tap(core.ActionPause)
	h.tap(core.ActionBack)
	if h.g.State() != StateMenu {
		t.Errorf("state = %v", h.g.State())
	}
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t, "50 50 0 0 0")
	h.startRound(t)
	h.g.Input().Press(core.ActionQuit)
	if h.g.Tick() {
		t.Error("quit key should end the game")
	}
}

func TestRoundStartResetsSession(t *testing.T) {
	h := newHarness(t, "50 50 0 0 0")
	h.startRound(t)
	for i := 0; i < 20; i++ {
		h.g.Tick()
	}
	s := h.g.Session()
	s.Player.HP = 0
	s.Defenders[2].HP = 7
	for h.g.State() == StateActive {
		h.g.Tick()
	}
	if h.g.State() != StateMenu {
		t.Fatalf("state = %v", h.g.State())
	}

	h.click(h.g.Config().Menu.Start)
	if h.g.Ending() || h.g.EndTimer() != 0 {
		t.Error("ending flag and countdown should reset")
	}
	if len(s.Units()) != 0 || len(s.Projectiles) != 0 {
		t.Error("live units and projectiles should be cleared")
	}
	if s.Player.HP != 10 {
		t.Errorf("player HP = %d, expected 10", s.Player.HP)
	}
	if len(s.Defenders) != 5 {
		t.Fatalf("defenders = %d, expected 5", len(s.Defenders))
	}
	for _, d := range s.Defenders {
		if d.HP != 100 {
			t.Errorf("defender %d HP = %d", d.Lane, d.HP)
		}
	}
	if s.Level.RemainMonsters() != 50 {
		t.Errorf("level not reloaded, %d remaining", s.Level.RemainMonsters())
	}
}

func TestNewFailsOnMissingLevel(t *testing.T) {
	_, err := New(Options{
		Config: testConfig(),
		Assets: fstest.MapFS{},
		Logger: log.New(io.Discard),
	})
	if !errors.Is(err, core.ErrAssetMissing) {
		t.Errorf("expected ErrAssetMissing, got %v", err)
	}
}

func TestDrawIsReadOnly(t *testing.T) {
	h := newHarness(t, "50 50 0 0 0")
	rec := render.NewRecorder()

	h.g.Draw(rec)
	texts := rec.Texts()
	for _, want := range []string{"START", "QUIT", "ABOUT"} {
		if !slices.Contains(texts, want) {
			t.Errorf("menu missing %q: %v", want, texts)
		}
	}

	h.startRound(t)
	h.tap(core.ActionPause)
	ticks, state := h.g.Ticks(), h.g.State()
	counter := h.g.Session().Level.SpawnCounter()

	rec.Reset()
	h.g.Draw(rec)
	h.g.Draw(rec)
	if h.g.Ticks() != ticks || h.g.State() != state || h.g.Session().Level.SpawnCounter() != counter {
		t.Error("Draw changed simulation state")
	}
	if !slices.Contains(rec.Texts(), "GAME PAUSED") {
		t.Errorf("paused overlay missing: %v", rec.Texts())
	}
	// Units without animations are drawn as boxes
	if rec.Count(render.OpFillRect) == 0 {
		t.Error("expected filled rects")
	}
}

func TestMenuHighlightsHoveredButton(t *testing.T) {
	h := newHarness(t, "50 50 0 0 0")
	menu := h.g.Config().Menu
	start, quit := region(menu.Start), region(menu.Quit)
	h.g.Input().MoveMouse(start.CenterX(), start.CenterY())

	rec := render.NewRecorder()
	h.g.Draw(rec)

	fills := map[core.Region]any{}
	for _, op := range rec.Ops {
		if op.Kind == render.OpFillRect {
			fills[op.Region] = op.Color
		}
	}
	if fills[start] != render.ColorButtonHot {
		t.Errorf("hovered START fill = %v", fills[start])
	}
	if fills[quit] != render.ColorButton {
		t.Errorf("QUIT fill = %v, expected the plain button colour", fills[quit])
	}
	if h.g.State() != StateMenu {
		t.Error("hovering must not change state")
	}
}
