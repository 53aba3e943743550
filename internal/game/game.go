// Package game implements the siege state machine and owns the play session.
//
// Game.Tick runs one fixed-rate step: audio completions, the handler of the
// current state, and, only while Active, the session update in fixed order
// (defenders, spawn gate, units, operations). Input previous-state is
// committed once at the very end. Game.Draw is a separate read-only pass.
package game

import (
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege/internal/anim"
	"github.com/vovakirdan/siege/internal/audio"
	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/core"
)

// Options configure a Game.
type Options struct {
	Config     config.SiegeConfig
	Assets     fs.FS        // Level files and sounds
	Animations anim.Library // Unit animations
	Audio      audio.Player
	Input      *core.Input
	Logger     *log.Logger
	Seed       int64 // 0 seeds lanes from the clock

	// OnTransition is called after every state change.
	OnTransition func(Transition)
}

// Game is the top-level state machine.
type Game struct {
	cfg    config.SiegeConfig
	input  *core.Input
	audio  audio.Player
	logger *log.Logger
	notify func(Transition)

	session *Session
	state   State
	tick    uint64
	err     error

	intro *audio.Voice
	bgm   *audio.Voice

	ending   bool
	endTimer int
	endTicks int
}

// New creates a game in the Menu state. The start level is loaded once so a
// missing or malformed level fails here rather than mid-session.
func New(opts Options) (*Game, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Input == nil {
		opts.Input = core.NewInput()
	}
	if opts.Audio == nil {
		opts.Audio = audio.NewNull()
	}
	if opts.Animations == nil {
		opts.Animations = anim.Set{}
	}

	s := newSession(opts.Config, opts.Assets, opts.Animations, opts.Seed, opts.Logger)
	if err := s.Level.Load(opts.Config.Level.Start); err != nil {
		return nil, err
	}
	s.Level.Init()

	g := &Game{
		cfg:      opts.Config,
		input:    opts.Input,
		audio:    opts.Audio,
		logger:   opts.Logger,
		notify:   opts.OnTransition,
		session:  s,
		state:    StateMenu,
		endTicks: opts.Config.Window.FPS * opts.Config.Menu.EndSeconds,
	}
	g.logger.Info("game ready", "state", g.state, "level", opts.Config.Level.Start)
	return g, nil
}

// Tick advances the game one step. It returns false once the game has ended.
func (g *Game) Tick() bool {
	g.tick++
	g.audio.Update()

	if g.state != StateEnd && g.input.JustPressed(core.ActionQuit) {
		g.setState(StateEnd, "quit key")
	}

	switch g.state {
	case StateMenu:
		g.updateMenu()
	case StateAbout:
		g.updateAbout()
	case StateRoundStart:
		g.updateRoundStart()
	case StateActive:
		g.updateActive()
	case StatePaused:
		g.updatePaused()
	}

	if g.state == StateActive {
		g.session.update()
	}

	g.input.Commit()
	return g.state != StateEnd
}

func (g *Game) updateMenu() {
	switch {
	case g.input.ClickedIn(core.MouseLeft, region(g.cfg.Menu.Start)),
		g.input.JustPressed(core.ActionConfirm):
		g.startRound()
	case g.input.ClickedIn(core.MouseLeft, region(g.cfg.Menu.Quit)):
		g.setState(StateEnd, "quit clicked")
	case g.input.ClickedIn(core.MouseLeft, region(g.cfg.Menu.About)):
		g.setState(StateAbout, "about clicked")
	}
}

func (g *Game) updateAbout() {
	if g.input.JustClicked(core.MouseLeft) || g.input.JustPressed(core.ActionBack) ||
		g.input.JustPressed(core.ActionConfirm) {
		g.setState(StateMenu, "about closed")
	}
}

// startRound resets the session and plays the intro. The round goes Active
// once the intro has finished.
func (g *Game) startRound() {
	g.setState(StateRoundStart, "start clicked")
	if err := g.session.Reset(); err != nil {
		g.err = err
		g.logger.Error("cannot start round", "err", err)
		g.setState(StateEnd, "level load failed")
		return
	}
	g.ending = false
	g.endTimer = 0
	g.intro = g.audio.Play(g.cfg.Assets.IntroSound, audio.Once)
	g.logger.Info("round reset", "level", g.session.Level.Index(), "units", g.session.Level.RemainMonsters())
}

func (g *Game) updateRoundStart() {
	if !g.audio.IsPlaying(g.intro) {
		g.setState(StateActive, "intro finished")
		g.startMusic()
	}
}

func (g *Game) startMusic() {
	switch {
	case g.bgm == nil || !g.audio.IsPlaying(g.bgm):
		g.bgm = g.audio.Play(g.cfg.Assets.BackgroundMusic, audio.Loop)
	case g.bgm.Paused():
		g.audio.TogglePlaying(g.bgm)
	}
}

func (g *Game) pauseMusic() {
	if g.bgm != nil && g.audio.IsPlaying(g.bgm) && !g.bgm.Paused() {
		g.audio.TogglePlaying(g.bgm)
	}
}

// updateActive evaluates every Active exit in order; a later one overrides
// an earlier one on the same tick, so a cleared wave beats a pause edge.
func (g *Game) updateActive() {
	next, reason := StateActive, ""
	if g.input.JustPressed(core.ActionPause) {
		next, reason = StatePaused, "pause key"
	}

	s := g.session
	if s.Level.RemainMonsters() == 0 && len(s.units) == 0 {
		next, reason = StateMenu, "wave cleared"
	}

	if s.Player.HP <= 0 && !g.ending {
		g.ending = true
		g.logger.Info("player fell, ending round", "countdown", g.endTicks)
	}
	if g.ending {
		g.endTimer++
		if g.endTimer >= g.endTicks {
			next, reason = StateMenu, "ending countdown elapsed"
		}
	}

	if next != StateActive {
		g.pauseMusic()
		g.setState(next, reason)
	}
}

func (g *Game) updatePaused() {
	switch {
	case g.input.JustPressed(core.ActionPause):
		g.startMusic()
		g.setState(StateActive, "pause key")
	case g.input.JustPressed(core.ActionBack):
		g.setState(StateMenu, "back key")
	}
}

func (g *Game) setState(to State, reason string) {
	if to == g.state {
		return
	}
	t := Transition{Tick: g.tick, From: g.state, To: to, Reason: reason}
	g.state = to
	g.logger.Info("state change", "from", t.From, "to", t.To, "reason", reason, "tick", t.Tick)
	if g.notify != nil {
		g.notify(t)
	}
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// Ticks returns how many ticks have run.
func (g *Game) Ticks() uint64 { return g.tick }

// Ending reports whether the player has fallen and the countdown is running.
func (g *Game) Ending() bool { return g.ending }

// EndTimer returns the ending countdown in ticks.
func (g *Game) EndTimer() int { return g.endTimer }

// Session returns the play session.
func (g *Game) Session() *Session { return g.session }

// Input returns the input snapshot platforms write into.
func (g *Game) Input() *core.Input { return g.input }

// Config returns the active configuration.
func (g *Game) Config() config.SiegeConfig { return g.cfg }

// Err returns the error that ended the game, if any.
func (g *Game) Err() error { return g.err }

// Close releases audio.
func (g *Game) Close() error {
	return g.audio.Close()
}

func region(h config.Hotspot) core.Region {
	return core.NewRegion(h.X1, h.Y1, h.X2, h.Y2)
}
