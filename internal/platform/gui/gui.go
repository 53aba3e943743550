// Package gui runs the simulation in an ebiten window. ebiten's fixed TPS
// drives the tick; each Update polls the keyboard and mouse into the
// simulation input before ticking.
package gui

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/game"
)

var keyBindings = map[core.Action][]ebiten.Key{
	core.ActionUp:      {ebiten.KeyUp, ebiten.KeyW},
	core.ActionDown:    {ebiten.KeyDown, ebiten.KeyS},
	core.ActionLeft:    {ebiten.KeyLeft, ebiten.KeyA},
	core.ActionRight:   {ebiten.KeyRight, ebiten.KeyD},
	core.ActionConfirm: {ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace},
	core.ActionBack:    {ebiten.KeyEscape, ebiten.KeyB},
	core.ActionPause:   {ebiten.KeyP},
	core.ActionQuit:    {ebiten.KeyQ},
}

var mouseBindings = map[core.MouseButton]ebiten.MouseButton{
	core.MouseLeft:   ebiten.MouseButtonLeft,
	core.MouseRight:  ebiten.MouseButtonRight,
	core.MouseMiddle: ebiten.MouseButtonMiddle,
}

// App adapts a game to ebiten.Game.
type App struct {
	game   *game.Game
	input  *core.Input
	canvas *Canvas
	width  int
	height int
	logger *log.Logger
}

// NewApp creates an ebiten game for g with a width x height logical screen.
func NewApp(g *game.Game, width, height int, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	return &App{
		game:   g,
		input:  g.Input(),
		canvas: NewCanvas(),
		width:  width,
		height: height,
		logger: logger.WithPrefix("gui"),
	}
}

func (a *App) poll() {
	for action, keys := range keyBindings {
		down := false
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				down = true
				break
			}
		}
		a.input.SetKey(action, down)
	}

	x, y := ebiten.CursorPosition()
	a.input.MoveMouse(float64(x), float64(y))
	for b, eb := range mouseBindings {
		a.input.SetMouse(b, ebiten.IsMouseButtonPressed(eb))
	}
}

// Update runs one simulation tick.
func (a *App) Update() error {
	a.poll()
	if !a.game.Tick() {
		a.logger.Info("game ended", "ticks", a.game.Ticks())
		return ebiten.Termination
	}
	return nil
}

// Draw renders the current state.
func (a *App) Draw(screen *ebiten.Image) {
	a.canvas.Begin(screen)
	a.game.Draw(a.canvas)
}

// Layout keeps the logical screen at the simulation's window size.
func (a *App) Layout(_, _ int) (int, int) {
	return a.width, a.height
}

// Run opens the window and blocks until the game ends or the window closes.
func Run(g *game.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	app := NewApp(g, cfg.WindowW, cfg.WindowH, logger)

	ebiten.SetWindowSize(cfg.WindowW, cfg.WindowH)
	ebiten.SetWindowTitle("Siege")
	ebiten.SetTPS(cfg.TickRate)

	return ebiten.RunGame(app)
}
