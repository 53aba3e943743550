package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/siege/internal/audio"
	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/game"
	"github.com/vovakirdan/siege/internal/render"
)

var flagTicks int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless round and print state transitions",
	Long: `Run the game without a display or audio device. The start button is
clicked on the first tick; every state transition is printed as it happens,
followed by a summary of the round.

Examples:
  siege simulate
  siege simulate --ticks 6000 --seed 42
  siege simulate --difficulty hard --level 2`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum number of ticks to run")
	addConfigFlags(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}

	out := cmd.OutOrStdout()
	fsys := assetsFS(cfg)
	g, err := game.New(game.Options{
		Config:     cfg,
		Assets:     fsys,
		Animations: newAnimations(fsys, cfg, logger),
		Audio:      audio.NewNull(),
		Logger:     logger,
		Seed:       flagSeed,
		OnTransition: func(t game.Transition) {
			fmt.Fprintf(out, "%6d  %-10s -> %-10s  %s\n", t.Tick, t.From, t.To, t.Reason)
		},
	})
	if err != nil {
		return err
	}
	defer g.Close()

	canvas := render.NewRecorder()
	in := g.Input()
	start := cfg.Menu.Start
	in.MoveMouse((start.X1+start.X2)/2, (start.Y1+start.Y2)/2)
	in.SetMouse(core.MouseLeft, true)

	ticks := 0
	for ticks < flagTicks {
		ticks++
		running := g.Tick()
		in.SetMouse(core.MouseLeft, false)

		canvas.Reset()
		g.Draw(canvas)
		if !running {
			break
		}
	}

	printSummary(out, g, cfg, ticks, canvas)
	return g.Err()
}

func printSummary(out io.Writer, g *game.Game, cfg config.SiegeConfig, ticks int, canvas *render.Recorder) {
	s := g.Session()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "ticks      %d (%.1fs at %d fps)\n", ticks, float64(ticks)/float64(cfg.Window.FPS), cfg.Window.FPS)
	fmt.Fprintf(out, "state      %s\n", g.State())
	fmt.Fprintf(out, "level      %d (%d units left to spawn)\n", s.Level.Index(), s.Level.RemainMonsters())
	fmt.Fprintf(out, "player hp  %d/%d\n", s.Player.HP, s.Player.MaxHP)
	fmt.Fprintf(out, "units      spawned %d, killed %d, leaked %d, alive %d\n",
		s.Stats.Spawned, s.Stats.Killed, s.Stats.Leaked, len(s.Units()))
	fmt.Fprintf(out, "shots      %d\n", s.Stats.Shots)
	fmt.Fprintf(out, "last frame %d rects, %d images, %d texts\n",
		canvas.Count(render.OpFillRect), canvas.Count(render.OpDrawImage), canvas.Count(render.OpDrawText))
}
