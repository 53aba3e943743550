package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/game"
	"github.com/vovakirdan/siege/internal/platform/gui"
	"github.com/vovakirdan/siege/internal/platform/tui"
)

var flagUI string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start the game at the main menu.

Controls:
  Mouse      - Click START, QUIT or ABOUT in the menu
  Enter      - Start a round from the menu
  P          - Pause/resume
  Esc/B      - Back to the menu (from About or Pause)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Faster, stronger defenders
  normal - Default defenders, slightly faster waves
  hard   - Slower, weaker defenders and faster waves
  fixed  - No scaling, exactly what the config says

Examples:
  siege play
  siege play --ui gui
  siege play --difficulty hard --level 2
  siege play --config ./my-siege.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagUI, "ui", "tui", "User interface: tui or gui")
	addConfigFlags(playCmd)
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch flagUI {
	case "tui":
		return playTerminal(cfg)
	case "gui":
		logger, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		return playWindow(cfg, logger)
	default:
		return fmt.Errorf("unknown --ui %q (expected tui or gui)", flagUI)
	}
}

// playTerminal runs the Bubble Tea UI. Logs go to the --log file so they do
// not corrupt the alternate screen.
func playTerminal(cfg config.SiegeConfig) error {
	var w io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		w = f
	} else {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	logger, err := newLogger(w)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if tw, th, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = tw, th
	}

	g, err := newGame(cfg, logger)
	if err != nil {
		return err
	}
	defer g.Close()

	if err := tui.Run(g, runtimeConfig(cfg), width, height, logger); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return g.Err()
}

func playWindow(cfg config.SiegeConfig, logger *log.Logger) error {
	g, err := newGame(cfg, logger)
	if err != nil {
		return err
	}
	defer g.Close()

	if err := gui.Run(g, runtimeConfig(cfg), logger); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return g.Err()
}

func newGame(cfg config.SiegeConfig, logger *log.Logger) (*game.Game, error) {
	fsys := assetsFS(cfg)
	return game.New(game.Options{
		Config:     cfg,
		Assets:     fsys,
		Animations: newAnimations(fsys, cfg, logger),
		Audio:      newAudio(fsys, cfg, logger),
		Logger:     logger,
		Seed:       flagSeed,
	})
}
