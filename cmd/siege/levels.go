package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/siege/internal/level"
	"github.com/vovakirdan/siege/internal/platform/tui"
)

var flagPlain bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List or browse level files",
	Long: `List the level files found in the asset directory.

In a terminal this opens an interactive browser; press enter on a level to
play it. Use --plain (or pipe the output) for a simple list.

Examples:
  siege levels
  siege levels --plain`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain list instead of the browser")
	levelsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom siege config YAML")
	levelsCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset used when playing the chosen level")
}

func runLevels(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(io.Discard)
	if err != nil {
		return err
	}

	fsys := assetsFS(cfg)
	set := level.SettingsFromConfig(cfg)
	var entries []tui.LevelEntry
	for _, idx := range level.Available(fsys, set) {
		s, err := level.Inspect(fsys, set, idx, logger)
		entries = append(entries, tui.LevelEntry{Summary: s, Err: err})
	}

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		printLevels(cmd.OutOrStdout(), entries)
		return nil
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	selected, err := tui.RunLevelBrowser(entries, cfg.Units.ByIndex(), width, height)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}

	cfg.Level.Start = selected.Index
	return playTerminal(cfg)
}

func printLevels(out io.Writer, entries []tui.LevelEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No level files found.")
		return
	}

	fmt.Fprintln(out, "Available levels:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-5s  %-20s  %-6s  %-5s  %s\n", "Level", "File", "Grid", "Units", "Road")
	fmt.Fprintf(out, "  %-5s  %-20s  %-6s  %-5s  %s\n", "-----", "----", "----", "-----", "----")
	for _, e := range entries {
		s := e.Summary
		if e.Err != nil {
			fmt.Fprintf(out, "  %-5d  error: %v\n", s.Index, e.Err)
			continue
		}
		fmt.Fprintf(out, "  %-5d  %-20s  %-6s  %-5d  %d\n",
			s.Index, s.Path, fmt.Sprintf("%dx%d", s.GridW, s.GridH), s.Units(), len(s.Road))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'siege play --level <n>' to play a level.")
}
