package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/siege/internal/level"
	"github.com/vovakirdan/siege/internal/monster"
	"github.com/vovakirdan/siege/internal/platform/tui"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(10)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <level>",
	Short: "Show a decoded level file",
	Long: `Decode a level file the same way a round does and print its grid,
unit counts and road.

Examples:
  siege inspect 1
  siege inspect 3 --assets ./assets`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom siege config YAML")
}

func runInspect(cmd *cobra.Command, args []string) error {
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("level must be a number, got %q", args[0])
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	s, err := level.Inspect(assetsFS(cfg), level.SettingsFromConfig(cfg), idx, logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(s))
	return nil
}

func renderSummary(s level.Summary) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("LEVEL %d", s.Index)))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("file", s.Path)
	row("grid", fmt.Sprintf("%dx%d cells of %dpx", s.GridW, s.GridH, s.CellSize))
	row("declared", strconv.Itoa(s.Declared))
	for i, n := range s.Remaining {
		row(monster.Type(i).String(), strconv.Itoa(n))
	}
	row("total", strconv.Itoa(s.Units()))

	cells := make([]string, len(s.Road))
	for i, c := range s.Road {
		cells[i] = fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	row("road", strings.Join(cells, " "))

	b.WriteString("\n")
	b.WriteString(boxStyle.Render(tui.RenderMap(s)))
	return b.String()
}
