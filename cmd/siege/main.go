// siege is a wave-based lane defense game for the terminal and the desktop.
//
// Usage:
//
//	siege play               - Play in the terminal (or --ui gui for a window)
//	siege simulate           - Run headless and print state transitions
//	siege inspect <level>    - Show a decoded level file
//	siege levels             - List or browse level files
//
// Global flags:
//
//	--fps <rate>        - Override the tick rate from the config
//	--seed <value>      - Seed the lane generator (0 = time based)
//	--assets <dir>      - Asset directory (default: config assets.root)
//	--log <path>        - Log file for terminal play (default: ~/.siege/siege.log)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagAssets   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "siege",
	Short: "Siege - hold five lanes against waves of zombies",
	Long: `Siege is a wave-based lane defense game. Zombies walk in from the
right along five lanes; a defender on each lane shoots anything ahead of it.

Available commands:
  play      - Play in the terminal or in a window
  simulate  - Run a headless round and print state transitions
  inspect   - Show a decoded level file
  levels    - List or browse level files

Examples:
  siege play
  siege play --ui gui --difficulty hard
  siege simulate --ticks 3000 --seed 7
  siege inspect 1
  siege levels`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use config window.fps)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Asset directory (default: config assets.root)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.siege/siege.log", "Log file used while the terminal UI is running")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(levelsCmd)
}
