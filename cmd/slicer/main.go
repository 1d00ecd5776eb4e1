// slicer is a coin slicing arcade game for the terminal and the desktop.
//
// Usage:
//
//	slicer play [variant]    - Play in the terminal (default: slicer)
//	slicer menu              - Pick a variant interactively
//	slicer window            - Play in a desktop window
//	slicer list              - List available variants
//	slicer config [variant]  - Print the default configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--log <path>    - Write logs to a file
//	--debug         - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/coin-slicer/internal/games/slicer"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagLogPath string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slicer",
	Short: "Coin Slicer - slice coins, dodge bombs",
	Long: `Coin Slicer is a small arcade game. Coins and bombs bounce around the
arena; sweep the pointer over coins to slice them and keep away from bombs.
Every few points the new objects move faster.

Available commands:
  play     - Play in the terminal
  menu     - Interactive variant picker
  window   - Play in a desktop window
  list     - Show all variants
  config   - Print the default configuration

Examples:
  slicer play
  slicer play slicer_rush
  slicer window --difficulty easy
  slicer config > ~/.arcade/configs/slicer.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(configCmd)
}
