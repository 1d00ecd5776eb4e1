package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coin-slicer/internal/config"
	"github.com/vovakirdan/coin-slicer/internal/core"
	"github.com/vovakirdan/coin-slicer/internal/platform/window"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the arena in a desktop window and slice with the mouse cursor.

Controls:
  Mouse         - Slice
  R/Click       - Restart (after game over)
  Q/Esc         - Quit

Examples:
  slicer window
  slicer window --scale 0.75 --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 0.75, "Window size relative to the arena")
}

func runWindow(cmd *cobra.Command, _ []string) {
	preset := validateDifficulty()

	cfg := loadConfig()
	if preset != "" {
		config.ApplySlicerPreset(&cfg, preset)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sess, err := openSession(ctx, cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := window.Run(ctx, window.Options{
		Config:  cfg,
		Seed:    flagSeed,
		Assets:  sess.assets,
		Effects: sess.effects,
		Logger:  sess.logger,
		Clock:   core.NewSystemClock(),
		Scale:   flagScale,
	})
	sess.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
