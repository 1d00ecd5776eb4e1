package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/coin-slicer/internal/core"
	"github.com/vovakirdan/coin-slicer/internal/games/slicer"
	"github.com/vovakirdan/coin-slicer/internal/platform/tui"
	"github.com/vovakirdan/coin-slicer/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Start playing in the terminal. The mouse is the blade.

Controls:
  Mouse      - Slice
  R/Click    - Restart (after game over)
  Ctrl+S     - Save a screenshot
  Esc/B      - Back
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower start
  normal - Default start speed
  hard   - Fast start
  fixed  - Speed never increases

Examples:
  slicer play
  slicer play slicer_rush
  slicer play --difficulty fixed
  slicer play --config ./my-slicer.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd, windowCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "slicer"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'slicer list' to see available variants.")
		os.Exit(1)
	}

	slicer.SetConfigPath(flagConfig)
	if err := slicer.SetDifficultyPreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The TUI owns the terminal, so logs go to --log or nowhere
	sess, err := openSession(ctx, loadConfig(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	_, runErr := playVariant(gameID, terminalConfig(), sess)
	sess.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playVariant creates a variant, attaches the session collaborators and
// runs it in the terminal. It reports whether the player asked to go back.
func playVariant(gameID string, cfg core.RuntimeConfig, sess *session) (bool, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return false, err
	}
	if g, ok := game.(*slicer.Game); ok {
		g.Attach(sess.assets, sess.effects)
	}
	return tui.Run(game, cfg, tui.Options{Logger: sess.logger})
}
