// Package slicer adapts the coin slicer simulation loop to the arcade
// platform: it feeds platform input frames into the loop, owns the spawn
// timers and projects the pixel arena onto a character screen.
package slicer

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/coin-slicer/internal/config"
	"github.com/vovakirdan/coin-slicer/internal/core"
	slicecore "github.com/vovakirdan/coin-slicer/internal/games/slicer/core"
	"github.com/vovakirdan/coin-slicer/internal/registry"
)

// GameMode selects the registered variant.
type GameMode int

const (
	ModeClassic GameMode = iota // Configured difficulty
	ModeRush                    // Hard preset regardless of configuration
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset for the classic variant.
// Unknown names are rejected and leave the current preset in place.
func SetDifficultyPreset(preset string) error {
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// Game implements registry.Game on top of the simulation loop.
type Game struct {
	mode GameMode

	loop  *slicecore.Loop
	sched *slicecore.Scheduler
	view  *ScreenRenderer

	cfg     config.SlicerConfig
	runtime core.RuntimeConfig

	// Frontend-owned collaborators, nil until Attach.
	assets  slicecore.AssetProvider
	effects slicecore.EffectSink

	// Latest pointer in arena coordinates; (-1, -1) until the mouse is seen.
	pointerX, pointerY float64
}

// New creates a classic coin slicer game.
func New() *Game {
	return &Game{mode: ModeClassic, view: NewScreenRenderer()}
}

// NewRush creates the fast variant.
func NewRush() *Game {
	return &Game{mode: ModeRush, view: NewScreenRenderer()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeRush {
		return "slicer_rush"
	}
	return "slicer"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeRush {
		return "Coin Slicer (Rush)"
	}
	return "Coin Slicer"
}

// Attach wires frontend-owned asset and effect providers. Either may be nil.
// It takes effect on the next Reset.
func (g *Game) Attach(assets slicecore.AssetProvider, effects slicecore.EffectSink) {
	g.assets = assets
	g.effects = effects
}

// Config returns the configuration loaded by the last Reset.
func (g *Game) Config() config.SlicerConfig {
	return g.cfg
}

// Reset loads configuration and prepares a fresh game. The loop itself is
// started on the first Step so its clock matches the frontend's timestamps.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSlicer(configPath)
	if err != nil {
		cfg = config.DefaultSlicerConfig()
	}
	if g.mode == ModeRush {
		config.ApplySlicerPreset(&cfg, config.DifficultyHard)
	} else {
		config.ApplySlicerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.loop = nil
	g.sched = nil
	g.pointerX, g.pointerY = -1, -1
	g.view.Reset()
}

// begin creates the loop and spawn timers with now as their origin.
func (g *Game) begin(now time.Duration) {
	seed := g.runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g.loop = slicecore.NewLoop(slicecore.ParamsFromConfig(g.cfg), slicecore.Collaborators{
		Renderer: g.view,
		Assets:   g.assets,
		Input:    slicecore.PointerFunc(g.pointer),
		Effects:  g.effects,
	}, rand.New(rand.NewSource(seed)), now)
	g.sched = slicecore.NewScheduler(g.cfg.Spawn.CoinEvery(), g.cfg.Spawn.BombEvery(), now)
	g.view.DrawFrame(g.loop.Frame())
}

func (g *Game) pointer() (float64, float64) {
	return g.pointerX, g.pointerY
}

// Step advances the game to in.Now.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.loop == nil {
		g.begin(in.Now)
	}

	if in.HasPointer {
		g.pointerX, g.pointerY = g.view.CellToArena(in.PointerCol, in.PointerRow)
	}

	if g.loop.Phase() == slicecore.PhaseGameOver {
		if in.Has(core.ActionRestart) && g.loop.Restart(in.Now) == nil {
			g.sched.Reset(in.Now)
			g.view.DrawFrame(g.loop.Frame())
			return core.StepResult{State: g.State(), Restarted: true}
		}
		return core.StepResult{State: g.State()}
	}

	for _, kind := range g.sched.Due(in.Now) {
		g.loop.Spawn(kind)
	}

	res := g.loop.Tick(in.Now)
	return core.StepResult{
		State:     g.State(),
		Sliced:    res.Sliced,
		Detonated: res.Detonated,
	}
}

// Render draws the last settled frame.
func (g *Game) Render(dst *core.Screen) {
	g.view.Render(dst)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.loop == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.loop.Score(),
		Level:    g.loop.Level(),
		GameOver: g.loop.Phase() == slicecore.PhaseGameOver,
	}
}

// Loop exposes the running simulation, or nil before the first Step.
func (g *Game) Loop() *slicecore.Loop {
	return g.loop
}

func init() {
	registry.Register(registry.Info{
		ID:          "slicer",
		Title:       "Coin Slicer",
		Description: "Speed ramps up every few points",
	}, func() registry.Game { return New() })
	registry.Register(registry.Info{
		ID:          "slicer_rush",
		Title:       "Coin Slicer (Rush)",
		Description: "Starts at hard speed",
	}, func() registry.Game { return NewRush() })
}
