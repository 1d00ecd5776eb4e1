// Package window runs the coin slicer in a desktop window with Ebitengine.
// The logical screen is the arena itself, so cursor positions are arena
// coordinates without any mapping.
package window

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/coin-slicer/internal/config"
	"github.com/vovakirdan/coin-slicer/internal/core"
	slicecore "github.com/vovakirdan/coin-slicer/internal/games/slicer/core"
	"github.com/vovakirdan/coin-slicer/internal/logging"
)

// Options configures the window frontend.
type Options struct {
	Config  config.SlicerConfig
	Seed    int64 // 0 means seed from the current time
	Assets  slicecore.AssetProvider
	Effects slicecore.EffectSink
	Logger  *log.Logger
	Clock   core.Clock // Defaults to the system clock
	Title   string
	Scale   float64 // Window size relative to the arena; 0 means 1
}

// Game implements ebiten.Game around the simulation loop.
type Game struct {
	opts     Options
	loop     *slicecore.Loop
	sched    *slicecore.Scheduler
	renderer *Renderer
	clock    core.Clock
	logger   *log.Logger

	// spawnCtx scopes the scheduler goroutine; nil means spawns are only
	// enqueued by hand.
	spawnCtx context.Context

	arenaW, arenaH int
	cursorX        float64
	cursorY        float64
}

// New creates the window game. The loop and its spawn timers start on the
// first Update, once the window is running.
func New(opts Options) *Game {
	if opts.Clock == nil {
		opts.Clock = core.NewSystemClock()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	return &Game{
		opts:     opts,
		renderer: NewRenderer(),
		clock:    opts.Clock,
		logger:   logging.OrDiscard(opts.Logger),
		arenaW:   int(opts.Config.Arena.Width),
		arenaH:   int(opts.Config.Arena.Height),
		cursorX:  -1,
		cursorY:  -1,
	}
}

// begin creates the loop with now as its origin and starts feeding spawns.
func (g *Game) begin(now time.Duration) {
	cfg := g.opts.Config
	g.loop = slicecore.NewLoop(slicecore.ParamsFromConfig(cfg), slicecore.Collaborators{
		Renderer: g.renderer,
		Assets:   g.opts.Assets,
		Input:    slicecore.PointerFunc(g.pointer),
		Effects:  g.opts.Effects,
	}, rand.New(rand.NewSource(g.opts.Seed)), now)
	g.sched = slicecore.NewScheduler(cfg.Spawn.CoinEvery(), cfg.Spawn.BombEvery(), now)
	g.renderer.DrawFrame(g.loop.Frame())

	if g.spawnCtx != nil {
		go g.sched.Run(g.spawnCtx, g.loop)
	}
	g.logger.Debug("loop started", "seed", g.opts.Seed)
}

func (g *Game) pointer() (float64, float64) {
	return g.cursorX, g.cursorY
}

// Update reads input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	restart := inpututil.IsKeyJustPressed(ebiten.KeyR) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	g.step(g.clock.Now(), float64(x), float64(y), restart)
	return nil
}

// step is the input-independent part of Update.
func (g *Game) step(now time.Duration, x, y float64, restart bool) slicecore.TickResult {
	g.cursorX, g.cursorY = x, y
	g.renderer.SetTime(now)

	if g.loop == nil {
		g.begin(now)
	}

	if g.loop.Phase() == slicecore.PhaseGameOver {
		if restart && g.loop.Restart(now) == nil {
			g.logger.Info("game restarted")
			g.renderer.DrawFrame(g.loop.Frame())
			return slicecore.TickResult{Phase: g.loop.Phase()}
		}
		return g.loop.Tick(now)
	}

	res := g.loop.Tick(now)
	if res.Detonated {
		g.renderer.Blast(now)
		g.logger.Info("game over", "score", res.Score, "level", g.loop.Level())
	}
	return res
}

// Draw renders the latest frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

// Layout fixes the logical screen to the arena size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.arenaW, g.arenaH
}

// Loop exposes the simulation. It is nil before the first Update.
func (g *Game) Loop() *slicecore.Loop {
	return g.loop
}

// Run opens the window and blocks until it is closed. Spawns are fed from
// the scheduler's own goroutine through the loop's queue and keep their
// rhythm across restarts.
func Run(ctx context.Context, opts Options) error {
	g := New(opts)

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	title := opts.Title
	if title == "" {
		title = "Coin Slicer"
	}

	ebiten.SetWindowSize(int(float64(g.arenaW)*scale), int(float64(g.arenaH)*scale))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g.spawnCtx = ctx

	g.logger.Info("window opened", "width", g.arenaW, "height", g.arenaH)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
