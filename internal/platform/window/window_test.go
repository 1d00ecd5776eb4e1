package window

import (
	"testing"
	"time"

	"github.com/vovakirdan/coin-slicer/internal/config"
	"github.com/vovakirdan/coin-slicer/internal/core"
	slicecore "github.com/vovakirdan/coin-slicer/internal/games/slicer/core"
)

type countingEffects struct {
	slices, detonations int
}

func (c *countingEffects) OnSlice()      { c.slices++ }
func (c *countingEffects) OnDetonation() { c.detonations++ }

func newTestGame(t *testing.T) (*Game, *core.ManualClock, *countingEffects) {
	t.Helper()
	clock := core.NewManualClock(0)
	fx := &countingEffects{}
	g := New(Options{
		Config:  config.DefaultSlicerConfig(),
		Seed:    9,
		Effects: fx,
		Clock:   clock,
	})
	g.step(0, -1, -1, false)
	return g, clock, fx
}

func center(e slicecore.Entity) (float64, float64) {
	return e.X + e.Size/2, e.Y + e.Size/2
}

func TestLayoutIsArena(t *testing.T) {
	g, _, _ := newTestGame(t)

	w, h := g.Layout(640, 480)
	if w != 1200 || h != 900 {
		t.Errorf("Layout = %dx%d, expected 1200x900", w, h)
	}
}

func TestLoopStartsOnFirstUpdate(t *testing.T) {
	g := New(Options{Config: config.DefaultSlicerConfig(), Seed: 9})

	if g.Loop() != nil {
		t.Fatal("loop should not exist before the first update")
	}
	if _, ok := g.renderer.Frame(); ok {
		t.Error("no frame should be drawn before the first update")
	}

	// Window start-up took three seconds.
	start := 3 * time.Second
	res := g.step(start, -1, -1, false)
	if res.Elapsed != 0 {
		t.Errorf("first elapsed = %v, start-up delay must not count as game time", res.Elapsed)
	}
	if g.Loop() == nil {
		t.Fatal("first update should start the loop")
	}
	f, ok := g.renderer.Frame()
	if !ok || f.ScoreText != "Score: 0" || f.Background.Fill != slicecore.FillBackground {
		t.Errorf("initial frame = %+v", f)
	}

	g.loop.Enqueue(slicecore.KindCoin)
	res = g.step(start+16*time.Millisecond, -1, -1, false)
	if res.Elapsed != 16*time.Millisecond {
		t.Errorf("elapsed = %v, expected 16ms", res.Elapsed)
	}
	if n := len(g.loop.State().Coins); n != 1 {
		t.Errorf("coins = %d, expected only the queued one", n)
	}
}

func TestCursorSlicesQueuedCoin(t *testing.T) {
	g, _, fx := newTestGame(t)

	g.loop.Enqueue(slicecore.KindCoin)
	g.step(16*time.Millisecond, -1, -1, false)

	coins := g.loop.State().Coins
	if len(coins) != 1 {
		t.Fatalf("expected the queued coin to spawn, got %d", len(coins))
	}

	x, y := center(coins[0])
	g.step(17*time.Millisecond, x, y, false)

	if g.loop.Score() != 1 || fx.slices != 1 {
		t.Errorf("score = %d, slices = %d, expected 1/1", g.loop.Score(), fx.slices)
	}
}

func TestDetonationFlashAndRestart(t *testing.T) {
	g, _, fx := newTestGame(t)

	g.loop.Enqueue(slicecore.KindBomb)
	g.step(16*time.Millisecond, -1, -1, false)
	x, y := center(g.loop.State().Bombs[0])
	g.step(17*time.Millisecond, x, y, false)

	if g.loop.Phase() != slicecore.PhaseGameOver || fx.detonations != 1 {
		t.Fatalf("expected game over, phase = %v", g.loop.Phase())
	}
	if a := g.renderer.blastAlpha(); a <= 0.9 {
		t.Errorf("flash alpha right after the blast = %g", a)
	}

	g.step(17*time.Millisecond+blastLength, x, y, false)
	if a := g.renderer.blastAlpha(); a != 0 {
		t.Errorf("flash should be over, alpha = %g", a)
	}
	if g.loop.Phase() != slicecore.PhaseGameOver {
		t.Fatal("game must stay over without a restart request")
	}

	g.step(time.Second, -1, -1, true)
	if g.loop.Phase() != slicecore.PhasePlaying || g.loop.Score() != 0 {
		t.Errorf("restart failed: phase = %v, score = %d", g.loop.Phase(), g.loop.Score())
	}
	f, _ := g.renderer.Frame()
	if f.Phase != slicecore.PhasePlaying || len(f.Entities) != 0 {
		t.Errorf("frame after restart = %+v", f)
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g, _, _ := newTestGame(t)

	g.loop.Enqueue(slicecore.KindCoin)
	g.step(16*time.Millisecond, -1, -1, true)

	if len(g.loop.State().Coins) != 1 {
		t.Error("a restart request while playing must not clear the game")
	}
}
