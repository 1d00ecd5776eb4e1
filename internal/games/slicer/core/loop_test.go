package core

import (
	"errors"
	"image"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"
)

type recordingRenderer struct {
	frames []Frame
}

func (r *recordingRenderer) DrawFrame(f Frame) {
	r.frames = append(r.frames, f)
}

type countingEffects struct {
	slices      int
	detonations int
}

func (e *countingEffects) OnSlice()      { e.slices++ }
func (e *countingEffects) OnDetonation() { e.detonations++ }

type pointer struct {
	x, y float64
}

func (p *pointer) Pointer() (float64, float64) { return p.x, p.y }

type fakeAssets map[string]image.Image

func (a fakeAssets) Image(name string) (image.Image, bool) {
	img, ok := a[name]
	return img, ok
}

type panickingEffects struct{}

func (panickingEffects) OnSlice()      { panic("speaker unplugged") }
func (panickingEffects) OnDetonation() { panic("speaker unplugged") }

const ms = time.Millisecond

func newTestLoop(t *testing.T, ptr *pointer) (*Loop, *recordingRenderer, *countingEffects) {
	t.Helper()
	r := &recordingRenderer{}
	fx := &countingEffects{}
	if ptr == nil {
		ptr = &pointer{x: -1, y: -1}
	}
	l := NewLoop(DefaultParams(), Collaborators{Renderer: r, Input: ptr, Effects: fx}, rand.New(rand.NewSource(1)), 0)
	return l, r, fx
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTickMovesCoinByElapsedTime(t *testing.T) {
	l, _, _ := newTestLoop(t, nil)
	l.state.Coins = []Entity{{Kind: KindCoin, X: 0, Y: 0, Size: 75, VX: 1.6, VY: 1.6}}

	result := l.Tick(1000 * ms)

	c := l.State().Coins[0]
	if !approx(c.X, 160) || !approx(c.Y, 160) {
		t.Errorf("coin at (%g, %g), expected (160, 160)", c.X, c.Y)
	}
	if c.VX != 1.6 || c.VY != 1.6 {
		t.Errorf("velocity changed to (%g, %g) without a reflection", c.VX, c.VY)
	}
	if result.Elapsed != time.Second {
		t.Errorf("Elapsed = %v, expected 1s", result.Elapsed)
	}
}

func TestElapsedIsMeasuredFromPreviousTick(t *testing.T) {
	l, _, _ := newTestLoop(t, nil)
	l.state.Coins = []Entity{{Kind: KindCoin, X: 100, Y: 100, Size: 75, VX: 1, VY: 0}}

	l.Tick(10 * ms)
	l.Tick(30 * ms)

	// 10ms + 20ms at 1px per (ms*0.1) = 3px
	if c := l.State().Coins[0]; !approx(c.X, 103) {
		t.Errorf("coin x = %g, expected 103", c.X)
	}
}

func TestEntitiesStayInsideArena(t *testing.T) {
	l, _, _ := newTestLoop(t, nil)
	p := l.Params()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 20; i++ {
		l.SpawnCoin()
		l.SpawnBomb()
	}

	now := time.Duration(0)
	for i := 0; i < 2000; i++ {
		now += time.Duration(rng.Intn(400)) * ms
		l.Tick(now)

		s := l.State()
		for _, e := range append(s.Coins, s.Bombs...) {
			if e.X < 0 || e.X > p.ArenaW-e.Size || e.Y < 0 || e.Y > p.ArenaH-e.Size {
				t.Fatalf("tick %d: entity at (%g, %g) left the arena", i, e.X, e.Y)
			}
		}
	}
}

func TestReflectionFlipsOncePerCrossing(t *testing.T) {
	l, _, _ := newTestLoop(t, nil)
	l.state.Coins = []Entity{{Kind: KindCoin, X: 1124, Y: 400, Size: 75, VX: 1.6, VY: 0}}

	l.Tick(100 * ms)
	c := l.State().Coins[0]
	if c.VX != -1.6 {
		t.Fatalf("VX = %g after crossing the right wall, expected -1.6", c.VX)
	}
	if !approx(c.X, 1110) {
		t.Errorf("X = %g, expected mirrored position 1110", c.X)
	}

	// Back inside: the next tick must not flip again.
	l.Tick(200 * ms)
	c = l.State().Coins[0]
	if c.VX != -1.6 {
		t.Errorf("VX = %g on the tick after the bounce, expected -1.6", c.VX)
	}
	if !approx(c.X, 1094) {
		t.Errorf("X = %g, expected 1094", c.X)
	}
}

func TestSliceCoin(t *testing.T) {
	ptr := &pointer{x: 120, y: 120}
	l, _, fx := newTestLoop(t, ptr)
	l.state.Coins = []Entity{
		{Kind: KindCoin, X: 100, Y: 100, Size: 75},
		{Kind: KindCoin, X: 500, Y: 500, Size: 75},
	}

	result := l.Tick(16 * ms)

	if result.Sliced != 1 || l.Score() != 1 {
		t.Errorf("Sliced = %d, Score = %d, expected 1/1", result.Sliced, l.Score())
	}
	if got := len(l.State().Coins); got != 1 {
		t.Fatalf("coins left = %d, expected 1", got)
	}
	if c := l.State().Coins[0]; c.X != 500 {
		t.Errorf("wrong coin removed, remaining coin at x=%g", c.X)
	}
	if fx.slices != 1 {
		t.Errorf("slice effects = %d, expected 1", fx.slices)
	}
}

func TestSliceHitBoundsAreInclusive(t *testing.T) {
	for _, pt := range [][2]float64{{100, 100}, {175, 175}, {100, 175}, {175, 100}} {
		ptr := &pointer{x: pt[0], y: pt[1]}
		l, _, _ := newTestLoop(t, ptr)
		l.state.Coins = []Entity{{Kind: KindCoin, X: 100, Y: 100, Size: 75}}

		l.Tick(16 * ms)
		if l.Score() != 1 {
			t.Errorf("pointer at %v on the coin edge did not slice", pt)
		}
	}
}

func TestAdjacentCoinsAreAllSliced(t *testing.T) {
	ptr := &pointer{x: 150, y: 150}
	l, _, fx := newTestLoop(t, ptr)
	l.state.Coins = []Entity{
		{Kind: KindCoin, X: 100, Y: 100, Size: 75},
		{Kind: KindCoin, X: 110, Y: 110, Size: 75},
		{Kind: KindCoin, X: 900, Y: 100, Size: 75},
		{Kind: KindCoin, X: 120, Y: 120, Size: 75},
	}

	l.Tick(16 * ms)

	if l.Score() != 3 || fx.slices != 3 {
		t.Errorf("Score = %d, slices = %d, expected 3/3", l.Score(), fx.slices)
	}
	coins := l.State().Coins
	if len(coins) != 1 || coins[0].X != 900 {
		t.Errorf("remaining coins = %+v, expected only the one at x=900", coins)
	}
}

func TestSliceNCoinsAcrossNTicks(t *testing.T) {
	ptr := &pointer{}
	l, _, _ := newTestLoop(t, ptr)

	const n = 7
	for i := 0; i < n; i++ {
		l.state.Coins = append(l.state.Coins, Entity{Kind: KindCoin, X: float64(i) * 150, Y: 0, Size: 75})
	}

	for i := 0; i < n; i++ {
		ptr.x, ptr.y = float64(i)*150+10, 10
		l.Tick(time.Duration(i+1) * ms)
	}

	if l.Score() != n {
		t.Errorf("Score = %d, expected %d", l.Score(), n)
	}
	if len(l.State().Coins) != 0 {
		t.Errorf("coins left = %d, expected 0", len(l.State().Coins))
	}
}

func TestBombHitEndsGameAndShortCircuits(t *testing.T) {
	ptr := &pointer{x: 300, y: 300}
	l, _, fx := newTestLoop(t, ptr)
	l.state.Bombs = []Entity{
		{Kind: KindBomb, X: 280, Y: 280, Size: 75},
		{Kind: KindBomb, X: 600, Y: 600, Size: 75, VX: 1.6, VY: 1.6},
	}

	result := l.Tick(100 * ms)

	if !result.Detonated || l.Phase() != PhaseGameOver {
		t.Fatalf("expected detonation, got %+v", result)
	}
	if fx.detonations != 1 {
		t.Errorf("detonation effects = %d, expected 1", fx.detonations)
	}
	bombs := l.State().Bombs
	if len(bombs) != 2 {
		t.Errorf("bombs = %d, expected the hit bomb to stay in the collection", len(bombs))
	}
	if bombs[1].X != 600 || bombs[1].Y != 600 {
		t.Errorf("bomb after the hit moved to (%g, %g); the scan should have stopped", bombs[1].X, bombs[1].Y)
	}
}

func TestFirstBombHitWins(t *testing.T) {
	ptr := &pointer{x: 300, y: 300}
	l, _, fx := newTestLoop(t, ptr)
	l.state.Bombs = []Entity{
		{Kind: KindBomb, X: 280, Y: 280, Size: 75},
		{Kind: KindBomb, X: 290, Y: 290, Size: 75},
	}

	l.Tick(16 * ms)

	if fx.detonations != 1 {
		t.Errorf("detonations = %d, expected exactly one", fx.detonations)
	}
}

func TestCoinsAreScannedBeforeBombs(t *testing.T) {
	ptr := &pointer{x: 300, y: 300}
	l, _, fx := newTestLoop(t, ptr)
	l.state.Coins = []Entity{{Kind: KindCoin, X: 290, Y: 290, Size: 75}}
	l.state.Bombs = []Entity{{Kind: KindBomb, X: 280, Y: 280, Size: 75}}

	result := l.Tick(16 * ms)

	if result.Sliced != 1 || l.Score() != 1 {
		t.Errorf("coin under the pointer should score before the bomb ends the game, got %+v", result)
	}
	if !result.Detonated || l.Phase() != PhaseGameOver {
		t.Errorf("bomb should still end the game, got %+v", result)
	}
	if fx.slices != 1 || fx.detonations != 1 {
		t.Errorf("effects = %d slices / %d detonations, expected 1/1", fx.slices, fx.detonations)
	}
}

func TestGameOverFreezesState(t *testing.T) {
	ptr := &pointer{x: 300, y: 300}
	l, r, _ := newTestLoop(t, ptr)
	l.state.Coins = []Entity{{Kind: KindCoin, X: 10, Y: 10, Size: 75, VX: 1.6, VY: 1.6}}
	l.state.Bombs = []Entity{{Kind: KindBomb, X: 280, Y: 280, Size: 75}}
	l.Tick(16 * ms)

	before := l.State()
	frames := len(r.frames)

	result := l.Tick(1000 * ms)
	if !result.Skipped {
		t.Error("Tick after game over should report Skipped")
	}
	if l.SpawnCoin() || l.SpawnBomb() {
		t.Error("spawning after game over should be refused")
	}
	l.Enqueue(KindCoin)
	l.Tick(2000 * ms)

	after := l.State()
	if after.Score != before.Score || len(after.Coins) != len(before.Coins) || len(after.Bombs) != len(before.Bombs) {
		t.Errorf("state changed after game over: %+v -> %+v", before, after)
	}
	if after.Coins[0] != before.Coins[0] {
		t.Errorf("coin moved after game over: %+v -> %+v", before.Coins[0], after.Coins[0])
	}
	if len(r.frames) != frames {
		t.Errorf("renderer called %d more times after game over", len(r.frames)-frames)
	}
}

func TestRestart(t *testing.T) {
	ptr := &pointer{x: 300, y: 300}
	l, _, _ := newTestLoop(t, ptr)

	if err := l.Restart(0); !errors.Is(err, ErrStillPlaying) {
		t.Errorf("Restart while playing = %v, expected ErrStillPlaying", err)
	}

	l.state.Score = 12
	l.state.Coins = []Entity{{Kind: KindCoin, X: 900, Y: 10, Size: 75}}
	l.state.Bombs = []Entity{{Kind: KindBomb, X: 280, Y: 280, Size: 75}}
	l.Tick(16 * ms)
	l.Enqueue(KindBomb)

	if err := l.Restart(5000 * ms); err != nil {
		t.Fatalf("Restart after game over failed: %v", err)
	}

	s := l.State()
	if s.Score != 0 || len(s.Coins) != 0 || len(s.Bombs) != 0 || s.Phase != PhasePlaying {
		t.Errorf("state after restart = %+v", s)
	}
	if l.Speed() != DefaultParams().Speed.Base {
		t.Errorf("speed after restart = %g, expected base speed", l.Speed())
	}

	// The queued bomb was discarded and elapsed restarts from the restart time.
	result := l.Tick(5016 * ms)
	if result.Elapsed != 16*ms {
		t.Errorf("first tick after restart Elapsed = %v, expected 16ms", result.Elapsed)
	}
	if len(l.State().Bombs) != 0 {
		t.Error("spawns queued before restart should be dropped")
	}
}

func TestSpawnUsesCurrentSpeedForNewEntitiesOnly(t *testing.T) {
	l, _, _ := newTestLoop(t, nil)
	l.SpawnCoin()

	l.state.Score = 5
	l.SpawnCoin()
	l.state.Score = 12
	l.SpawnBomb()

	s := l.State()
	if got := math.Abs(s.Coins[0].VX); !approx(got, 1.6) {
		t.Errorf("first coin speed = %g, expected 1.6", got)
	}
	if got := math.Abs(s.Coins[1].VX); !approx(got, 2.0) {
		t.Errorf("second coin speed = %g, expected 2.0", got)
	}
	if got := math.Abs(s.Bombs[0].VY); !approx(got, 2.4) {
		t.Errorf("bomb speed = %g, expected 2.4", got)
	}
	if l.Level() != 2 {
		t.Errorf("Level() = %d, expected 2", l.Level())
	}
}

func TestSpawnPlacementAndSigns(t *testing.T) {
	l, _, _ := newTestLoop(t, nil)
	p := l.Params()

	for i := 0; i < 400; i++ {
		l.SpawnCoin()
	}

	var posX, negX, posY, negY int
	for _, c := range l.State().Coins {
		if c.X < 0 || c.X > p.ArenaW-p.EntitySize || c.Y < 0 || c.Y > p.ArenaH-p.EntitySize {
			t.Fatalf("spawned coin at (%g, %g) does not fit the arena", c.X, c.Y)
		}
		if c.Size != p.EntitySize {
			t.Fatalf("spawned coin size = %g", c.Size)
		}
		if c.VX > 0 {
			posX++
		} else {
			negX++
		}
		if c.VY > 0 {
			posY++
		} else {
			negY++
		}
	}
	if posX == 0 || negX == 0 || posY == 0 || negY == 0 {
		t.Errorf("velocity signs not randomized: +x=%d -x=%d +y=%d -y=%d", posX, negX, posY, negY)
	}
}

func TestEnqueueIsSafeAcrossGoroutines(t *testing.T) {
	l, _, _ := newTestLoop(t, nil)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				l.Enqueue(KindCoin)
			}
		}()
	}
	wg.Wait()

	if len(l.State().Coins) != 0 {
		t.Fatal("queued spawns must not apply before the next tick")
	}
	l.Tick(16 * ms)
	if got := len(l.State().Coins); got != 100 {
		t.Errorf("coins after drain = %d, expected 100", got)
	}
}

func TestFrameUsesAssetsOrFallbackFill(t *testing.T) {
	r := &recordingRenderer{}
	coinImg := image.NewRGBA(image.Rect(0, 0, 1, 1))
	l := NewLoop(DefaultParams(), Collaborators{
		Renderer: r,
		Assets:   fakeAssets{AssetCoin: coinImg},
	}, rand.New(rand.NewSource(3)), 0)

	l.SpawnBomb()
	l.SpawnCoin()
	l.Tick(16 * ms)

	if len(r.frames) != 1 {
		t.Fatalf("renderer called %d times, expected once per tick", len(r.frames))
	}
	f := r.frames[0]
	if f.ScoreText != "Score: 0" {
		t.Errorf("ScoreText = %q", f.ScoreText)
	}
	if f.Background.Ready() || f.Background.Fill != FillBackground {
		t.Errorf("background should fall back to a solid fill, got %+v", f.Background)
	}
	if len(f.Entities) != 2 || f.Entities[0].Kind != KindCoin || f.Entities[1].Kind != KindBomb {
		t.Fatalf("entities should be coins then bombs, got %+v", f.Entities)
	}
	if !f.Entities[0].Sprite.Ready() {
		t.Error("coin sprite should use the resolved image")
	}
	if f.Entities[1].Sprite.Ready() || f.Entities[1].Sprite.Fill != FillBomb {
		t.Error("bomb sprite should fall back to the bomb fill")
	}
	if f.ArenaW != 1200 || f.ArenaH != 900 {
		t.Errorf("frame arena = %gx%g", f.ArenaW, f.ArenaH)
	}
}

func TestPanickingEffectSinkDoesNotAbortTick(t *testing.T) {
	r := &recordingRenderer{}
	ptr := &pointer{x: 120, y: 120}
	l := NewLoop(DefaultParams(), Collaborators{Renderer: r, Input: ptr, Effects: panickingEffects{}}, rand.New(rand.NewSource(1)), 0)
	l.state.Coins = []Entity{{Kind: KindCoin, X: 100, Y: 100, Size: 75}}

	l.Tick(16 * ms)

	if l.Score() != 1 {
		t.Errorf("Score = %d, expected the slice to count", l.Score())
	}
	if l.EffectFaults() != 1 {
		t.Errorf("EffectFaults() = %d, expected 1", l.EffectFaults())
	}
	if len(r.frames) != 1 {
		t.Error("frame should still be rendered")
	}
}

func TestLoopDeterminism(t *testing.T) {
	run := func() State {
		ptr := &pointer{x: 600, y: 450}
		l := NewLoop(DefaultParams(), Collaborators{Input: ptr}, rand.New(rand.NewSource(12345)), 0)
		sched := NewScheduler(time.Second, 5*time.Second, 0)
		for now := time.Duration(0); now < 30*time.Second; now += 16 * ms {
			for _, k := range sched.Due(now) {
				l.Spawn(k)
			}
			if l.Tick(now).Phase == PhaseGameOver {
				break
			}
		}
		return l.State()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Phase != b.Phase || len(a.Coins) != len(b.Coins) || len(a.Bombs) != len(b.Bombs) {
		t.Fatalf("runs diverged: %+v vs %+v", a, b)
	}
	for i := range a.Coins {
		if a.Coins[i] != b.Coins[i] {
			t.Fatalf("coin %d diverged: %+v vs %+v", i, a.Coins[i], b.Coins[i])
		}
	}
}

func TestStateReturnsCopy(t *testing.T) {
	l, _, _ := newTestLoop(t, nil)
	l.SpawnCoin()

	s := l.State()
	s.Coins[0].X = -500

	if l.State().Coins[0].X == -500 {
		t.Error("State() must not alias the loop's collections")
	}
}
