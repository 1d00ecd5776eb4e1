package core

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/coin-slicer/internal/config"
)

// ErrStillPlaying is returned by Restart when the current game has not ended.
var ErrStillPlaying = errors.New("slicer: restart requested while playing")

// TickResult summarizes one call to Tick.
type TickResult struct {
	Elapsed   time.Duration
	Sliced    int  // Coins sliced this tick
	Detonated bool // A bomb was hit this tick
	Skipped   bool // Tick was called while the game was over; nothing happened
	Score     int
	Phase     Phase
}

// Loop owns the game state and advances it one tick at a time.
//
// Tick, SpawnCoin, SpawnBomb and Restart must be called from a single
// goroutine. Enqueue is the only method safe for concurrent use; queued
// spawns are applied at the start of the next Tick.
type Loop struct {
	params   Params
	curve    config.SpeedCurve
	rng      *rand.Rand
	collab   Collaborators
	state    State
	lastTick time.Duration

	effectFaults int

	mu      sync.Mutex
	pending []Kind
}

// NewLoop creates a loop in the Playing phase whose clock starts at now.
func NewLoop(p Params, c Collaborators, rng *rand.Rand, now time.Duration) *Loop {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Loop{
		params:   p,
		curve:    config.NewSpeedCurve(p.Speed),
		rng:      rng,
		collab:   c.withDefaults(),
		state:    State{Phase: PhasePlaying},
		lastTick: now,
	}
}

// Tick advances the simulation to now.
//
// Coins are scanned before bombs, so when the pointer covers a coin and a
// bomb in the same tick the coin is scored and then the bomb ends the game.
// The first bomb hit stops the scan: later bombs are neither moved nor tested.
func (l *Loop) Tick(now time.Duration) TickResult {
	if l.state.Phase != PhasePlaying {
		return TickResult{Skipped: true, Score: l.state.Score, Phase: l.state.Phase}
	}

	l.drainQueue()

	elapsed := now - l.lastTick
	l.lastTick = now
	elapsedMS := float64(elapsed) / float64(time.Millisecond)

	px, py := l.collab.Input.Pointer()
	result := TickResult{Elapsed: elapsed}

	// Sliced coins are dropped by rebuilding the slice in place after each
	// move, so no element is skipped or visited twice.
	kept := l.state.Coins[:0]
	for _, coin := range l.state.Coins {
		coin.advance(elapsedMS, l.params.TimeScale, l.params.ArenaW, l.params.ArenaH)
		if coin.Box().ContainsPoint(px, py) {
			l.state.Score++
			result.Sliced++
			l.notify(l.collab.Effects.OnSlice)
			continue
		}
		kept = append(kept, coin)
	}
	clear(l.state.Coins[len(kept):])
	l.state.Coins = kept

	for i := range l.state.Bombs {
		bomb := &l.state.Bombs[i]
		bomb.advance(elapsedMS, l.params.TimeScale, l.params.ArenaW, l.params.ArenaH)
		if bomb.Box().ContainsPoint(px, py) {
			l.state.Phase = PhaseGameOver
			result.Detonated = true
			l.notify(l.collab.Effects.OnDetonation)
			break
		}
	}

	l.collab.Renderer.DrawFrame(l.Frame())

	result.Score = l.state.Score
	result.Phase = l.state.Phase
	return result
}

// notify delivers an effect. A misbehaving sink never aborts the tick.
func (l *Loop) notify(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.effectFaults++
		}
	}()
	fn()
}

// EffectFaults returns how many effect notifications panicked.
func (l *Loop) EffectFaults() int {
	return l.effectFaults
}

// SpawnCoin adds a coin at a random position. It returns false, and changes
// nothing, once the game is over.
func (l *Loop) SpawnCoin() bool {
	return l.spawn(KindCoin)
}

// SpawnBomb adds a bomb at a random position. It returns false, and changes
// nothing, once the game is over.
func (l *Loop) SpawnBomb() bool {
	return l.spawn(KindBomb)
}

// Spawn dispatches to SpawnCoin or SpawnBomb.
func (l *Loop) Spawn(kind Kind) bool {
	return l.spawn(kind)
}

func (l *Loop) spawn(kind Kind) bool {
	if l.state.Phase != PhasePlaying {
		return false
	}

	size := l.params.EntitySize
	speed := l.Speed()
	e := Entity{
		Kind: kind,
		X:    l.rng.Float64() * (l.params.ArenaW - size),
		Y:    l.rng.Float64() * (l.params.ArenaH - size),
		Size: size,
		VX:   l.randomSign() * speed,
		VY:   l.randomSign() * speed,
	}

	switch kind {
	case KindCoin:
		l.state.Coins = append(l.state.Coins, e)
	case KindBomb:
		l.state.Bombs = append(l.state.Bombs, e)
	default:
		return false
	}
	return true
}

func (l *Loop) randomSign() float64 {
	if l.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// Enqueue schedules a spawn for the start of the next tick.
// Safe to call from any goroutine.
func (l *Loop) Enqueue(kind Kind) {
	l.mu.Lock()
	l.pending = append(l.pending, kind)
	l.mu.Unlock()
}

func (l *Loop) drainQueue() {
	l.mu.Lock()
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, kind := range pending {
		l.spawn(kind)
	}
}

// Restart begins a new game. It is only valid after a game over; while
// playing it returns ErrStillPlaying and leaves the state untouched.
func (l *Loop) Restart(now time.Duration) error {
	if l.state.Phase == PhasePlaying {
		return ErrStillPlaying
	}

	l.mu.Lock()
	l.pending = nil
	l.mu.Unlock()

	l.state = State{Phase: PhasePlaying}
	l.lastTick = now
	return nil
}

// Speed returns the velocity magnitude for entities spawned now.
// Entities already in flight keep the speed they were given.
func (l *Loop) Speed() float64 {
	return l.curve.Speed(l.state.Score)
}

// Level returns the speed level derived from the score.
func (l *Loop) Level() int {
	return l.curve.Level(l.state.Score)
}

// State returns a deep copy of the current state.
func (l *Loop) State() State {
	return l.state.clone()
}

// Phase returns the current phase.
func (l *Loop) Phase() Phase {
	return l.state.Phase
}

// Score returns the current score.
func (l *Loop) Score() int {
	return l.state.Score
}

// Params returns the simulation parameters.
func (l *Loop) Params() Params {
	return l.params
}

// Frame builds the renderer input for the current state.
func (l *Loop) Frame() Frame {
	coin := l.sprite(AssetCoin, FillCoin)
	bomb := l.sprite(AssetBomb, FillBomb)

	entities := make([]EntityView, 0, len(l.state.Coins)+len(l.state.Bombs))
	for _, e := range l.state.Coins {
		entities = append(entities, EntityView{Kind: e.Kind, X: e.X, Y: e.Y, Size: e.Size, Sprite: coin})
	}
	for _, e := range l.state.Bombs {
		entities = append(entities, EntityView{Kind: e.Kind, X: e.X, Y: e.Y, Size: e.Size, Sprite: bomb})
	}

	return Frame{
		ArenaW:     l.params.ArenaW,
		ArenaH:     l.params.ArenaH,
		Background: l.sprite(AssetBackground, FillBackground),
		Entities:   entities,
		ScoreText:  fmt.Sprintf("Score: %d", l.state.Score),
		Score:      l.state.Score,
		Level:      l.Level(),
		Phase:      l.state.Phase,
	}
}

func (l *Loop) sprite(name string, fill color.Color) Sprite {
	img, ok := l.collab.Assets.Image(name)
	if !ok {
		img = nil
	}
	return Sprite{Name: name, Image: img, Fill: fill}
}
