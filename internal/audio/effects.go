// Package audio plays the game's sound effects through a beep mixer.
//
// Effects implements the simulation's EffectSink: notifications are queued
// without blocking and a single worker turns them into streams. Decoded WAV
// files are used when the asset library has them; otherwise a synthesized
// fallback plays. Every play starts from the beginning of the sound.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/coin-slicer/internal/logging"
)

// DefaultSampleRate is the mixer rate. Loaded sounds are resampled to it.
const DefaultSampleRate = beep.SampleRate(44100)

// DefaultQueueSize bounds pending effects. Notifications beyond it are dropped.
const DefaultQueueSize = 16

// Sound identifies an effect.
type Sound int

const (
	SoundSlice Sound = iota
	SoundGameOver
)

// AssetName returns the asset library name for the sound.
func (s Sound) AssetName() string {
	switch s {
	case SoundSlice:
		return "slice"
	case SoundGameOver:
		return "game_over"
	default:
		return ""
	}
}

// SoundProvider resolves decoded sounds without blocking.
type SoundProvider interface {
	Sound(name string) (*beep.Buffer, bool)
}

// Player starts a stream. Play must return promptly.
type Player interface {
	Play(s beep.Streamer)
}

// ErrClosed is reported by Effects after Close.
var ErrClosed = errors.New("audio: effects closed")

// Options configures Effects.
type Options struct {
	Sounds     SoundProvider // May be nil: always synthesize
	SampleRate beep.SampleRate
	QueueSize  int
	Volume     float64 // Linear, 1 is unchanged
	Logger     *log.Logger
}

func (o Options) withDefaults() Options {
	if o.SampleRate == 0 {
		o.SampleRate = DefaultSampleRate
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	if o.Volume == 0 {
		o.Volume = 1
	}
	return o
}

// Effects turns game notifications into sounds.
type Effects struct {
	opts   Options
	player Player
	logger *log.Logger

	queue   chan Sound
	done    chan struct{}
	wg      sync.WaitGroup
	closed  atomic.Bool
	dropped atomic.Int64
	played  atomic.Int64
}

// New initializes the speaker and starts the effect worker. When the audio
// device cannot be opened it returns an error; callers fall back to silence.
func New(opts Options) (*Effects, error) {
	opts = opts.withDefaults()

	mixer := &beep.Mixer{}
	if err := speaker.Init(opts.SampleRate, opts.SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(mixer)

	return NewWithPlayer(&speakerPlayer{mixer: mixer}, opts), nil
}

// NewWithPlayer starts the effect worker on a custom player.
func NewWithPlayer(p Player, opts Options) *Effects {
	opts = opts.withDefaults()
	e := &Effects{
		opts:   opts,
		player: p,
		logger: logging.OrDiscard(opts.Logger),
		queue:  make(chan Sound, opts.QueueSize),
		done:   make(chan struct{}),
	}
	e.wg.Add(1)
	go e.run()
	return e
}

// OnSlice queues the slice sound.
func (e *Effects) OnSlice() {
	e.enqueue(SoundSlice)
}

// OnDetonation queues the game-over sound.
func (e *Effects) OnDetonation() {
	e.enqueue(SoundGameOver)
}

// enqueue never blocks; a full queue drops the effect.
func (e *Effects) enqueue(s Sound) {
	if e.closed.Load() {
		return
	}
	select {
	case e.queue <- s:
	default:
		e.dropped.Add(1)
	}
}

func (e *Effects) run() {
	defer e.wg.Done()
	for {
		select {
		case <-e.done:
			return
		case s := <-e.queue:
			e.play(s)
		}
	}
}

// play starts one effect. Player failures are logged and swallowed.
func (e *Effects) play(s Sound) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("effect playback failed", "sound", s.AssetName(), "panic", r)
		}
	}()
	e.player.Play(e.Streamer(s))
	e.played.Add(1)
}

// Streamer returns a fresh stream for s, starting at its beginning.
func (e *Effects) Streamer(s Sound) beep.Streamer {
	if e.opts.Sounds != nil {
		if buf, ok := e.opts.Sounds.Sound(s.AssetName()); ok {
			return withVolume(buf.Streamer(0, buf.Len()), e.opts.Volume)
		}
	}
	switch s {
	case SoundGameOver:
		return Blast(e.opts.SampleRate, e.opts.Volume)
	default:
		return SliceChime(e.opts.SampleRate, e.opts.Volume)
	}
}

// Dropped returns how many notifications were discarded on a full queue.
func (e *Effects) Dropped() int64 {
	return e.dropped.Load()
}

// Played returns how many effects were handed to the player.
func (e *Effects) Played() int64 {
	return e.played.Load()
}

// Close stops the worker. Pending effects are discarded; later
// notifications are ignored.
func (e *Effects) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	close(e.done)
	e.wg.Wait()
	if c, ok := e.player.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}

// speakerPlayer adds streams to the mixer feeding the speaker.
type speakerPlayer struct {
	mixer *beep.Mixer
}

func (p *speakerPlayer) Play(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *speakerPlayer) Close() {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// NopEffects discards all notifications.
type NopEffects struct{}

// OnSlice does nothing.
func (NopEffects) OnSlice() {}

// OnDetonation does nothing.
func (NopEffects) OnDetonation() {}
