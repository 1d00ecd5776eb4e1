package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Fallback sound timings.
const (
	sliceNoteDuration  = 60 * time.Millisecond
	sliceTailDuration  = 120 * time.Millisecond
	sliceAttack        = 2 * time.Millisecond
	blastDuration      = 600 * time.Millisecond
	blastAttack        = 5 * time.Millisecond
	blastRelease       = 450 * time.Millisecond
	rumbleFrequency    = 70.0
	sliceLowFrequency  = 987.77  // B5
	sliceHighFrequency = 1318.51 // E6
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a wave generator that ends after duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	release      int
	total        int
}

// NewEnvelope shapes s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// SliceChime synthesizes the slice sound: a short two-note chime.
func SliceChime(rate beep.SampleRate, volume float64) beep.Streamer {
	low := NewEnvelope(
		NewOscillator(sliceLowFrequency, sliceNoteDuration, WaveSquare, rate),
		sliceNoteDuration, sliceAttack, sliceNoteDuration/2, rate)
	high := NewEnvelope(
		NewOscillator(sliceHighFrequency, sliceTailDuration, WaveSquare, rate),
		sliceTailDuration, sliceAttack, sliceTailDuration*3/4, rate)

	return withVolume(beep.Seq(low, high), volume*0.25)
}

// Blast synthesizes the detonation sound: decaying noise over a low rumble.
func Blast(rate beep.SampleRate, volume float64) beep.Streamer {
	noise := NewEnvelope(
		NewOscillator(0, blastDuration, WaveNoise, rate),
		blastDuration, blastAttack, blastRelease, rate)
	rumble := NewEnvelope(
		NewOscillator(rumbleFrequency, blastDuration, WaveSaw, rate),
		blastDuration, blastAttack, blastDuration, rate)

	return withVolume(beep.Mix(withVolume(noise, 0.6), withVolume(rumble, 0.4)), volume*0.5)
}
