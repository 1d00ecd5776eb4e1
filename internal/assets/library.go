// Package assets loads the game's images and sounds in the background.
// Lookups never block: an asset that is still loading, or failed to load,
// is simply reported as unavailable and callers fall back to solid fills
// or synthesized sounds.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // PNG decoder for image.Decode
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/coin-slicer/internal/config"
	"github.com/vovakirdan/coin-slicer/internal/logging"
)

// resampleQuality is the beep resampler quality used for sounds recorded at
// a different rate than the mixer.
const resampleQuality = 4

// Library resolves named assets declared in the configuration.
type Library struct {
	dir    string
	images map[string]string // Name -> file, relative to dir
	sounds map[string]string
	rate   beep.SampleRate
	logger *log.Logger

	mu           sync.RWMutex
	loadedImages map[string]image.Image
	loadedSounds map[string]*beep.Buffer
	failures     map[string]error

	once sync.Once
	wg   sync.WaitGroup
}

// NewLibrary creates a library for the configured assets. Sounds are
// converted to rate so they can be fed straight into the mixer.
func NewLibrary(cfg config.AssetConfig, rate beep.SampleRate, logger *log.Logger) *Library {
	return &Library{
		dir:          cfg.Dir,
		images:       cfg.Images,
		sounds:       cfg.Sounds,
		rate:         rate,
		logger:       logging.OrDiscard(logger),
		loadedImages: make(map[string]image.Image),
		loadedSounds: make(map[string]*beep.Buffer),
		failures:     make(map[string]error),
	}
}

// Load starts loading every asset in the background and returns at once.
// Calling it again has no effect. Cancelling ctx skips assets not yet started.
func (l *Library) Load(ctx context.Context) {
	l.once.Do(func() {
		for _, name := range sortedKeys(l.images) {
			l.start(ctx, name, func() error { return l.loadImage(name) })
		}
		for _, name := range sortedKeys(l.sounds) {
			l.start(ctx, name, func() error { return l.loadSound(name) })
		}
	})
}

func (l *Library) start(ctx context.Context, name string, load func() error) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if ctx.Err() != nil {
			return
		}
		if err := load(); err != nil {
			l.mu.Lock()
			l.failures[name] = err
			l.mu.Unlock()
			l.logger.Warn("asset unavailable, using fallback", "name", name, "error", err)
			return
		}
		l.logger.Debug("asset loaded", "name", name)
	}()
}

// Wait blocks until every started load has finished.
func (l *Library) Wait() {
	l.wg.Wait()
}

func (l *Library) path(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(l.dir, file)
}

func (l *Library) loadImage(name string) error {
	img, err := LoadImage(l.path(l.images[name]))
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.loadedImages[name] = img
	l.mu.Unlock()
	return nil
}

func (l *Library) loadSound(name string) error {
	buf, err := LoadSound(l.path(l.sounds[name]), l.rate)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.loadedSounds[name] = buf
	l.mu.Unlock()
	return nil
}

// Image returns a loaded image. It never blocks on loading.
func (l *Library) Image(name string) (image.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.loadedImages[name]
	return img, ok
}

// Sound returns a decoded sound. It never blocks on loading.
func (l *Library) Sound(name string) (*beep.Buffer, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	buf, ok := l.loadedSounds[name]
	return buf, ok
}

// Err returns the load error recorded for name, if any.
func (l *Library) Err(name string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.failures[name]
}

// LoadImage decodes an image file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadSound decodes a WAV file into memory at the given sample rate.
func LoadSound(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open sound %s: %w", path, err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("assets: decode sound %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != rate {
		src = beep.Resample(resampleQuality, format.SampleRate, rate, streamer)
		format.SampleRate = rate
	}

	buf := beep.NewBuffer(format)
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("assets: read sound %s: %w", path, err)
	}
	return buf, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
