package window

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	slicecore "github.com/vovakirdan/coin-slicer/internal/games/slicer/core"
)

// Overlay layout, in arena pixels.
const (
	scoreX      = 10
	scoreY      = 40
	overlayW    = 360
	overlayH    = 120
	blastLength = 500 * time.Millisecond
)

var (
	overlayFill = color.RGBA{A: 0xc0}
	blastColor  = color.RGBA{R: 0xff, G: 0x40, A: 0xff}
)

// Renderer draws simulation frames onto the Ebitengine screen. DrawFrame is
// called by the loop during Update; Draw replays the latest frame.
type Renderer struct {
	frame    slicecore.Frame
	hasFrame bool

	// Decoded sprites converted to GPU images, keyed by asset name.
	// Assets never change once loaded, so one conversion each is enough.
	sprites map[string]*ebiten.Image

	// Detonation flash; blastAt is zero when no flash is active.
	blastAt time.Duration
	now     time.Duration
}

// NewRenderer creates a renderer with an empty sprite cache.
func NewRenderer() *Renderer {
	return &Renderer{sprites: make(map[string]*ebiten.Image)}
}

// DrawFrame implements slicecore.Renderer.
func (r *Renderer) DrawFrame(f slicecore.Frame) {
	r.frame = f
	r.hasFrame = true
}

// Frame returns the latest frame and whether one has been drawn.
func (r *Renderer) Frame() (slicecore.Frame, bool) {
	return r.frame, r.hasFrame
}

// Blast starts the detonation flash at now.
func (r *Renderer) Blast(now time.Duration) {
	r.blastAt = max(now, 1)
}

// SetTime records the current timestamp for time-based effects.
func (r *Renderer) SetTime(now time.Duration) {
	r.now = now
}

// blastAlpha returns the flash opacity in [0, 1].
func (r *Renderer) blastAlpha() float64 {
	if r.blastAt == 0 {
		return 0
	}
	elapsed := r.now - r.blastAt
	if elapsed < 0 || elapsed >= blastLength {
		return 0
	}
	return 1 - float64(elapsed)/float64(blastLength)
}

// Draw renders the latest frame.
func (r *Renderer) Draw(screen *ebiten.Image) {
	if !r.hasFrame {
		screen.Fill(slicecore.FillBackground)
		return
	}

	f := r.frame
	r.drawSprite(screen, f.Background, 0, 0, f.ArenaW, f.ArenaH)
	for _, e := range f.Entities {
		r.drawSprite(screen, e.Sprite, e.X, e.Y, e.Size, e.Size)
	}

	if a := r.blastAlpha(); a > 0 {
		c := blastColor
		c.A = uint8(a * 0x90)
		vector.DrawFilledRect(screen, 0, 0, float32(f.ArenaW), float32(f.ArenaH), c, false)
	}

	ebitenutil.DebugPrintAt(screen, f.ScoreText, scoreX, scoreY)

	if f.Phase == slicecore.PhaseGameOver {
		r.drawGameOver(screen, f)
	}
}

// drawSprite draws a loaded image scaled to w x h, or its fallback fill.
func (r *Renderer) drawSprite(screen *ebiten.Image, s slicecore.Sprite, x, y, w, h float64) {
	img := r.sprite(s)
	if img == nil {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), s.Fill, false)
		return
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// sprite returns the GPU image for s, converting it on first use.
func (r *Renderer) sprite(s slicecore.Sprite) *ebiten.Image {
	if !s.Ready() {
		return nil
	}
	if img, ok := r.sprites[s.Name]; ok {
		return img
	}
	b := s.Image.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	img := ebiten.NewImageFromImage(s.Image)
	r.sprites[s.Name] = img
	return img
}

func (r *Renderer) drawGameOver(screen *ebiten.Image, f slicecore.Frame) {
	x := (f.ArenaW - overlayW) / 2
	y := (f.ArenaH - overlayH) / 2
	vector.DrawFilledRect(screen, float32(x), float32(y), overlayW, overlayH, overlayFill, false)

	ix, iy := int(x)+24, int(y)+24
	ebitenutil.DebugPrintAt(screen, "GAME OVER", ix, iy)
	ebitenutil.DebugPrintAt(screen, f.ScoreText, ix, iy+24)
	ebitenutil.DebugPrintAt(screen, "Click or press R to restart", ix, iy+48)
}
