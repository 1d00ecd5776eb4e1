package core

import (
	"image"
	"image/color"
)

// Asset names the loop asks the AssetProvider for.
const (
	AssetBackground = "background"
	AssetCoin       = "coin"
	AssetBomb       = "bomb"
)

// Fallback fills used while an image is not available.
var (
	FillBackground = color.RGBA{A: 0xff}
	FillCoin       = color.RGBA{R: 0xf5, G: 0xc5, B: 0x18, A: 0xff}
	FillBomb       = color.RGBA{R: 0xd0, G: 0x20, B: 0x20, A: 0xff}
)

// Renderer draws a fully settled frame. It is called once per tick.
type Renderer interface {
	DrawFrame(f Frame)
}

// AssetProvider resolves named images without blocking. A false result means
// "not yet available"; the loop then asks renderers for a solid fill.
type AssetProvider interface {
	Image(name string) (image.Image, bool)
}

// InputSource reports the latest pointer position in arena coordinates.
type InputSource interface {
	Pointer() (x, y float64)
}

// EffectSink receives fire-and-forget notifications. Implementations must not
// block; the loop never observes their outcome.
type EffectSink interface {
	OnSlice()
	OnDetonation()
}

// Sprite is either a resolved image or a solid fill.
type Sprite struct {
	Name  string
	Image image.Image // nil when the asset is not yet available
	Fill  color.Color
}

// Ready reports whether the sprite has a resolved image.
func (s Sprite) Ready() bool {
	return s.Image != nil
}

// EntityView is the renderer's view of one live entity.
type EntityView struct {
	Kind   Kind
	X, Y   float64
	Size   float64
	Sprite Sprite
}

// Frame is the renderer input for one tick. Entities are ordered coins first,
// then bombs, each in insertion order; later entries draw on top.
type Frame struct {
	ArenaW     float64
	ArenaH     float64
	Background Sprite
	Entities   []EntityView
	ScoreText  string
	Score      int
	Level      int
	Phase      Phase
}

// PointerFunc adapts a function to InputSource.
type PointerFunc func() (x, y float64)

// Pointer calls f.
func (f PointerFunc) Pointer() (x, y float64) {
	return f()
}

// Collaborators bundles the loop's external dependencies. Nil members are
// replaced by no-op implementations.
type Collaborators struct {
	Renderer Renderer
	Assets   AssetProvider
	Input    InputSource
	Effects  EffectSink
}

type nopRenderer struct{}

func (nopRenderer) DrawFrame(Frame) {}

type nopAssets struct{}

func (nopAssets) Image(string) (image.Image, bool) { return nil, false }

// offArena keeps the pointer away from every entity until input arrives.
type offArena struct{}

func (offArena) Pointer() (x, y float64) { return -1, -1 }

// NopEffects discards all effect notifications.
type NopEffects struct{}

// OnSlice does nothing.
func (NopEffects) OnSlice() {}

// OnDetonation does nothing.
func (NopEffects) OnDetonation() {}

func (c Collaborators) withDefaults() Collaborators {
	if c.Renderer == nil {
		c.Renderer = nopRenderer{}
	}
	if c.Assets == nil {
		c.Assets = nopAssets{}
	}
	if c.Input == nil {
		c.Input = offArena{}
	}
	if c.Effects == nil {
		c.Effects = NopEffects{}
	}
	return c
}
