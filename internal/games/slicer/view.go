package slicer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/coin-slicer/internal/core"
	slicecore "github.com/vovakirdan/coin-slicer/internal/games/slicer/core"
)

// Visual characters for rendering
const (
	SpriteChar     = '●' // Entity whose image is loaded
	FillChar       = '█' // Entity drawn with its fallback fill
	BackgroundChar = '·' // Loaded background image
)

// Minimum terminal size for a playable arena.
const (
	MinCols = 20
	MinRows = 6
)

// hudRows is the number of screen rows reserved above the arena.
const hudRows = 1

// ScreenRenderer is the terminal Renderer. DrawFrame keeps the latest frame;
// Render projects it onto a character screen, scaling the pixel arena to the
// cells below the HUD row.
type ScreenRenderer struct {
	frame    slicecore.Frame
	hasFrame bool

	// Screen size seen by the last Render, used to map pointer cells back
	// into arena space.
	cols, rows int
}

// NewScreenRenderer creates an empty terminal renderer.
func NewScreenRenderer() *ScreenRenderer {
	return &ScreenRenderer{}
}

// Reset forgets the last frame.
func (r *ScreenRenderer) Reset() {
	r.frame = slicecore.Frame{}
	r.hasFrame = false
}

// DrawFrame implements slicecore.Renderer.
func (r *ScreenRenderer) DrawFrame(f slicecore.Frame) {
	r.frame = f
	r.hasFrame = true
}

// Frame returns the last frame and whether one has been drawn.
func (r *ScreenRenderer) Frame() (slicecore.Frame, bool) {
	return r.frame, r.hasFrame
}

// SetScreenSize records the target screen size without rendering.
func (r *ScreenRenderer) SetScreenSize(cols, rows int) {
	r.cols, r.rows = cols, rows
}

// playRows returns the number of rows available to the arena.
func (r *ScreenRenderer) playRows() int {
	return r.rows - hudRows
}

// tooSmall reports whether the screen cannot show the arena.
func (r *ScreenRenderer) tooSmall() bool {
	return r.cols < MinCols || r.rows < MinRows
}

// CellToArena maps a screen cell to the arena point at its center.
// Cells outside the arena area map to (-1, -1), which hits nothing, and so
// does every cell while the screen is too small to show the arena.
func (r *ScreenRenderer) CellToArena(col, row int) (float64, float64) {
	if !r.hasFrame || r.tooSmall() {
		return -1, -1
	}
	if col < 0 || col >= r.cols || row < hudRows || row >= r.rows {
		return -1, -1
	}
	x := (float64(col) + 0.5) * r.frame.ArenaW / float64(r.cols)
	y := (float64(row-hudRows) + 0.5) * r.frame.ArenaH / float64(r.playRows())
	return x, y
}

// arenaRect maps an entity's bounding square to the cells it covers.
// Every entity covers at least one cell.
func (r *ScreenRenderer) arenaRect(x, y, size float64) core.Rect {
	sx := float64(r.cols) / r.frame.ArenaW
	sy := float64(r.playRows()) / r.frame.ArenaH

	c0 := int(math.Floor(x * sx))
	c1 := int(math.Ceil((x + size) * sx))
	r0 := int(math.Floor(y * sy))
	r1 := int(math.Ceil((y + size) * sy))

	return core.NewRect(c0, r0+hudRows, max(1, c1-c0), max(1, r1-r0))
}

// Render draws the last frame into dst.
func (r *ScreenRenderer) Render(dst *core.Screen) {
	r.SetScreenSize(dst.Width(), dst.Height())

	if r.tooSmall() {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	if !r.hasFrame {
		dst.DrawTextColored(1, 0, "Score: 0", core.ColorWhite)
		dst.DrawTextCentered(dst.Height()/2, "Move the mouse over coins to slice them")
		return
	}

	f := r.frame
	r.renderBackground(dst, f.Background)
	r.renderEntities(dst, f.Entities)
	r.renderHUD(dst, f)

	if f.Phase == slicecore.PhaseGameOver {
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", f.Score)
		drawCenteredBox(dst, "GAME OVER", subtitle)
	}
}

// renderBackground marks the arena when the background image is loaded;
// the fallback fill is black, which is the terminal's own background.
func (r *ScreenRenderer) renderBackground(dst *core.Screen, bg slicecore.Sprite) {
	if !bg.Ready() {
		return
	}
	for y := hudRows; y < dst.Height(); y += 2 {
		for x := 0; x < dst.Width(); x += 4 {
			dst.SetColored(x, y, BackgroundChar, core.ColorGray)
		}
	}
}

// renderEntities draws coins then bombs so bombs stay visible on overlap.
func (r *ScreenRenderer) renderEntities(dst *core.Screen, entities []slicecore.EntityView) {
	for _, e := range entities {
		glyph := FillChar
		if e.Sprite.Ready() {
			glyph = SpriteChar
		}
		dst.DrawRect(r.arenaRect(e.X, e.Y, e.Size), glyph, kindColor(e.Kind))
	}
}

// renderHUD draws the score and speed level on the top row.
func (r *ScreenRenderer) renderHUD(dst *core.Screen, f slicecore.Frame) {
	for x := range dst.Width() {
		dst.Set(x, 0, ' ')
	}
	dst.DrawTextColored(1, 0, f.ScoreText, core.ColorWhite)

	levelText := fmt.Sprintf("Level %d", f.Level)
	dst.DrawTextColored(dst.Width()-len(levelText)-1, 0, levelText, core.ColorYellow)
}

func kindColor(k slicecore.Kind) core.Color {
	if k == slicecore.KindBomb {
		return core.ColorRed
	}
	return core.ColorGold
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightRed)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
