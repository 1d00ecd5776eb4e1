// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is a square in continuous arena space, anchored at its top-left corner.
type Box struct {
	X, Y float64
	Size float64
}

// ContainsPoint reports whether (px, py) lies within or on the box.
// All four edges are inclusive, so a pointer resting exactly on an edge hits.
func (b Box) ContainsPoint(px, py float64) bool {
	return px >= b.X && px <= b.X+b.Size && py >= b.Y && py <= b.Y+b.Size
}
