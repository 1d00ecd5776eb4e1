// Package core implements the coin slicer simulation loop: spawning, motion
// integration with boundary reflection, pointer hit-testing, scoring and the
// Playing/GameOver state machine. Rendering, assets, input and sound are
// reached only through the interfaces in collaborators.go.
package core

import (
	"github.com/vovakirdan/coin-slicer/internal/config"
	platformcore "github.com/vovakirdan/coin-slicer/internal/core"
)

// Kind distinguishes the two entity variants.
type Kind int

const (
	KindCoin Kind = iota
	KindBomb
)

// String returns the asset-style name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCoin:
		return "coin"
	case KindBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// Phase is the top-level game state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Entity is a coin or bomb. X, Y is the top-left corner of its bounding square.
// Velocity components are in arena pixels per (millisecond * TimeScale).
type Entity struct {
	Kind   Kind
	X, Y   float64
	Size   float64
	VX, VY float64
}

// Box returns the entity's bounding square.
func (e Entity) Box() platformcore.Box {
	return platformcore.Box{X: e.X, Y: e.Y, Size: e.Size}
}

// State is the complete mutable game state owned by a Loop.
// Entities have no identity beyond their index in the collection.
type State struct {
	Score int
	Coins []Entity
	Bombs []Entity
	Phase Phase
}

// clone returns a deep copy so callers can never alias the loop's slices.
func (s State) clone() State {
	out := s
	out.Coins = append([]Entity(nil), s.Coins...)
	out.Bombs = append([]Entity(nil), s.Bombs...)
	return out
}

// Params are the fixed simulation constants.
type Params struct {
	ArenaW     float64
	ArenaH     float64
	EntitySize float64
	TimeScale  float64 // Converts millisecond deltas to motion
	Speed      config.SpeedConfig
}

// ParamsFromConfig extracts simulation parameters from a game configuration.
func ParamsFromConfig(cfg config.SlicerConfig) Params {
	return Params{
		ArenaW:     cfg.Arena.Width,
		ArenaH:     cfg.Arena.Height,
		EntitySize: cfg.Entities.Size,
		TimeScale:  cfg.Entities.TimeScale,
		Speed:      cfg.Speed,
	}
}

// DefaultParams returns the parameters of the default configuration.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultSlicerConfig())
}
