// Package registry holds the playable variants. Variants register in init()
// and frontends create fresh instances by ID.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/coin-slicer/internal/core"
)

// ErrUnknownVariant is returned by Create for unregistered IDs.
var ErrUnknownVariant = errors.New("registry: unknown variant")

// Game is what a frontend drives. Implementations keep the simulation free
// of any terminal or window library; the frontend maps input, paces frames
// and presents the screen.
type Game interface {
	// ID returns the variant identifier (e.g. "slicer").
	ID() string

	// Title returns a display name (e.g. "Coin Slicer").
	Title() string

	// Reset prepares a new session for the given screen. The simulation
	// clock starts at the first Step.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation to in.Now using the latest pointer
	// and any requested actions.
	Step(in core.InputFrame) core.StepResult

	// Render draws the latest frame into a pre-cleared screen.
	Render(dst *core.Screen)

	// State reports score, level and whether the game is over.
	State() core.GameState
}

// Info describes a registered variant.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new instance of a variant.
type Factory func() Game

type entry struct {
	info    Info
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a variant. It panics on an empty or duplicate ID.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: empty variant ID")
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns all variants sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b Info) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Create returns a new instance of the variant.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
