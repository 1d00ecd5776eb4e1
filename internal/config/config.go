// Package config provides YAML-based game configuration loading and
// difficulty management for the slicer arcade.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// SlicerConfig contains all configuration for the coin slicer game.
type SlicerConfig struct {
	Arena    ArenaConfig  `yaml:"arena"`
	Entities EntityConfig `yaml:"entities"`
	Speed    SpeedConfig  `yaml:"speed"`
	Spawn    SpawnConfig  `yaml:"spawn"`
	Assets   AssetConfig  `yaml:"assets"`
}

// ArenaConfig defines the playfield extent in arena pixels.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// EntityConfig defines parameters shared by coins and bombs.
type EntityConfig struct {
	Size      float64 `yaml:"size"`       // Edge length of every entity's bounding square
	TimeScale float64 `yaml:"time_scale"` // Converts millisecond deltas into motion
}

// SpeedConfig defines the score-driven speed ramp for newly spawned entities.
type SpeedConfig struct {
	Base           float64 `yaml:"base"`
	Increment      float64 `yaml:"increment"`        // Added once per completed level
	PointsPerLevel int     `yaml:"points_per_level"` // Score needed per level
}

// SpawnConfig defines the fixed spawn timer periods.
type SpawnConfig struct {
	CoinEveryMS int `yaml:"coin_every_ms"`
	BombEveryMS int `yaml:"bomb_every_ms"`
}

// CoinEvery returns the coin spawn period.
func (s SpawnConfig) CoinEvery() time.Duration {
	return time.Duration(s.CoinEveryMS) * time.Millisecond
}

// BombEvery returns the bomb spawn period.
func (s SpawnConfig) BombEvery() time.Duration {
	return time.Duration(s.BombEveryMS) * time.Millisecond
}

// AssetConfig maps asset names to files relative to Dir.
type AssetConfig struct {
	Dir    string            `yaml:"dir"`
	Images map[string]string `yaml:"images"`
	Sounds map[string]string `yaml:"sounds"`
}

// Validate checks that the configuration describes a playable arena.
func (c SlicerConfig) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must be positive, got %gx%g", ErrInvalidConfig, c.Arena.Width, c.Arena.Height)
	case c.Entities.Size <= 0:
		return fmt.Errorf("%w: entity size must be positive, got %g", ErrInvalidConfig, c.Entities.Size)
	case c.Entities.Size > c.Arena.Width || c.Entities.Size > c.Arena.Height:
		return fmt.Errorf("%w: entity size %g does not fit in a %gx%g arena", ErrInvalidConfig, c.Entities.Size, c.Arena.Width, c.Arena.Height)
	case c.Entities.TimeScale <= 0:
		return fmt.Errorf("%w: time_scale must be positive, got %g", ErrInvalidConfig, c.Entities.TimeScale)
	case c.Speed.Base < 0 || c.Speed.Increment < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidConfig)
	case c.Speed.PointsPerLevel <= 0:
		return fmt.Errorf("%w: points_per_level must be positive, got %d", ErrInvalidConfig, c.Speed.PointsPerLevel)
	case c.Spawn.CoinEveryMS <= 0 || c.Spawn.BombEveryMS <= 0:
		return fmt.Errorf("%w: spawn periods must be positive", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ErrUnknownPreset is returned for difficulty names outside the preset list.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// ParsePreset converts a CLI string into a preset. An empty string yields an
// empty preset, meaning "leave the loaded config untouched".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (want easy, normal, hard or fixed)", ErrUnknownPreset, s)
	}
}

// BaseSpeedForPreset returns the starting speed for a difficulty preset.
func BaseSpeedForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.2
	case DifficultyHard:
		return 2.4
	default:
		return 1.6
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
