package config

import (
	_ "embed"
)

//go:embed defaults/slicer.yaml
var defaultSlicerYAML []byte

// DefaultSlicerConfig returns the default coin slicer configuration.
func DefaultSlicerConfig() SlicerConfig {
	return SlicerConfig{
		Arena: ArenaConfig{
			Width:  1200,
			Height: 900,
		},
		Entities: EntityConfig{
			Size:      75,
			TimeScale: 0.1,
		},
		Speed: SpeedConfig{
			Base:           1.6,
			Increment:      0.4,
			PointsPerLevel: 5,
		},
		Spawn: SpawnConfig{
			CoinEveryMS: 1000,
			BombEveryMS: 5000,
		},
		Assets: AssetConfig{
			Dir: "assets",
			Images: map[string]string{
				"background": "background.png",
				"coin":       "coin.png",
				"bomb":       "bomb.png",
			},
			Sounds: map[string]string{
				"slice":     "slice.wav",
				"game_over": "game_over.wav",
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "slicer", "slicer_rush":
		return defaultSlicerYAML
	default:
		return nil
	}
}
