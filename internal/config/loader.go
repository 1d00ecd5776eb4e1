package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSlicer loads the coin slicer configuration.
// Search order: customPath -> ~/.arcade/configs/slicer.yaml -> ./configs/slicer.yaml -> embedded default.
// Files only need to set the keys they override; everything else keeps its default.
func LoadSlicer(customPath string) (SlicerConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SlicerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseSlicer(data)
		if err != nil {
			return SlicerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// A broken user or local file falls through to the next candidate.
	if userCfgPath := userConfigPath("slicer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseSlicer(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "slicer.yaml")); err == nil {
		if cfg, err := ParseSlicer(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseSlicer(defaultSlicerYAML)
	if err != nil {
		return DefaultSlicerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseSlicer decodes YAML on top of the defaults and validates the result.
func ParseSlicer(data []byte) (SlicerConfig, error) {
	cfg := DefaultSlicerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SlicerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SlicerConfig{}, err
	}
	return cfg, nil
}

// MarshalSlicer encodes a configuration as YAML.
func MarshalSlicer(cfg SlicerConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplySlicerPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplySlicerPreset(cfg *SlicerConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.Speed.Increment = 0
	default:
		cfg.Speed.Base = BaseSpeedForPreset(preset)
	}
}
