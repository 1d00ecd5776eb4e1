package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coin-slicer/internal/assets"
	"github.com/vovakirdan/coin-slicer/internal/audio"
	"github.com/vovakirdan/coin-slicer/internal/config"
	slicecore "github.com/vovakirdan/coin-slicer/internal/games/slicer/core"
	"github.com/vovakirdan/coin-slicer/internal/logging"
)

// session holds the collaborators shared by every frontend.
type session struct {
	logger  *log.Logger
	assets  *assets.Library
	effects slicecore.EffectSink
	closers []func() error
}

// openSession builds the logger, starts loading assets and opens the audio
// device. fallback receives log output when --log is not set.
func openSession(ctx context.Context, cfg config.SlicerConfig, fallback io.Writer) (*session, error) {
	logger, closeLog, err := logging.New(logging.Options{
		Prefix: "slicer",
		Path:   flagLogPath,
		Debug:  flagDebug,
		Output: fallback,
	})
	if err != nil {
		return nil, err
	}
	s := &session{logger: logger, closers: []func() error{closeLog}}

	s.assets = assets.NewLibrary(cfg.Assets, audio.DefaultSampleRate, logger)
	s.assets.Load(ctx)

	fx, err := audio.New(audio.Options{
		Sounds:     s.assets,
		SampleRate: audio.DefaultSampleRate,
		Logger:     logger,
	})
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		s.effects = audio.NopEffects{}
	} else {
		s.effects = fx
		s.closers = append(s.closers, fx.Close)
	}
	return s, nil
}

// Close releases audio and the log file, newest first.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
}

// loadConfig reads the config selected by --config for asset paths and the
// window arena.
func loadConfig() config.SlicerConfig {
	cfg, err := config.LoadSlicer(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		return config.DefaultSlicerConfig()
	}
	return cfg
}

// validateDifficulty rejects unknown --difficulty values before any
// frontend starts.
func validateDifficulty() config.DifficultyPreset {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return preset
}
