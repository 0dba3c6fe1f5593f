package main

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/config"
	"github.com/cwbudde/algo-eq/internal/logger"
)

// engine bundles the configuration, parameter store and controller every
// subcommand needs.
type engine struct {
	loader *config.Loader
	cfg    *config.Config
	store  *eq.Store
	ctrl   *eq.Controller
	log    *logger.Logger
}

// newEngine loads configPath (defaults when empty). Non-positive sampleRate
// or channels fall back to the configured audio settings.
func newEngine(configPath string, sampleRate float64, channels int, logOut io.Writer) (*engine, error) {
	loader, err := config.NewLoader(configPath)
	if err != nil {
		return nil, err
	}
	cfg := loader.Config()

	log, err := logger.New(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}

	if sampleRate <= 0 {
		sampleRate = cfg.Audio.SampleRate
	}
	if channels <= 0 {
		channels = cfg.Audio.Channels
	}

	store := eq.NewStore(cfg.EQParameters(), sampleRate)

	ctrl, err := eq.NewController(store, channels,
		eq.WithLogger(log.Logger),
		eq.WithRefreshRate(cfg.Audio.RefreshRate),
	)
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("eqtool: %w", err)
	}

	log.Debug().
		Str("config", loader.Path()).
		Float64("sampleRate", sampleRate).
		Int("channels", channels).
		Msg("eqtool: engine ready")

	return &engine{loader: loader, cfg: cfg, store: store, ctrl: ctrl, log: log}, nil
}

// watch pushes every valid edit of the config file into the store.
func (e *engine) watch() {
	if e.loader.Path() == "" {
		return
	}

	e.loader.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			e.log.Warn().Err(err).Msg("eqtool: ignoring config edit")
			return
		}
		e.store.SetParameters(cfg.EQParameters())
		e.log.Info().Str("config", e.loader.Path()).Msg("eqtool: config reloaded")
	})
}

func (e *engine) Close() error {
	_ = e.ctrl.Close()
	return e.log.Close()
}
