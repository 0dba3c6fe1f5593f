// Package config loads EQ presets and host settings with viper and keeps them
// in sync with the file on disk.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/logger"
)

// EnvPrefix prefixes environment overrides, e.g. EQ_PEAK_GAIN_DB=6.
const EnvPrefix = "EQ"

var (
	ErrInvalidSlope      = errors.New("config: slope must be 12, 24, 36 or 48 dB/oct")
	ErrInvalidSampleRate = errors.New("config: sample rate must be positive")
	ErrInvalidChannels   = errors.New("config: channel count must be positive")
)

// Config is the complete host configuration.
type Config struct {
	Audio   AudioConfig   `mapstructure:"audio"`
	Peak    PeakConfig    `mapstructure:"peak"`
	LowCut  CutConfig     `mapstructure:"low_cut"`
	HighCut CutConfig     `mapstructure:"high_cut"`
	Log     logger.Config `mapstructure:"log"`
}

type AudioConfig struct {
	SampleRate  float64 `mapstructure:"sample_rate"`
	Channels    int     `mapstructure:"channels"`
	RefreshRate float64 `mapstructure:"refresh_rate"` // controller ticks per second
	BufferMS    int     `mapstructure:"buffer_ms"`
}

type PeakConfig struct {
	Freq     float64 `mapstructure:"freq"`
	GainDB   float64 `mapstructure:"gain_db"`
	Quality  float64 `mapstructure:"quality"`
	Bypassed bool    `mapstructure:"bypassed"`
}

type CutConfig struct {
	Freq     float64 `mapstructure:"freq"`
	Slope    int     `mapstructure:"slope"` // dB/oct
	Bypassed bool    `mapstructure:"bypassed"`
}

// Validate rejects settings the engine would otherwise silently clamp.
func (c *Config) Validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, c.Audio.SampleRate)
	}

	if c.Audio.Channels <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, c.Audio.Channels)
	}

	if !eq.Slope(c.LowCut.Slope).Valid() {
		return fmt.Errorf("low_cut: %w (got %d)", ErrInvalidSlope, c.LowCut.Slope)
	}

	if !eq.Slope(c.HighCut.Slope).Valid() {
		return fmt.Errorf("high_cut: %w (got %d)", ErrInvalidSlope, c.HighCut.Slope)
	}

	return nil
}

// EQParameters converts the band settings into sanitized engine parameters.
func (c *Config) EQParameters() eq.Parameters {
	return eq.Parameters{
		PeakFreq:        c.Peak.Freq,
		PeakGain:        c.Peak.GainDB,
		PeakQuality:     c.Peak.Quality,
		LowCutFreq:      c.LowCut.Freq,
		HighCutFreq:     c.HighCut.Freq,
		LowCutSlope:     eq.Slope(c.LowCut.Slope),
		HighCutSlope:    eq.Slope(c.HighCut.Slope),
		LowCutBypassed:  c.LowCut.Bypassed,
		PeakBypassed:    c.Peak.Bypassed,
		HighCutBypassed: c.HighCut.Bypassed,
	}.Sanitize()
}

// Loader reads a configuration file and optionally watches it for edits.
type Loader struct {
	v   *viper.Viper
	mu  sync.RWMutex
	cfg *Config
}

// Load reads path, or only defaults and environment when path is empty.
func Load(path string) (*Config, error) {
	l, err := NewLoader(path)
	if err != nil {
		return nil, err
	}
	return l.Config(), nil
}

// NewLoader reads path and returns a loader holding the validated result.
func NewLoader(path string) (*Loader, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	l := &Loader{v: v}

	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}
	l.cfg = cfg

	return l, nil
}

// Config returns the last successfully loaded configuration.
func (l *Loader) Config() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cfg := *l.cfg
	return &cfg
}

// Path returns the file backing the loader, or "" for defaults only.
func (l *Loader) Path() string {
	return l.v.ConfigFileUsed()
}

// Watch calls fn after every change of the configuration file. Invalid edits
// are reported through fn with a nil config; the previous one stays current.
func (l *Loader) Watch(fn func(*Config, error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		cfg, err := l.decode()
		if err != nil {
			fn(nil, err)
			return
		}

		l.mu.Lock()
		l.cfg = cfg
		l.mu.Unlock()

		fn(l.Config(), nil)
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	p := eq.DefaultParameters()
	lc := logger.DefaultConfig()

	v.SetDefault("audio.sample_rate", 48000.0)
	v.SetDefault("audio.channels", 2)
	v.SetDefault("audio.refresh_rate", eq.DefaultRefreshRate)
	v.SetDefault("audio.buffer_ms", 20)

	v.SetDefault("peak.freq", p.PeakFreq)
	v.SetDefault("peak.gain_db", p.PeakGain)
	v.SetDefault("peak.quality", p.PeakQuality)
	v.SetDefault("peak.bypassed", p.PeakBypassed)

	v.SetDefault("low_cut.freq", p.LowCutFreq)
	v.SetDefault("low_cut.slope", int(p.LowCutSlope))
	v.SetDefault("low_cut.bypassed", p.LowCutBypassed)

	v.SetDefault("high_cut.freq", p.HighCutFreq)
	v.SetDefault("high_cut.slope", int(p.HighCutSlope))
	v.SetDefault("high_cut.bypassed", p.HighCutBypassed)

	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.format", lc.Format)
	v.SetDefault("log.file", lc.File)
	v.SetDefault("log.max_size_mb", lc.MaxSizeMB)
	v.SetDefault("log.max_backups", lc.MaxBackups)
	v.SetDefault("log.max_age_days", lc.MaxAgeDays)
	v.SetDefault("log.compress", lc.Compress)
}
