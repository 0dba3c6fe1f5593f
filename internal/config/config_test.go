package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

const preset = `
audio:
  sample_rate: 44100
  channels: 1
peak:
  freq: 2000
  gain_db: 6
  quality: 2
low_cut:
  freq: 80
  slope: 24
high_cut:
  freq: 12000
  slope: 48
  bypassed: true
log:
  level: debug
  format: json
`

// writeFile replaces path atomically so watchers never observe a truncated file.
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	tmp := filepath.Join(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.InDelta(t, 48000.0, cfg.Audio.SampleRate, 0)
	assert.Equal(t, 2, cfg.Audio.Channels)
	assert.InDelta(t, eq.DefaultRefreshRate, cfg.Audio.RefreshRate, 0)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, eq.DefaultParameters(), cfg.EQParameters())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eq.yaml")
	writeFile(t, path, preset)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 44100.0, cfg.Audio.SampleRate, 0)
	assert.Equal(t, 1, cfg.Audio.Channels)
	assert.Equal(t, "json", cfg.Log.Format)

	p := cfg.EQParameters()
	assert.InDelta(t, 2000.0, p.PeakFreq, 0)
	assert.InDelta(t, 6.0, p.PeakGain, 0)
	assert.InDelta(t, 2.0, p.PeakQuality, 0)
	assert.InDelta(t, 80.0, p.LowCutFreq, 0)
	assert.Equal(t, eq.Slope24, p.LowCutSlope)
	assert.Equal(t, eq.Slope48, p.HighCutSlope)
	assert.True(t, p.HighCutBypassed)
	assert.False(t, p.LowCutBypassed)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("EQ_PEAK_GAIN_DB", "-9")
	t.Setenv("EQ_LOW_CUT_SLOPE", "36")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.InDelta(t, -9.0, cfg.Peak.GainDB, 0)
	assert.Equal(t, 36, cfg.LowCut.Slope)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "slope", content: "low_cut:\n  slope: 30\n", wantErr: ErrInvalidSlope},
		{name: "high cut slope", content: "high_cut:\n  slope: 0\n", wantErr: ErrInvalidSlope},
		{name: "sample rate", content: "audio:\n  sample_rate: 0\n", wantErr: ErrInvalidSampleRate},
		{name: "channels", content: "audio:\n  channels: -1\n", wantErr: ErrInvalidChannels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "eq.yaml")
			writeFile(t, path, tt.content)

			_, err := Load(path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestEQParameters_Sanitizes(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Peak.GainDB = 60
	cfg.HighCut.Freq = 96000

	p := cfg.EQParameters()
	assert.InDelta(t, eq.MaxGainDB, p.PeakGain, 0)
	assert.InDelta(t, eq.MaxFrequency, p.HighCutFreq, 0)
}

func TestLoader_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eq.yaml")
	writeFile(t, path, preset)

	l, err := NewLoader(path)
	require.NoError(t, err)
	assert.Equal(t, path, l.Path())

	changes := make(chan *Config, 16)
	failures := make(chan error, 16)

	l.Watch(func(cfg *Config, err error) {
		if err != nil {
			failures <- err
			return
		}
		changes <- cfg
	})

	writeFile(t, path, "peak:\n  gain_db: -3\n")

	require.Eventually(t, func() bool {
		return l.Config().Peak.GainDB == -3
	}, 5*time.Second, 10*time.Millisecond)

	select {
	case cfg := <-changes:
		assert.InDelta(t, -3.0, cfg.Peak.GainDB, 0)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	writeFile(t, path, "low_cut:\n  slope: 13\n")

	select {
	case err := <-failures:
		require.ErrorIs(t, err, ErrInvalidSlope)
	case <-time.After(5 * time.Second):
		t.Fatal("no failure notification")
	}

	assert.InDelta(t, -3.0, l.Config().Peak.GainDB, 0, "invalid edit must keep the previous config")
}
