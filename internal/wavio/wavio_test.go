package wavio

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/testutil"
)

const sampleRate = 48000

func writeWAV(t *testing.T, path string, bitDepth int, frames []float32, channels int) {
	t.Helper()

	w, err := Create(path, sampleRate, channels, bitDepth)
	require.NoError(t, err)
	require.NoError(t, w.WriteFrames(frames))
	require.NoError(t, w.Close())
}

func readAll(t *testing.T, path string) (*Reader, []float32) {
	t.Helper()

	r, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	var out []float32
	block := make([]float32, 1000*r.Channels)
	for {
		n, err := r.ReadFrames(block)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, block[:n*r.Channels]...)
	}

	return r, out
}

func TestRoundTrip(t *testing.T) {
	left := testutil.DeterministicSine(440, sampleRate, 0.5, 2500)
	right := testutil.DeterministicNoise(3, 0.25, 2500)
	frames := testutil.Interleave(left, right)

	for _, bitDepth := range []int{16, 24, 32} {
		path := filepath.Join(t.TempDir(), "rt.wav")
		writeWAV(t, path, bitDepth, frames, 2)

		r, got := readAll(t, path)
		assert.Equal(t, sampleRate, r.SampleRate)
		assert.Equal(t, 2, r.Channels)
		assert.Equal(t, bitDepth, r.BitDepth)
		require.Len(t, got, len(frames))

		lsb := 1 / float64(int64(1)<<(bitDepth-1)-1)
		for i := range frames {
			require.InDelta(t, frames[i], got[i], lsb+1e-7, "bit depth %d sample %d", bitDepth, i)
		}
	}
}

func TestWriteFrames_Clips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	writeWAV(t, path, 16, []float32{2, -3, 0.5, float32(math.Inf(1))}, 1)

	_, got := readAll(t, path)
	require.Len(t, got, 4)
	assert.InDelta(t, 1.0, got[0], 1e-6)
	assert.InDelta(t, -1.0, got[1], 1e-6)
	assert.InDelta(t, 0.5, got[2], 1e-4)
	assert.InDelta(t, 1.0, got[3], 1e-6)
}

func TestWriteFrames_DropsPartialFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.wav")
	writeWAV(t, path, 16, []float32{0.1, 0.2, 0.3}, 2)

	_, got := readAll(t, path)
	assert.Len(t, got, 2)
}

func TestCreate_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Create(filepath.Join(dir, "a.wav"), 0, 2, 16)
	require.ErrorIs(t, err, ErrInvalidSampleRate)

	_, err = Create(filepath.Join(dir, "b.wav"), sampleRate, 0, 16)
	require.ErrorIs(t, err, ErrInvalidChannels)

	_, err = Create(filepath.Join(dir, "c.wav"), sampleRate, 2, 8)
	require.ErrorIs(t, err, ErrUnsupportedBitDepth)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.wav"))
	require.Error(t, err)

	bogus := filepath.Join(dir, "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("definitely not a riff file"), 0o644))

	_, err = Open(bogus)
	require.ErrorIs(t, err, ErrInvalidWAV)
}

func TestProcess_PeakBoost(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	const n = 24000
	sine := testutil.DeterministicSine(1000, sampleRate, 0.25, n)
	writeWAV(t, in, 24, testutil.Interleave(sine, sine), 2)

	p := eq.DefaultParameters()
	p.PeakFreq = 1000
	p.PeakGain = 6
	p.LowCutBypassed = true
	p.HighCutBypassed = true
	cc := eq.Design(p, sampleRate)

	proc, err := eq.NewProcessor(2)
	require.NoError(t, err)
	proc.Apply(&cc)

	r, err := Open(in)
	require.NoError(t, err)
	defer r.Close()

	w, err := Create(out, r.SampleRate, r.Channels, r.BitDepth)
	require.NoError(t, err)

	frames, err := Process(r, w, proc, 1000)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.EqualValues(t, n, frames)

	_, got := readAll(t, out)
	require.Len(t, got, 2*n)

	// Skip the transient, then compare levels per channel.
	for ch := range 2 {
		var tail []float64
		for i := n / 2; i < n; i++ {
			tail = append(tail, float64(got[i*2+ch]))
		}
		gainDB := 20 * math.Log10(testutil.RMS(tail)/testutil.RMS(sine[n/2:]))
		assert.InDelta(t, 6.0, gainDB, 0.05, "channel %d", ch)
	}
}

func TestProcess_ChannelMismatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeWAV(t, in, 16, make([]float32, 20), 2)

	r, err := Open(in)
	require.NoError(t, err)
	defer r.Close()

	w, err := Create(filepath.Join(dir, "out.wav"), sampleRate, 1, 16)
	require.NoError(t, err)
	defer w.Close()

	proc, err := eq.NewProcessor(2)
	require.NoError(t, err)

	_, err = Process(r, w, proc, 0)
	require.ErrorIs(t, err, ErrInvalidChannels)
}
