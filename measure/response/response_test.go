package response

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

type gain float64

func (g gain) ProcessSample(x float64) float64 { return float64(g) * x }

func TestMeasure_Validation(t *testing.T) {
	_, err := Measure(nil, 48000, 1024)
	require.ErrorIs(t, err, ErrNilProcessor)

	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Measure(gain(1), sr, 1024)
		require.ErrorIs(t, err, ErrInvalidSampleRate, "sampleRate %v", sr)
	}
	for _, size := range []int{0, 1, 3, 1000} {
		_, err := Measure(gain(1), 48000, size)
		require.ErrorIs(t, err, ErrInvalidSize, "size %d", size)
	}
}

func TestMeasure_FlatGain(t *testing.T) {
	r, err := Measure(gain(0.5), 48000, 256)
	require.NoError(t, err)

	require.Len(t, r.Impulse, 256)
	require.Len(t, r.Magnitude, 129)
	assert.InDelta(t, 187.5, r.BinWidth(), 1e-12)
	for k, m := range r.Magnitude {
		assert.InDelta(t, 0.5, m, 1e-12, "bin %d", k)
	}
	assert.InDelta(t, 20*math.Log10(0.5), r.MagnitudeDBAt(1234), 1e-9)
}

func TestMeasure_BiquadMatchesAnalytic(t *testing.T) {
	sr := 48000.0
	c := biquad.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	r, err := Measure(biquad.NewSection(c), sr, 1024)
	require.NoError(t, err)

	// The impulse response decays far below double precision within 1024
	// samples, so bins are exact samples of H.
	for k := 0; k < len(r.Magnitude); k += 37 {
		f := float64(k) * r.BinWidth()
		assert.InDelta(t, c.Magnitude(f, sr), r.Magnitude[k], 1e-9, "bin %d", k)
	}
}

func TestMagnitudeAt_InterpolatesAndClamps(t *testing.T) {
	r := &Response{SampleRate: 8, Impulse: make([]float64, 8), Magnitude: []float64{0, 1, 2, 3, 4}}

	assert.InDelta(t, 1.5, r.MagnitudeAt(1.5), 1e-12)
	assert.InDelta(t, 0, r.MagnitudeAt(-3), 1e-12)
	assert.InDelta(t, 4, r.MagnitudeAt(100), 1e-12)
	assert.Equal(t, core.DefaultFloorDB, r.MagnitudeDBAt(0))
}

func TestMeasuredEQMatchesResponseCurve(t *testing.T) {
	sr := 48000.0
	p := eq.DefaultParameters()
	p.PeakFreq = 1000
	p.PeakGain = 6
	p.LowCutFreq = 100
	p.LowCutSlope = eq.Slope24
	p.HighCutFreq = 8000
	p.HighCutSlope = eq.Slope12

	var chain eq.MonoChain
	cc := eq.Design(p, sr)
	chain.Apply(&cc)

	const width = 300
	analytic := eq.ResponseCurve(&chain, width, sr)

	r, err := Measure(&chain, sr, 1<<16)
	require.NoError(t, err)

	freqs := make([]float64, width)
	for i := range freqs {
		freqs[i] = eq.CurveFrequency(i, width)
	}
	measured := r.CurveDB(freqs)

	// Compare where the response is well above the noise floor.
	var a, m []float64
	for i, f := range freqs {
		if f >= 200 && f <= 15000 {
			a = append(a, analytic[i])
			m = append(m, measured[i])
		}
	}
	require.NotEmpty(t, a)

	dev, err := Compare(a, m)
	require.NoError(t, err)
	assert.Less(t, dev.MaxAbsDB, 0.05, dev.String())
}

func TestCompare(t *testing.T) {
	dev, err := Compare([]float64{0, 1, 2, 3}, []float64{0, 1.5, 1, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, dev.MaxAbsDB, 1e-12)
	assert.Equal(t, 2, dev.MaxIndex)
	assert.InDelta(t, 0.375, dev.MeanAbsDB, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25/4), dev.RMSDB, 1e-12)

	_, err = Compare([]float64{1}, nil)
	require.ErrorIs(t, err, ErrLengthMismatch)

	dev, err = Compare(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, dev)
}
