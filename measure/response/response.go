package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

var (
	ErrNilProcessor      = errors.New("response: processor is nil")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidSize       = errors.New("response: size must be a power of two >= 2")
)

// SampleProcessor is anything that filters one sample at a time, such as an
// eq.MonoChain.
type SampleProcessor interface {
	ProcessSample(x float64) float64
}

// Response is a measured impulse response and its magnitude spectrum.
type Response struct {
	SampleRate float64
	Impulse    []float64
	// Magnitude holds the linear magnitude of bins 0..len(Impulse)/2.
	Magnitude []float64
}

// Measure feeds a unit impulse followed by size-1 zeros through p and
// transforms the captured impulse response. The processor state is not
// reset; pass a freshly constructed or reset processor.
func Measure(p SampleProcessor, sampleRate float64, size int) (*Response, error) {
	if p == nil {
		return nil, ErrNilProcessor
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	impulse := make([]float64, size)
	impulse[0] = p.ProcessSample(1)
	for i := 1; i < size; i++ {
		impulse[i] = p.ProcessSample(0)
	}

	mag, err := magnitudeSpectrum(impulse)
	if err != nil {
		return nil, err
	}

	return &Response{SampleRate: sampleRate, Impulse: impulse, Magnitude: mag}, nil
}

func magnitudeSpectrum(x []float64) ([]float64, error) {
	n := len(x)
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	src := make([]complex128, n)
	for i, v := range x {
		src[i] = complex(v, 0)
	}
	spec := make([]complex128, n)
	if err := plan.Forward(spec, src); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(spec[k])
		im[k] = imag(spec[k])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}

// BinWidth returns the frequency spacing of the magnitude bins in Hz.
func (r *Response) BinWidth() float64 {
	return r.SampleRate / float64(len(r.Impulse))
}

// MagnitudeAt returns the linear magnitude at freq, interpolated linearly
// between bins. Frequencies outside 0..Nyquist are clamped.
func (r *Response) MagnitudeAt(freq float64) float64 {
	last := len(r.Magnitude) - 1
	if last < 0 {
		return 0
	}

	pos := core.Clamp(freq/r.BinWidth(), 0, float64(last))
	k := int(pos)
	if k >= last {
		return r.Magnitude[last]
	}
	frac := pos - float64(k)
	return r.Magnitude[k]*(1-frac) + r.Magnitude[k+1]*frac
}

// MagnitudeDBAt returns MagnitudeAt in dB, floored at core.DefaultFloorDB.
func (r *Response) MagnitudeDBAt(freq float64) float64 {
	return core.GainToDecibels(r.MagnitudeAt(freq), core.DefaultFloorDB)
}

// CurveDB evaluates MagnitudeDBAt at every frequency of freqs.
func (r *Response) CurveDB(freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = r.MagnitudeDBAt(f)
	}
	return out
}
