package eq

import (
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

var unity = biquad.Unity()

// Stage is one biquad section of a chain: coefficients published through an
// atomic pointer, the delay line owned by the audio-rate reader, and a
// bypass flag. The zero value is a bypassed stage holding unity
// coefficients.
//
// Exactly one goroutine may process a stage at a time; publication
// ([Stage.SetCoefficients], [Stage.SetBypassed]) may run concurrently with
// processing.
type Stage struct {
	coeffs atomic.Pointer[biquad.Coefficients]
	active atomic.Bool
	state  biquad.State
}

// SetCoefficients publishes c as a single pointer swap. The delay line is
// left untouched.
func (s *Stage) SetCoefficients(c biquad.Coefficients) {
	s.coeffs.Store(&c)
}

// Coefficients returns the currently published coefficients.
func (s *Stage) Coefficients() biquad.Coefficients {
	return *s.load()
}

// SetBypassed sets the bypass flag.
func (s *Stage) SetBypassed(bypassed bool) {
	s.active.Store(!bypassed)
}

// Bypassed reports whether the stage passes its input through unchanged.
func (s *Stage) Bypassed() bool {
	return !s.active.Load()
}

// ProcessSample filters one sample. Bypassed stages return x unchanged.
func (s *Stage) ProcessSample(x float64) float64 {
	if !s.active.Load() {
		return x
	}
	return s.state.Step(s.load(), x)
}

// ProcessBlock filters buf in-place with one coefficient load for the whole
// block.
func (s *Stage) ProcessBlock(buf []float64) {
	if !s.active.Load() {
		return
	}
	s.state.StepBlock(s.load(), buf)
}

// Magnitude returns the linear magnitude response at freq. Bypassed stages
// report 1.
func (s *Stage) Magnitude(freq, sampleRate float64) float64 {
	if !s.active.Load() {
		return 1
	}
	return s.load().Magnitude(freq, sampleRate)
}

// Reset clears the delay line. Audio-rate context only.
func (s *Stage) Reset() {
	s.state.Reset()
}

func (s *Stage) load() *biquad.Coefficients {
	if c := s.coeffs.Load(); c != nil {
		return c
	}
	return &unity
}
