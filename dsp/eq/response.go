package eq

import (
	"github.com/cwbudde/algo-eq/dsp/core"
)

// Display axis of the response curve.
const (
	MinDisplayFrequency = 20.0
	MaxDisplayFrequency = 20000.0
	MinDisplayDB        = -24.0
	MaxDisplayDB        = 24.0
)

// CurveFrequency returns the frequency of position pos on a curve of the
// given width: 20 * 1000^(pos/width).
func CurveFrequency(pos, width int) float64 {
	if width <= 0 {
		return MinDisplayFrequency
	}
	return core.MapToLog10(float64(pos)/float64(width), MinDisplayFrequency, MaxDisplayFrequency)
}

// ResponseCurve returns width dB values of the chain's magnitude response on
// a logarithmic 20 Hz to 20 kHz axis. Magnitudes are floored at
// core.DefaultFloorDB. A non-positive width yields an empty curve.
func ResponseCurve(chain *MonoChain, width int, sampleRate float64) []float64 {
	if width <= 0 {
		return nil
	}
	return NewAnalyzer(width).CurveInto(nil, chain, sampleRate)
}

// Analyzer evaluates response curves on a precomputed frequency axis.
type Analyzer struct {
	freqs []float64
}

// NewAnalyzer precomputes the frequency axis for curves of the given width.
func NewAnalyzer(width int) *Analyzer {
	a := &Analyzer{freqs: make([]float64, max(width, 0))}
	for i := range a.freqs {
		a.freqs[i] = CurveFrequency(i, width)
	}
	return a
}

// Width returns the number of curve points.
func (a *Analyzer) Width() int { return len(a.freqs) }

// Frequency returns the frequency of curve point i.
func (a *Analyzer) Frequency(i int) float64 { return a.freqs[i] }

// CurveInto writes the curve into dst, reusing its capacity, and returns
// the resized slice. It does not allocate when cap(dst) >= Width.
func (a *Analyzer) CurveInto(dst []float64, chain *MonoChain, sampleRate float64) []float64 {
	dst = core.EnsureLen(dst, len(a.freqs))
	for i, f := range a.freqs {
		dst[i] = core.GainToDecibels(chain.Magnitude(f, sampleRate), core.DefaultFloorDB)
	}
	return dst
}
