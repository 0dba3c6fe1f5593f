package eq

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Parameter ranges.
const (
	MinFrequency = 20.0
	MaxFrequency = 20000.0
	MinGainDB    = -24.0
	MaxGainDB    = 24.0
	MinQuality   = 0.1
	MaxQuality   = 10.0

	// maxDesignRatio keeps designed frequencies below Nyquist.
	maxDesignRatio = 0.49
)

// Slope is the roll-off of a cut band in dB per octave.
type Slope int

// Supported slopes. Each 12 dB/oct step adds one second-order section.
const (
	Slope12 Slope = 12
	Slope24 Slope = 24
	Slope36 Slope = 36
	Slope48 Slope = 48
)

// Valid reports whether s is one of the four defined slopes.
func (s Slope) Valid() bool {
	switch s {
	case Slope12, Slope24, Slope36, Slope48:
		return true
	default:
		return false
	}
}

// Order returns the number of cascaded second-order sections (1..4).
//
// Undefined slopes are clamped to the nearest defined one. Builds with the
// eqdebug tag panic instead.
func (s Slope) Order() int {
	if !s.Valid() {
		if debugAssertions {
			panic(fmt.Sprintf("eq: undefined slope %d dB/oct", int(s)))
		}
		return int(core.Clamp(math.Round(float64(s)/12), 1, MaxCutStages))
	}
	return int(s) / 12
}

// Normalize returns the defined slope nearest to s.
func (s Slope) Normalize() Slope {
	return SlopeFromOrder(s.Order())
}

func (s Slope) String() string {
	return fmt.Sprintf("%d dB/oct", int(s))
}

// SlopeFromOrder returns the slope realized by order sections, clamped to
// 1..4 sections.
func SlopeFromOrder(order int) Slope {
	order = max(1, min(order, MaxCutStages))
	return Slope(12 * order)
}

// Parameters is an immutable snapshot of the user-facing controls.
type Parameters struct {
	PeakFreq    float64 // Hz
	PeakGain    float64 // dB
	PeakQuality float64

	LowCutFreq  float64 // Hz
	HighCutFreq float64 // Hz

	LowCutSlope  Slope
	HighCutSlope Slope

	LowCutBypassed  bool
	PeakBypassed    bool
	HighCutBypassed bool
}

// DefaultParameters returns a transparent setting: a flat peak at 750 Hz and
// 12 dB/oct cuts at the edges of the audible range.
func DefaultParameters() Parameters {
	return Parameters{
		PeakFreq:     750,
		PeakGain:     0,
		PeakQuality:  1,
		LowCutFreq:   MinFrequency,
		HighCutFreq:  MaxFrequency,
		LowCutSlope:  Slope12,
		HighCutSlope: Slope12,
	}
}

// Sanitize clamps every field into its valid range. NaN values fall back to
// the default.
func (p Parameters) Sanitize() Parameters {
	def := DefaultParameters()

	p.PeakFreq = sanitize(p.PeakFreq, def.PeakFreq, MinFrequency, MaxFrequency)
	p.PeakGain = sanitize(p.PeakGain, def.PeakGain, MinGainDB, MaxGainDB)
	p.PeakQuality = sanitize(p.PeakQuality, def.PeakQuality, MinQuality, MaxQuality)
	p.LowCutFreq = sanitize(p.LowCutFreq, def.LowCutFreq, MinFrequency, MaxFrequency)
	p.HighCutFreq = sanitize(p.HighCutFreq, def.HighCutFreq, MinFrequency, MaxFrequency)
	p.LowCutSlope = p.LowCutSlope.Normalize()
	p.HighCutSlope = p.HighCutSlope.Normalize()

	return p
}

func sanitize(v, def, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return core.Clamp(v, lo, hi)
}

// designFrequency limits freq to what can be realized at sampleRate.
func designFrequency(freq, sampleRate float64) float64 {
	return math.Min(freq, maxDesignRatio*sampleRate)
}
