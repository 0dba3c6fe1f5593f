package eq

import (
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
	"github.com/cwbudde/algo-eq/dsp/filter/design/pass"
)

// ChainCoefficients is one complete, immutable coefficient set for a
// [MonoChain]. A single value can be applied to any number of chains.
type ChainCoefficients struct {
	LowCut       [MaxCutStages]biquad.Coefficients
	LowCutOrder  int
	Peak         biquad.Coefficients
	HighCut      [MaxCutStages]biquad.Coefficients
	HighCutOrder int

	LowCutBypassed  bool
	PeakBypassed    bool
	HighCutBypassed bool
}

// PeakCoefficients designs the peak/bell section. It returns unity when
// sampleRate <= 0.
func PeakCoefficients(p Parameters, sampleRate float64) biquad.Coefficients {
	if !(sampleRate > 0) {
		return biquad.Unity()
	}

	p = p.Sanitize()
	return design.Peak(designFrequency(p.PeakFreq, sampleRate), p.PeakGain, p.PeakQuality, sampleRate)
}

// LowCutCoefficients designs the low-cut band as exactly
// p.LowCutSlope.Order() Butterworth highpass sections. Every section is
// unity when sampleRate <= 0.
func LowCutCoefficients(p Parameters, sampleRate float64) []biquad.Coefficients {
	p = p.Sanitize()
	order := p.LowCutSlope.Order()
	if !(sampleRate > 0) {
		return unitySections(order)
	}

	return pass.ButterworthHP(designFrequency(p.LowCutFreq, sampleRate), 2*order, sampleRate)
}

// HighCutCoefficients designs the high-cut band as exactly
// p.HighCutSlope.Order() Butterworth lowpass sections. Every section is
// unity when sampleRate <= 0.
func HighCutCoefficients(p Parameters, sampleRate float64) []biquad.Coefficients {
	p = p.Sanitize()
	order := p.HighCutSlope.Order()
	if !(sampleRate > 0) {
		return unitySections(order)
	}

	return pass.ButterworthLP(designFrequency(p.HighCutFreq, sampleRate), 2*order, sampleRate)
}

// Design computes all three bands and their bypass flags.
func Design(p Parameters, sampleRate float64) ChainCoefficients {
	p = p.Sanitize()

	cc := ChainCoefficients{
		Peak:            PeakCoefficients(p, sampleRate),
		LowCutBypassed:  p.LowCutBypassed,
		PeakBypassed:    p.PeakBypassed,
		HighCutBypassed: p.HighCutBypassed,
	}
	cc.LowCutOrder = copy(cc.LowCut[:], LowCutCoefficients(p, sampleRate))
	cc.HighCutOrder = copy(cc.HighCut[:], HighCutCoefficients(p, sampleRate))
	for i := cc.LowCutOrder; i < MaxCutStages; i++ {
		cc.LowCut[i] = biquad.Unity()
	}
	for i := cc.HighCutOrder; i < MaxCutStages; i++ {
		cc.HighCut[i] = biquad.Unity()
	}

	return cc
}

func unitySections(n int) []biquad.Coefficients {
	sections := make([]biquad.Coefficients, n)
	for i := range sections {
		sections[i] = biquad.Unity()
	}
	return sections
}
