package eq

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// ErrInvalidStage is returned when a chain position or stage index does
// not exist.
var ErrInvalidStage = errors.New("eq: invalid stage")

// Position identifies a band of a [MonoChain].
type Position int

// Chain positions in processing order.
const (
	LowCut Position = iota
	Peak
	HighCut
)

func (p Position) String() string {
	switch p {
	case LowCut:
		return "lowcut"
	case Peak:
		return "peak"
	case HighCut:
		return "highcut"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// MonoChain is the low cut, peak and high cut cascade for one channel. The
// zero value is a fully bypassed, transparent chain.
//
// A MonoChain must not be copied after first use.
type MonoChain struct {
	lowCut  CutChain
	peak    Stage
	highCut CutChain
}

// LowCut returns the low-cut band.
func (m *MonoChain) LowCut() *CutChain { return &m.lowCut }

// Peak returns the peak stage.
func (m *MonoChain) Peak() *Stage { return &m.peak }

// HighCut returns the high-cut band.
func (m *MonoChain) HighCut() *CutChain { return &m.highCut }

// Stage returns stage index of the band at pos. The peak band has the single
// index 0.
func (m *MonoChain) Stage(pos Position, index int) (*Stage, error) {
	var st *Stage
	switch pos {
	case LowCut:
		st = m.lowCut.Stage(index)
	case HighCut:
		st = m.highCut.Stage(index)
	case Peak:
		if index == 0 {
			st = &m.peak
		}
	}
	if st == nil {
		return nil, fmt.Errorf("%w: %s[%d]", ErrInvalidStage, pos, index)
	}
	return st, nil
}

// ReplaceStageCoefficients atomically swaps the coefficients of one stage.
// The delay line and bypass flag are not touched.
func (m *MonoChain) ReplaceStageCoefficients(pos Position, index int, c biquad.Coefficients) error {
	st, err := m.Stage(pos, index)
	if err != nil {
		return err
	}
	st.SetCoefficients(c)
	return nil
}

// SetBypassed bypasses or enables a whole band.
func (m *MonoChain) SetBypassed(pos Position, bypassed bool) error {
	switch pos {
	case LowCut:
		m.lowCut.SetBypassed(bypassed)
	case Peak:
		m.peak.SetBypassed(bypassed)
	case HighCut:
		m.highCut.SetBypassed(bypassed)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStage, pos)
	}
	return nil
}

// Bypassed reports whether the band at pos is bypassed. Unknown positions
// report true.
func (m *MonoChain) Bypassed(pos Position) bool {
	switch pos {
	case LowCut:
		return m.lowCut.Bypassed()
	case Peak:
		return m.peak.Bypassed()
	case HighCut:
		return m.highCut.Bypassed()
	default:
		return true
	}
}

// Apply publishes a complete coefficient set. Coefficients are stored before
// bypass flags are cleared.
func (m *MonoChain) Apply(cc *ChainCoefficients) {
	m.lowCut.Update(cc.LowCut[:cc.LowCutOrder])
	m.lowCut.SetBypassed(cc.LowCutBypassed)

	m.peak.SetCoefficients(cc.Peak)
	m.peak.SetBypassed(cc.PeakBypassed)

	m.highCut.Update(cc.HighCut[:cc.HighCutOrder])
	m.highCut.SetBypassed(cc.HighCutBypassed)
}

// ProcessSample feeds x through LowCut, Peak and HighCut.
func (m *MonoChain) ProcessSample(x float64) float64 {
	x = m.lowCut.ProcessSample(x)
	x = m.peak.ProcessSample(x)
	return m.highCut.ProcessSample(x)
}

// ProcessBlock filters buf in-place, band by band.
func (m *MonoChain) ProcessBlock(buf []float64) {
	m.lowCut.ProcessBlock(buf)
	m.peak.ProcessBlock(buf)
	m.highCut.ProcessBlock(buf)
}

// Magnitude returns the linear magnitude of the whole chain at freq: the
// product of every non-bypassed stage, peak first.
func (m *MonoChain) Magnitude(freq, sampleRate float64) float64 {
	mag := m.peak.Magnitude(freq, sampleRate)
	mag *= m.lowCut.Magnitude(freq, sampleRate)
	mag *= m.highCut.Magnitude(freq, sampleRate)
	return mag
}

// Reset clears all delay lines. Audio-rate context only.
func (m *MonoChain) Reset() {
	m.lowCut.Reset()
	m.peak.Reset()
	m.highCut.Reset()
}
