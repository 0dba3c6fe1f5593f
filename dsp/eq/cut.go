package eq

import (
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// MaxCutStages is the fixed number of stage slots in a cut band.
const MaxCutStages = 4

// CutChain is a cut band: four cascaded stages of which the first
// ActiveStages are enabled. Stages beyond the active count are bypassed and
// hold unity coefficients. The slots are never resized.
type CutChain struct {
	stages   [MaxCutStages]Stage
	bypassed atomic.Bool
}

// Stage returns stage i, or nil when i is out of range.
func (c *CutChain) Stage(i int) *Stage {
	if i < 0 || i >= MaxCutStages {
		return nil
	}
	return &c.stages[i]
}

// SetActiveStages enables exactly order stages from the front and bypasses
// the rest. order is clamped to 0..4. Stages that become inactive are reset
// to unity coefficients after their bypass flag is set, so no stale section
// influences processing or the response.
func (c *CutChain) SetActiveStages(order int) {
	order = max(0, min(order, MaxCutStages))
	for i := range c.stages {
		st := &c.stages[i]
		if i < order {
			st.SetBypassed(false)
			continue
		}
		st.SetBypassed(true)
		st.SetCoefficients(unity)
	}
}

// ActiveStages returns the number of non-bypassed stages.
func (c *CutChain) ActiveStages() int {
	n := 0
	for i := range c.stages {
		if !c.stages[i].Bypassed() {
			n++
		}
	}
	return n
}

// Update publishes sections into the front stages and bypasses the rest.
// Sections beyond MaxCutStages are ignored. An enabled stage receives its
// coefficients before its bypass flag is cleared.
func (c *CutChain) Update(sections []biquad.Coefficients) {
	n := min(len(sections), MaxCutStages)
	for i := range n {
		c.stages[i].SetCoefficients(sections[i])
	}
	c.SetActiveStages(n)
}

// SetBypassed bypasses the whole band without touching its stages.
func (c *CutChain) SetBypassed(bypassed bool) {
	c.bypassed.Store(bypassed)
}

// Bypassed reports whether the whole band is bypassed.
func (c *CutChain) Bypassed() bool {
	return c.bypassed.Load()
}

// ProcessSample runs x through the active stages in order.
func (c *CutChain) ProcessSample(x float64) float64 {
	if c.bypassed.Load() {
		return x
	}
	for i := range c.stages {
		x = c.stages[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock runs buf in-place through the active stages in order.
func (c *CutChain) ProcessBlock(buf []float64) {
	if c.bypassed.Load() {
		return
	}
	for i := range c.stages {
		c.stages[i].ProcessBlock(buf)
	}
}

// Magnitude returns the product of the active stage magnitudes at freq.
// A bypassed band reports 1.
func (c *CutChain) Magnitude(freq, sampleRate float64) float64 {
	if c.bypassed.Load() {
		return 1
	}
	mag := 1.0
	for i := range c.stages {
		mag *= c.stages[i].Magnitude(freq, sampleRate)
	}
	return mag
}

// Reset clears every delay line. Audio-rate context only.
func (c *CutChain) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}
