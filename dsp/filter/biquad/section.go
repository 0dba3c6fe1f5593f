package biquad

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"

	_ "github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/generic" // register pure-Go kernels
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Unity returns the identity section H(z) = 1.
func Unity() Coefficients {
	return Coefficients{B0: 1}
}

// IsUnity reports whether c is exactly the identity section.
func (c Coefficients) IsUnity() bool {
	return c == Unity()
}

// IsFinite reports whether every coefficient is a finite number.
func (c Coefficients) IsFinite() bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// State is the two-element delay line of a DF-II-T section.
// The zero value is a cleared delay line.
type State struct {
	d0, d1 float64
}

var (
	blockKernel     registry.BlockKernel
	blockKernelOnce sync.Once
)

// Step filters one sample through c, advancing the delay line.
func (s *State) Step(c *Coefficients, x float64) float64 {
	y := c.B0*x + s.d0
	s.d0 = c.B1*x - c.A1*y + s.d1
	s.d1 = c.B2*x - c.A2*y

	return y
}

// StepBlock filters buf in-place through c. Zero-alloc.
func (s *State) StepBlock(c *Coefficients, buf []float64) {
	blockKernelOnce.Do(initBlockKernel)

	s.d0, s.d1 = blockKernel(registry.Coefficients{
		B0: c.B0,
		B1: c.B1,
		B2: c.B2,
		A1: c.A1,
		A2: c.A2,
	}, s.d0, s.d1, buf)
}

// Reset clears the delay line to zero.
func (s *State) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// Values returns the current delay-line state [d0, d1].
func (s *State) Values() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetValues restores a previously saved delay-line state.
func (s *State) SetValues(v [2]float64) {
	s.d0 = v[0]
	s.d1 = v[1]
}

// KernelName reports which block kernel StepBlock dispatches to.
func KernelName() string {
	entry := registry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		return ""
	}
	return entry.Name
}

func initBlockKernel() {
	entry := registry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil || entry.Kernel == nil {
		panic("biquad: no block kernel registered")
	}

	blockKernel = entry.Kernel
}

// Section is a single biquad filter with coefficients and internal state.
type Section struct {
	Coefficients
	State
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	return s.State.Step(&s.Coefficients, x)
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	s.State.StepBlock(&s.Coefficients, buf)
}

// ImpulseResponse computes n samples of the impulse response h[n]. The
// section state is saved and restored.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	saved := s.Values()
	s.Reset()
	ir := make([]float64, n)
	ir[0] = s.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = s.ProcessSample(0)
	}
	s.SetValues(saved)
	return ir
}
