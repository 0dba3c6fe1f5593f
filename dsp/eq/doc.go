// Package eq implements a three-band parametric equalizer: a Butterworth
// low cut, an RBJ peak/bell and a Butterworth high cut, cascaded as one mono
// chain and replicated per audio channel.
//
// The package separates two execution contexts:
//
//   - The audio-rate path ([MonoChain.ProcessSample], [Processor]) reads
//     coefficients through atomic pointers. It never blocks, allocates or
//     takes a lock.
//   - The control-rate path ([Controller]) coalesces parameter edits through
//     a [Gate], recomputes coefficients with the factory functions
//     ([Design], [PeakCoefficients], [LowCutCoefficients],
//     [HighCutCoefficients]) and publishes immutable coefficient values into
//     every audio chain and a separate display chain.
//
// [ResponseCurve] evaluates the display chain analytically on a logarithmic
// 20 Hz to 20 kHz axis.
//
// Coefficient replacement does not crossfade and does not reset delay
// lines, so large parameter jumps on live audio can produce a transient.
package eq
