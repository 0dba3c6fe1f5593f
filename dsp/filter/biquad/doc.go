// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// [Coefficients] is an immutable value describing one second-order section.
// [State] holds the Direct Form II Transposed delay line and is advanced
// against a coefficient set, so the two can be owned separately: the EQ
// chain publishes coefficients through an atomic pointer while the audio
// thread owns the state. [Section] bundles both for single-threaded use.
//
// Coefficient design lives in dsp/filter/design.
package biquad
