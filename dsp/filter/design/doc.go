// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: RBJ-style lowpass, highpass and
// peaking-EQ sections. Every designer is total; parameters it cannot realize
// (non-positive sample rate, frequency at or above Nyquist) yield
// [biquad.Unity].
//
// The sub-package design/pass builds Butterworth cascades from these
// sections.
package design
