// Package pass designs Butterworth lowpass and highpass cascades built
// from second-order RBJ sections.
package pass
