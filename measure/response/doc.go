// Package response measures the magnitude response of a sample processor
// from its impulse response and compares it against an analytic curve.
//
// Feed a freshly reset processor to Measure, then evaluate the measured
// response at arbitrary frequencies:
//
//	r, _ := response.Measure(chain, 48000, 1<<16)
//	measured := r.CurveDB(freqs)
//	dev, _ := response.Compare(analytic, measured)
//
// The FFT runs on github.com/MeKo-Christian/algo-fft; bin magnitudes use
// github.com/cwbudde/algo-vecmath and deviation statistics use gonum.
package response
