package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestBiquadDesigners_BasicResponseShape(t *testing.T) {
	sr := 48000.0
	f := 1000.0
	q := 1 / math.Sqrt2

	lp := Lowpass(f, q, sr)
	if !(lp.Magnitude(100, sr) > lp.Magnitude(10000, sr)) {
		t.Fatal("lowpass shape check failed")
	}
	if got := lp.MagnitudeDB(f, sr); !almostEqual(got, -3.0103, 0.01) {
		t.Fatalf("lowpass at cutoff = %.4f dB, want -3.01", got)
	}

	hp := Highpass(f, q, sr)
	if !(hp.Magnitude(10000, sr) > hp.Magnitude(100, sr)) {
		t.Fatal("highpass shape check failed")
	}
	if got := hp.MagnitudeDB(f, sr); !almostEqual(got, -3.0103, 0.01) {
		t.Fatalf("highpass at cutoff = %.4f dB, want -3.01", got)
	}
}

func TestLowpassHighpass_DCAndNyquist(t *testing.T) {
	sr := 48000.0
	lp := Lowpass(1000, 0.707, sr)
	hp := Highpass(1000, 0.707, sr)

	if got := lp.Magnitude(0, sr); !almostEqual(got, 1, 1e-12) {
		t.Fatalf("lowpass DC gain = %v, want 1", got)
	}
	if got := hp.Magnitude(sr/2, sr); !almostEqual(got, 1, 1e-9) {
		t.Fatalf("highpass Nyquist gain = %v, want 1", got)
	}
	if got := hp.Magnitude(0, sr); !almostEqual(got, 0, 1e-12) {
		t.Fatalf("highpass DC gain = %v, want 0", got)
	}
}

func TestPeak_GainAtCenter(t *testing.T) {
	sr := 44100.0
	for _, gain := range []float64{-24, -6, 0, 3, 12, 24} {
		for _, q := range []float64{0.1, 0.7, 1, 4, 10} {
			c := Peak(2000, gain, q, sr)
			if got := c.MagnitudeDB(2000, sr); !almostEqual(got, gain, 1e-9) {
				t.Errorf("gain=%v q=%v: |H(f0)| = %.12f dB", gain, q, got)
			}
		}
	}
}

func TestPeak_ZeroGainIsTransparent(t *testing.T) {
	sr := 48000.0
	c := Peak(750, 0, 1, sr)
	for _, f := range []float64{20, 200, 750, 5000, 20000} {
		if got := c.Magnitude(f, sr); !almostEqual(got, 1, 1e-12) {
			t.Fatalf("f=%v: |H| = %v, want 1", f, got)
		}
	}
}

func TestDesigners_InvalidInputsYieldUnity(t *testing.T) {
	tests := []struct {
		name string
		c    biquad.Coefficients
	}{
		{"lowpass zero sr", Lowpass(1000, 0.7, 0)},
		{"lowpass negative sr", Lowpass(1000, 0.7, -44100)},
		{"highpass NaN sr", Highpass(1000, 0.7, math.NaN())},
		{"highpass above nyquist", Highpass(30000, 0.7, 48000)},
		{"peak zero sr", Peak(1000, 6, 1, 0)},
		{"peak zero freq", Peak(0, 6, 1, 48000)},
		{"peak NaN gain", Peak(1000, math.NaN(), 1, 48000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.c.IsUnity() {
				t.Fatalf("got %#v, want unity", tt.c)
			}
		})
	}
}

func TestDesigners_InvalidQFallsBackToButterworth(t *testing.T) {
	sr := 48000.0
	want := Lowpass(1000, defaultQ, sr)
	for _, q := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if got := Lowpass(1000, q, sr); got != want {
			t.Fatalf("q=%v: got %#v, want %#v", q, got, want)
		}
	}
}

func TestDesigners_StableAcrossSampleRates(t *testing.T) {
	for _, sr := range []float64{44100, 48000, 96000, 192000} {
		for _, c := range []biquad.Coefficients{
			Lowpass(20, 0.707, sr),
			Lowpass(1000, 2.56, sr),
			Highpass(20, 0.51, sr),
			Highpass(0.49*sr, 1.93, sr),
			Peak(1000, 24, 10, sr),
			Peak(20, -24, 0.1, sr),
			Peak(20000, 24, 0.1, sr),
		} {
			if !c.IsFinite() {
				t.Fatalf("sr=%v: non-finite coefficients %#v", sr, c)
			}
			if !c.IsStable() {
				t.Fatalf("sr=%v: unstable section %#v (radius %v)", sr, c, c.PoleRadius())
			}
		}
	}
}
