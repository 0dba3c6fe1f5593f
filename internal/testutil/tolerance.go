package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// RequireNearlyEqual fails t if |got-want| exceeds eps.
func RequireNearlyEqual(t *testing.T, got, want, eps float64, msg string) {
	t.Helper()
	if diff := math.Abs(got - want); !(diff <= eps) {
		t.Fatalf("%s: got %v, want %v (diff %v > eps %v)", msg, got, want, diff, eps)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if !(diff <= eps) {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireStable fails t unless every section has finite coefficients and
// both poles strictly inside the unit circle.
func RequireStable(t *testing.T, sections ...biquad.Coefficients) {
	t.Helper()
	for i := range sections {
		c := sections[i]
		if !c.IsFinite() {
			t.Fatalf("section %d: non-finite coefficients %#v", i, c)
		}
		if r := c.PoleRadius(); r >= 1 {
			t.Fatalf("section %d: pole radius %v >= 1 (%#v)", i, r, c)
		}
	}
}
