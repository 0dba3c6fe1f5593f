package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
		{name: "nan", value: math.NaN(), min: 20, max: 20000, expected: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestGainToDecibels(t *testing.T) {
	if got := GainToDecibels(1, DefaultFloorDB); got != 0 {
		t.Fatalf("GainToDecibels(1) = %v, want 0", got)
	}
	if got := GainToDecibels(DBToLinear(-6), DefaultFloorDB); !NearlyEqual(got, -6, 1e-10) {
		t.Fatalf("GainToDecibels(-6 dB) = %v, want -6", got)
	}
	for _, g := range []float64{0, -1, math.NaN(), 1e-12} {
		if got := GainToDecibels(g, DefaultFloorDB); got != DefaultFloorDB {
			t.Fatalf("GainToDecibels(%v) = %v, want floor %v", g, got, DefaultFloorDB)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) || IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) {
		t.Fatal("IsFinite misclassified a value")
	}
}

func TestMapToLog10(t *testing.T) {
	if got := MapToLog10(0, 20, 20000); got != 20 {
		t.Fatalf("MapToLog10(0) = %v, want 20", got)
	}
	if got := MapToLog10(1, 20, 20000); !NearlyEqual(got, 20000, 1e-9) {
		t.Fatalf("MapToLog10(1) = %v, want 20000", got)
	}
	if got := MapToLog10(2.0/3.0, 20, 20000); !NearlyEqual(got, 2000, 1e-9) {
		t.Fatalf("MapToLog10(2/3) = %v, want 2000", got)
	}
	for _, f := range []float64{20, 100, 1000, 15000} {
		norm := MapFromLog10(f, 20, 20000)
		if back := MapToLog10(norm, 20, 20000); !NearlyEqual(back, f, 1e-9) {
			t.Fatalf("round trip %v -> %v -> %v", f, norm, back)
		}
	}
}

func TestMap(t *testing.T) {
	if got := Map(0, -24, 24, 100, 0); got != 50 {
		t.Fatalf("Map(0) = %v, want 50", got)
	}
	if got := Map(24, -24, 24, 100, 0); got != 0 {
		t.Fatalf("Map(24) = %v, want 0", got)
	}
	if got := Map(5, 1, 1, 7, 9); got != 7 {
		t.Fatalf("degenerate Map = %v, want 7", got)
	}
}

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 2, 8)
	out := EnsureLen(buf, 6)
	if len(out) != 6 || cap(out) != 8 {
		t.Fatalf("EnsureLen reused wrong buffer: len=%d cap=%d", len(out), cap(out))
	}
	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Fatalf("EnsureLen(0) len = %d", len(got))
	}
	if got := EnsureLen(nil, 3); len(got) != 3 {
		t.Fatalf("EnsureLen(nil, 3) len = %d", len(got))
	}
}
