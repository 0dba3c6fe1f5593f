package biquad

import (
	"math/cmplx"
	"testing"
)

func TestPolesZeros_SecondOrder(t *testing.T) {
	p1 := complex(0.72, 0.19)
	p2 := cmplx.Conj(p1)
	z1 := complex(0.31, 0.44)
	z2 := cmplx.Conj(z1)

	b0 := 2.3
	c := Coefficients{
		B0: b0,
		B1: -b0 * real(z1+z2),
		B2: b0 * real(z1*z2),
		A1: -real(p1 + p2),
		A2: real(p1 * p2),
	}

	if !unorderedRootsClose(c.Poles(), p1, p2, 1e-12) {
		t.Fatalf("unexpected poles: got=%v want={%v,%v}", c.Poles(), p1, p2)
	}
	if !unorderedRootsClose(c.Zeros(), z1, z2, 1e-12) {
		t.Fatalf("unexpected zeros: got=%v want={%v,%v}", c.Zeros(), z1, z2)
	}
	if want := cmplx.Abs(p1); !almostEqual(c.PoleRadius(), want, 1e-12) {
		t.Fatalf("PoleRadius = %v, want %v", c.PoleRadius(), want)
	}
	if !c.IsStable() {
		t.Fatal("poles inside the unit circle reported unstable")
	}
}

func TestIsStable(t *testing.T) {
	tests := []struct {
		name   string
		c      Coefficients
		stable bool
	}{
		{name: "unity", c: Unity(), stable: true},
		{name: "damped", c: Coefficients{B0: 1, A1: -1.2, A2: 0.45}, stable: true},
		{name: "on circle", c: Coefficients{B0: 1, A2: 1}, stable: false},
		{name: "outside", c: Coefficients{B0: 1, A1: -2.5, A2: 1.2}, stable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsStable(); got != tt.stable {
				t.Fatalf("IsStable() = %v, want %v (radius %v)", got, tt.stable, tt.c.PoleRadius())
			}
		})
	}
}

func unorderedRootsClose(got [2]complex128, want1, want2 complex128, tol float64) bool {
	return (rootsClose(got[0], want1, tol) && rootsClose(got[1], want2, tol)) ||
		(rootsClose(got[0], want2, tol) && rootsClose(got[1], want1, tol))
}

func rootsClose(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}
