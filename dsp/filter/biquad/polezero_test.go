package biquad

import (
	"math/cmplx"
	"testing"
)

func TestPolesAndZeros(t *testing.T) {
	// (1 - 0.5 z^-1)(1 - 0.25 z^-1) = 1 - 0.75 z^-1 + 0.125 z^-2
	c := Coefficients{B0: 1, B1: 2, B2: 1, A1: -0.75, A2: 0.125}

	p := c.Poles()
	if !sameRootSet(p, [2]complex128{0.5, 0.25}, 1e-12) {
		t.Fatalf("Poles() = %v, want {0.5, 0.25}", p)
	}

	z := c.Zeros()
	if !sameRootSet(z, [2]complex128{-1, -1}, 1e-6) {
		t.Fatalf("Zeros() = %v, want double zero at -1", z)
	}

	if got := c.PoleRadius(); !almostEqual(got, 0.5, 1e-12) {
		t.Fatalf("PoleRadius() = %v, want 0.5", got)
	}
}

func TestDecaySamples(t *testing.T) {
	c := Coefficients{B0: 1, A1: -0.5}
	// 0.5^n = 1e-5  =>  n = 16.6
	if got := c.DecaySamples(100); got != 19 {
		t.Fatalf("DecaySamples(100) = %d, want 19", got)
	}

	unstable := Coefficients{B0: 1, A1: -2, A2: 1}
	if got := unstable.DecaySamples(100); got != -1 {
		t.Fatalf("marginal section DecaySamples = %d, want -1", got)
	}

	if got := Passthrough.DecaySamples(100); got != 2 {
		t.Fatalf("passthrough DecaySamples = %d, want 2", got)
	}
}

func sameRootSet(a, b [2]complex128, tol float64) bool {
	return (rootsClose(a[0], b[0], tol) && rootsClose(a[1], b[1], tol)) ||
		(rootsClose(a[0], b[1], tol) && rootsClose(a[1], b[0], tol))
}

func rootsClose(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}
