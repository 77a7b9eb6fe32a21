package interp

import (
	"math"
	"testing"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("got %v want 2.5", got)
	}
}

func TestSplitPosition(t *testing.T) {
	tests := []struct {
		pos   float64
		whole int
		phase int
	}{
		{pos: 10, whole: 10, phase: 0},
		{pos: 10.5, whole: 10, phase: 128},
		{pos: 10.999, whole: 11, phase: 0},
		{pos: 3.25, whole: 3, phase: 64},
	}

	for _, tt := range tests {
		w, p := SplitPosition(tt.pos)
		if w != tt.whole || p != tt.phase {
			t.Errorf("SplitPosition(%v) = (%d, %d), want (%d, %d)", tt.pos, w, p, tt.whole, tt.phase)
		}
	}
}

func TestSincKernelPhaseZeroIsExact(t *testing.T) {
	k := SincKernel(0)
	for i, v := range k {
		want := 0.0
		if i == SincCenter {
			want = 1
		}
		if v != want {
			t.Fatalf("tap %d = %v, want %v", i, v, want)
		}
	}
}

func TestSincKernelRowsAreNormalized(t *testing.T) {
	for p := range SincPhases {
		sum := 0.0
		for _, v := range SincKernel(p) {
			sum += v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("phase %d: sum %v, want 1", p, sum)
		}
	}
}

func TestSincKernelHalfPhaseIsSymmetric(t *testing.T) {
	// At frac 0.5 the kernel straddles taps SincCenter and SincCenter+1.
	k := SincKernel(SincPhases / 2)
	for i := range SincTaps {
		j := SincTaps - 1 - i
		if math.Abs(k[i]-k[j]) > 1e-12 {
			t.Fatalf("taps %d and %d differ: %v vs %v", i, j, k[i], k[j])
		}
	}
}

func TestSincInterpolatesSlowSine(t *testing.T) {
	const w = 0.2
	signal := func(x float64) float64 { return math.Sin(w * x) }

	for _, pos := range []float64{20.125, 20.5, 31.75} {
		whole, phase := SplitPosition(pos)
		k := SincKernel(phase)
		got := 0.0
		for i, c := range k {
			got += c * signal(float64(whole+i-SincCenter))
		}
		if want := signal(pos); math.Abs(got-want) > 1e-3 {
			t.Errorf("pos %v: got %v, want %v", pos, got, want)
		}
	}
}
