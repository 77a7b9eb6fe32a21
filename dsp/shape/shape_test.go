package shape

import (
	"math"
	"testing"
)

func TestTanhMatchesMath(t *testing.T) {
	for x := -25.0; x <= 25; x += 0.125 {
		if got, want := Tanh(x), math.Tanh(x); math.Abs(got-want) > 1e-3 {
			t.Fatalf("Tanh(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestSoftClip(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{0.5, 0.5 - 0.125/3},
		{1, 2.0 / 3.0},
		{5, 2.0 / 3.0},
		{-5, -2.0 / 3.0},
	}
	for _, tt := range tests {
		if got := SoftClip(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("SoftClip(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0.3, 0.3},
		{1, 1},
		{1.5, 0.5},
		{2, 0},
		{3, -1},
		{3.5, -0.5},
		{5, 1},
		{-1.25, -0.75},
		{-3, 1},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Fold(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := Fold(math.Inf(1)); got != 0 {
		t.Errorf("Fold(+Inf) = %v, want 0", got)
	}
}

func TestHardClipAndQuantize(t *testing.T) {
	if got := HardClip(3, 1); got != 1 {
		t.Errorf("HardClip(3, 1) = %v", got)
	}
	if got := HardClip(-0.5, 1); got != -0.5 {
		t.Errorf("HardClip(-0.5, 1) = %v", got)
	}
	if got := Quantize(0.26, 4); got != 0.25 {
		t.Errorf("Quantize(0.26, 4) = %v, want 0.25", got)
	}
	if got := Quantize(0.26, 0); got != 0.26 {
		t.Errorf("Quantize(0.26, 0) = %v, want passthrough", got)
	}
}

func TestExponentialHelpers(t *testing.T) {
	if got := Pow2(3); math.Abs(got-8) > 1e-2 {
		t.Errorf("Pow2(3) = %v", got)
	}
	if got := Log2(8); math.Abs(got-3) > 1e-2 {
		t.Errorf("Log2(8) = %v", got)
	}
	if got := DBToGain(-6.0205999); math.Abs(got-0.5) > 1e-3 {
		t.Errorf("DBToGain(-6.02) = %v", got)
	}
	if got := Sqrt(2); math.Abs(got-math.Sqrt2) > 1e-3 {
		t.Errorf("Sqrt(2) = %v", got)
	}
}
