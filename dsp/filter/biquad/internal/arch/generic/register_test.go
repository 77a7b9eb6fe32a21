package generic

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad/internal/arch/registry"
)

func TestProcessRampWithZeroDeltaMatchesBlock(t *testing.T) {
	c := registry.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	in := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.1}
	a := append([]float64(nil), in...)
	b := append([]float64(nil), in...)

	d0a, d1a := processBlock(c, 0, 0, a)
	d0b, d1b := processRamp(c, registry.Coefficients{}, 0, 0, b)

	if d0a != d0b || d1a != d1b {
		t.Fatalf("state mismatch: block (%g,%g), ramp (%g,%g)", d0a, d1a, d0b, d1b)
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 0 {
			t.Fatalf("sample %d: block %v, ramp %v", i, a[i], b[i])
		}
	}
}

func TestProcessRampEndsOnTarget(t *testing.T) {
	start := registry.Coefficients{B0: 1}
	dc := registry.Coefficients{B0: -0.25}
	buf := []float64{1, 1, 1, 1}

	processRamp(start, dc, 0, 0, buf)

	want := []float64{0.75, 0.5, 0.25, 0}
	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-15 {
			t.Fatalf("sample %d: got %v, want %v", i, buf[i], want[i])
		}
	}
}
