package hilbert

import (
	"math"
	"testing"
)

func TestDesignCoefficientsFastPreset(t *testing.T) {
	coeffs, err := PresetFast.Coefficients()
	if err != nil {
		t.Fatalf("Coefficients() error = %v", err)
	}

	expected := []float64{
		0.023096747350551,
		0.089078664601642,
		0.189272682580641,
		0.312728886474479,
		0.449678547451987,
		0.594162288373581,
		0.745542009557270,
		0.909477237310187,
	}
	if len(coeffs) != len(expected) {
		t.Fatalf("len = %d, want %d", len(coeffs), len(expected))
	}
	for i := range expected {
		if d := math.Abs(coeffs[i] - expected[i]); d > 1e-12 {
			t.Fatalf("coefficient[%d] = %.15f, want %.15f", i, coeffs[i], expected[i])
		}
	}

	att, err := Attenuation(8, 0.1)
	if err != nil {
		t.Fatalf("Attenuation() error = %v", err)
	}
	if math.Abs(att-137.6567258508839) > 1e-9 {
		t.Fatalf("attenuation = %.12f, want %.12f", att, 137.6567258508839)
	}
}

func TestDesignValidation(t *testing.T) {
	tests := []struct {
		name string
		n    int
		tr   float64
	}{
		{name: "no coefficients", n: 0, tr: 0.1},
		{name: "zero transition", n: 8, tr: 0},
		{name: "transition too wide", n: 8, tr: 0.5},
		{name: "nan transition", n: 8, tr: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DesignCoefficients(tt.n, tt.tr); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, _, err := Preset(99).Config(); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestPresetsAreStableAndOrdered(t *testing.T) {
	for _, p := range []Preset{PresetFast, PresetBalanced, PresetLowFrequency} {
		coeffs, err := p.Coefficients()
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		for i, c := range coeffs {
			if c <= 0 || c >= 1 {
				t.Fatalf("%s: coefficient[%d] = %v outside (0, 1)", p, i, c)
			}
			if i > 0 && c <= coeffs[i-1] {
				t.Fatalf("%s: coefficients not increasing at %d", p, i)
			}
		}
	}
}
