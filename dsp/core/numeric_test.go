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

func TestClampInt(t *testing.T) {
	if got := ClampInt(7, 0, 3); got != 3 {
		t.Fatalf("ClampInt() = %d, want 3", got)
	}
	if got := ClampInt(-2, 0, 3); got != 0 {
		t.Fatalf("ClampInt() = %d, want 0", got)
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

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-35); got != 0 {
		t.Fatalf("FlushDenormals(1e-35) = %v, want 0", got)
	}
	if got := FlushDenormals(1e-3); got != 1e-3 {
		t.Fatalf("FlushDenormals(1e-3) = %v, want 1e-3", got)
	}
}

func TestSanitize(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Sanitize(v); got != 0 {
			t.Fatalf("Sanitize(%v) = %v, want 0", v, got)
		}
	}
	if got := Sanitize(0.25); got != 0.25 {
		t.Fatalf("Sanitize(0.25) = %v", got)
	}
}

func TestDBConversions(t *testing.T) {
	if got := DBToLinear(-6.020599913279624); !NearlyEqual(got, 0.5, 1e-12) {
		t.Fatalf("DBToLinear(-6.02) = %v, want 0.5", got)
	}
	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Fatalf("LinearToDB(0) = %v, want -Inf", got)
	}
	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Fatalf("LinearToDB(-1) = %v, want NaN", got)
	}
}
