package window

import (
	"math"
	"testing"
)

func TestAtEdgesAndCentre(t *testing.T) {
	tests := []struct {
		typ    Type
		edge   float64
		centre float64
	}{
		{typ: TypeRectangular, edge: 1, centre: 1},
		{typ: TypeHann, edge: 0, centre: 1},
		{typ: TypeBlackman, edge: 0, centre: 1},
		{typ: TypeKaiser, edge: 1 / besselI0(DefaultKaiserBeta), centre: 1},
	}
	for _, tt := range tests {
		if got := At(tt.typ, 0); math.Abs(got-tt.edge) > 1e-12 {
			t.Fatalf("At(%d, 0) = %v, want %v", tt.typ, got, tt.edge)
		}
		if got := At(tt.typ, 1); math.Abs(got-tt.edge) > 1e-12 {
			t.Fatalf("At(%d, 1) = %v, want %v", tt.typ, got, tt.edge)
		}
		if got := At(tt.typ, 0.5); math.Abs(got-tt.centre) > 1e-6 {
			t.Fatalf("At(%d, 0.5) = %v, want %v", tt.typ, got, tt.centre)
		}
	}
}

func TestCenteredMatchesClassicBlackman(t *testing.T) {
	const width = 12.0
	for _, x := range []float64{-5.5, -2.25, 0, 0.7, 3, 5.9} {
		a := 2 * math.Pi * x / width
		want := 0.42 + 0.5*math.Cos(a) + 0.08*math.Cos(2*a)
		if got := Centered(TypeBlackman, x, width); math.Abs(got-want) > 1e-12 {
			t.Fatalf("Centered(%v) = %v, want %v", x, got, want)
		}
	}
	if got := Centered(TypeBlackman, 6.5, width); got != 0 {
		t.Fatalf("Centered outside = %v, want 0", got)
	}
}

func TestGenerateIsSymmetric(t *testing.T) {
	w := Generate(TypeKaiser, 33)
	for i := range w {
		if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
			t.Fatalf("w[%d] = %v, mirror %v", i, w[i], w[len(w)-1-i])
		}
	}
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("Generate(0) = %v, want nil", got)
	}
	if got := Generate(TypeHann, 1); len(got) != 1 || got[0] != 1 {
		t.Fatalf("Generate(1) = %v, want [1]", got)
	}
}

func TestFadeOut(t *testing.T) {
	buf := []float64{1, 1, 1, 1, 1, 1}
	FadeOut(TypeHann, buf, 4)

	for i := range 2 {
		if buf[i] != 1 {
			t.Fatalf("buf[%d] = %v, want untouched", i, buf[i])
		}
	}
	for i := 3; i < len(buf); i++ {
		if buf[i] >= buf[i-1] {
			t.Fatalf("fade not falling at %d: %v", i, buf)
		}
	}
	if math.Abs(buf[5]) > 1e-12 {
		t.Fatalf("last sample = %v, want 0", buf[5])
	}
}
