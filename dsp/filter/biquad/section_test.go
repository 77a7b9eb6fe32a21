package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func testCoefficients() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced with x = [1, 0, 0, 0]:
	//
	// n=0: y=0.25, d0=0.5+0.05=0.55, d1=0.25-0.01=0.24
	// n=1: y=0.55, d0=0.11+0.24=0.35, d1=-0.022
	// n=2: y=0.35, d0=0.07-0.022=0.048, d1=-0.014
	// n=3: y=0.048
	s := NewSection(testCoefficients())

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		y := s.ProcessSample(x)
		if !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	c := testCoefficients()

	s1 := NewSection(c)
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, 0.1}
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	s2 := NewSection(c)
	block := append([]float64(nil), input...)
	s2.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Errorf("sample %d: ProcessBlock=%.15f, ProcessSample=%.15f (kernel %s)", i, block[i], ref[i], KernelName())
		}
	}
}

func TestResetAndState(t *testing.T) {
	s := NewSection(testCoefficients())
	s.ProcessSample(1)
	if s.State() == [2]float64{} {
		t.Fatal("state should be non-zero after an impulse")
	}

	saved := s.State()
	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("state after Reset = %v, want zeros", s.State())
	}

	s.SetState(saved)
	if s.State() != saved {
		t.Fatalf("SetState() = %v, want %v", s.State(), saved)
	}
}

func TestLerpAndScale(t *testing.T) {
	a := Coefficients{B0: 1, A1: -1}
	b := Coefficients{B0: 3, A1: 1}
	mid := a.Lerp(b, 0.5)
	if mid.B0 != 2 || mid.A1 != 0 {
		t.Fatalf("Lerp(0.5) = %+v", mid)
	}
	sc := b.Scale(2)
	if sc.B0 != 6 || sc.A1 != 1 {
		t.Fatalf("Scale(2) = %+v, feedback must be unchanged", sc)
	}
}

func BenchmarkProcessBlock(b *testing.B) {
	s := NewSection(testCoefficients())
	buf := make([]float64, 32)
	for i := range buf {
		buf[i] = math.Sin(float64(i))
	}

	b.ResetTimer()
	for range b.N {
		s.ProcessBlock(buf)
	}
}
