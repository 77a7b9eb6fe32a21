package hilbert

import (
	"math"
	"testing"
)

func toneAmplitude(buf []float64, hz, sampleRate float64) float64 {
	var re, im float64
	for i, v := range buf {
		w := 2 * math.Pi * hz * float64(i) / sampleRate
		re += v * math.Cos(w)
		im += v * math.Sin(w)
	}

	return math.Hypot(re, im) / float64(len(buf)/2)
}

func TestShifterMovesToneUp(t *testing.T) {
	const sr = 48000.0

	s, err := NewShifter(PresetBalanced)
	if err != nil {
		t.Fatalf("NewShifter() error = %v", err)
	}
	s.SetShift(500, sr)

	buf := make([]float64, 9600)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / sr)
	}
	s.Process(buf)

	tail := buf[4800:]
	if got := toneAmplitude(tail, 1500, sr); math.Abs(got-1) > 1e-3 {
		t.Fatalf("amplitude at 1500 Hz = %v, want 1", got)
	}
	if got := toneAmplitude(tail, 500, sr); got > 1e-3 {
		t.Fatalf("image at 500 Hz = %v, want < 1e-3", got)
	}
}

func TestShifterNegativeShiftMovesDown(t *testing.T) {
	const sr = 48000.0

	s, err := NewShifter(PresetBalanced)
	if err != nil {
		t.Fatalf("NewShifter() error = %v", err)
	}
	s.SetShift(-500, sr)

	buf := make([]float64, 9600)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / sr)
	}
	s.Process(buf)

	tail := buf[4800:]
	if got := toneAmplitude(tail, 500, sr); math.Abs(got-1) > 1e-3 {
		t.Fatalf("amplitude at 500 Hz = %v, want 1", got)
	}
}

func TestWrapPhase(t *testing.T) {
	for _, p := range []float64{0, 1, math.Pi, -math.Pi, 7, -7, 100} {
		got := wrapPhase(p)
		if got < -math.Pi || got >= math.Pi {
			t.Fatalf("wrapPhase(%v) = %v outside [-pi, pi)", p, got)
		}
		if math.Abs(math.Remainder(got-p, 2*math.Pi)) > 1e-9 {
			t.Fatalf("wrapPhase(%v) = %v is not congruent", p, got)
		}
	}
}
