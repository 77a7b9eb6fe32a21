package param

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

func TestLipolFirstTargetJumps(t *testing.T) {
	var l Lipol
	l.SetTarget(3)
	if got := l.Next(); got != 3 {
		t.Fatalf("Next() = %v, want 3", got)
	}
}

func TestLipolReachesTargetWithinBlock(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
	}{
		{name: "up", from: 0, to: 1},
		{name: "down", from: 1, to: -0.3},
		{name: "tiny", from: 0.1, to: 0.1000001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Lipol
			l.SetTarget(tt.from)
			l.SetTarget(tt.to)

			lo, hi := math.Min(tt.from, tt.to), math.Max(tt.from, tt.to)
			prev := tt.from
			for i := range core.BlockSize {
				v := l.Next()
				if v < lo || v > hi {
					t.Fatalf("sample %d: %v outside [%v, %v]", i, v, lo, hi)
				}
				if (tt.to > tt.from && v < prev) || (tt.to < tt.from && v > prev) {
					t.Fatalf("sample %d: ramp not monotonic (%v after %v)", i, v, prev)
				}
				prev = v
			}
			if prev != tt.to {
				t.Fatalf("after one block got %v, want %v", prev, tt.to)
			}
			if got := l.Next(); got != tt.to {
				t.Fatalf("after ramp got %v, want %v", got, tt.to)
			}
		})
	}
}

func TestLipolInstantizeAndReset(t *testing.T) {
	var l Lipol
	l.SetTarget(0)
	l.SetTarget(1)
	l.Instantize()
	if got := l.Next(); got != 1 {
		t.Fatalf("Next() after Instantize = %v, want 1", got)
	}

	l.Reset()
	l.SetTarget(-2)
	if got := l.Value(); got != -2 {
		t.Fatalf("Value() after Reset = %v, want -2", got)
	}
}

func TestLipolFill(t *testing.T) {
	var l Lipol
	l.SetTarget(0)
	l.SetTarget(1)

	buf := make([]float64, core.BlockSize)
	l.Fill(buf)
	if buf[0] != 1.0/core.BlockSize {
		t.Fatalf("buf[0] = %v, want %v", buf[0], 1.0/core.BlockSize)
	}
	if buf[core.BlockSize-1] != 1 {
		t.Fatalf("last = %v, want 1", buf[core.BlockSize-1])
	}
}

func TestLagConverges(t *testing.T) {
	sampleRate := 48000.0
	seconds := 0.01
	l := NewLag(LagRate(seconds, sampleRate))
	l.SetTarget(0)
	l.SetTarget(1)

	n := int(seconds * sampleRate)
	for range n {
		l.Next()
	}
	if got := l.Value(); math.Abs(got-1) > 1.01e-3 {
		t.Fatalf("after %d samples value = %v, want within 1e-3 of 1", n, got)
	}

	for range 100 * n {
		l.Next()
	}
	if got := l.Value(); got != 1 {
		t.Fatalf("settled value = %v, want exactly 1", got)
	}
}

func TestLagRateBounds(t *testing.T) {
	if got := LagRate(0, 48000); got != 1 {
		t.Fatalf("LagRate(0) = %v, want 1", got)
	}
	var l Lag
	l.SetRate(5)
	l.SetTarget(0)
	l.SetTarget(2)
	if got := l.Next(); got != 2 {
		t.Fatalf("rate clamped to 1 should jump, got %v", got)
	}
}
