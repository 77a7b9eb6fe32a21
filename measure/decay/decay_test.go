package decay

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/dsp/unit/catalog"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

const sr = 48000

// exponential returns an impulse response falling by 60 dB every rt seconds.
func exponential(rt float64, n int) []float64 {
	ir := make([]float64, n)
	k := math.Log(1000) / (rt * sr)
	for i := range ir {
		ir[i] = math.Exp(-k * float64(i))
	}
	return ir
}

func TestAnalyzeExponential(t *testing.T) {
	for _, rt := range []float64{0.25, 0.5, 1.5} {
		r, err := Analyze(exponential(rt, int(2*rt*sr)), sr)
		if err != nil {
			t.Fatalf("rt=%v: %v", rt, err)
		}
		if math.Abs(r.RT60-rt) > 0.01*rt {
			t.Fatalf("RT60 = %v, want %v", r.RT60, rt)
		}
		if math.Abs(r.EDT-rt) > 0.01*rt {
			t.Fatalf("EDT = %v, want %v", r.EDT, rt)
		}
	}
}

func TestAnalyzeStartsAtPeak(t *testing.T) {
	ir := append(make([]float64, 100), exponential(0.5, sr)...)
	r, err := Analyze(ir, sr)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.Peak != 100 {
		t.Fatalf("Peak = %d, want 100", r.Peak)
	}
	if r.Curve[0] != 0 {
		t.Fatalf("Curve[0] = %v, want 0 dB", r.Curve[0])
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze(nil, sr); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty: got %v", err)
	}
	if _, err := Analyze([]float64{1}, 0); !errors.Is(err, ErrSampleRate) {
		t.Fatalf("sample rate: got %v", err)
	}
	if _, err := Analyze(testutil.Impulse(64, 0), sr); !errors.Is(err, ErrNoDecay) {
		t.Fatalf("single impulse: got %v, want ErrNoDecay", err)
	}
}

func TestSchroederIsFalling(t *testing.T) {
	c := Schroeder(testutil.DeterministicNoise(5, 1, 1024))
	for i := 1; i < len(c); i++ {
		if c[i] > c[i-1] {
			t.Fatalf("curve rises at %d: %v > %v", i, c[i], c[i-1])
		}
	}
	if got := Schroeder([]float64{0, 0}); got[0] != 0 {
		t.Fatalf("silent curve = %v, want zeros", got)
	}
}

func TestReverbDecayFollowsParameter(t *testing.T) {
	measure := func(decay float64) float64 {
		p := &unit.Params{}
		u, err := catalog.New("reverb", unit.Context{SampleRate: sr}, p)
		if err != nil {
			t.Fatalf("catalog.New: %v", err)
		}
		p.F[2] = decay
		r, err := Measure(u, 4)
		if err != nil {
			t.Fatalf("Measure(decay=%v): %v", decay, err)
		}
		return r.RT60
	}

	short, long := measure(-1), measure(1)
	if !(long > 1.5*short) {
		t.Fatalf("RT60 %v s at decay 2 s, %v s at decay 0.5 s", long, short)
	}
}
