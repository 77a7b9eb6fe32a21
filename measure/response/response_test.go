package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/dsp/unit/catalog"
)

var ctx = unit.Context{SampleRate: 48000}

func newUnit(t *testing.T, name string, set func(p *unit.Params)) unit.Unit {
	t.Helper()

	p := &unit.Params{}
	u, err := catalog.New(name, ctx, p)
	if err != nil {
		t.Fatalf("catalog.New(%q): %v", name, err)
	}
	if set != nil {
		set(p)
	}
	return u
}

func TestMeasureRejectsBadLength(t *testing.T) {
	u := newUnit(t, "clipper", nil)
	for _, n := range []int{0, -1, MaxLength + 1} {
		if _, err := Measure(u, n); !errors.Is(err, ErrLength) {
			t.Fatalf("Measure(%d) error = %v, want ErrLength", n, err)
		}
	}
}

func TestMeasureRoundsToPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: 1, want: 32},
		{n: 1000, want: 1024},
		{n: 4096, want: 4096},
	}
	u := newUnit(t, "clipper", nil)
	for _, tt := range tests {
		r, err := Measure(u, tt.n)
		if err != nil {
			t.Fatalf("Measure(%d): %v", tt.n, err)
		}
		if r.Size != tt.want || len(r.Mag) != tt.want/2+1 {
			t.Fatalf("Measure(%d): size %d with %d bins, want %d", tt.n, r.Size, len(r.Mag), tt.want)
		}
	}
}

func TestPassThroughIsFlat(t *testing.T) {
	r, err := Measure(newUnit(t, "clipper", nil), 1024)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	for k, m := range r.Mag {
		if math.Abs(m-1) > 1e-12 {
			t.Fatalf("Mag[%d] = %v, want 1", k, m)
		}
	}
	if r.SampleRate != 48000 {
		t.Fatalf("SampleRate = %v, want 48000", r.SampleRate)
	}
}

func TestFreqGraphMatchesMeasurement(t *testing.T) {
	tests := []struct {
		name string
		set  func(p *unit.Params)
	}{
		{name: "LP2A", set: func(p *unit.Params) { p.F[0] = math.Log2(1000.0 / 440) }},
		{name: "HP2A", set: func(p *unit.Params) { p.F[0], p.F[1] = math.Log2(500.0/440), 0.5 }},
		{name: "PKA", set: func(p *unit.Params) { p.F[1] = 9 }},
		{name: "EQ6B", set: func(p *unit.Params) { p.F[2], p.F[4] = 6, -6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUnit(t, tt.name, tt.set)
			r, err := Measure(u, 1<<15)
			if err != nil {
				t.Fatalf("Measure: %v", err)
			}
			worst, ok := GraphError(u, r, 50, 15000, 40)
			if !ok {
				t.Fatal("no frequency graph")
			}
			if worst > 0.5 {
				t.Fatalf("graph differs from measurement by %.2f dB", worst)
			}
		})
	}
}

func TestGraphErrorWithoutGraph(t *testing.T) {
	u := newUnit(t, "clipper", nil)
	r, _ := Measure(u, 64)
	if _, ok := GraphError(u, r, 100, 1000, 4); ok {
		t.Fatal("clipper reported a graph")
	}
}

func TestBinLookup(t *testing.T) {
	r := &Response{SampleRate: 48000, Size: 480, Mag: make([]float64, 241)}
	tests := []struct {
		hz   float64
		want int
	}{
		{hz: 0, want: 0},
		{hz: 100, want: 1},
		{hz: 149, want: 1},
		{hz: 151, want: 2},
		{hz: 30000, want: 240},
		{hz: -5, want: 0},
	}
	for _, tt := range tests {
		if got := r.Bin(tt.hz); got != tt.want {
			t.Fatalf("Bin(%v) = %d, want %d", tt.hz, got, tt.want)
		}
	}
	if got := r.BinHz(3); got != 300 {
		t.Fatalf("BinHz(3) = %v, want 300", got)
	}
}

func TestLogSpace(t *testing.T) {
	got := LogSpace(100, 1600, 5)
	want := []float64{100, 200, 400, 800, 1600}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("LogSpace[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := LogSpace(100, 200, 1); len(got) != 1 || got[0] != 100 {
		t.Fatalf("LogSpace single = %v, want [100]", got)
	}
	if got := LogSpace(0, 200, 4); got != nil {
		t.Fatalf("LogSpace from 0 = %v, want nil", got)
	}
}

func TestToneLevel(t *testing.T) {
	x := make([]float64, 4800)
	for i := range x {
		x[i] = 0.3 * math.Sin(2*math.Pi*1000*float64(i)/48000)
	}
	if got := ToneLevel(x, 1000, 48000); math.Abs(got-0.3) > 1e-6 {
		t.Fatalf("ToneLevel at 1 kHz = %v, want 0.3", got)
	}
	if got := ToneLevel(x, 2000, 48000); got > 1e-6 {
		t.Fatalf("ToneLevel at 2 kHz = %v, want 0", got)
	}
	if got := ToneLevel(nil, 1000, 48000); got != 0 {
		t.Fatalf("ToneLevel(nil) = %v, want 0", got)
	}
}

func TestToneGainMatchesGraphForLinearUnits(t *testing.T) {
	u := newUnit(t, "PKA", func(p *unit.Params) { p.F[1] = 9 })
	for _, hz := range []float64{200, 440, 1000} {
		got, err := ToneGain(u, hz, 0.5, 48000)
		if err != nil {
			t.Fatalf("ToneGain: %v", err)
		}
		u.InitFreqGraph()
		if want := u.FreqGraph(hz); math.Abs(got-want) > 0.02*want {
			t.Fatalf("ToneGain(%v) = %v, FreqGraph %v", hz, got, want)
		}
	}
}

func TestToneGainOfClipper(t *testing.T) {
	u := newUnit(t, "clipper", nil)
	quiet, _ := ToneGain(u, 1000, 0.5, 9600)
	loud, _ := ToneGain(u, 1000, 4, 9600)
	if math.Abs(quiet-1) > 1e-6 {
		t.Fatalf("quiet gain = %v, want 1", quiet)
	}
	if loud > 0.5 {
		t.Fatalf("loud gain = %v, want clipped", loud)
	}
}

func TestToneGainRejectsBadFrequency(t *testing.T) {
	u := newUnit(t, "clipper", nil)
	for _, hz := range []float64{0, 24000, -1} {
		if _, err := ToneGain(u, hz, 1, 1024); !errors.Is(err, ErrTone) {
			t.Fatalf("ToneGain(%v) error = %v, want ErrTone", hz, err)
		}
	}
}
