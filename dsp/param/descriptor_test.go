package param

import (
	"errors"
	"math"
	"testing"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Descriptor
	}{
		{name: "freq", in: FreqDef, want: Descriptor{Kind: KindFloat, Min: -5, Step: 0.04, Max: 6, Default: 5, Unit: "Hz"}},
		{name: "time", in: TimeDef, want: Descriptor{Kind: KindFloat, Min: -10, Step: 0.1, Max: 10, Default: 4, Unit: "s"}},
		{name: "dbbp", in: DBBPDef, want: Descriptor{Kind: KindFloat, Min: -48, Step: 0.1, Max: 48, Default: 0, Unit: "dB"}},
		{name: "bw default clamped", in: BWDef, want: Descriptor{Kind: KindFloat, Min: 0.001, Step: 0.005, Max: 6, Default: 0.001, Unit: "oct"}},
		{name: "int", in: "i,0,1,3,2,", want: Descriptor{Kind: KindInt, Min: 0, Step: 1, Max: 3, Default: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"f,0,1,2,1",
		"x,0,1,2,1,Hz",
		"f,zero,1,2,1,Hz",
		"f,0,0,2,1,Hz",
		"f,3,1,2,1,Hz",
	} {
		if _, err := Parse(in); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Parse(%q) error = %v, want ErrMalformed", in, err)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, d := range []Descriptor{Freq, Percent, MPitch, DBMod} {
		back, err := Parse(d.String())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", d.String(), err)
		}
		if back != d {
			t.Fatalf("round trip %q = %+v, want %+v", d.String(), back, d)
		}
	}
}

func TestClampAndQuantize(t *testing.T) {
	if got := Percent.Clamp(1.5); got != 1 {
		t.Fatalf("Clamp(1.5) = %v, want 1", got)
	}
	if got := DB.Quantize(-3.04); math.Abs(got+3) > 1e-9 {
		t.Fatalf("Quantize(-3.04) = %v, want -3", got)
	}
	if got := Percent.WithDefault(2).Default; got != 1 {
		t.Fatalf("WithDefault(2).Default = %v, want 1", got)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		d    Descriptor
		v    float64
		want string
	}{
		{d: Freq, v: 0, want: "440.00 Hz"},
		{d: Freq, v: 2, want: "1.76 kHz"},
		{d: LFOFreq, v: 2, want: "4.00 Hz"},
		{d: Time, v: -1, want: "500.0 ms"},
		{d: Percent, v: 0.25, want: "25.0 %"},
		{d: DB, v: -6, want: "-6.0 dB"},
	}

	for _, tt := range tests {
		if got := tt.d.Display(tt.v); got != tt.want {
			t.Fatalf("Display(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestChoice(t *testing.T) {
	d := Choice(4, 9)
	if d.Kind != KindInt || d.Max != 3 || d.Default != 3 {
		t.Fatalf("Choice(4, 9) = %+v", d)
	}
}
