package audition

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/dsp/unit/catalog"
)

func newUnit(t *testing.T, name string) unit.Unit {
	t.Helper()

	u, err := catalog.New(name, unit.Context{SampleRate: 48000}, nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return u
}

func TestStreamLength(t *testing.T) {
	for _, frames := range []int{1, 31, 32, 100, 4096} {
		s, err := NewStream(newUnit(t, "clipper"), SourceSine, 440, 0.5, frames)
		if err != nil {
			t.Fatalf("NewStream: %v", err)
		}
		data, err := io.ReadAll(s)
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if got, want := len(data), frames*BytesPerFrame; got != want {
			t.Fatalf("frames=%d: read %d bytes, want %d", frames, got, want)
		}
		if s.Remaining() != 0 {
			t.Fatalf("Remaining() = %d, want 0", s.Remaining())
		}
	}
}

func TestStreamRejectsEmpty(t *testing.T) {
	if _, err := NewStream(newUnit(t, "clipper"), SourceSine, 440, 0.5, 0); err == nil {
		t.Fatal("expected error for zero frames")
	}
}

func TestStreamCarriesSourceThroughUnit(t *testing.T) {
	s, _ := NewStream(newUnit(t, "clipper"), SourceSine, 1000, 0.5, 480)
	data, _ := io.ReadAll(s)

	peak := 0.0
	for i := 0; i < len(data); i += BytesPerFrame {
		l := math.Float32frombits(binary.LittleEndian.Uint32(data[i:]))
		r := math.Float32frombits(binary.LittleEndian.Uint32(data[i+4:]))
		if l != r {
			t.Fatalf("frame %d: left %v, right %v", i/BytesPerFrame, l, r)
		}
		peak = math.Max(peak, math.Abs(float64(l)))
	}
	if math.Abs(peak-0.5) > 1e-3 {
		t.Fatalf("peak = %v, want 0.5", peak)
	}
}

func TestStreamSilenceThroughOscillator(t *testing.T) {
	s, _ := NewStream(newUnit(t, "osc_sin"), SourceSilence, 0, 1, 1024)
	data, _ := io.ReadAll(s)

	var energy float64
	for i := 0; i < len(data); i += 4 {
		v := float64(math.Float32frombits(binary.LittleEndian.Uint32(data[i:])))
		energy += v * v
	}
	if energy == 0 {
		t.Fatal("oscillator stayed silent")
	}
}

func TestStreamSmallReads(t *testing.T) {
	s, _ := NewStream(newUnit(t, "clipper"), SourceNoise, 0, 0.5, 40)
	buf := make([]byte, 3)
	total := 0
	for {
		n, err := s.Read(buf)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	if total != 40*BytesPerFrame {
		t.Fatalf("read %d bytes, want %d", total, 40*BytesPerFrame)
	}
}

func TestParseSource(t *testing.T) {
	for i, name := range SourceNames() {
		got, err := ParseSource(name)
		if err != nil || got != Source(i) {
			t.Fatalf("ParseSource(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseSource("pink"); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
