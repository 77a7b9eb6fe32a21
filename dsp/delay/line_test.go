package delay

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/interp"
)

func TestNewValidation(t *testing.T) {
	for _, n := range []int{-1, 0, 2*interp.SincTaps - 1} {
		if _, err := New(n); !errors.Is(err, ErrCapacity) {
			t.Fatalf("New(%d) error = %v, want ErrCapacity", n, err)
		}
	}

	d, err := New(64)
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 64 {
		t.Fatalf("Len: got %d want 64", d.Len())
	}
}

func TestReadWrite(t *testing.T) {
	d := MustNew(32)

	for i := range 32 {
		d.Write(float64(i))
	}
	if got := d.Read(1); got != 31 {
		t.Fatalf("Read(1) = %v, want most recent 31", got)
	}
	if got := d.Read(3); got != 29 {
		t.Fatalf("Read(3) = %v, want 29", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d := MustNew(24)

	for i := range 50 {
		d.Write(float64(i))
	}
	if got := d.Read(1); got != 49 {
		t.Fatalf("Read(1) = %v, want 49", got)
	}
	if got := d.Read(24); got != 26 {
		t.Fatalf("Read(24) = %v, want 26", got)
	}
}

func TestReadSincIntegerDelaysAreExact(t *testing.T) {
	d := MustNew(128)
	for i := range 128 {
		d.Write(math.Sin(float64(i) * 0.37))
	}

	for delay := interp.SincTaps; delay <= 128-interp.SincTaps; delay++ {
		if got, want := d.ReadSinc(float64(delay)), d.Read(delay); got != want {
			t.Fatalf("ReadSinc(%d) = %v, want %v", delay, got, want)
		}
	}
}

func TestReadSincFractionalOnSlowSine(t *testing.T) {
	d := MustNew(256)
	const w = 0.1

	n := 256
	for i := range n {
		d.Write(math.Sin(w * float64(i)))
	}

	// Delay k reads the sample written at index n-k.
	for _, delay := range []float64{20.5, 33.25, 100.75} {
		want := math.Sin(w * (float64(n) - delay))
		if got := d.ReadSinc(delay); math.Abs(got-want) > 1e-3 {
			t.Fatalf("ReadSinc(%v) = %v, want %v", delay, got, want)
		}
	}
}

func TestReadSincClampsRange(t *testing.T) {
	d := MustNew(64)
	for i := range 64 {
		d.Write(float64(i))
	}

	if got, want := d.ReadSinc(0), d.Read(interp.SincTaps); got != want {
		t.Fatalf("ReadSinc(0) = %v, want clamped %v", got, want)
	}
	if got, want := d.ReadSinc(1e9), d.Read(64-interp.SincTaps); got != want {
		t.Fatalf("ReadSinc(huge) = %v, want clamped %v", got, want)
	}
	if got := d.ReadSinc(math.NaN()); math.IsNaN(got) {
		t.Fatal("ReadSinc(NaN) returned NaN")
	}
}

func TestReadHermiteLinearRamp(t *testing.T) {
	d := MustNew(32)
	for i := range 32 {
		d.Write(float64(i))
	}

	// Delay 3.5 sits between samples 29 and 28.
	if got := d.ReadHermite(3.5); math.Abs(got-28.5) > 1e-12 {
		t.Fatalf("ReadHermite(3.5) = %v, want 28.5", got)
	}
}

func TestReset(t *testing.T) {
	d := MustNew(32)
	d.Write(1)
	d.Write(2)
	d.Reset()

	for i := 1; i <= 32; i++ {
		if got := d.Read(i); got != 0 {
			t.Fatalf("after reset Read(%d) = %v, want 0", i, got)
		}
	}
}
