// Package delay provides the fixed-capacity circular buffer behind the comb,
// chorus, phaser and reverb units.
package delay

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/interp"
)

// ErrCapacity reports a capacity too small to hold the sinc kernel.
var ErrCapacity = errors.New("delay: capacity too small")

// Line is a circular delay line. Delays count writes: Read(1) returns the
// most recently written sample.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line holding capacity samples. The capacity is fixed
// for the line's lifetime and must leave room for two sinc kernels.
func New(capacity int) (*Line, error) {
	if capacity < 2*interp.SincTaps {
		return nil, fmt.Errorf("%w: %d < %d", ErrCapacity, capacity, 2*interp.SincTaps)
	}

	return &Line{buffer: make([]float64, capacity)}, nil
}

// MustNew is New for capacities known to be valid at compile time.
func MustNew(capacity int) *Line {
	d, err := New(capacity)
	if err != nil {
		panic(err)
	}

	return d
}

// Len returns the capacity.
func (d *Line) Len() int {
	return len(d.buffer)
}

// MinSincDelay is the smallest delay ReadSinc can reach.
func (d *Line) MinSincDelay() float64 { return interp.SincTaps }

// MaxSincDelay is the largest delay ReadSinc can reach.
func (d *Line) MaxSincDelay() float64 { return float64(len(d.buffer) - interp.SincTaps) }

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := (d.writePos - delay) % size
	if readPos < 0 {
		readPos += size
	}

	return d.buffer[readPos]
}

// ReadHermite reads a fractional delay with cubic Hermite interpolation.
// The delay is clamped to [1, Len()-3].
func (d *Line) ReadHermite(delay float64) float64 {
	delay = math.Min(math.Max(delay, 1), float64(len(d.buffer)-3))
	if math.IsNaN(delay) {
		delay = 1
	}

	p := int(delay)
	t := delay - float64(p)

	// Larger delay is older, so the neighbors run backwards in time.
	return interp.Hermite4(t, d.Read(max(p-1, 1)), d.Read(p), d.Read(p+1), d.Read(p+2))
}

// ReadSinc reads a fractional delay through the windowed-sinc table. The
// fraction is quantized to the nearest table phase, so integer delays are
// exact. The delay is clamped to [MinSincDelay, MaxSincDelay].
func (d *Line) ReadSinc(delay float64) float64 {
	delay = math.Min(math.Max(delay, d.MinSincDelay()), d.MaxSincDelay())
	if math.IsNaN(delay) {
		delay = d.MinSincDelay()
	}

	whole, phase := interp.SplitPosition(delay)
	kernel := interp.SincKernel(phase)

	size := len(d.buffer)
	pos := (d.writePos - whole + interp.SincCenter) % size
	if pos < 0 {
		pos += size
	}

	// Tap k sits at delay whole+k-SincCenter, walking backwards from pos.
	sum := 0.0
	for _, c := range kernel {
		sum += c * d.buffer[pos]
		pos--
		if pos < 0 {
			pos = size - 1
		}
	}

	return sum
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
