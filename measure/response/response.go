package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/dsp/window"
)

const (
	// MaxLength bounds the impulse response length of one measurement.
	MaxLength = 1 << 20

	fadeFraction = 8
)

// ErrLength is returned for measurement lengths outside (0, MaxLength].
var ErrLength = errors.New("response: invalid length")

// Response is the magnitude spectrum of a unit's impulse response. Mag
// holds the bins from DC to Nyquist.
type Response struct {
	SampleRate float64
	Size       int
	Mag        []float64
}

// Measure suspends u, renders n samples of its impulse response and
// transforms it. n is rounded up to a power of two of at least one block.
// Responses longer than the measurement are faded out over the last eighth.
func Measure(u unit.Unit, n int) (*Response, error) {
	if n <= 0 || n > MaxLength {
		return nil, fmt.Errorf("%w: %d", ErrLength, n)
	}

	size := max(nextPow2(n), core.BlockSize)
	ir := unit.ImpulseResponse(u, size, 0)
	if u.TailLength() > size {
		// Truncated response: taper the cut.
		window.FadeOut(window.TypeHann, ir, size/fadeFraction)
	}

	in := make([]complex128, size)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	spec := make([]complex128, size)
	if err := plan.Forward(spec, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(spec[k])
		im[k] = imag(spec[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return &Response{SampleRate: unit.SampleRateOf(u), Size: size, Mag: mag}, nil
}

// BinHz returns the centre frequency of bin k.
func (r *Response) BinHz(k int) float64 {
	return float64(k) * r.SampleRate / float64(r.Size)
}

// Bin returns the index of the bin nearest to hz, clamped to [0, Nyquist].
func (r *Response) Bin(hz float64) int {
	k := int(math.Round(hz * float64(r.Size) / r.SampleRate))
	return core.ClampInt(k, 0, len(r.Mag)-1)
}

// At returns the linear magnitude of the bin nearest to hz.
func (r *Response) At(hz float64) float64 {
	return r.Mag[r.Bin(hz)]
}

// DB returns At(hz) in decibels, floored at -240 dB.
func (r *Response) DB(hz float64) float64 {
	return 20 * math.Log10(math.Max(r.At(hz), 1e-12))
}

// GraphError returns the largest difference in dB between the unit's
// FreqGraph and the measurement at points log-spaced frequencies in
// [from, to]. ok is false when the unit has no graph.
func GraphError(u unit.Unit, r *Response, from, to float64, points int) (worst float64, ok bool) {
	if !u.InitFreqGraph() {
		return 0, false
	}

	for _, hz := range LogSpace(from, to, points) {
		g := 20 * math.Log10(math.Max(u.FreqGraph(hz), 1e-12))
		worst = math.Max(worst, math.Abs(g-r.DB(hz)))
	}

	return worst, true
}

// LogSpace returns points frequencies spaced evenly in octaves over
// [from, to]. A single point yields from.
func LogSpace(from, to float64, points int) []float64 {
	if points <= 0 || from <= 0 || to <= 0 {
		return nil
	}

	out := make([]float64, points)
	if points == 1 {
		out[0] = from
		return out
	}

	ratio := math.Log2(to / from)
	for i := range out {
		out[i] = from * math.Exp2(ratio*float64(i)/float64(points-1))
	}

	return out
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
