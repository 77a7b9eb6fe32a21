package response

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// ErrTone is returned for tone frequencies outside (0, Nyquist).
var ErrTone = errors.New("response: tone frequency out of range")

// goertzel evaluates one DFT bin over the samples fed to it.
type goertzel struct {
	coeff  float64
	s0, s1 float64
}

func newGoertzel(hz, sampleRate float64) goertzel {
	return goertzel{coeff: 2 * math.Cos(2*math.Pi*hz/sampleRate)}
}

func (g *goertzel) block(x []float64) {
	s0, s1, c := g.s0, g.s1, g.coeff
	for _, v := range x {
		s0, s1 = v+c*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

func (g *goertzel) power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// ToneLevel returns the peak amplitude of the hz component of x.
func ToneLevel(x []float64, hz, sampleRate float64) float64 {
	if len(x) == 0 {
		return 0
	}
	g := newGoertzel(hz, sampleRate)
	g.block(x)
	return 2 * math.Sqrt(math.Max(g.power(), 0)) / float64(len(x))
}

// ToneGain feeds a sine of the given amplitude at hz through u and returns
// the steady-state output level at hz relative to the input. The first
// quarter of the n rendered samples is skipped to let the unit settle.
// Unlike Measure it also characterizes nonlinear and time-variant units.
func ToneGain(u unit.Unit, hz, amplitude float64, n int) (float64, error) {
	sr := unit.SampleRateOf(u)
	if !(hz > 0 && hz < sr/2) {
		return 0, ErrTone
	}
	if n <= 0 || n > MaxLength {
		return 0, ErrLength
	}

	in := make([]float64, n)
	w := 2 * math.Pi * hz / sr
	for i := range in {
		in[i] = amplitude * math.Sin(w*float64(i))
	}

	u.Suspend()
	out := unit.Render(u, in, 0)

	// Whole cycles keep leakage out of the bin.
	skip := n / 4
	period := sr / hz
	cycles := math.Floor(float64(n-skip) / period)
	if cycles < 1 {
		cycles = 1
	}
	end := min(n, skip+int(math.Round(cycles*period)))

	return ToneLevel(out[skip:end], hz, sr) / amplitude, nil
}
