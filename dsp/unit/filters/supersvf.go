package filters

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/filter/halfrate"
	"github.com/cwbudde/algo-voicefx/dsp/filter/svf"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// SuperSVF is a multimode state variable filter running at twice the
// sample rate. Lanes 0 and 1 hold the first stage of the left and right
// channel, lanes 2 and 3 the second stage of the 4-pole slope.
// Coefficients glide sample by sample across each oversampled block.
type SuperSVF struct {
	unit.Base
	unit.Scratch

	quad   svf.Quad
	over   [2]*halfrate.Oversampler
	cur    svf.Coefficients
	target svf.Coefficients
	primed bool
	pitch  float64

	ramp [2 * core.BlockSize]svf.Coefficients
}

// NewSuperSVF returns the oversampled state variable filter.
func NewSuperSVF(ctx unit.Context, p *unit.Params) *SuperSVF {
	return &SuperSVF{
		Base: unit.NewBase("SuperSVF", ctx, p,
			[]unit.Slot{cutoffSlot, resonanceSlot},
			unit.Selector{Label: "type", Entries: []string{"LP", "BP", "HP", "Notch", "Peak"}},
			unit.Selector{Label: "slope", Entries: []string{"2 pole", "4 pole"}},
		),
		over: [2]*halfrate.Oversampler{halfrate.New(), halfrate.New()},
	}
}

// CalcCoeffs designs the target coefficients at the oversampled rate.
func (u *SuperSVF) CalcCoeffs() {
	u.target = svf.Design(u.Hz(0, u.pitch), design.ResonanceToQ(u.Clamped(1)), 2*u.SampleRate)
	if !u.primed {
		u.cur = u.target
		u.primed = true
	}
}

func (u *SuperSVF) prepare(n int, pitch float64) {
	u.pitch = pitch
	u.CalcCoeffs()

	inv := 1 / float64(n)
	for i := range n {
		u.ramp[i] = u.cur.Lerp(u.target, float64(i+1)*inv)
	}
	u.cur = u.target
}

func (u *SuperSVF) run(ch int, buf []float64) {
	mode := svf.Mode(u.Int(0))
	fourPole := u.Int(1) == 1

	u.over[ch].Process(buf, func(x2 []float64) {
		for i, x := range x2 {
			c := &u.ramp[i]
			y := u.quad.TickLane(c, mode, ch, x)
			if fourPole {
				y = u.quad.TickLane(c, mode, ch+2, y)
			}
			x2[i] = y
		}
	})
}

// Process renders one mono block on the left lanes.
func (u *SuperSVF) Process(in, out []float64, pitch float64) {
	n := len(in)
	u.prepare(2*n, pitch)
	copy(out[:n], in)
	u.run(0, out[:n])
}

// ProcessStereo renders one stereo block.
func (u *SuperSVF) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)
	u.prepare(2*n, pitch)
	copy(outL[:n], inL)
	copy(outR[:n], inR)
	u.run(0, outL[:n])
	u.run(1, outR[:n])
}

// Suspend clears the integrators and the resampling filters.
func (u *SuperSVF) Suspend() {
	u.quad.Reset()
	u.over[0].Reset()
	u.over[1].Reset()
	u.primed = false
}

// TailLength is infinite: the filter can self-resonate.
func (u *SuperSVF) TailLength() int { return core.TailInfinite }

// InitFreqGraph refreshes the target coefficients.
func (u *SuperSVF) InitFreqGraph() bool {
	u.CalcCoeffs()
	return true
}

// FreqGraph returns the analytic magnitude of the selected mode and slope.
func (u *SuperSVF) FreqGraph(hz float64) float64 {
	m := u.target.Magnitude(svf.Mode(u.Int(0)), hz, 2*u.SampleRate)
	if u.Int(1) == 1 {
		return m * m
	}
	return m
}
