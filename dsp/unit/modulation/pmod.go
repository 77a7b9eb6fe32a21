package modulation

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/halfrate"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// PMod replaces its input with a sine carrier whose phase the input drives:
//
//	out = post * sin(phase + pre*in)
type PMod struct {
	unit.Base

	over      [2]*halfrate.Oversampler
	phase     float64
	pre, post param.Lipol

	phases [2 * core.BlockSize]float64
	pres   [2 * core.BlockSize]float64
	posts  [2 * core.BlockSize]float64
}

// NewPMod returns the phase modulator.
func NewPMod(ctx unit.Context, p *unit.Params) *PMod {
	return &PMod{
		Base: unit.NewBase("PMOD", ctx, p,
			[]unit.Slot{
				{Label: "carrier", Desc: param.Freq.WithDefault(0)},
				{Label: "pre gain", Desc: param.DB},
				{Label: "post gain", Desc: param.DB},
			},
		),
		over: [2]*halfrate.Oversampler{halfrate.New(), halfrate.New()},
	}
}

func (u *PMod) prepare(n int, pitch float64) {
	inc := 0.5 * u.Omega(0, pitch)
	for i := range n {
		u.phases[i] = u.phase
		u.phase += inc
		if u.phase >= 2*math.Pi {
			u.phase -= 2 * math.Pi
		}
	}

	u.pre.SetTarget(u.Gain(1))
	u.post.SetTarget(u.Gain(2))
	for i := 0; i < n; i += 2 {
		a, b := u.pre.Next(), u.post.Next()
		u.pres[i], u.pres[i+1] = a, a
		u.posts[i], u.posts[i+1] = b, b
	}
}

func (u *PMod) run(ch int, buf []float64) {
	u.over[ch].Process(buf, func(x2 []float64) {
		for i, x := range x2 {
			x2[i] = u.posts[i] * math.Sin(u.phases[i]+u.pres[i]*x)
		}
	})
}

// Process renders one mono block.
func (u *PMod) Process(in, out []float64, pitch float64) {
	n := len(in)
	u.prepare(2*n, pitch)
	copy(out[:n], in)
	u.run(0, out[:n])
}

// ProcessStereo renders one stereo block; both channels share the carrier.
func (u *PMod) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)
	u.prepare(2*n, pitch)
	copy(outL[:n], inL)
	copy(outR[:n], inR)
	u.run(0, outL[:n])
	u.run(1, outR[:n])
}

// Suspend restarts the carrier.
func (u *PMod) Suspend() {
	u.phase = 0
	u.over[0].Reset()
	u.over[1].Reset()
	u.pre.Reset()
	u.post.Reset()
}

// TailLength is infinite: the carrier sounds without input.
func (u *PMod) TailLength() int { return core.TailInfinite }
