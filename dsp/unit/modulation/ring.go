package modulation

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/halfrate"
	"github.com/cwbudde/algo-voicefx/dsp/osc"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// Ring multiplies its input with a sine carrier:
//
//	out = in + amount*(in*carrier - in)
//
// The carrier key-tracks and runs at twice the sample rate.
type Ring struct {
	unit.Base

	carrier osc.Quadrature
	over    [2]*halfrate.Oversampler
	amount  param.Lipol

	wave [2 * core.BlockSize]float64
	mix  [2 * core.BlockSize]float64
}

// NewRing returns the ring modulator.
func NewRing(ctx unit.Context, p *unit.Params) *Ring {
	return &Ring{
		Base: unit.NewBase("RING", ctx, p,
			[]unit.Slot{
				{Label: "carrier", Desc: param.Freq.WithDefault(0)},
				{Label: "amount", Desc: param.Percent},
			},
		),
		carrier: osc.NewQuadrature(),
		over:    [2]*halfrate.Oversampler{halfrate.New(), halfrate.New()},
	}
}

// prepare renders the carrier and the amount ramp for n oversampled frames.
// The amount ramp runs at the base rate, so each value covers two frames.
func (u *Ring) prepare(n int, pitch float64) {
	u.carrier.SetRate(0.5 * u.Omega(0, pitch))
	for i := range n {
		u.wave[i], _ = u.carrier.Process()
	}

	u.amount.SetTarget(u.Clamped(1))
	for i := 0; i < n; i += 2 {
		a := u.amount.Next()
		u.mix[i], u.mix[i+1] = a, a
	}
}

func (u *Ring) run(ch int, buf []float64) {
	u.over[ch].Process(buf, func(x2 []float64) {
		for i, x := range x2 {
			x2[i] = x + u.mix[i]*(x*u.wave[i]-x)
		}
	})
}

// Process renders one mono block.
func (u *Ring) Process(in, out []float64, pitch float64) {
	n := len(in)
	u.prepare(2*n, pitch)
	copy(out[:n], in)
	u.run(0, out[:n])
}

// ProcessStereo renders one stereo block; both channels share the carrier.
func (u *Ring) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)
	u.prepare(2*n, pitch)
	copy(outL[:n], inL)
	copy(outR[:n], inR)
	u.run(0, outL[:n])
	u.run(1, outR[:n])
}

// Suspend restarts the carrier and clears the resampling filters.
func (u *Ring) Suspend() {
	u.carrier.Reset()
	u.over[0].Reset()
	u.over[1].Reset()
	u.amount.Reset()
}

// TailLength is the ring out of the resampling filters.
func (u *Ring) TailLength() int { return u.over[0].TailLength() }
