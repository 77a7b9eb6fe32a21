package delays

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// FauxStereo widens a signal by adding a comb filtered copy to the left
// channel and subtracting it from the right. The source parameter picks
// which input feeds the comb: -1 left, 0 the mid sum, +1 right.
type FauxStereo struct {
	unit.Base
	unit.Scratch

	comb      *Comb
	combP     unit.Params
	amplitude param.Lipol
	source    param.Lipol

	src, wet core.Block
}

// NewFauxStereo returns the stereo widener.
func NewFauxStereo(ctx unit.Context, p *unit.Params) *FauxStereo {
	u := &FauxStereo{
		Base: unit.NewBase("fauxstereo", ctx, p, []unit.Slot{
			{Label: "amplitude", Desc: param.DB.WithDefault(-6)},
			{Label: "comb freq", Desc: param.Freq.WithDefault(-1)},
			{Label: "source", Desc: param.PercentBP.WithDefault(0)},
		}),
	}
	u.comb = NewComb3(ctx, &u.combP)
	u.comb.InitParams()
	return u
}

// SetSampleRate forwards the rate to the comb.
func (u *FauxStereo) SetSampleRate(sampleRate float64) {
	u.Base.SetSampleRate(sampleRate)
	u.comb.SetSampleRate(sampleRate)
}

// ProcessStereo renders one stereo block.
func (u *FauxStereo) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)

	// The comb is fully wet without feedback: a pure delay of 1/freq.
	u.combP.F[0] = u.Clamped(1)
	u.combP.F[1] = 0
	u.combP.F[2] = 1

	u.source.SetTarget(u.Clamped(2))
	src := u.src[:n]
	for i := range n {
		s := 0.5 * (1 + u.source.Next())
		src[i] = inL[i] + s*(inR[i]-inL[i])
	}
	u.comb.Process(src, u.wet[:n], pitch)

	u.amplitude.SetTarget(u.Gain(0))
	for i := range n {
		a := u.amplitude.Next() * u.wet[i]
		outL[i] = inL[i] + a
		outR[i] = inR[i] - a
	}
}

// Process renders one mono block. The added and subtracted copies cancel,
// so mono output equals the input.
func (u *FauxStereo) Process(in, out []float64, pitch float64) {
	u.MonoFromStereo(u, in, out, pitch)
}

// Suspend clears the comb.
func (u *FauxStereo) Suspend() {
	u.comb.Suspend()
	u.amplitude.Reset()
	u.source.Reset()
}

// TailLength is the comb line.
func (u *FauxStereo) TailLength() int { return CombCapacity }
