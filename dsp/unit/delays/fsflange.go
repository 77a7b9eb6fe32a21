package delays

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/dsp/unit/modulation"
)

// FSFlange sums an up and a down shifted copy of its input, which beat
// against each other like a flanger that never stops sweeping. The wet sum
// of each block is fed back into the next one.
type FSFlange struct {
	unit.Base
	unit.Scratch

	shift  [2]*modulation.FreqShift
	shiftP [2]unit.Params

	dry, wet, feedback param.Lipol

	fb       [2]core.Block
	inL, inR core.Block
	up       [2]core.Block
	down     [2]core.Block
}

// NewFSFlange returns the frequency shift flanger.
func NewFSFlange(ctx unit.Context, p *unit.Params) *FSFlange {
	u := &FSFlange{
		Base: unit.NewBase("fs_flange", ctx, p,
			[]unit.Slot{
				{Label: "shift", Desc: param.PercentBP.WithDefault(0.1)},
				{Label: "stereo offset", Desc: param.PercentBP.WithDefault(0)},
				{Label: "feedback", Desc: param.PercentBP.WithDefault(0)},
				{Label: "dry", Desc: param.DB},
				{Label: "wet", Desc: param.DB},
			},
			unit.Selector{Label: "range", Entries: modulation.ShiftRanges},
		),
	}
	for i := range u.shift {
		u.shift[i] = modulation.NewFreqShift(ctx, &u.shiftP[i])
		u.shift[i].InitParams()
	}
	return u
}

// SetSampleRate forwards the rate to both shifters.
func (u *FSFlange) SetSampleRate(sampleRate float64) {
	u.Base.SetSampleRate(sampleRate)
	for _, s := range u.shift {
		s.SetSampleRate(sampleRate)
	}
}

func (u *FSFlange) configure() {
	shift, offset, rng := u.Clamped(0), u.Clamped(1), u.Int(0)
	u.shiftP[0].F[0], u.shiftP[0].F[1] = shift, offset
	u.shiftP[1].F[0], u.shiftP[1].F[1] = -shift, -offset
	u.shiftP[0].I[0], u.shiftP[1].I[0] = rng, rng
}

// ProcessStereo renders one stereo block.
func (u *FSFlange) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)
	u.configure()

	u.feedback.SetTarget(clampFeedback(u.Clamped(2)))
	u.dry.SetTarget(u.Gain(3))
	u.wet.SetTarget(u.Gain(4))

	l, r := u.inL[:n], u.inR[:n]
	for i := range n {
		g := u.feedback.Next()
		l[i] = inL[i] + g*u.fb[0][i]
		r[i] = inR[i] + g*u.fb[1][i]
	}

	u.shift[0].ProcessStereo(l, r, u.up[0][:n], u.up[1][:n], pitch)
	u.shift[1].ProcessStereo(l, r, u.down[0][:n], u.down[1][:n], pitch)

	for i := range n {
		wl := 0.5 * (u.up[0][i] + u.down[0][i])
		wr := 0.5 * (u.up[1][i] + u.down[1][i])
		u.fb[0][i], u.fb[1][i] = wl, wr

		d, w := u.dry.Next(), u.wet.Next()
		outL[i] = d*inL[i] + w*wl
		outR[i] = d*inR[i] + w*wr
	}
	core.Zero(u.fb[0][n:])
	core.Zero(u.fb[1][n:])
}

// Process renders the average of both channels.
func (u *FSFlange) Process(in, out []float64, pitch float64) {
	u.MonoFromStereo(u, in, out, pitch)
}

// Suspend clears both shifters and the feedback block.
func (u *FSFlange) Suspend() {
	for _, s := range u.shift {
		s.Suspend()
	}
	u.fb = [2]core.Block{}
	u.dry.Reset()
	u.wet.Reset()
	u.feedback.Reset()
}

// TailLength is infinite: the block feedback loop can sustain.
func (u *FSFlange) TailLength() int { return core.TailInfinite }
