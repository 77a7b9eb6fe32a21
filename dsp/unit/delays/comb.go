package delays

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/delay"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// CombCapacity is the delay line length of COMB1 and COMB3.
const CombCapacity = 8192

var combSlots = []unit.Slot{
	{Label: "freq", Desc: param.Freq.WithDefault(0)},
	{Label: "feedback", Desc: param.PercentBP.WithDefault(0.5)},
	{Label: "mix", Desc: param.Percent},
}

// Comb is a feedback comb filter tuned by frequency: the loop delay is
// sampleRate/hz. The wet signal is the delayed signal. COMB1 keeps a line
// per channel, COMB3 is mono.
type Comb struct {
	unit.Base
	unit.Scratch

	lines    []*delay.Line
	time     param.Lipol
	feedback param.Lipol
}

func newComb(name string, channels int, ctx unit.Context, p *unit.Params) *Comb {
	u := &Comb{Base: unit.NewBase(name, ctx, p, combSlots)}
	u.lines = make([]*delay.Line, channels)
	for i := range u.lines {
		u.lines[i] = delay.MustNew(CombCapacity)
	}
	return u
}

// NewComb1 returns the stereo comb filter.
func NewComb1(ctx unit.Context, p *unit.Params) *Comb {
	return newComb("COMB1", 2, ctx, p)
}

// NewComb3 returns the mono comb filter.
func NewComb3(ctx unit.Context, p *unit.Params) *Comb {
	return newComb("COMB3", 1, ctx, p)
}

// DelaySamples returns the loop delay for pitch, limited to what the line
// can interpolate.
func (u *Comb) DelaySamples(pitch float64) float64 {
	line := u.lines[0]
	return core.Clamp(u.SampleRate/u.Hz(0, pitch), line.MinSincDelay(), line.MaxSincDelay())
}

func (u *Comb) setTargets(pitch float64) {
	u.time.SetTarget(u.DelaySamples(pitch))
	u.feedback.SetTarget(clampFeedback(u.Clamped(1)))
}

func tick(line *delay.Line, x, d, fb float64) float64 {
	y := line.ReadSinc(d)
	line.Write(x + fb*y)
	return y
}

// Process renders one mono block through the first line.
func (u *Comb) Process(in, out []float64, pitch float64) {
	u.setTargets(pitch)
	mix := u.Clamped(2)
	line := u.lines[0]
	for i, x := range in {
		y := tick(line, x, u.time.Next(), u.feedback.Next())
		out[i] = x + mix*(y-x)
	}
}

// ProcessStereo renders one stereo block. COMB3 runs on the mid signal.
func (u *Comb) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	if len(u.lines) < 2 {
		u.StereoFromMono(u, inL, inR, outL, outR, pitch)
		return
	}

	u.setTargets(pitch)
	mix := u.Clamped(2)
	for i := range inL {
		d, fb := u.time.Next(), u.feedback.Next()
		l := tick(u.lines[0], inL[i], d, fb)
		r := tick(u.lines[1], inR[i], d, fb)
		outL[i] = inL[i] + mix*(l-inL[i])
		outR[i] = inR[i] + mix*(r-inR[i])
	}
}

// Suspend clears the lines and lets the smoothers jump.
func (u *Comb) Suspend() {
	for _, l := range u.lines {
		l.Reset()
	}
	u.time.Reset()
	u.feedback.Reset()
}

// TailLength is infinite: the loop sustains at high feedback.
func (u *Comb) TailLength() int { return core.TailInfinite }
