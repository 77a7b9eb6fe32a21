package delays

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/delay"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/osc"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

const chorusVoices = 4

// Chorus reads four taps from one line. A quadrature LFO sweeps the taps a
// quarter cycle apart around a common delay time, and each tap sits at its
// own place in the stereo field. Feedback returns the tap average to the
// line.
type Chorus struct {
	unit.Base
	unit.Scratch

	line    *delay.Line
	lfo     osc.Quadrature
	time    param.Lag
	fb      param.Lipol
	width   param.Lipol
	lowcut  biquad.Filter
	highcut biquad.Filter

	wetL, wetR core.Block
}

// NewChorus returns the chorus.
func NewChorus(ctx unit.Context, p *unit.Params) *Chorus {
	u := &Chorus{
		Base: unit.NewBase("chorus", ctx, p, []unit.Slot{
			{Label: "time", Desc: param.Time.WithDefault(-6)},
			{Label: "rate", Desc: param.LFOFreq.WithDefault(-2)},
			{Label: "depth", Desc: param.Percent.WithDefault(0.3)},
			{Label: "feedback", Desc: param.PercentBP.WithDefault(0)},
			{Label: "lowcut", Desc: param.Freq.WithDefault(-3)},
			{Label: "highcut", Desc: param.Freq.WithDefault(3)},
			{Label: "width", Desc: param.Percent},
			{Label: "mix", Desc: param.Percent.WithDefault(0.5)},
		}),
		line: delay.MustNew(LongCapacity),
		lfo:  osc.NewQuadrature(),
	}
	u.setLagRates()
	return u
}

func (u *Chorus) setLagRates() {
	u.time.SetRate(param.LagRate(timeLagSeconds, u.SampleRate))
}

// SetSampleRate retunes the time lags.
func (u *Chorus) SetSampleRate(sampleRate float64) {
	u.Base.SetSampleRate(sampleRate)
	u.setLagRates()
}

// voicePan places voice v between -1 (left) and 1 (right).
func voicePan(v int) float64 {
	return -1 + 2*float64(v)/(chorusVoices-1)
}

// ProcessStereo renders one stereo block.
func (u *Chorus) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	n := len(inL)
	sr := u.SampleRate

	u.time.SetTarget(u.Seconds(0) * sr)
	depth := u.Clamped(2)
	u.lfo.SetRate(core.Omega(u.Rate(1), sr))
	u.fb.SetTarget(clampFeedback(u.Clamped(3)))
	u.width.SetTarget(u.Clamped(6))
	u.lowcut.SetCoefficients(design.Highpass(u.Hz(4, 0), butterworthQ, sr))
	u.highcut.SetCoefficients(design.Lowpass(u.Hz(5, 0), butterworthQ, sr))

	lo, hi := u.line.MinSincDelay(), u.line.MaxSincDelay()
	for i := range n {
		c, s := u.lfo.Process()
		mod := [chorusVoices]float64{c, s, -c, -s}

		base, w := u.time.Next(), u.width.Next()
		var l, r, sum float64
		for v := range chorusVoices {
			y := u.line.ReadSinc(core.Clamp(base*(1+depth*mod[v]), lo, hi))
			sum += y
			p := w * voicePan(v)
			l += y * (1 - p)
			r += y * (1 + p)
		}

		u.line.Write(0.5*(inL[i]+inR[i]) + u.fb.Next()*sum/chorusVoices)
		u.wetL[i] = l / chorusVoices
		u.wetR[i] = r / chorusVoices
	}

	wetL, wetR := u.wetL[:n], u.wetR[:n]
	u.lowcut.ProcessStereo(wetL, wetR)
	u.highcut.ProcessStereo(wetL, wetR)

	mix := u.Clamped(7)
	unit.Blend(outL[:n], inL, wetL, mix)
	unit.Blend(outR[:n], inR, wetR, mix)
}

// Process renders the average of both channels.
func (u *Chorus) Process(in, out []float64, pitch float64) {
	u.MonoFromStereo(u, in, out, pitch)
}

// Suspend clears the line and restarts the LFO.
func (u *Chorus) Suspend() {
	u.line.Reset()
	u.lfo.Reset()
	u.time.Reset()
	u.fb.Reset()
	u.width.Reset()
	u.lowcut.Suspend()
	u.highcut.Suspend()
}

// TailLength covers the longest tap, the feedback decay and the ring out of
// the output filters.
func (u *Chorus) TailLength() int {
	sr := u.SampleRate
	longest := u.Seconds(0) * sr * (1 + u.Clamped(2))
	fb := clampFeedback(u.Clamped(3))
	if fb < 0 {
		fb = -fb
	}
	filters := filterTail(
		design.Highpass(u.Hz(4, 0), butterworthQ, sr),
		design.Lowpass(u.Hz(5, 0), butterworthQ, sr),
	)
	return min(ringOut(longest, fb)+filters, core.TailInfinite)
}
