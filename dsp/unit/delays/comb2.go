package delays

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

const comb2LagSeconds = 0.01

// Comb2 feeds its last output sample back through a 0 dB peak bandpass:
//
//	y[n] = bp(x[n] + fb*y[n-1])
//
// The loop rings at the band center.
type Comb2 struct {
	unit.Base
	unit.Scratch

	bp   biquad.Filter
	fb   param.Lag
	last float64
}

// NewComb2 returns the bandpass feedback comb.
func NewComb2(ctx unit.Context, p *unit.Params) *Comb2 {
	u := &Comb2{
		Base: unit.NewBase("COMB2", ctx, p, []unit.Slot{
			{Label: "freq", Desc: param.Freq.WithDefault(0)},
			{Label: "feedback", Desc: param.PercentBP.WithDefault(0.5)},
			{Label: "resonance", Desc: param.Percent.WithDefault(0.5)},
		}),
	}
	u.fb.SetRate(param.LagRate(comb2LagSeconds, u.SampleRate))
	return u
}

// SetSampleRate retunes the feedback lag.
func (u *Comb2) SetSampleRate(sampleRate float64) {
	u.Base.SetSampleRate(sampleRate)
	u.fb.SetRate(param.LagRate(comb2LagSeconds, u.SampleRate))
}

func (u *Comb2) coefficients(pitch float64) biquad.Coefficients {
	return design.BandpassPeak(u.Hz(0, pitch), design.ResonanceToQ(u.Clamped(2)), u.SampleRate)
}

// Process renders one mono block.
func (u *Comb2) Process(in, out []float64, pitch float64) {
	u.bp.SetCoefficientsImmediate(u.coefficients(pitch))
	u.fb.SetTarget(clampFeedback(u.Clamped(1)))
	for i, x := range in {
		u.last = u.bp.ProcessSample(0, x+u.fb.Next()*u.last)
		out[i] = u.last
	}
	u.last = core.FlushDenormals(u.last)
}

// ProcessStereo renders the mid signal.
func (u *Comb2) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	u.StereoFromMono(u, inL, inR, outL, outR, pitch)
}

// Suspend clears the bandpass and the loop sample.
func (u *Comb2) Suspend() {
	u.bp.Suspend()
	u.fb.Reset()
	u.last = 0
}

// TailLength is infinite: the loop rings at high feedback and resonance.
func (u *Comb2) TailLength() int { return core.TailInfinite }

// InitFreqGraph designs the bandpass at the current parameters.
func (u *Comb2) InitFreqGraph() bool {
	u.bp.SetCoefficientsImmediate(u.coefficients(0))
	return true
}

// FreqGraph returns the closed-loop magnitude at hz.
func (u *Comb2) FreqGraph(hz float64) float64 {
	c := u.bp.Coefficients()
	h := c.Response(hz, u.SampleRate)
	fb := clampFeedback(u.Clamped(1))
	// One sample of delay in the loop.
	z := cmplx.Exp(complex(0, -2*math.Pi*hz/u.SampleRate))
	return cmplx.Abs(h / (1 - complex(fb, 0)*h*z))
}
