package delays

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/delay"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/dsp/unit/modulation"
)

// FreqShiftDelay is a barber-pole delay: every pass through the loop is
// frequency shifted once more. The loop runs block by block, so the delay
// is never shorter than one block.
type FreqShiftDelay struct {
	unit.Base
	unit.Scratch

	line   *delay.Line
	shift  *modulation.FreqShift
	shiftP unit.Params
	time   param.Lag
	fb     param.Lipol

	tap, wet core.Block
}

// NewFreqShiftDelay returns the frequency shifting delay.
func NewFreqShiftDelay(ctx unit.Context, p *unit.Params) *FreqShiftDelay {
	u := &FreqShiftDelay{
		Base: unit.NewBase("freqshiftdelay", ctx, p,
			[]unit.Slot{
				{Label: "time", Desc: param.Time.WithDefault(-2)},
				{Label: "feedback", Desc: param.Percent.WithDefault(0.5)},
				{Label: "shift", Desc: param.PercentBP.WithDefault(0.1)},
				{Label: "mix", Desc: param.Percent.WithDefault(0.5)},
			},
			unit.Selector{Label: "range", Entries: modulation.ShiftRanges, Default: 1},
		),
		line: delay.MustNew(LongCapacity),
	}
	u.shift = modulation.NewFreqShift(ctx, &u.shiftP)
	u.shift.InitParams()
	u.setLagRate()
	return u
}

func (u *FreqShiftDelay) setLagRate() {
	u.time.SetRate(param.LagRate(timeLagSeconds, u.SampleRate))
}

// SetSampleRate retunes the time lag and the shifter.
func (u *FreqShiftDelay) SetSampleRate(sampleRate float64) {
	u.Base.SetSampleRate(sampleRate)
	u.shift.SetSampleRate(sampleRate)
	u.setLagRate()
}

// DelaySamples returns the delay time parameter in samples, limited to
// [BlockSize, capacity].
func (u *FreqShiftDelay) DelaySamples() float64 {
	return core.Clamp(u.Seconds(0)*u.SampleRate, core.BlockSize, float64(u.line.Len()-4))
}

// Process renders one mono block.
func (u *FreqShiftDelay) Process(in, out []float64, _ float64) {
	n := len(in)
	u.time.SetTarget(u.DelaySamples())
	u.fb.SetTarget(clampFeedback(u.Clamped(1)))

	// Sample i of this block sits i samples after the last written one.
	tap := u.tap[:n]
	for i := range n {
		d := max(u.time.Next(), core.BlockSize)
		tap[i] = u.line.ReadHermite(d - float64(i))
	}

	u.shiftP.F[0] = u.Clamped(2)
	u.shiftP.I[0] = u.Int(0)
	wet := u.wet[:n]
	u.shift.Process(tap, wet, 0)

	for i, x := range in {
		u.line.Write(x + u.fb.Next()*wet[i])
	}
	unit.Blend(out[:n], in, wet, u.Clamped(3))
}

// ProcessStereo renders the mid signal to both channels.
func (u *FreqShiftDelay) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	u.StereoFromMono(u, inL, inR, outL, outR, pitch)
}

// Suspend clears the line and the shifter.
func (u *FreqShiftDelay) Suspend() {
	u.line.Reset()
	u.shift.Suspend()
	u.time.Reset()
	u.fb.Reset()
}

// TailLength is infinite: the shifted loop can sustain at full feedback.
func (u *FreqShiftDelay) TailLength() int { return core.TailInfinite }
