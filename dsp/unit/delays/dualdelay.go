package delays

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/delay"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

const (
	// LongCapacity is the line length of the long delays, about 5.4 s at
	// 48 kHz.
	LongCapacity = 1 << 18

	timeLagSeconds = 0.2
	// maxModSeconds is the LFO excursion at full depth.
	maxModSeconds = 0.005
	butterworthQ  = math.Sqrt2 / 2
	// decayDB is the attenuation at which a filter tail counts as silent.
	decayDB = 100
)

// DualDelay is a stereo delay with separate left and right times, crossfeed
// between the channels, a band limited feedback path and a triangle LFO
// that pushes the two read taps in opposite directions. The output is the
// wet signal.
type DualDelay struct {
	unit.Base
	unit.Scratch

	lines            [2]*delay.Line
	timeL, timeR     param.Lag
	fb, cross, width param.Lipol
	lowcut, highcut  biquad.Filter
	lfoPhase         float64
	lfoRate          float64
}

// NewDualDelay returns the dual delay.
func NewDualDelay(ctx unit.Context, p *unit.Params) *DualDelay {
	u := &DualDelay{
		Base: unit.NewBase("dualdelay", ctx, p, []unit.Slot{
			{Label: "time L", Desc: param.Time.WithDefault(-2)},
			{Label: "time R", Desc: param.Time.WithDefault(-1.5)},
			{Label: "feedback", Desc: param.Percent.WithDefault(0.4)},
			{Label: "crossfeed", Desc: param.Percent.WithDefault(0)},
			{Label: "lowcut", Desc: param.Freq.WithDefault(-3)},
			{Label: "highcut", Desc: param.Freq.WithDefault(3)},
			{Label: "mod rate", Desc: param.LFOFreq.WithDefault(-2)},
			{Label: "mod depth", Desc: param.Percent.WithDefault(0)},
			{Label: "width", Desc: param.PercentBP},
		}),
		lines: [2]*delay.Line{delay.MustNew(LongCapacity), delay.MustNew(LongCapacity)},
	}
	u.setLagRates()
	return u
}

func (u *DualDelay) setLagRates() {
	rate := param.LagRate(timeLagSeconds, u.SampleRate)
	u.timeL.SetRate(rate)
	u.timeR.SetRate(rate)
}

// SetSampleRate retunes the time lags.
func (u *DualDelay) SetSampleRate(sampleRate float64) {
	u.Base.SetSampleRate(sampleRate)
	u.setLagRates()
}

func (u *DualDelay) delaySamples(i int) float64 {
	limit := u.lines[0].MaxSincDelay() - maxModSeconds*u.SampleRate
	return core.Clamp(u.Seconds(i)*u.SampleRate, u.lines[0].MinSincDelay(), limit)
}

// loopGains returns feedback and crossfeed scaled so their sum stays below
// unity.
func (u *DualDelay) loopGains() (fb, cross float64) {
	fb, cross = u.Clamped(2), u.Clamped(3)
	if s := fb + cross; s > maxFeedback {
		fb *= maxFeedback / s
		cross *= maxFeedback / s
	}
	return fb, cross
}

// setVars moves every smoother towards the current parameters.
func (u *DualDelay) setVars() {
	u.timeL.SetTarget(u.delaySamples(0))
	u.timeR.SetTarget(u.delaySamples(1))

	fb, cross := u.loopGains()
	u.fb.SetTarget(fb)
	u.cross.SetTarget(cross)
	u.width.SetTarget(u.Clamped(8))

	sr := u.SampleRate
	u.lowcut.SetCoefficientsImmediate(design.Highpass(u.Hz(4, 0), butterworthQ, sr))
	u.highcut.SetCoefficientsImmediate(design.Lowpass(u.Hz(5, 0), butterworthQ, sr))

	u.lfoRate = u.Rate(6) / sr
}

// triangle returns the LFO in [-1, 1] and advances it one sample.
func (u *DualDelay) triangle() float64 {
	v := 4*math.Abs(u.lfoPhase-0.5) - 1
	u.lfoPhase += u.lfoRate
	if u.lfoPhase >= 1 {
		u.lfoPhase -= 1
	}
	return v
}

// ProcessStereo renders one stereo block.
func (u *DualDelay) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	u.setVars()
	depth := u.Clamped(7) * maxModSeconds * u.SampleRate

	for i := range inL {
		mod := depth * u.triangle()
		wl := u.lines[0].ReadSinc(u.timeL.Next() + mod)
		wr := u.lines[1].ReadSinc(u.timeR.Next() - mod)

		fb, cross := u.fb.Next(), u.cross.Next()
		fl := u.highcut.ProcessSample(0, u.lowcut.ProcessSample(0, fb*wl+cross*wr))
		fr := u.highcut.ProcessSample(1, u.lowcut.ProcessSample(1, fb*wr+cross*wl))
		u.lines[0].Write(inL[i] + fl)
		u.lines[1].Write(inR[i] + fr)

		mid, side := 0.5*(wl+wr), 0.5*(wl-wr)*u.width.Next()
		outL[i] = mid + side
		outR[i] = mid - side
	}
}

// Process renders the average of both channels.
func (u *DualDelay) Process(in, out []float64, pitch float64) {
	u.MonoFromStereo(u, in, out, pitch)
}

// Suspend clears the lines and the feedback filters.
func (u *DualDelay) Suspend() {
	for _, l := range u.lines {
		l.Reset()
	}
	u.timeL.Reset()
	u.timeR.Reset()
	u.fb.Reset()
	u.cross.Reset()
	u.width.Reset()
	u.lowcut.Suspend()
	u.highcut.Suspend()
	u.lfoPhase = 0
}

// TailLength is the time for the echoes to fall by 100 dB, assuming the
// feedback path passes the echo at full level.
func (u *DualDelay) TailLength() int {
	fb, cross := u.loopGains()
	longest := math.Max(u.delaySamples(0), u.delaySamples(1)) + maxModSeconds*u.SampleRate
	sr := u.SampleRate
	// Every round trip also rings through the loop filters.
	filters := filterTail(
		design.Highpass(u.Hz(4, 0), butterworthQ, sr),
		design.Lowpass(u.Hz(5, 0), butterworthQ, sr),
	)
	return ringOut(longest+float64(filters), fb+cross)
}

// filterTail sums the decays of sections in series, capped at the infinite
// sentinel.
func filterTail(sections ...biquad.Coefficients) int {
	total := 0
	for _, c := range sections {
		n := c.DecaySamples(decayDB)
		if n < 0 {
			return core.TailInfinite
		}
		total += n
	}
	return min(total, core.TailInfinite)
}

// ringOut returns how long a loop of the given delay and gain takes to fall
// by 100 dB, capped at the infinite sentinel.
func ringOut(delaySamples, gain float64) int {
	if gain <= 1e-5 {
		return int(math.Ceil(delaySamples))
	}
	if gain >= 1 {
		return core.TailInfinite
	}
	n := (1 + -5/math.Log10(gain)) * delaySamples
	if n >= core.TailInfinite {
		return core.TailInfinite
	}
	return int(math.Ceil(n))
}
