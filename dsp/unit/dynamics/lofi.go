package dynamics

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/shape"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/dsp/unit/filters"
)

// BitCrush is a sample rate and word length reducer followed by a resonant
// lowpass. The input is sampled and held at the rate frequency and the held
// value is rounded to the selected number of bits.
type BitCrush struct {
	unit.Base

	time  [2]float64
	level [2]float64

	lp  *filters.Biquad
	lpP unit.Params
}

// NewBitCrush returns BF.
func NewBitCrush(ctx unit.Context, p *unit.Params) *BitCrush {
	u := &BitCrush{
		Base: unit.NewBase("BF", ctx, p, []unit.Slot{
			{Label: "rate", Desc: param.Freq.WithDefault(3)},
			{Label: "bits", Desc: param.Percent.WithDefault(0.5)},
			{Label: "lp cutoff", Desc: param.Freq.WithDefault(5)},
			{Label: "lp resonance", Desc: param.Percent.WithDefault(0)},
		}),
	}
	u.lp = filters.NewLP2B(ctx, &u.lpP)
	u.lp.InitParams()
	return u
}

// SetSampleRate forwards the rate to the lowpass.
func (u *BitCrush) SetSampleRate(sampleRate float64) {
	u.Base.SetSampleRate(sampleRate)
	u.lp.SetSampleRate(sampleRate)
}

// Levels returns the quantizer steps above zero: 2 at zero bits, 2^16 at
// full scale.
func (u *BitCrush) Levels() float64 {
	return math.Exp2(1 + 15*u.Clamped(1))
}

func (u *BitCrush) crush(ch int, in, out []float64, inc, levels float64) {
	t, lvl := u.time[ch], u.level[ch]
	for i, x := range in {
		t += inc
		if t >= 1 {
			t -= math.Floor(t)
			lvl = x
		}
		out[i] = shape.Quantize(lvl, levels)
	}
	u.time[ch], u.level[ch] = t, lvl
}

func (u *BitCrush) prepare(pitch float64) (float64, float64) {
	u.lpP.F[0] = u.Clamped(2)
	u.lpP.F[1] = u.Clamped(3)
	return math.Min(u.Hz(0, pitch)/u.SampleRate, 1), u.Levels()
}

// Process renders one mono block.
func (u *BitCrush) Process(in, out []float64, pitch float64) {
	n := len(in)
	inc, levels := u.prepare(pitch)
	u.crush(0, in, out[:n], inc, levels)
	u.lp.Process(out[:n], out[:n], 0)
}

// ProcessStereo renders one stereo block.
func (u *BitCrush) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)
	inc, levels := u.prepare(pitch)
	u.crush(0, inL, outL[:n], inc, levels)
	u.crush(1, inR, outR[:n], inc, levels)
	u.lp.ProcessStereo(outL[:n], outR[:n], outL[:n], outR[:n], 0)
}

// Suspend clears the hold registers and the lowpass.
func (u *BitCrush) Suspend() {
	u.time = [2]float64{}
	u.level = [2]float64{}
	u.lp.Suspend()
}

// TailLength is the longest hold followed by the lowpass decay.
func (u *BitCrush) TailLength() int {
	inc, _ := u.prepare(0)
	hold := int(math.Ceil(1 / inc))
	return min(hold+u.lp.TailLength(), core.TailInfinite)
}

// InitFreqGraph designs the lowpass.
func (u *BitCrush) InitFreqGraph() bool {
	u.prepare(0)
	return u.lp.InitFreqGraph()
}

// FreqGraph returns the lowpass magnitude.
func (u *BitCrush) FreqGraph(hz float64) float64 { return u.lp.FreqGraph(hz) }

// Overdrive emphasizes a band, saturates through tanh and smooths the
// result with a lowpass.
type Overdrive struct {
	unit.Base

	peak, lp   *filters.Biquad
	peakP, lpP unit.Params

	drive param.Lipol
	ramp  core.Block
}

// NewOverdrive returns OD.
func NewOverdrive(ctx unit.Context, p *unit.Params) *Overdrive {
	u := &Overdrive{
		Base: unit.NewBase("OD", ctx, p, []unit.Slot{
			{Label: "drive", Desc: param.DB.WithDefault(12)},
			{Label: "peak freq", Desc: param.Freq.WithDefault(0)},
			{Label: "peak gain", Desc: param.DBBP.WithDefault(6)},
			{Label: "lp cutoff", Desc: param.Freq.WithDefault(3)},
		}),
	}
	u.peak = filters.NewPKA(ctx, &u.peakP)
	u.lp = filters.NewLP2A(ctx, &u.lpP)
	u.peak.InitParams()
	u.lp.InitParams()
	return u
}

// SetSampleRate forwards the rate to both filters.
func (u *Overdrive) SetSampleRate(sampleRate float64) {
	u.Base.SetSampleRate(sampleRate)
	u.peak.SetSampleRate(sampleRate)
	u.lp.SetSampleRate(sampleRate)
}

func (u *Overdrive) configure() {
	u.peakP.F[0] = u.Clamped(1)
	u.peakP.F[1] = u.Clamped(2)
	u.lpP.F[0] = u.Clamped(3)
	u.lpP.F[1] = 0
}

func (u *Overdrive) saturate(buf, drive []float64) {
	for i, x := range buf {
		buf[i] = shape.Tanh(x * drive[i])
	}
}

// Process renders one mono block.
func (u *Overdrive) Process(in, out []float64, pitch float64) {
	n := len(in)
	u.configure()
	u.drive.SetTarget(u.Gain(0))
	u.drive.Fill(u.ramp[:n])

	u.peak.Process(in, out[:n], pitch)
	u.saturate(out[:n], u.ramp[:n])
	u.lp.Process(out[:n], out[:n], pitch)
}

// ProcessStereo renders one stereo block.
func (u *Overdrive) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)
	u.configure()
	u.drive.SetTarget(u.Gain(0))
	u.drive.Fill(u.ramp[:n])

	u.peak.ProcessStereo(inL, inR, outL[:n], outR[:n], pitch)
	u.saturate(outL[:n], u.ramp[:n])
	u.saturate(outR[:n], u.ramp[:n])
	u.lp.ProcessStereo(outL[:n], outR[:n], outL[:n], outR[:n], pitch)
}

// Suspend clears both filters.
func (u *Overdrive) Suspend() {
	u.peak.Suspend()
	u.lp.Suspend()
	u.drive.Reset()
}

// TailLength adds the decays of the two filters in series.
func (u *Overdrive) TailLength() int {
	u.configure()
	return min(u.peak.TailLength()+u.lp.TailLength(), core.TailInfinite)
}
