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
	reverbTaps = 16
	// ReverbCapacity is the line length of every tap and of the predelay.
	ReverbCapacity = 1 << 15

	reverbModSamples = 6.0
	reverbModHz      = 0.37
)

// reverbShapes are the tap lengths in milliseconds at zero room size. The
// lengths of a shape share no common factor so the echo density grows
// quickly.
var reverbShapes = [4][reverbTaps]float64{
	{11.3, 12.7, 13.9, 15.1, 16.6, 17.9, 19.3, 20.8, 22.1, 23.9, 25.4, 27.2, 28.7, 30.5, 32.3, 34.1},
	{17.3, 19.9, 22.7, 24.1, 26.9, 28.3, 31.1, 33.7, 36.1, 38.9, 41.3, 44.1, 46.7, 49.9, 52.3, 55.7},
	{23.1, 27.7, 31.3, 35.9, 39.7, 43.3, 47.9, 51.1, 55.3, 59.9, 63.7, 67.1, 71.9, 75.1, 79.3, 83.9},
	{31.7, 37.3, 43.1, 48.7, 53.9, 59.3, 64.7, 71.1, 76.3, 82.9, 88.1, 94.7, 99.1, 106.3, 111.7, 118.9},
}

// ReverbShapes are the entries of the reverb "shape" selector.
var ReverbShapes = []string{"1", "2", "3", "4"}

// Reverb is a 16 tap feedback delay network. The input passes a predelay,
// the taps are mixed through an orthonormal Hadamard matrix with a one-pole
// damper per tap, and the stereo wet signal goes through a low shelf and a
// low/high cut pair. Tap lengths and feedback gains are recomputed only when
// the shape, room size or decay time change.
type Reverb struct {
	unit.Base
	unit.Scratch

	taps     [reverbTaps]*delay.Line
	predelay *delay.Line

	length   [reverbTaps]float64
	gain     [reverbTaps]float64
	panL     [reverbTaps]float64
	panR     [reverbTaps]float64
	damper   [reverbTaps]float64
	modPhase float64
	mod      [reverbTaps]float64

	band1, locut, hicut biquad.Filter
	width               param.Lipol

	lastShape int
	lastSize  float64
	lastTime  float64
	lastRate  float64
}

// NewReverb returns the reverb.
func NewReverb(ctx unit.Context, p *unit.Params) *Reverb {
	u := &Reverb{
		Base: unit.NewBase("reverb", ctx, p,
			[]unit.Slot{
				{Label: "predelay", Desc: param.Time.WithDefault(-6)},
				{Label: "room size", Desc: param.PercentBP.WithDefault(0)},
				{Label: "decay time", Desc: param.Time.WithDefault(1)},
				{Label: "HF damping", Desc: param.Percent.WithDefault(0.2)},
				{Label: "band1 freq", Desc: param.Freq.WithDefault(-2)},
				{Label: "band1 gain", Desc: param.DBBP},
				{Label: "lowcut", Desc: param.Freq.WithDefault(-4)},
				{Label: "highcut", Desc: param.Freq.WithDefault(4)},
				{Label: "width", Desc: param.Percent},
			},
			unit.Selector{Label: "shape", Entries: ReverbShapes},
		),
		predelay:  delay.MustNew(ReverbCapacity),
		lastShape: -1,
	}
	for t := range u.taps {
		u.taps[t] = delay.MustNew(ReverbCapacity)

		// Taps fan out across the stereo field.
		a := 0.5 * math.Pi * float64(t) / (reverbTaps - 1)
		u.panL[t], u.panR[t] = math.Cos(a), math.Sin(a)
	}
	return u
}

// update recomputes tap lengths and gains when the shape, size, decay time
// or sample rate changed since the last block.
func (u *Reverb) update() {
	shape, size, rt := u.Int(0), u.Clamped(1), u.Seconds(2)
	if shape == u.lastShape && size == u.lastSize && rt == u.lastTime && u.SampleRate == u.lastRate {
		return
	}
	u.lastShape, u.lastSize, u.lastTime, u.lastRate = shape, size, rt, u.SampleRate

	scale := math.Exp2(1.5*size) * u.SampleRate / 1000
	for t, ms := range reverbShapes[shape] {
		n := core.Clamp(ms*scale, reverbModSamples+2, ReverbCapacity-reverbModSamples-4)
		u.length[t] = n
		u.gain[t] = math.Pow(10, -3*n/u.SampleRate/rt)
	}
}

// TapLength returns the current length of tap t in samples.
func (u *Reverb) TapLength(t int) float64 { return u.length[t] }

// TapGain returns the current feedback gain of tap t.
func (u *Reverb) TapGain(t int) float64 { return u.gain[t] }

func (u *Reverb) setFilters() {
	sr := u.SampleRate
	u.band1.SetCoefficients(design.LowShelf(u.Hz(4, 0), u.Clamped(5), butterworthQ, sr))
	u.locut.SetCoefficients(design.Highpass(u.Hz(6, 0), butterworthQ, sr))
	u.hicut.SetCoefficients(design.Lowpass(u.Hz(7, 0), butterworthQ, sr))
}

func (u *Reverb) advanceModulation(n int) {
	for t := range u.mod {
		u.mod[t] = reverbModSamples * math.Sin(u.modPhase+2*math.Pi*float64(t)/reverbTaps)
	}
	u.modPhase += 2 * math.Pi * reverbModHz * float64(n) / u.SampleRate
	if u.modPhase >= 2*math.Pi {
		u.modPhase -= 2 * math.Pi
	}
}

// ProcessStereo renders one stereo block of wet signal.
func (u *Reverb) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	n := len(inL)
	u.update()
	u.setFilters()
	u.advanceModulation(n)
	u.width.SetTarget(u.Clamped(8))

	pre := int(core.Clamp(math.Round(u.Seconds(0)*u.SampleRate), 0, ReverbCapacity-2))
	damp := u.Clamped(3)

	var h [reverbTaps]float64
	for i := range n {
		u.predelay.Write(0.5 * (inL[i] + inR[i]))
		x := 0.25 * u.predelay.Read(pre+1)

		var l, r float64
		for t, line := range u.taps {
			v := line.ReadHermite(u.length[t] + u.mod[t])
			l += v * u.panL[t]
			r += v * u.panR[t]

			u.damper[t] = v*(1-damp) + u.damper[t]*damp
			h[t] = u.damper[t]
		}

		hadamard16(&h)
		for t, line := range u.taps {
			line.Write(x + u.gain[t]*h[t])
		}

		mid, side := 0.5*(l+r), 0.5*(l-r)*u.width.Next()
		outL[i] = 0.25 * (mid + side)
		outR[i] = 0.25 * (mid - side)
	}

	for t := range u.damper {
		u.damper[t] = core.FlushDenormals(u.damper[t])
	}

	u.band1.ProcessStereo(outL[:n], outR[:n])
	u.locut.ProcessStereo(outL[:n], outR[:n])
	u.hicut.ProcessStereo(outL[:n], outR[:n])
}

// Process renders the average of both channels.
func (u *Reverb) Process(in, out []float64, pitch float64) {
	u.MonoFromStereo(u, in, out, pitch)
}

// Suspend clears every buffer, so the next silent block renders exact zeros.
func (u *Reverb) Suspend() {
	for _, line := range u.taps {
		line.Reset()
	}
	u.predelay.Reset()
	u.damper = [reverbTaps]float64{}
	u.modPhase = 0
	u.band1.Suspend()
	u.locut.Suspend()
	u.hicut.Suspend()
	u.width.Reset()
}

// TailLength is infinite: the network sustains at long decay times.
func (u *Reverb) TailLength() int { return core.TailInfinite }

// hadamard16 applies the orthonormal 16 point Walsh-Hadamard transform in
// place.
func hadamard16(v *[reverbTaps]float64) {
	for h := 1; h < reverbTaps; h <<= 1 {
		for i := 0; i < reverbTaps; i += h << 1 {
			for j := i; j < i+h; j++ {
				a, b := v[j], v[j+h]
				v[j], v[j+h] = a+b, a-b
			}
		}
	}
	for i := range v {
		v[i] *= 0.25
	}
}
