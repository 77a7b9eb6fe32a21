package dynamics

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/filter/halfrate"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/shape"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

const (
	butterworthQ = math.Sqrt2 / 2
	// decayDB is the attenuation at which a filter tail counts as silent.
	decayDB = 100
)

// gainStage applies smoothed pre and post gains around a per-sample curve.
type gainStage struct {
	pre, post param.Lipol
	a, b      core.Block
}

func (g *gainStage) ramps(n int, pre, post float64) ([]float64, []float64) {
	g.pre.SetTarget(pre)
	g.post.SetTarget(post)
	a, b := g.a[:n], g.b[:n]
	g.pre.Fill(a)
	g.post.Fill(b)
	return a, b
}

func (g *gainStage) reset() {
	g.pre.Reset()
	g.post.Reset()
}

// Clipper hard clips the pre-gained input at 0 dBFS.
type Clipper struct {
	unit.Base
	gains gainStage
}

// NewClipper returns the hard clipper.
func NewClipper(ctx unit.Context, p *unit.Params) *Clipper {
	return &Clipper{
		Base: unit.NewBase("clipper", ctx, p, []unit.Slot{
			{Label: "pre gain", Desc: param.DB},
			{Label: "post gain", Desc: param.DB},
		}),
	}
}

func (u *Clipper) run(in, out, pre, post []float64) {
	for i, x := range in {
		out[i] = shape.HardClip(x*pre[i], 1) * post[i]
	}
}

// Process renders one mono block.
func (u *Clipper) Process(in, out []float64, _ float64) {
	pre, post := u.gains.ramps(len(in), u.Gain(0), u.Gain(1))
	u.run(in, out, pre, post)
}

// ProcessStereo renders one stereo block.
func (u *Clipper) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	pre, post := u.gains.ramps(len(inL), u.Gain(0), u.Gain(1))
	u.run(inL, outL, pre, post)
	u.run(inR, outR, pre, post)
}

// Suspend lets the gains jump.
func (u *Clipper) Suspend() { u.gains.reset() }

// DistortionShapes are the entries of fdistortion's "shape" selector.
var DistortionShapes = []string{"tanh", "soft", "fold"}

// Distortion drives a waveshaper at twice the sample rate.
type Distortion struct {
	unit.Base

	over  [2]*halfrate.Oversampler
	gains gainStage
	drive [2 * core.BlockSize]float64
}

// NewDistortion returns fdistortion.
func NewDistortion(ctx unit.Context, p *unit.Params) *Distortion {
	return &Distortion{
		Base: unit.NewBase("fdistortion", ctx, p,
			[]unit.Slot{
				{Label: "drive", Desc: param.DB.WithDefault(6)},
				{Label: "post gain", Desc: param.DB},
			},
			unit.Selector{Label: "shape", Entries: DistortionShapes},
		),
		over: [2]*halfrate.Oversampler{halfrate.New(), halfrate.New()},
	}
}

// Curve returns the waveshaper of shape selector entry i.
func Curve(i int) func(float64) float64 {
	switch i {
	case 1:
		return shape.SoftClip
	case 2:
		return shape.Fold
	default:
		return shape.Tanh
	}
}

func (u *Distortion) prepare(n int) []float64 {
	pre, post := u.gains.ramps(n, u.Gain(0), u.Gain(1))
	for i, g := range pre {
		u.drive[2*i], u.drive[2*i+1] = g, g
	}
	return post
}

func (u *Distortion) run(ch int, in, out, post []float64) {
	n := len(in)
	copy(out[:n], in)
	curve := Curve(u.Int(0))
	u.over[ch].Process(out[:n], func(x2 []float64) {
		for i, x := range x2 {
			x2[i] = curve(x * u.drive[i])
		}
	})
	unit.Modulate(out[:n], post)
}

// Process renders one mono block.
func (u *Distortion) Process(in, out []float64, _ float64) {
	post := u.prepare(len(in))
	u.run(0, in, out, post)
}

// ProcessStereo renders one stereo block.
func (u *Distortion) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	post := u.prepare(len(inL))
	u.run(0, inL, outL, post)
	u.run(1, inR, outR, post)
}

// Suspend clears the resampling filters.
func (u *Distortion) Suspend() {
	u.over[0].Reset()
	u.over[1].Reset()
	u.gains.reset()
}

// TailLength is the ring out of the resampling filters.
func (u *Distortion) TailLength() int { return u.over[0].TailLength() }

// Slewer limits how fast the signal may change, then smooths the result
// with a lowpass.
type Slewer struct {
	unit.Base

	rate param.Lipol
	v    [2]float64
	lp   biquad.Filter
}

// NewSlewer returns fslewer.
func NewSlewer(ctx unit.Context, p *unit.Params) *Slewer {
	return &Slewer{
		Base: unit.NewBase("fslewer", ctx, p, []unit.Slot{
			{Label: "slew rate", Desc: param.Freq.WithDefault(2)},
			{Label: "post lowpass", Desc: param.Freq.WithDefault(5)},
		}),
	}
}

// MaxStep returns the largest change per sample: the slope of a full scale
// triangle at the slew rate frequency.
func (u *Slewer) MaxStep(pitch float64) float64 {
	return 4 * u.Hz(0, pitch) / u.SampleRate
}

// CalcCoeffs designs the post lowpass.
func (u *Slewer) CalcCoeffs() {
	u.lp.SetCoefficients(design.Lowpass(u.Hz(1, 0), butterworthQ, u.SampleRate))
}

func (u *Slewer) slew(ch int, in, out []float64, steps []float64) {
	v := u.v[ch]
	for i, x := range in {
		s := steps[i]
		v += core.Clamp(x-v, -s, s)
		out[i] = v
	}
	u.v[ch] = v
}

func (u *Slewer) prepare(n int, pitch float64, steps []float64) {
	u.CalcCoeffs()
	u.rate.SetTarget(u.MaxStep(pitch))
	u.rate.Fill(steps[:n])
}

// Process renders one mono block.
func (u *Slewer) Process(in, out []float64, pitch float64) {
	var steps core.Block
	n := len(in)
	u.prepare(n, pitch, steps[:])
	u.slew(0, in, out[:n], steps[:n])
	u.lp.Process(out[:n])
}

// ProcessStereo renders one stereo block.
func (u *Slewer) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	var steps core.Block
	n := len(inL)
	u.prepare(n, pitch, steps[:])
	u.slew(0, inL, outL[:n], steps[:n])
	u.slew(1, inR, outR[:n], steps[:n])
	u.lp.ProcessStereo(outL[:n], outR[:n])
}

// Suspend clears the slew state and the lowpass.
func (u *Slewer) Suspend() {
	u.v = [2]float64{}
	u.rate.Reset()
	u.lp.Suspend()
}

// TailLength is the time to slew from full scale back to zero followed by
// the ring out of the post lowpass.
func (u *Slewer) TailLength() int {
	slew := int(math.Ceil(1/u.MaxStep(0))) + core.BlockSize
	lp := design.Lowpass(u.Hz(1, 0), butterworthQ, u.SampleRate)
	n := lp.DecaySamples(decayDB)
	if n < 0 {
		return core.TailInfinite
	}
	return min(slew+n, core.TailInfinite)
}

// InitFreqGraph designs the post lowpass.
func (u *Slewer) InitFreqGraph() bool {
	u.CalcCoeffs()
	return true
}

// FreqGraph returns the magnitude of the post lowpass.
func (u *Slewer) FreqGraph(hz float64) float64 {
	return u.lp.Magnitude(hz, u.SampleRate)
}
