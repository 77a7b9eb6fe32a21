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

const (
	phaserStages = 4
	// phaserSweep is the LFO excursion in octaves at full depth.
	phaserSweep = 2.0
	phaserQ     = 0.7
)

// phaserSpread places the stages around the swept center, in octaves.
var phaserSpread = [phaserStages]float64{-1, -0.33, 0.33, 1}

// Phaser runs four allpass sections per channel whose centers follow one
// sine LFO. The stereo spread offsets the right channel's LFO phase by up
// to half a cycle. The sections are normalized lattices whose reflection
// coefficients glide across each block, so a fast sweep cannot feed energy
// into the feedback loop, which closes sample by sample.
type Phaser struct {
	unit.Base
	unit.Scratch

	stages   [2][phaserStages]biquad.Lattice
	feedback param.Lipol
	last     [2]float64
	lfoPhase float64
	pitch    float64

	wetL, wetR core.Block
}

// NewPhaser returns the phaser.
func NewPhaser(ctx unit.Context, p *unit.Params) *Phaser {
	return &Phaser{
		Base: unit.NewBase("phaser", ctx, p, []unit.Slot{
			{Label: "center", Desc: param.Freq.WithDefault(0)},
			{Label: "depth", Desc: param.Percent.WithDefault(0.5)},
			{Label: "rate", Desc: param.LFOFreq.WithDefault(-2)},
			{Label: "feedback", Desc: param.PercentBP.WithDefault(0)},
			{Label: "stereo", Desc: param.Percent.WithDefault(0.5)},
			{Label: "mix", Desc: param.Percent.WithDefault(0.5)},
		}),
	}
}

// centerHz returns the swept center of channel ch for the current LFO phase.
func (u *Phaser) centerHz(ch int) float64 {
	phase := u.lfoPhase + float64(ch)*math.Pi*u.Clamped(4)
	oct := u.Clamped(0) + u.pitch/12 + phaserSweep*u.Clamped(1)*math.Sin(phase)
	return core.OctaveToHz(oct)
}

// CalcCoeffs designs every stage for the current LFO position.
func (u *Phaser) CalcCoeffs() {
	for ch := range u.stages {
		hz := u.centerHz(ch)
		for k := range u.stages[ch] {
			u.stages[ch][k].SetAllpass(design.Allpass(hz*math.Exp2(phaserSpread[k]), phaserQ, u.SampleRate))
		}
	}
}

func (u *Phaser) run(ch int, in, wet []float64) {
	st := &u.stages[ch]
	for i, x := range in {
		y := x + u.feedback.Next()*u.last[ch]
		for k := range st {
			y = st[k].TickRamp(ch, i, y)
		}
		u.last[ch] = y
		wet[i] = y
	}
	u.last[ch] = core.FlushDenormals(u.last[ch])
}

// ProcessStereo renders one stereo block.
func (u *Phaser) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)
	u.pitch = pitch
	u.CalcCoeffs()

	u.lfoPhase += 2 * math.Pi * u.Rate(2) * float64(n) / u.SampleRate
	if u.lfoPhase >= 2*math.Pi {
		u.lfoPhase -= 2 * math.Pi
	}

	fb := clampFeedback(u.Clamped(3))
	u.feedback.SetTarget(fb)
	saved := u.feedback
	u.run(0, inL, u.wetL[:n])
	// The right channel replays the same feedback ramp.
	u.feedback = saved
	u.run(1, inR, u.wetR[:n])
	for ch := range u.stages {
		for k := range u.stages[ch] {
			u.stages[ch][k].EndBlock()
		}
	}

	mix := u.Clamped(5)
	unit.Blend(outL[:n], inL, u.wetL[:n], mix)
	unit.Blend(outR[:n], inR, u.wetR[:n], mix)
}

// Process renders the average of both channels.
func (u *Phaser) Process(in, out []float64, pitch float64) {
	u.MonoFromStereo(u, in, out, pitch)
}

// Suspend clears the sections and restarts the LFO.
func (u *Phaser) Suspend() {
	for ch := range u.stages {
		for k := range u.stages[ch] {
			u.stages[ch][k].Suspend()
		}
	}
	u.feedback.Reset()
	u.last = [2]float64{}
	u.lfoPhase = 0
}

// TailLength is infinite: the feedback loop can ring.
func (u *Phaser) TailLength() int { return core.TailInfinite }

// InitFreqGraph designs the stages at the current LFO position.
func (u *Phaser) InitFreqGraph() bool {
	u.CalcCoeffs()
	return true
}

// FreqGraph returns the left channel's magnitude including feedback and
// mix: the notches of the phaser.
func (u *Phaser) FreqGraph(hz float64) float64 {
	h := complex(1, 0)
	for k := range u.stages[0] {
		c := u.stages[0][k].Coefficients()
		h *= c.Response(hz, u.SampleRate)
	}
	fb := complex(clampFeedback(u.Clamped(3)), 0)
	wet := h / (1 - fb*h)
	mix := complex(u.Clamped(5), 0)
	return cmplx.Abs(1 - mix + mix*wet)
}
