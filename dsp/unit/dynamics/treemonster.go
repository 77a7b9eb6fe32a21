package dynamics

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/osc"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

const (
	// trackerTimeout is how long a tracker waits for the next crossing
	// before it treats the input as silent, in seconds.
	trackerTimeout = 0.1
	trackerLag     = 0.005
)

// Treemonster outputs.
const (
	TreeRing = iota
	TreeOsc
)

// tracker measures the period between positive going zero crossings of a
// highpassed copy of the input and the peak level of each cycle.
type tracker struct {
	prev   float64
	since  float64
	peak   float64
	primed bool
}

// step advances by sample x and returns the period in samples of the cycle
// that just ended, or 0.
func (t *tracker) step(x float64) float64 {
	t.since++
	t.peak = math.Max(t.peak, math.Abs(x))
	prev := t.prev
	t.prev = x

	if !(prev <= 0 && x > 0) {
		return 0
	}
	// Sub-sample position of the crossing within the last sample.
	frac := prev / (prev - x)
	period := t.since - 1 + frac
	t.since = 1 - frac
	if !t.primed {
		t.primed = true
		return 0
	}
	return period
}

// Treemonster tracks the pitch of its input and drives a sine oscillator
// with it. The oscillator either ring modulates the input or replaces it,
// following the level of the tracked cycles.
type Treemonster struct {
	unit.Base

	locut  biquad.Filter
	track  [2]tracker
	osc    [2]osc.Quadrature
	level  [2]param.Lag
	amount param.Lipol

	hp, amt core.Block
}

// NewTreemonster returns treemonster.
func NewTreemonster(ctx unit.Context, p *unit.Params) *Treemonster {
	u := &Treemonster{
		Base: unit.NewBase("treemonster", ctx, p,
			[]unit.Slot{
				{Label: "lowcut", Desc: param.Freq.WithDefault(-3)},
				{Label: "pitch", Desc: param.FreqMod},
				{Label: "amount", Desc: param.Percent},
			},
			unit.Selector{Label: "output", Entries: []string{"ring", "osc"}},
		),
		osc: [2]osc.Quadrature{osc.NewQuadrature(), osc.NewQuadrature()},
	}
	u.setLagRates()
	return u
}

func (u *Treemonster) setLagRates() {
	for ch := range u.level {
		u.level[ch].SetRate(param.LagRate(trackerLag, u.SampleRate))
	}
}

// SetSampleRate retunes the level followers.
func (u *Treemonster) SetSampleRate(sampleRate float64) {
	u.Base.SetSampleRate(sampleRate)
	u.setLagRates()
}

// CalcCoeffs designs the detector highpass.
func (u *Treemonster) CalcCoeffs() {
	u.locut.SetCoefficients(design.Highpass(u.Hz(0, 0), butterworthQ, u.SampleRate))
}

func (u *Treemonster) run(ch int, in, out []float64) {
	hp := u.hp[:len(in)]
	for i, x := range in {
		hp[i] = u.locut.TickRamp(ch, i, x)
	}

	ratio := math.Exp2(u.Clamped(1))
	timeout := trackerTimeout * u.SampleRate
	ringMode := u.Int(0) == TreeRing
	t, o, lvl := &u.track[ch], &u.osc[ch], &u.level[ch]

	for i, x := range in {
		if period := t.step(hp[i]); period > 0 {
			o.SetRate(math.Min(2*math.Pi*ratio/period, math.Pi))
			lvl.SetTarget(t.peak)
			t.peak = 0
		} else if t.since > timeout {
			lvl.SetTarget(0)
			t.peak = 0
		}

		_, s := o.Process()
		a := u.amt[i]
		if ringMode {
			out[i] = x + a*(x*s-x)
		} else {
			out[i] = x + a*(lvl.Next()*s-x)
		}
	}
}

func (u *Treemonster) prepare(n int) {
	u.CalcCoeffs()
	u.amount.SetTarget(u.Clamped(2))
	u.amount.Fill(u.amt[:n])
}

// Process renders one mono block.
func (u *Treemonster) Process(in, out []float64, _ float64) {
	u.prepare(len(in))
	u.run(0, in, out)
	u.locut.EndBlock()
}

// ProcessStereo renders one stereo block with a tracker per channel.
func (u *Treemonster) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	u.prepare(len(inL))
	u.run(0, inL, outL)
	u.run(1, inR, outR)
	u.locut.EndBlock()
}

// Suspend clears the trackers and restarts the oscillators.
func (u *Treemonster) Suspend() {
	u.locut.Suspend()
	u.track = [2]tracker{}
	for ch := range u.osc {
		u.osc[ch].Reset()
		u.level[ch].Reset()
	}
	u.amount.Reset()
}

// TailLength covers the tracker timeout and the level glide.
func (u *Treemonster) TailLength() int {
	return int((trackerTimeout + 10*trackerLag) * u.SampleRate)
}
