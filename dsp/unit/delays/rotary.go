package delays

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/delay"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/osc"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/shape"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

const (
	rotaryCapacity = 1 << 12
	// rotaryTail covers the doppler line and the crossover.
	rotaryTail = 2048

	crossoverHz = 800
	bassShelfHz = 200
	bassShelfDB = -5
	// hornRadius is the doppler excursion at full depth, in seconds.
	hornRadius = 0.0012
	// hornBase centres the doppler taps away from the write head.
	hornBase = 0.0015
	// drumRatio is the bass rotor speed relative to the horn.
	drumRatio = 0.7
)

// Rotary simulates a rotating speaker cabinet. A crossover splits the mono
// sum into horn and drum bands. The horn band runs through a doppler line
// whose left and right taps follow a quadrature LFO in opposite phase and
// whose level follows the horn's facing. The drum band is shelved and
// amplitude modulated by a slower rotor.
type Rotary struct {
	unit.Base
	unit.Scratch

	line        *delay.Line
	horn, drum  osc.Quadrature
	xover, bass biquad.Filter
	dL, dR      param.Lipol
	ampL, ampR  param.Lipol
	drive       param.Lipol
}

// NewRotary returns the rotary speaker.
func NewRotary(ctx unit.Context, p *unit.Params) *Rotary {
	return &Rotary{
		Base: unit.NewBase("rotary", ctx, p, []unit.Slot{
			{Label: "horn rate", Desc: param.LFOFreq.WithDefault(1)},
			{Label: "doppler", Desc: param.Percent.WithDefault(0.5)},
			{Label: "amp mod", Desc: param.Percent.WithDefault(0.5)},
			{Label: "drive", Desc: param.DB},
		}),
		line: delay.MustNew(rotaryCapacity),
		horn: osc.NewQuadrature(),
		drum: osc.NewQuadrature(),
	}
}

// CalcCoeffs designs the crossover and the drum shelf.
func (u *Rotary) CalcCoeffs() {
	u.xover.SetCoefficients(design.Lowpass(crossoverHz, butterworthQ, u.SampleRate))
	u.bass.SetCoefficients(design.LowShelf(bassShelfHz, bassShelfDB, butterworthQ, u.SampleRate))
}

// advance steps both rotors by n samples and sets the per-block targets.
func (u *Rotary) advance(n int) float64 {
	step := 2 * math.Pi * u.Rate(0) * float64(n) / u.SampleRate
	u.horn.SetRate(step)
	u.drum.SetRate(drumRatio * step)
	c, s := u.horn.Process()
	dc, _ := u.drum.Process()

	depth := hornRadius * u.Clamped(1) * u.SampleRate
	base := hornBase * u.SampleRate
	u.dL.SetTarget(base + depth*s)
	u.dR.SetTarget(base - depth*s)

	am := u.Clamped(2)
	u.ampL.SetTarget(1 - 0.5*am*(1-c))
	u.ampR.SetTarget(1 - 0.5*am*(1+c))
	u.drive.SetTarget(u.Gain(3))

	return 1 + 0.25*am*dc
}

// ProcessStereo renders one stereo block.
func (u *Rotary) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	n := len(inL)
	u.CalcCoeffs()
	drumMod := u.advance(n)
	driven := u.Clamped(3) > 0

	for i := range n {
		x := 0.5 * (inL[i] + inR[i])
		if g := u.drive.Next(); driven {
			x = shape.Tanh(g*x) / g
		}

		low := u.xover.TickRamp(0, i, x)
		high := x - low
		low = u.bass.TickRamp(0, i, low) * drumMod

		u.line.Write(high)
		l := u.ampL.Next() * u.line.ReadHermite(u.dL.Next())
		r := u.ampR.Next() * u.line.ReadHermite(u.dR.Next())

		outL[i] = l + low
		outR[i] = r + low
	}
	u.xover.EndBlock()
	u.bass.EndBlock()
}

// Process renders the average of both channels.
func (u *Rotary) Process(in, out []float64, pitch float64) {
	u.MonoFromStereo(u, in, out, pitch)
}

// Suspend clears the line and the filters and stops both rotors.
func (u *Rotary) Suspend() {
	u.line.Reset()
	u.xover.Suspend()
	u.bass.Suspend()
	u.horn.Reset()
	u.drum.Reset()
	for _, l := range []*param.Lipol{&u.dL, &u.dR, &u.ampL, &u.ampR, &u.drive} {
		l.Reset()
	}
}

// TailLength covers the doppler line and the crossover ringing.
func (u *Rotary) TailLength() int { return rotaryTail }
