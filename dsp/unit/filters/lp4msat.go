package filters

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/halfrate"
	"github.com/cwbudde/algo-voicefx/dsp/filter/ladder"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

const (
	// ladderLagSeconds is the glide time of cutoff and resonance.
	ladderLagSeconds = 0.005
	// ladderMaxResonance is the feedback at full resonance, the edge of
	// self-oscillation.
	ladderMaxResonance = 4.0
)

// LP4MSat is a saturating four-stage ladder lowpass running at twice the
// sample rate. Cutoff and resonance follow their parameters through
// exponential lags; the input drive ramps once per block.
type LP4MSat struct {
	unit.Base
	unit.Scratch

	lad   *ladder.Filter
	over  [2]*halfrate.Oversampler
	g, r  param.Lag
	drive param.Lipol
	ramp  core.Block
}

// NewLP4MSat returns the saturating ladder.
func NewLP4MSat(ctx unit.Context, p *unit.Params) *LP4MSat {
	u := &LP4MSat{
		Base: unit.NewBase("LP4M_sat", ctx, p,
			[]unit.Slot{
				cutoffSlot,
				resonanceSlot,
				{Label: "drive", Desc: param.DB},
			},
			unit.Selector{Label: "slope", Entries: []string{"6 dB", "12 dB", "18 dB", "24 dB"}, Default: 3},
		),
		over: [2]*halfrate.Oversampler{halfrate.New(), halfrate.New()},
	}

	lad, err := ladder.New(2 * u.SampleRate)
	if err != nil {
		// NewBase guarantees a positive sample rate.
		panic(err)
	}
	u.lad = lad
	u.setLagRates()

	return u
}

func (u *LP4MSat) setLagRates() {
	rate := param.LagRate(ladderLagSeconds, 2*u.SampleRate)
	u.g.SetRate(rate)
	u.r.SetRate(rate)
}

// SetSampleRate retunes the ladder and the lags.
func (u *LP4MSat) SetSampleRate(sampleRate float64) {
	u.Base.SetSampleRate(sampleRate)
	u.lad.SetSampleRate(2 * u.SampleRate)
	u.setLagRates()
}

func (u *LP4MSat) setTargets(pitch float64) {
	u.g.SetTarget(u.Hz(0, pitch))
	u.r.SetTarget(ladderMaxResonance * u.Clamped(1))
	u.drive.SetTarget(u.Gain(2))
}

func (u *LP4MSat) run(ch int, buf []float64) {
	poles := u.Int(0) + 1
	u.over[ch].Process(buf, func(x2 []float64) {
		for i, x := range x2 {
			u.lad.Set(u.g.Next(), u.r.Next(), 1)
			x2[i] = u.lad.ProcessSample(ch, x, poles)
		}
	})
}

// Process renders one mono block.
func (u *LP4MSat) Process(in, out []float64, pitch float64) {
	n := len(in)
	u.setTargets(pitch)
	copy(out[:n], in)
	unit.ApplyRamp(out[:n], &u.drive, u.ramp[:])
	u.run(0, out[:n])
}

// ProcessStereo renders one stereo block. The right channel replays the
// cutoff trajectory of the left one, so both see identical coefficients.
func (u *LP4MSat) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)
	u.setTargets(pitch)
	copy(outL[:n], inL)
	copy(outR[:n], inR)

	u.drive.Fill(u.ramp[:n])
	unit.Modulate(outL[:n], u.ramp[:n])
	unit.Modulate(outR[:n], u.ramp[:n])

	gSaved, rSaved := u.g, u.r
	u.run(0, outL[:n])
	gEnd, rEnd := u.g, u.r
	u.g, u.r = gSaved, rSaved
	u.run(1, outR[:n])
	u.g, u.r = gEnd, rEnd
}

// Suspend clears the ladder, the resampling filters and the smoothers.
func (u *LP4MSat) Suspend() {
	u.lad.Reset()
	u.over[0].Reset()
	u.over[1].Reset()
	u.g.Reset()
	u.r.Reset()
	u.drive.Reset()
}

// TailLength is infinite: the ladder self-oscillates at full resonance.
func (u *LP4MSat) TailLength() int { return core.TailInfinite }
