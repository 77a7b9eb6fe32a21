package filters

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// q returns the Q of resonance slot i.
func (u *Biquad) q(i int) float64 {
	return design.ResonanceToQ(u.Clamped(i))
}

// bwQ returns the Q of bandwidth slot i around hz.
func (u *Biquad) bwQ(i int, hz float64) float64 {
	return design.BandwidthToQ(u.Clamped(i), core.Omega(hz, u.SampleRate))
}

// NewLP2A returns the resonant RBJ lowpass.
func NewLP2A(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "LP2A",
		stages: 1,
		slots:  []unit.Slot{cutoffSlot, resonanceSlot},
		design: func(pitch float64, c []biquad.Coefficients) int {
			c[0] = design.Lowpass(u.Hz(0, pitch), u.q(1), u.SampleRate)
			return 1
		},
	})
	return u
}

// NewLP2B returns the matched lowpass whose response near Nyquist follows
// the analog prototype.
func NewLP2B(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "LP2B",
		stages: 1,
		slots:  []unit.Slot{cutoffSlot, resonanceSlot},
		design: func(pitch float64, c []biquad.Coefficients) int {
			c[0] = design.LowpassMatched(u.Hz(0, pitch), u.q(1), u.SampleRate)
			return 1
		},
	})
	return u
}

// NewHP2A returns the resonant highpass.
func NewHP2A(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "HP2A",
		stages: 1,
		slots:  []unit.Slot{withDefault(cutoffSlot, -2), resonanceSlot},
		design: func(pitch float64, c []biquad.Coefficients) int {
			c[0] = design.Highpass(u.Hz(0, pitch), u.q(1), u.SampleRate)
			return 1
		},
	})
	return u
}

// NewBP2A returns the bandpass with 0 dB gain at its center.
func NewBP2A(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "BP2A",
		stages: 1,
		slots:  []unit.Slot{centerSlot, resonanceSlot},
		mono:   true,
		design: func(pitch float64, c []biquad.Coefficients) int {
			c[0] = design.BandpassPeak(u.Hz(0, pitch), u.q(1), u.SampleRate)
			return 1
		},
	})
	return u
}

// NewBP2B returns the constant skirt gain bandpass set by bandwidth.
func NewBP2B(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "BP2B",
		stages: 1,
		slots:  []unit.Slot{centerSlot, bandwidthSlot},
		design: func(pitch float64, c []biquad.Coefficients) int {
			hz := u.Hz(0, pitch)
			c[0] = design.Bandpass(hz, u.bwQ(1, hz), u.SampleRate)
			return 1
		},
	})
	return u
}

// NewBP2AD returns two parallel bandpasses spread around the center.
func NewBP2AD(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:     "BP2AD",
		stages:   2,
		parallel: 1,
		slots:    []unit.Slot{centerSlot, resonanceSlot, spreadSlot},
		design: func(pitch float64, c []biquad.Coefficients) int {
			lo, hi := spreadPair(u.Hz(0, pitch), u.Clamped(2))
			q := u.q(1)
			c[0] = design.BandpassPeak(lo, q, u.SampleRate)
			c[1] = design.BandpassPeak(hi, q, u.SampleRate)
			return 2
		},
	})
	return u
}

// NewPKA returns the peaking equalizer.
func NewPKA(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "PKA",
		stages: 1,
		slots:  []unit.Slot{centerSlot, gainSlot, bandwidthSlot},
		design: func(pitch float64, c []biquad.Coefficients) int {
			hz := u.Hz(0, pitch)
			c[0] = design.Peak(hz, u.Clamped(1), u.bwQ(2, hz), u.SampleRate)
			return 1
		},
	})
	return u
}

// NewPKAD returns two peaking sections in series spread around the center.
func NewPKAD(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "PKAD",
		stages: 2,
		slots:  []unit.Slot{centerSlot, gainSlot, bandwidthSlot, spreadSlot},
		design: func(pitch float64, c []biquad.Coefficients) int {
			lo, hi := spreadPair(u.Hz(0, pitch), u.Clamped(3))
			g := u.Clamped(1)
			c[0] = design.Peak(lo, g, u.bwQ(2, lo), u.SampleRate)
			c[1] = design.Peak(hi, g, u.bwQ(2, hi), u.SampleRate)
			return 2
		},
	})
	return u
}

// NewNOTCH returns the band reject filter.
func NewNOTCH(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "NOTCH",
		stages: 1,
		slots:  []unit.Slot{centerSlot, bandwidthSlot},
		design: func(pitch float64, c []biquad.Coefficients) int {
			hz := u.Hz(0, pitch)
			c[0] = design.Notch(hz, u.bwQ(1, hz), u.SampleRate)
			return 1
		},
	})
	return u
}

var lphpSlots = []unit.Slot{
	{Label: "lp cutoff", Desc: param.Freq},
	{Label: "lp resonance", Desc: param.Percent.WithDefault(0)},
	{Label: "hp cutoff", Desc: param.Freq.WithDefault(-3)},
	{Label: "hp resonance", Desc: param.Percent.WithDefault(0)},
}

func (u *Biquad) lphp(pitch float64, c []biquad.Coefficients) int {
	c[0] = design.Lowpass(u.Hz(0, pitch), u.q(1), u.SampleRate)
	c[1] = design.Highpass(u.Hz(2, pitch), u.q(3), u.SampleRate)
	return 2
}

// NewLPHPPar returns a lowpass and a highpass in parallel, averaged.
func NewLPHPPar(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:     "LPHP_par",
		stages:   2,
		parallel: 0.5,
		slots:    lphpSlots,
		design:   u.lphp,
	})
	return u
}

// NewLPHPSer returns a lowpass followed by a highpass.
func NewLPHPSer(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "LPHP_ser",
		stages: 2,
		slots:  lphpSlots,
		design: u.lphp,
	})
	return u
}

var onOff = []string{"off", "on"}

// NewEQ2BPA returns the two band parametric equalizer. Its bands follow the
// pitch only when keytrack is on.
func NewEQ2BPA(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "EQ2BP_A",
		stages: 2,
		slots: []unit.Slot{
			{Label: "band1 freq", Desc: param.Freq.WithDefault(-1)},
			{Label: "band1 gain", Desc: param.DBBP},
			{Label: "band1 bandwidth", Desc: param.BW.WithDefault(1)},
			{Label: "band2 freq", Desc: param.Freq.WithDefault(2)},
			{Label: "band2 gain", Desc: param.DBBP},
			{Label: "band2 bandwidth", Desc: param.BW.WithDefault(1)},
		},
		selectors: []unit.Selector{{Label: "keytrack", Entries: onOff}},
		design: func(pitch float64, c []biquad.Coefficients) int {
			if u.Int(0) == 0 {
				pitch = 0
			}
			for b := range 2 {
				hz := u.Hz(3*b, pitch)
				c[b] = design.Peak(hz, u.Clamped(3*b+1), u.bwQ(3*b+2, hz), u.SampleRate)
			}
			return 2
		},
	})
	return u
}

// eq6bBands are the fixed center frequencies of EQ6B.
var eq6bBands = [6]float64{100, 300, 800, 2000, 5000, 12000}

const eq6bBandwidth = 1.4

// NewEQ6B returns the six band graphic equalizer.
func NewEQ6B(ctx unit.Context, p *unit.Params) *Biquad {
	slots := make([]unit.Slot, len(eq6bBands))
	for i, hz := range eq6bBands {
		slots[i] = unit.Slot{Label: bandLabel(hz), Desc: param.DBBP}
	}

	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "EQ6B",
		stages: len(eq6bBands),
		slots:  slots,
		design: func(_ float64, c []biquad.Coefficients) int {
			for i, hz := range eq6bBands {
				q := design.BandwidthToQ(eq6bBandwidth, core.Omega(hz, u.SampleRate))
				c[i] = design.Peak(hz, u.Clamped(i), q, u.SampleRate)
			}
			return len(eq6bBands)
		},
	})
	return u
}

// NewLP2HP2Morph returns a filter whose numerator morphs from lowpass to
// highpass over a shared denominator.
func NewLP2HP2Morph(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:   "LP2HP2_morph",
		stages: 1,
		mono:   true,
		slots: []unit.Slot{
			withDefault(cutoffSlot, 1),
			resonanceSlot,
			{Label: "morph", Desc: param.Percent.WithDefault(0)},
		},
		design: func(pitch float64, c []biquad.Coefficients) int {
			hz, q := u.Hz(0, pitch), u.q(1)
			lp := design.Lowpass(hz, q, u.SampleRate)
			hp := design.Highpass(hz, q, u.SampleRate)
			c[0] = lp.Lerp(hp, u.Clamped(2))
			return 1
		},
	})
	return u
}

var (
	superbiquadTypes  = []string{"LP", "HP", "BP", "Notch", "Peak", "Allpass"}
	superbiquadSlopes = []string{"12 dB", "24 dB", "36 dB", "48 dB"}
)

// NewSuperbiquad returns up to four identical cascaded sections of one of
// six types.
func NewSuperbiquad(ctx unit.Context, p *unit.Params) *Biquad {
	u := &Biquad{}
	u.init(ctx, p, biquadSpec{
		name:     "superbiquad",
		stages:   4,
		infinite: true,
		slots:    []unit.Slot{cutoffSlot, resonanceSlot, gainSlot},
		selectors: []unit.Selector{
			{Label: "type", Entries: superbiquadTypes},
			{Label: "slope", Entries: superbiquadSlopes},
		},
		design: func(pitch float64, c []biquad.Coefficients) int {
			hz, q, g := u.Hz(0, pitch), u.q(1), u.Clamped(2)
			sr := u.SampleRate

			var s biquad.Coefficients
			switch u.Int(0) {
			case 0:
				s = design.Lowpass(hz, q, sr)
			case 1:
				s = design.Highpass(hz, q, sr)
			case 2:
				s = design.BandpassPeak(hz, q, sr)
			case 3:
				s = design.Notch(hz, q, sr)
			case 4:
				s = design.Peak(hz, g, q, sr)
			default:
				s = design.Allpass(hz, q, sr)
			}

			n := u.Int(1) + 1
			for i := range n {
				c[i] = s
			}
			// Gain applies once to the whole cascade except for the peak type.
			if u.Int(0) != 4 {
				c[0] = s.Scale(core.DBToLinear(g))
			}
			return n
		},
	})
	return u
}

func withDefault(s unit.Slot, v float64) unit.Slot {
	s.Desc = s.Desc.WithDefault(v)
	return s
}

// spreadPair returns hz shifted down and up by half of spread octaves.
func spreadPair(hz, spread float64) (lo, hi float64) {
	r := math.Exp2(0.5 * spread)
	return hz / r, hz * r
}

func bandLabel(hz float64) string {
	return param.Freq.Display(core.HzToOctave(hz))
}
