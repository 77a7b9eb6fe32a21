package modulation

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/hilbert"
	"github.com/cwbudde/algo-voicefx/dsp/osc"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// shiftTail covers the settling time of the low frequency phase splitter.
const shiftTail = 4096

// ShiftRanges are the entries of the "range" selector shared by every
// frequency shifting unit.
var ShiftRanges = []string{"10 Hz", "100 Hz", "1 kHz", "10 kHz"}

// RangeHz returns the full scale shift of range selector entry i.
func RangeHz(i int) float64 {
	return math.Pow(10, float64(min(max(i, 0), len(ShiftRanges)-1)+1))
}

// FreqShift moves every component of its input by a fixed number of Hz.
// The right channel is shifted by the sum of shift and stereo offset.
type FreqShift struct {
	unit.Base

	split   [2]*hilbert.Quadrature
	carrier [2]osc.Quadrature
}

// NewFreqShift returns the frequency shifter.
func NewFreqShift(ctx unit.Context, p *unit.Params) *FreqShift {
	u := &FreqShift{
		Base: unit.NewBase("FREQSHIFT", ctx, p,
			[]unit.Slot{
				{Label: "shift", Desc: param.PercentBP.WithDefault(0)},
				{Label: "stereo offset", Desc: param.PercentBP.WithDefault(0)},
			},
			unit.Selector{Label: "range", Entries: ShiftRanges},
		),
	}
	for ch := range u.split {
		q, err := hilbert.NewQuadraturePreset(hilbert.PresetLowFrequency)
		if err != nil {
			// The preset designs are fixed and always valid.
			panic(err)
		}
		u.split[ch] = q
		u.carrier[ch] = osc.NewQuadrature()
	}
	return u
}

// ShiftHz returns the shift of channel ch in Hz.
func (u *FreqShift) ShiftHz(ch int) float64 {
	s := u.Clamped(0)
	if ch == 1 {
		s += u.Clamped(1)
	}
	return s * RangeHz(u.Int(0))
}

func (u *FreqShift) run(ch int, in, out []float64) {
	u.carrier[ch].SetRate(core.Omega(u.ShiftHz(ch), u.SampleRate))
	for i, x := range in {
		re, im := u.split[ch].ProcessSample(x)
		cos, sin := u.carrier[ch].Process()
		out[i] = re*cos - im*sin
	}
}

// Process renders one mono block on the left channel.
func (u *FreqShift) Process(in, out []float64, _ float64) {
	u.run(0, in, out[:len(in)])
}

// ProcessStereo renders one stereo block.
func (u *FreqShift) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	u.run(0, inL, outL[:len(inL)])
	u.run(1, inR, outR[:len(inR)])
}

// Suspend clears the phase splitters and restarts the carriers.
func (u *FreqShift) Suspend() {
	for ch := range u.split {
		u.split[ch].Reset()
		u.carrier[ch].Reset()
	}
}

// TailLength covers the phase splitter's ring out.
func (u *FreqShift) TailLength() int { return shiftTail }
