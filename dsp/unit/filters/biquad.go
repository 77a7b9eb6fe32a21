package filters

import (
	"math/cmplx"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

const (
	maxStages = 8
	// decayDB is the attenuation at which a biquad tail counts as silent.
	decayDB = 100
)

// designFunc writes the stage coefficients for the current parameters and
// returns how many stages are in use.
type designFunc func(pitch float64, c []biquad.Coefficients) int

type biquadSpec struct {
	name      string
	stages    int
	slots     []unit.Slot
	selectors []unit.Selector
	design    designFunc

	// parallel > 0 sums the stage outputs and scales the sum by it;
	// zero cascades the stages.
	parallel float64
	// mono units render stereo through the mid signal.
	mono bool
	// infinite reports core.TailInfinite instead of a pole-based tail.
	infinite bool
}

// Biquad is a unit built from up to eight biquad stages that share one
// design rule. Both channels share coefficients and keep separate registers.
type Biquad struct {
	unit.Base
	unit.Scratch

	spec   biquadSpec
	stages [maxStages]biquad.Filter
	coeffs [maxStages]biquad.Coefficients
	active int
	pitch  float64

	tmp [4]core.Block
}

func (u *Biquad) init(ctx unit.Context, p *unit.Params, spec biquadSpec) {
	u.Base = unit.NewBase(spec.name, ctx, p, spec.slots, spec.selectors...)
	u.spec = spec
	u.spec.stages = min(max(spec.stages, 1), maxStages)
	for i := range u.coeffs {
		u.coeffs[i] = biquad.Passthrough
	}
	u.active = u.spec.stages
}

// CalcCoeffs designs every stage from the parameters and the last pitch.
func (u *Biquad) CalcCoeffs() {
	n := u.spec.design(u.pitch, u.coeffs[:u.spec.stages])
	n = min(max(n, 1), u.spec.stages)

	// Stages coming back into use start from silence.
	for i := u.active; i < n; i++ {
		u.stages[i].Suspend()
	}
	u.active = n

	for i := range n {
		u.stages[i].SetCoefficients(u.coeffs[i])
	}
}

// Coefficients returns the designed coefficients of the active stages.
func (u *Biquad) Coefficients() []biquad.Coefficients {
	return u.coeffs[:u.active]
}

// Process renders one mono block.
func (u *Biquad) Process(in, out []float64, pitch float64) {
	u.pitch = pitch
	u.CalcCoeffs()

	n := len(in)
	if u.spec.parallel == 0 {
		copy(out[:n], in)
		for i := range u.active {
			u.stages[i].Process(out[:n])
		}
		return
	}

	sum, part := u.tmp[0][:n], u.tmp[1][:n]
	core.Zero(sum)
	for i := range u.active {
		copy(part, in)
		u.stages[i].Process(part)
		unit.MixInto(sum, part)
	}
	copy(out[:n], sum)
	unit.ApplyGain(out[:n], u.spec.parallel)
}

// ProcessStereo renders one stereo block.
func (u *Biquad) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	if u.spec.mono {
		u.StereoFromMono(u, inL, inR, outL, outR, pitch)
		return
	}

	u.pitch = pitch
	u.CalcCoeffs()

	n := len(inL)
	if u.spec.parallel == 0 {
		copy(outL[:n], inL)
		copy(outR[:n], inR)
		for i := range u.active {
			u.stages[i].ProcessStereo(outL[:n], outR[:n])
		}
		return
	}

	sumL, sumR := u.tmp[0][:n], u.tmp[1][:n]
	partL, partR := u.tmp[2][:n], u.tmp[3][:n]
	core.Zero(sumL)
	core.Zero(sumR)
	for i := range u.active {
		copy(partL, inL)
		copy(partR, inR)
		u.stages[i].ProcessStereo(partL, partR)
		unit.MixInto(sumL, partL)
		unit.MixInto(sumR, partR)
	}
	copy(outL[:n], sumL)
	copy(outR[:n], sumR)
	unit.ApplyGain(outL[:n], u.spec.parallel)
	unit.ApplyGain(outR[:n], u.spec.parallel)
}

// Suspend clears every stage.
func (u *Biquad) Suspend() {
	for i := range u.stages {
		u.stages[i].Suspend()
	}
}

// TailLength is the time for the slowest stage chain to decay by 100 dB.
// It designs the stages from the current parameters, so it holds before
// the first block and right after a parameter change.
func (u *Biquad) TailLength() int {
	if u.spec.infinite {
		return core.TailInfinite
	}

	var c [maxStages]biquad.Coefficients
	active := min(max(u.spec.design(u.pitch, c[:u.spec.stages]), 1), u.spec.stages)

	total := 0
	for i := range active {
		n := c[i].DecaySamples(decayDB)
		if n < 0 {
			return core.TailInfinite
		}
		if u.spec.parallel == 0 {
			total += n
		} else {
			total = max(total, n)
		}
	}
	return total
}

// InitFreqGraph refreshes the coefficients for FreqGraph.
func (u *Biquad) InitFreqGraph() bool {
	u.CalcCoeffs()
	return true
}

// FreqGraph returns the magnitude of the designed response at hz.
func (u *Biquad) FreqGraph(hz float64) float64 {
	if u.spec.parallel == 0 {
		m := 1.0
		for i := range u.active {
			m *= u.coeffs[i].Magnitude(hz, u.SampleRate)
		}
		return m
	}

	var h complex128
	for i := range u.active {
		h += u.coeffs[i].Response(hz, u.SampleRate)
	}
	return cmplx.Abs(h) * u.spec.parallel
}

var (
	cutoffSlot    = unit.Slot{Label: "cutoff", Desc: param.Freq}
	resonanceSlot = unit.Slot{Label: "resonance", Desc: param.Percent.WithDefault(0)}
	centerSlot    = unit.Slot{Label: "center", Desc: param.Freq.WithDefault(0)}
	gainSlot      = unit.Slot{Label: "gain", Desc: param.DBBP}
	bandwidthSlot = unit.Slot{Label: "bandwidth", Desc: param.BW.WithDefault(1)}
	spreadSlot    = unit.Slot{Label: "spread", Desc: param.FreqMod.WithDefault(1)}
)
