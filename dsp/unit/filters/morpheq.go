package filters

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

const morphBands = 8

// MorphBand is one peaking band of a morph snapshot.
type MorphBand struct {
	Active bool
	Hz     float64
	GainDB float64
	BW     float64 // octaves
}

// MorphSnapshot is one end of a morph.
type MorphSnapshot struct {
	Bands  [morphBands]MorphBand
	GainDB float64
}

// MorphBank is a named pair of snapshots.
type MorphBank struct {
	Name string
	A, B MorphSnapshot
}

func vowel(f1, f2, f3 float64) MorphSnapshot {
	return MorphSnapshot{
		Bands: [morphBands]MorphBand{
			{Active: true, Hz: f1, GainDB: 14, BW: 0.5},
			{Active: true, Hz: f2, GainDB: 12, BW: 0.5},
			{Active: true, Hz: f3, GainDB: 9, BW: 0.6},
			{Active: true, Hz: 120, GainDB: -12, BW: 2},
		},
		GainDB: -10,
	}
}

// MorphBanks is the built-in snapshot bank selected by morphEQ's "bank"
// selector. Read-only.
var MorphBanks = []MorphBank{
	{Name: "vowel a-u", A: vowel(730, 1090, 2440), B: vowel(300, 870, 2240)},
	{Name: "vowel i-o", A: vowel(270, 2290, 3010), B: vowel(570, 840, 2410)},
	{
		Name: "telephone-open",
		A: MorphSnapshot{
			Bands: [morphBands]MorphBand{
				{Active: true, Hz: 120, GainDB: -24, BW: 2.5},
				{Active: true, Hz: 1600, GainDB: 8, BW: 1.2},
				{Active: true, Hz: 9000, GainDB: -24, BW: 2.5},
			},
			GainDB: -3,
		},
	},
	{
		Name: "air-warmth",
		A: MorphSnapshot{
			Bands: [morphBands]MorphBand{
				{Active: true, Hz: 12000, GainDB: 8, BW: 2},
				{Active: true, Hz: 300, GainDB: -4, BW: 1.5},
			},
		},
		B: MorphSnapshot{
			Bands: [morphBands]MorphBand{
				{Active: true, Hz: 6000, GainDB: -6, BW: 2},
				{Active: true, Hz: 150, GainDB: 7, BW: 1.5},
				{Active: true, Hz: 600, GainDB: 2, BW: 1},
			},
		},
	},
}

// MorphEQ crossfades eight peaking bands between two snapshots of a bank.
// A band active on one side only fades in from 0 dB at that side's
// frequency. The output gain is ramped over each block.
type MorphEQ struct {
	Biquad

	gain param.Lipol
	ramp core.Block
}

// NewMorphEQ returns the morphing equalizer.
func NewMorphEQ(ctx unit.Context, p *unit.Params) *MorphEQ {
	names := make([]string, len(MorphBanks))
	for i, b := range MorphBanks {
		names[i] = b.Name
	}

	m := &MorphEQ{}
	m.init(ctx, p, biquadSpec{
		name:   "morphEQ",
		stages: morphBands,
		slots: []unit.Slot{
			{Label: "morph", Desc: param.Percent.WithDefault(0)},
			{Label: "gain", Desc: param.DB},
			{Label: "freq shift", Desc: param.FreqMod},
		},
		selectors: []unit.Selector{{Label: "bank", Entries: names}},
		design:    m.design,
	})
	return m
}

func (m *MorphEQ) design(_ float64, c []biquad.Coefficients) int {
	bank := &MorphBanks[m.Int(0)]
	t := m.Clamped(0)
	shift := math.Exp2(m.Clamped(2))
	sr := m.SampleRate

	for i := range morphBands {
		a, b := bank.A.Bands[i], bank.B.Bands[i]
		switch {
		case !a.Active && !b.Active:
			c[i] = biquad.Passthrough
			continue
		case !a.Active:
			a = MorphBand{Hz: b.Hz, BW: b.BW}
		case !b.Active:
			b = MorphBand{Hz: a.Hz, BW: a.BW}
		}

		// Frequencies morph on the octave scale.
		hz := math.Exp2(lerp(math.Log2(a.Hz), math.Log2(b.Hz), t)) * shift
		q := design.BandwidthToQ(lerp(a.BW, b.BW, t), core.Omega(hz, sr))
		c[i] = design.Peak(hz, lerp(a.GainDB, b.GainDB, t), q, sr)
	}
	return morphBands
}

func (m *MorphEQ) outputGain() float64 {
	bank := &MorphBanks[m.Int(0)]
	db := lerp(bank.A.GainDB, bank.B.GainDB, m.Clamped(0)) + m.Clamped(1)
	return core.DBToLinear(db)
}

// Process renders one mono block.
func (m *MorphEQ) Process(in, out []float64, pitch float64) {
	m.Biquad.Process(in, out, pitch)
	m.gain.SetTarget(m.outputGain())
	unit.ApplyRamp(out[:len(in)], &m.gain, m.ramp[:])
}

// ProcessStereo renders one stereo block.
func (m *MorphEQ) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	m.Biquad.ProcessStereo(inL, inR, outL, outR, pitch)
	n := len(inL)
	m.gain.SetTarget(m.outputGain())
	m.gain.Fill(m.ramp[:n])
	unit.Modulate(outL[:n], m.ramp[:n])
	unit.Modulate(outR[:n], m.ramp[:n])
}

// Suspend clears the bands and lets the gain jump on the next block.
func (m *MorphEQ) Suspend() {
	m.Biquad.Suspend()
	m.gain.Reset()
}

// FreqGraph includes the output gain.
func (m *MorphEQ) FreqGraph(hz float64) float64 {
	return m.Biquad.FreqGraph(hz) * m.outputGain()
}

func lerp(a, b, t float64) float64 { return a + t*(b-a) }
