package unit

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Base carries the parameter set and metadata of a unit and provides the
// default behavior of every optional capability: no tail, no frequency
// graph, and selector metadata taken from the declared selectors.
// Concrete units embed it and override what they support.
type Base struct {
	// P is the caller-owned parameter set.
	P *Params
	// SampleRate is the current processing rate in Hz.
	SampleRate float64

	name      string
	slots     []Slot
	selectors []Selector
}

// NewBase returns a Base for a unit called name. A nil p gets a private
// parameter set. Selector k describes int slot k.
func NewBase(name string, ctx Context, p *Params, slots []Slot, selectors ...Selector) Base {
	if p == nil {
		p = &Params{}
	}

	sr := ctx.SampleRate
	if !(sr > 0) {
		sr = core.DefaultProcessorConfig().SampleRate
	}

	return Base{
		P:          p,
		SampleRate: sr,
		name:       name,
		slots:      slots[:min(len(slots), NumFloatParams)],
		selectors:  selectors[:min(len(selectors), NumIntParams)],
	}
}

// Name returns the catalog name of the unit.
func (b *Base) Name() string { return b.name }

// Descriptors lists the continuous parameter slots.
func (b *Base) Descriptors() []Slot { return b.slots }

// Selectors lists the discrete parameter slots.
func (b *Base) Selectors() []Selector { return b.selectors }

// InitParams writes every slot's default value.
func (b *Base) InitParams() {
	for i, s := range b.slots {
		b.P.F[i] = s.Desc.Default
	}
	for i, s := range b.selectors {
		b.P.I[i] = s.Default
	}
}

// Init does nothing by default.
func (b *Base) Init() {}

// Suspend does nothing by default.
func (b *Base) Suspend() {}

// CalcCoeffs does nothing by default.
func (b *Base) CalcCoeffs() {}

// SetSampleRate stores the processing rate. Non-positive rates are ignored.
func (b *Base) SetSampleRate(sampleRate float64) {
	if sampleRate > 0 {
		b.SampleRate = sampleRate
	}
}

// TailLength is zero for stateless units.
func (b *Base) TailLength() int { return 0 }

// InitFreqGraph reports that no frequency graph is available.
func (b *Base) InitFreqGraph() bool { return false }

// FreqGraph returns 0 when no graph is available.
func (b *Base) FreqGraph(float64) float64 { return 0 }

// IPCount returns the number of selectors.
func (b *Base) IPCount() int { return len(b.selectors) }

// IPLabel returns the label of selector id, or "" when out of range.
func (b *Base) IPLabel(id int) string {
	if id < 0 || id >= len(b.selectors) {
		return ""
	}
	return b.selectors[id].Label
}

// IPEntryCount returns the number of choices of selector id.
func (b *Base) IPEntryCount(id int) int {
	if id < 0 || id >= len(b.selectors) {
		return 0
	}
	return len(b.selectors[id].Entries)
}

// IPEntryLabel returns the label of one choice, or "" when out of range.
func (b *Base) IPEntryLabel(id, entry int) string {
	if id < 0 || id >= len(b.selectors) {
		return ""
	}
	e := b.selectors[id].Entries
	if entry < 0 || entry >= len(e) {
		return ""
	}
	return e[entry]
}

// Float returns float slot i with NaN and Inf replaced by the slot default.
func (b *Base) Float(i int) float64 {
	v := b.P.F[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		if i < len(b.slots) {
			return b.slots[i].Desc.Default
		}
		return 0
	}
	return v
}

// Clamped returns float slot i limited to its declared range.
func (b *Base) Clamped(i int) float64 {
	v := b.Float(i)
	if i < len(b.slots) {
		return b.slots[i].Desc.Clamp(v)
	}
	return v
}

// Int returns int slot i limited to the entries of its selector.
func (b *Base) Int(i int) int {
	v := b.P.I[i]
	if i < len(b.selectors) {
		return core.ClampInt(v, 0, max(len(b.selectors[i].Entries)-1, 0))
	}
	return v
}

// Hz converts float slot i from octaves to Hz, shifted by pitch semitones.
func (b *Base) Hz(i int, pitch float64) float64 {
	return core.PitchedHz(b.Clamped(i), pitch)
}

// Omega converts float slot i to radians per sample, shifted by pitch.
func (b *Base) Omega(i int, pitch float64) float64 {
	return core.Omega(b.Hz(i, pitch), b.SampleRate)
}

// Rate converts an LFO rate slot to Hz through its descriptor's reference.
func (b *Base) Rate(i int) float64 {
	v := b.Clamped(i)
	if i < len(b.slots) {
		return b.slots[i].Desc.OctaveHz(v)
	}
	return core.OctaveToHz(v)
}

// Seconds converts a log2-seconds slot to seconds.
func (b *Base) Seconds(i int) float64 {
	return core.TimeToSeconds(b.Clamped(i))
}

// Gain converts a dB slot to linear amplitude.
func (b *Base) Gain(i int) float64 {
	return core.DBToLinear(b.Clamped(i))
}

func (b *Base) base() *Base { return b }

// SampleRateOf returns the processing rate of u. Units that do not embed
// Base report the default rate.
func SampleRateOf(u Unit) float64 {
	if b, ok := u.(interface{ base() *Base }); ok {
		return b.base().SampleRate
	}
	return core.DefaultProcessorConfig().SampleRate
}
