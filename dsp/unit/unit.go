package unit

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/param"
)

const (
	// NumFloatParams is the number of continuous parameter slots.
	NumFloatParams = 9
	// NumIntParams is the number of discrete parameter slots.
	NumIntParams = 2
)

// Params is the parameter set of one unit instance. It is owned by the
// caller and must only change between blocks.
type Params struct {
	F [NumFloatParams]float64
	I [NumIntParams]int
}

// Context provides environmental information that units need.
type Context struct {
	SampleRate float64
}

// NewContext builds a Context from processor options.
func NewContext(opts ...core.ProcessorOption) Context {
	cfg := core.ApplyProcessorOptions(opts...)
	return Context{SampleRate: cfg.SampleRate}
}

// Slot labels one continuous parameter and carries its range metadata.
type Slot struct {
	Label string
	Desc  param.Descriptor
}

// Selector describes one discrete parameter.
type Selector struct {
	Label   string
	Entries []string
	Default int
}

// Unit is the polymorphic processing contract.
type Unit interface {
	Name() string

	// InitParams writes default values into the parameter slots.
	InitParams()
	// Init sizes and clears sample-rate dependent state.
	Init()
	// Suspend clears transient state but keeps parameters.
	Suspend()
	// CalcCoeffs recomputes derived coefficients from the parameters.
	CalcCoeffs()
	SetSampleRate(sampleRate float64)

	// Process renders one mono block. in and out may alias.
	Process(in, out []float64, pitch float64)
	// ProcessStereo renders one stereo block. Inputs and outputs may alias
	// pairwise.
	ProcessStereo(inL, inR, outL, outR []float64, pitch float64)

	// TailLength reports how many samples the output stays audible after
	// the input falls silent, or core.TailInfinite.
	TailLength() int

	// InitFreqGraph prepares FreqGraph and reports whether the unit
	// supports it.
	InitFreqGraph() bool
	// FreqGraph returns the linear magnitude response at hz.
	FreqGraph(hz float64) float64

	IPCount() int
	IPLabel(id int) string
	IPEntryCount(id int) int
	IPEntryLabel(id, entry int) string

	// Descriptors lists the continuous parameter slots in order.
	Descriptors() []Slot
}
