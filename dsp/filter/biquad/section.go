package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-voicefx/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Passthrough is the identity section.
var Passthrough = Coefficients{B0: 1}

// Lerp returns c + t*(o-c) for every coefficient.
func (c Coefficients) Lerp(o Coefficients, t float64) Coefficients {
	return Coefficients{
		B0: c.B0 + t*(o.B0-c.B0),
		B1: c.B1 + t*(o.B1-c.B1),
		B2: c.B2 + t*(o.B2-c.B2),
		A1: c.A1 + t*(o.A1-c.A1),
		A2: c.A2 + t*(o.A2-c.A2),
	}
}

// Scale multiplies the numerator by g.
func (c Coefficients) Scale(g float64) Coefficients {
	c.B0 *= g
	c.B1 *= g
	c.B2 *= g
	return c
}

func (c Coefficients) arch() archregistry.Coefficients {
	return archregistry.Coefficients{B0: c.B0, B1: c.B1, B2: c.B2, A1: c.A1, A2: c.A2}
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing.
type Section struct {
	Coefficients

	d0, d1 float64
}

var (
	kernel         *archregistry.OpEntry
	kernelInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	s.d0, s.d1 = activeKernel().ProcessBlock(s.arch(), s.d0, s.d1, buf)
}

func activeKernel() *archregistry.OpEntry {
	kernelInitOnce.Do(func() {
		entry := archregistry.Global.Lookup(cpu.DetectFeatures())
		if entry == nil {
			panic("biquad: no kernel registered (missing generic fallback?)")
		}

		if entry.ProcessBlock == nil || entry.ProcessRamp == nil {
			panic("biquad: selected kernel " + entry.Name + " is incomplete")
		}

		kernel = entry
	})

	return kernel
}

// KernelName reports the block kernel selected for this CPU.
func KernelName() string {
	return activeKernel().Name
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
