package catalog

import (
	"sync"

	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/dsp/unit/delays"
	"github.com/cwbudde/algo-voicefx/dsp/unit/dynamics"
	"github.com/cwbudde/algo-voicefx/dsp/unit/filters"
	"github.com/cwbudde/algo-voicefx/dsp/unit/modulation"
	"github.com/cwbudde/algo-voicefx/dsp/unit/oscillators"
)

var defaultRegistry = sync.OnceValue(buildDefault)

// Default returns the shared registry of every built-in unit. It must not be
// modified; use [NewDefault] for a private copy.
func Default() *Registry { return defaultRegistry() }

// NewDefault returns a fresh registry holding every built-in unit.
func NewDefault() *Registry { return buildDefault() }

// New builds a unit from the default registry.
func New(name string, ctx unit.Context, p *unit.Params) (unit.Unit, error) {
	return Default().New(name, ctx, p)
}

// Names lists the built-in units in sorted order.
func Names() []string { return Default().Names() }

//nolint:funlen
func buildDefault() *Registry {
	r := NewRegistry()

	add := func(name string, f Factory) { r.MustRegister(name, f) }

	// Biquad family.
	add("LP2A", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewLP2A(c, p) })
	add("LP2B", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewLP2B(c, p) })
	add("HP2A", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewHP2A(c, p) })
	add("BP2A", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewBP2A(c, p) })
	add("BP2B", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewBP2B(c, p) })
	add("BP2AD", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewBP2AD(c, p) })
	add("PKA", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewPKA(c, p) })
	add("PKAD", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewPKAD(c, p) })
	add("NOTCH", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewNOTCH(c, p) })
	add("LPHP_par", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewLPHPPar(c, p) })
	add("LPHP_ser", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewLPHPSer(c, p) })
	add("EQ2BP_A", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewEQ2BPA(c, p) })
	add("EQ6B", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewEQ6B(c, p) })
	add("LP2HP2_morph", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewLP2HP2Morph(c, p) })
	add("superbiquad", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewSuperbiquad(c, p) })
	add("morphEQ", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewMorphEQ(c, p) })
	add("SuperSVF", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewSuperSVF(c, p) })
	add("LP4M_sat", func(c unit.Context, p *unit.Params) unit.Unit { return filters.NewLP4MSat(c, p) })

	// Delay networks.
	add("COMB1", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewComb1(c, p) })
	add("COMB2", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewComb2(c, p) })
	add("COMB3", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewComb3(c, p) })
	add("dualdelay", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewDualDelay(c, p) })
	add("reverb", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewReverb(c, p) })
	add("chorus", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewChorus(c, p) })
	add("phaser", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewPhaser(c, p) })
	add("rotary", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewRotary(c, p) })
	add("fauxstereo", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewFauxStereo(c, p) })
	add("fs_flange", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewFSFlange(c, p) })
	add("freqshiftdelay", func(c unit.Context, p *unit.Params) unit.Unit { return delays.NewFreqShiftDelay(c, p) })

	// Modulation.
	add("RING", func(c unit.Context, p *unit.Params) unit.Unit { return modulation.NewRing(c, p) })
	add("FREQSHIFT", func(c unit.Context, p *unit.Params) unit.Unit { return modulation.NewFreqShift(c, p) })
	add("PMOD", func(c unit.Context, p *unit.Params) unit.Unit { return modulation.NewPMod(c, p) })

	// Oscillators.
	add("osc_pulse", func(c unit.Context, p *unit.Params) unit.Unit { return oscillators.NewPulse(c, p) })
	add("osc_pulse_sync", func(c unit.Context, p *unit.Params) unit.Unit { return oscillators.NewPulseSync(c, p) })
	add("osc_saw", func(c unit.Context, p *unit.Params) unit.Unit { return oscillators.NewSaw(c, p) })
	add("osc_sin", func(c unit.Context, p *unit.Params) unit.Unit { return oscillators.NewSin(c, p) })

	// Dynamics and utilities.
	add("gate", func(c unit.Context, p *unit.Params) unit.Unit { return dynamics.NewGate(c, p) })
	add("microgate", func(c unit.Context, p *unit.Params) unit.Unit { return dynamics.NewMicroGate(c, p) })
	add("limiter", func(c unit.Context, p *unit.Params) unit.Unit { return dynamics.NewLimiter(c, p) })
	add("clipper", func(c unit.Context, p *unit.Params) unit.Unit { return dynamics.NewClipper(c, p) })
	add("fdistortion", func(c unit.Context, p *unit.Params) unit.Unit { return dynamics.NewDistortion(c, p) })
	add("fslewer", func(c unit.Context, p *unit.Params) unit.Unit { return dynamics.NewSlewer(c, p) })
	add("BF", func(c unit.Context, p *unit.Params) unit.Unit { return dynamics.NewBitCrush(c, p) })
	add("OD", func(c unit.Context, p *unit.Params) unit.Unit { return dynamics.NewOverdrive(c, p) })
	add("treemonster", func(c unit.Context, p *unit.Params) unit.Unit { return dynamics.NewTreemonster(c, p) })
	add("stereotools", func(c unit.Context, p *unit.Params) unit.Unit { return dynamics.NewStereoTools(c, p) })

	return r
}
