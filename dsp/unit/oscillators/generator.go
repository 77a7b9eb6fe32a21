package oscillators

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// generator renders a waveform block and adds it to the input at a smoothed
// level. The waveform is rendered once per block and shared by both
// channels.
type generator struct {
	unit.Base

	levelSlot int
	render    func(wave []float64, pitch float64)
	reset     func()

	level      param.Lipol
	wave, gain core.Block
}

func (g *generator) prepare(n int, pitch float64) ([]float64, []float64) {
	wave, gain := g.wave[:n], g.gain[:n]
	g.render(wave, pitch)
	g.level.SetTarget(g.Gain(g.levelSlot))
	g.level.Fill(gain)
	return wave, gain
}

// Process adds the waveform to in.
func (g *generator) Process(in, out []float64, pitch float64) {
	n := len(in)
	wave, gain := g.prepare(n, pitch)
	unit.AddProduct(out[:n], wave, gain, in)
}

// ProcessStereo adds the same waveform to both channels.
func (g *generator) ProcessStereo(inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)
	wave, gain := g.prepare(n, pitch)
	unit.AddProduct(outL[:n], wave, gain, inL)
	unit.AddProduct(outR[:n], wave, gain, inR)
}

// Suspend restarts the waveform.
func (g *generator) Suspend() {
	g.reset()
	g.level.Reset()
}

// TailLength is infinite.
func (g *generator) TailLength() int { return core.TailInfinite }

// increment returns the phase increment per sample of slot i.
func (g *generator) increment(i int, pitch float64) float64 {
	return g.Hz(i, pitch) / g.SampleRate
}
