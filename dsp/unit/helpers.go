package unit

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/param"
)

// MonoProcessor renders a mono block.
type MonoProcessor interface {
	Process(in, out []float64, pitch float64)
}

// StereoProcessor renders a stereo block.
type StereoProcessor interface {
	ProcessStereo(inL, inR, outL, outR []float64, pitch float64)
}

// Scratch holds per-instance work buffers for the channel adapters.
type Scratch struct {
	a, b core.Block
}

// MonoFromStereo renders a mono block through a stereo-only unit: the input
// feeds both channels and the two outputs are averaged.
func (s *Scratch) MonoFromStereo(u StereoProcessor, in, out []float64, pitch float64) {
	n := len(in)
	l, r := s.a[:n], s.b[:n]
	u.ProcessStereo(in, in, l, r, pitch)
	vecmath.AddMulBlock(out[:n], l, r, 0.5)
}

// StereoFromMono renders a stereo block through a mono-only unit: the mid
// signal is processed once and written to both outputs.
func (s *Scratch) StereoFromMono(u MonoProcessor, inL, inR, outL, outR []float64, pitch float64) {
	n := len(inL)
	mid := s.a[:n]
	vecmath.AddMulBlock(mid, inL, inR[:n], 0.5)
	u.Process(mid, outL[:n], pitch)
	copy(outR[:n], outL[:n])
}

// ApplyGain scales buf in place.
func ApplyGain(buf []float64, gain float64) {
	vecmath.ScaleBlockInPlace(buf, gain)
}

// ApplyRamp multiplies buf by the next len(buf) values of l. scratch must be
// at least as long as buf.
func ApplyRamp(buf []float64, l *param.Lipol, scratch []float64) {
	g := scratch[:len(buf)]
	l.Fill(g)
	vecmath.MulBlockInPlace(buf, g)
}

// MixInto adds src to dst.
func MixInto(dst, src []float64) {
	vecmath.AddBlockInPlace(dst, src[:len(dst)])
}

// AddProduct writes dst = a*b + c.
func AddProduct(dst, a, b, c []float64) {
	n := len(dst)
	vecmath.MulAddBlock(dst, a[:n], b[:n], c[:n])
}

// Blend writes out = dry + mix*(wet-dry). out may alias dry but not wet.
func Blend(out, dry, wet []float64, mix float64) {
	n := len(out)
	if mix == 0 {
		copy(out, dry[:n])
		return
	}
	// ((1-mix)/mix*dry + wet) * mix
	vecmath.ScaleBlock(out, dry[:n], (1-mix)/mix)
	vecmath.AddMulBlock(out, out, wet[:n], mix)
}

// Modulate multiplies buf by env sample by sample.
func Modulate(buf, env []float64) {
	vecmath.MulBlockInPlace(buf, env[:len(buf)])
}
