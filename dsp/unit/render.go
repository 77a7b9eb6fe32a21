package unit

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Render feeds in through u block by block and returns the mono output.
// A trailing partial block is zero-padded.
func Render(u Unit, in []float64, pitch float64) []float64 {
	out := make([]float64, len(in))

	var src, dst core.Block
	for pos := 0; pos < len(in); pos += core.BlockSize {
		n := copy(src[:], in[pos:])
		core.Zero(src[n:])
		u.Process(src[:], dst[:], pitch)
		copy(out[pos:], dst[:n])
	}

	return out
}

// RenderStereo is Render for both channels. inL and inR must have equal length.
func RenderStereo(u Unit, inL, inR []float64, pitch float64) (outL, outR []float64) {
	outL = make([]float64, len(inL))
	outR = make([]float64, len(inL))

	var sl, sr, dl, dr core.Block
	for pos := 0; pos < len(inL); pos += core.BlockSize {
		n := copy(sl[:], inL[pos:])
		copy(sr[:], inR[pos:pos+n])
		core.Zero(sl[n:])
		core.Zero(sr[n:])
		u.ProcessStereo(sl[:], sr[:], dl[:], dr[:], pitch)
		copy(outL[pos:], dl[:n])
		copy(outR[pos:], dr[:n])
	}

	return outL, outR
}

// ImpulseResponse suspends u and renders n samples of its response to a
// unit impulse.
func ImpulseResponse(u Unit, n int, pitch float64) []float64 {
	if n <= 0 {
		return nil
	}
	u.Suspend()
	in := make([]float64, n)
	in[0] = 1
	return Render(u, in, pitch)
}

// SilentTail renders silence through u until a whole block stays below
// threshold, and returns the number of samples rendered up to the last block
// above it. It gives up after limit samples and returns -1.
func SilentTail(u Unit, threshold float64, limit int) int {
	var src, dst core.Block
	last := 0
	for pos := 0; pos < limit; pos += core.BlockSize {
		u.Process(src[:], dst[:], 0)
		peak := 0.0
		for _, v := range dst {
			peak = math.Max(peak, math.Abs(v))
		}
		if peak >= threshold || math.IsNaN(peak) {
			last = pos + core.BlockSize
			continue
		}
		if pos-last >= 4*core.BlockSize {
			return last
		}
	}
	return -1
}
