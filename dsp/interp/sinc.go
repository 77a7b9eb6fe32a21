package interp

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-voicefx/dsp/window"
)

const (
	// SincTaps is the kernel length.
	SincTaps = 12
	// SincPhases is the number of fractional positions in the table.
	SincPhases = 256
	// SincCenter is the tap that lands on the integer part of the position.
	SincCenter = SincTaps/2 - 1
)

var sincTable = sync.OnceValue(buildSincTable)

func buildSincTable() *[SincPhases][SincTaps]float64 {
	var t [SincPhases][SincTaps]float64

	t[0][SincCenter] = 1

	for p := 1; p < SincPhases; p++ {
		frac := float64(p) / SincPhases
		sum := 0.0
		for k := range SincTaps {
			x := float64(k-SincCenter) - frac
			t[p][k] = sinc(x) * window.Centered(window.TypeBlackman, x, SincTaps)
			sum += t[p][k]
		}
		for k := range SincTaps {
			t[p][k] /= sum
		}
	}

	return &t
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// SplitPosition splits a fractional position into an integer part and the
// nearest table phase. A fraction that rounds up to a whole sample moves to
// the next integer with phase zero, so integer positions are exact.
func SplitPosition(pos float64) (whole, phase int) {
	whole = int(math.Floor(pos))
	phase = int(math.Round((pos - float64(whole)) * SincPhases))
	if phase >= SincPhases {
		whole++
		phase = 0
	}

	return whole, phase
}

// SincKernel returns the taps for a table phase. Tap k weighs the sample at
// offset whole+k-SincCenter. The returned array must not be modified.
func SincKernel(phase int) *[SincTaps]float64 {
	return &sincTable()[phase&(SincPhases-1)]
}
