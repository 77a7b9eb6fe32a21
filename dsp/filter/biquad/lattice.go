package biquad

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Lattice is a two-channel second-order allpass in normalized lattice form.
// Each sample passes through two plane rotations, so the section keeps the
// energy of its input and state even while its reflection coefficients glide.
//
// For fixed coefficients it matches the allpass biquad
//
//	H(z) = (A2 + A1 z^-1 + z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// with reflection coefficients k2 = A2 and k1 = A1 / (1 + A2).
type Lattice struct {
	cur, target [2]float64
	delta       [2]float64
	ramping     bool
	primed      bool

	state [2][2]float64
}

// Reflection returns the lattice reflection coefficients of the allpass
// with the denominator of c, each clamped to [-1, 1].
func Reflection(c Coefficients) (k1, k2 float64) {
	k2 = core.Clamp(c.A2, -1, 1)
	if d := 1 + c.A2; d > 0 {
		k1 = core.Clamp(c.A1/d, -1, 1)
	}
	return k1, k2
}

// SetAllpass sets the allpass whose denominator is that of c as the target
// for the end of the next block. The first call after Suspend takes effect
// immediately.
func (l *Lattice) SetAllpass(c Coefficients) {
	k1, k2 := Reflection(c)
	l.target = [2]float64{k1, k2}
	if !l.primed {
		l.cur = l.target
		l.primed = true
		return
	}

	l.delta = [2]float64{
		(k1 - l.cur[0]) * core.BlockSizeInv,
		(k2 - l.cur[1]) * core.BlockSizeInv,
	}
	l.ramping = l.delta != [2]float64{}
}

// Coefficients returns the allpass biquad of the target reflection
// coefficients.
func (l *Lattice) Coefficients() Coefficients {
	k1, k2 := l.target[0], l.target[1]
	a1 := k1 * (1 + k2)
	return Coefficients{B0: k2, B1: a1, B2: 1, A1: a1, A2: k2}
}

// TickRamp filters sample i of the current block on channel ch. Call it for
// every sample of the block and then EndBlock.
func (l *Lattice) TickRamp(ch, i int, x float64) float64 {
	k1, k2 := l.target[0], l.target[1]
	if l.ramping {
		t := float64(i + 1)
		k1 = l.cur[0] + t*l.delta[0]
		k2 = l.cur[1] + t*l.delta[1]
	}
	c1 := math.Sqrt(max(0, 1-k1*k1))
	c2 := math.Sqrt(max(0, 1-k2*k2))

	s := &l.state[ch&1]
	f1 := c2*x - k2*s[1]
	y := k2*x + c2*s[1]
	f0 := c1*f1 - k1*s[0]
	b1 := k1*f1 + c1*s[0]
	s[0], s[1] = f0, b1
	return y
}

// EndBlock commits the glide after a block of TickRamp calls.
func (l *Lattice) EndBlock() {
	for ch := range l.state {
		l.state[ch][0] = core.FlushDenormals(l.state[ch][0])
		l.state[ch][1] = core.FlushDenormals(l.state[ch][1])
	}
	l.cur = l.target
	l.delta = [2]float64{}
	l.ramping = false
}

// Suspend clears both channels and drops the glide history.
func (l *Lattice) Suspend() {
	l.state = [2][2]float64{}
	l.delta = [2]float64{}
	l.ramping = false
	l.primed = false
}
