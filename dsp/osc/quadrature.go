package osc

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Quadrature is a rotating-phasor sine/cosine oscillator. The phasor is
// renormalized once per block so its amplitude cannot drift.
type Quadrature struct {
	r, i   float64
	dr, di float64
	count  int
}

// NewQuadrature returns an oscillator at phase zero (r = 1, i = 0).
func NewQuadrature() Quadrature {
	return Quadrature{r: 1, dr: 1}
}

// SetRate sets the phase increment per sample in radians.
func (q *Quadrature) SetRate(omega float64) {
	q.di, q.dr = math.Sincos(omega)
}

// SetPhase moves the phasor to phase (radians).
func (q *Quadrature) SetPhase(phase float64) {
	q.i, q.r = math.Sincos(phase)
}

// Process advances one sample and returns (cos, sin) of the new phase.
func (q *Quadrature) Process() (r, i float64) {
	q.r, q.i = q.r*q.dr-q.i*q.di, q.r*q.di+q.i*q.dr

	q.count++
	if q.count >= core.BlockSize {
		q.count = 0
		if m := math.Hypot(q.r, q.i); m > 0 {
			q.r /= m
			q.i /= m
		} else {
			q.r, q.i = 1, 0
		}
	}

	return q.r, q.i
}

// Value returns the current phasor without advancing.
func (q *Quadrature) Value() (r, i float64) { return q.r, q.i }

// Reset returns to phase zero.
func (q *Quadrature) Reset() {
	q.r, q.i = 1, 0
	q.count = 0
}
