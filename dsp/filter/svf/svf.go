// Package svf implements a trapezoidal (zero-delay feedback) state variable
// filter that advances four independent lanes with one coefficient set.
//
// Lanes are free for the caller to assign: a stereo 4-pole filter uses
// lanes 0/1 for the first stage of left/right and lanes 2/3 for the second.
package svf

import (
	"math"
	"math/cmplx"
)

// Lanes is the number of parallel filter states in a [Quad].
const Lanes = 4

// Mode selects the filter output.
type Mode int

const (
	Lowpass Mode = iota
	Bandpass
	Highpass
	Notch
	Peak
)

var modeNames = [...]string{"LP", "BP", "HP", "Notch", "Peak"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}

	return modeNames[m]
}

// Coefficients of the trapezoidal SVF.
type Coefficients struct {
	G  float64 // prewarped integrator gain tan(pi*f/sr)
	K  float64 // damping 1/Q
	A1 float64
	A2 float64
	A3 float64
}

// Design computes coefficients for cutoff hz, quality q at sampleRate.
// The cutoff is kept below 0.49*sampleRate.
func Design(hz, q, sampleRate float64) Coefficients {
	hz = math.Min(math.Max(hz, 1), 0.49*sampleRate)
	if !(q > 0) {
		q = 1 / math.Sqrt2
	}

	return fromGK(math.Tan(math.Pi*hz/sampleRate), 1/q)
}

// Lerp interpolates the integrator gain and damping toward o by t and
// derives the remaining coefficients from them, so every intermediate set
// is a valid stable filter.
func (c Coefficients) Lerp(o Coefficients, t float64) Coefficients {
	return fromGK(c.G+(o.G-c.G)*t, c.K+(o.K-c.K)*t)
}

func fromGK(g, k float64) Coefficients {
	a1 := 1 / (1 + g*(g+k))
	return Coefficients{G: g, K: k, A1: a1, A2: g * a1, A3: g * g * a1}
}

// Response returns the complex response of one stage in mode m at hz.
func (c Coefficients) Response(m Mode, hz, sampleRate float64) complex128 {
	w := math.Pi * hz / sampleRate
	if w >= math.Pi/2 {
		w = math.Pi/2 - 1e-9
	}

	s := complex(0, math.Tan(w)/c.G)
	den := s*s + complex(c.K, 0)*s + 1

	switch m {
	case Lowpass:
		return 1 / den
	case Bandpass:
		return s / den
	case Highpass:
		return s * s / den
	case Notch:
		return (s*s + 1) / den
	case Peak:
		return (1 - s*s) / den
	default:
		return 1
	}
}

// Magnitude returns |H| of one stage.
func (c Coefficients) Magnitude(m Mode, hz, sampleRate float64) float64 {
	return cmplx.Abs(c.Response(m, hz, sampleRate))
}

// Quad holds the integrator states of four lanes.
type Quad struct {
	ic1 [Lanes]float64
	ic2 [Lanes]float64
}

// Tick advances all lanes by one sample and returns the selected outputs.
func (q *Quad) Tick(c *Coefficients, m Mode, in [Lanes]float64) [Lanes]float64 {
	var out [Lanes]float64
	for i := range Lanes {
		out[i] = q.tickLane(c, m, i, in[i])
	}

	return out
}

// TickLane advances a single lane.
func (q *Quad) TickLane(c *Coefficients, m Mode, lane int, in float64) float64 {
	return q.tickLane(c, m, lane, in)
}

func (q *Quad) tickLane(c *Coefficients, m Mode, i int, in float64) float64 {
	v3 := in - q.ic2[i]
	v1 := c.A1*q.ic1[i] + c.A2*v3
	v2 := q.ic2[i] + c.A2*q.ic1[i] + c.A3*v3

	q.ic1[i] = flush(2*v1 - q.ic1[i])
	q.ic2[i] = flush(2*v2 - q.ic2[i])

	switch m {
	case Lowpass:
		return v2
	case Bandpass:
		return v1
	case Highpass:
		return in - c.K*v1 - v2
	case Notch:
		return in - c.K*v1
	case Peak:
		return 2*v2 - in + c.K*v1
	default:
		return in
	}
}

// Reset clears all lanes.
func (q *Quad) Reset() {
	q.ic1 = [Lanes]float64{}
	q.ic2 = [Lanes]float64{}
}

func flush(v float64) float64 {
	if math.Abs(v) < 1e-30 {
		return 0
	}

	return v
}
