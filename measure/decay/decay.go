// Package decay estimates how fast a unit's impulse response dies away,
// using Schroeder backward integration of the squared response.
package decay

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

var (
	ErrEmpty      = errors.New("decay: impulse response is empty")
	ErrSampleRate = errors.New("decay: sample rate must be positive")
	ErrNoDecay    = errors.New("decay: insufficient decay for RT calculation")
)

// floorDB bounds the Schroeder curve once the remaining energy is zero.
const floorDB = -200

// Result holds the decay analysis of one impulse response.
type Result struct {
	// Curve is the Schroeder decay in dB, starting at the peak.
	Curve []float64
	// Peak is the sample index of the absolute maximum.
	Peak int
	// RT60 is extrapolated from T30, or from T20 when the response does
	// not fall by 35 dB.
	RT60 float64
	// EDT is the early decay time, extrapolated from the first 10 dB.
	EDT float64
}

// Measure renders seconds of u's impulse response and analyzes it.
func Measure(u unit.Unit, seconds float64) (Result, error) {
	sr := unit.SampleRateOf(u)
	ir := unit.ImpulseResponse(u, int(seconds*sr), 0)
	return Analyze(ir, sr)
}

// Analyze computes the decay metrics of ir sampled at sampleRate.
func Analyze(ir []float64, sampleRate float64) (Result, error) {
	if len(ir) == 0 {
		return Result{}, ErrEmpty
	}
	if sampleRate <= 0 {
		return Result{}, ErrSampleRate
	}

	peak := findPeak(ir)
	curve := Schroeder(ir[peak:])

	r := Result{
		Curve: curve,
		Peak:  peak,
		EDT:   reverbTime(curve, 0, -10, sampleRate),
		RT60:  reverbTime(curve, -5, -35, sampleRate),
	}
	if r.RT60 == 0 {
		r.RT60 = reverbTime(curve, -5, -25, sampleRate)
	}
	if r.RT60 == 0 {
		return r, ErrNoDecay
	}

	return r, nil
}

// Schroeder returns the backward integrated energy of ir in dB relative to
// its total:
//
//	S(t) = 10*log10( sum_{n>=t} h[n]^2 / sum_n h[n]^2 )
func Schroeder(ir []float64) []float64 {
	out := make([]float64, len(ir))

	var acc float64
	for i := len(ir) - 1; i >= 0; i-- {
		acc += ir[i] * ir[i]
		out[i] = acc
	}

	if len(out) == 0 || out[0] <= 0 {
		return out
	}

	total := out[0]
	for i, v := range out {
		if v <= 0 {
			out[i] = floorDB
			continue
		}
		out[i] = 10 * math.Log10(v/total)
	}

	return out
}

// reverbTime fits a line to curve between startDB and endDB and returns the
// time the fitted slope needs to fall by 60 dB, or 0 without a decay.
func reverbTime(curve []float64, startDB, endDB, sampleRate float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64
	for i := start; i <= end; i++ {
		x := float64(i - start)
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(end - start + 1)
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	// dB per sample
	slope := (n*sumXY - sumX*sumY) / denom
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * sampleRate)
}

func findPeak(ir []float64) int {
	idx, peak := 0, 0.0
	for i, v := range ir {
		if a := math.Abs(v); a > peak {
			idx, peak = i, a
		}
	}
	return idx
}
