package testutil

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// ToneLevel returns the peak amplitude of the hz component of x, evaluated
// as a single DFT bin. Whole cycles in x avoid leakage from other partials.
func ToneLevel(x []float64, hz, sampleRate float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var acc complex128
	w := 2 * math.Pi * hz / sampleRate
	for n, v := range x {
		acc += complex(v, 0) * cmplx.Exp(complex(0, -w*float64(n)))
	}
	return 2 * cmplx.Abs(acc) / float64(len(x))
}
