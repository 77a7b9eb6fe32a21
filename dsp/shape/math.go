//go:build !fastmath

package shape

import "math"

// Exp computes e^x.
func Exp(x float64) float64 { return math.Exp(x) }

// Pow2 computes 2^x.
func Pow2(x float64) float64 { return math.Exp2(x) }

// Log2 computes log2(x).
func Log2(x float64) float64 { return math.Log2(x) }

// Sqrt computes sqrt(x).
func Sqrt(x float64) float64 { return math.Sqrt(x) }
