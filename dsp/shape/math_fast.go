//go:build fastmath

package shape

import (
	"github.com/meko-christian/algo-approx"
)

const ln2 = 0.693147180559945309417232121458

// Exp computes e^x using a fast approximation.
func Exp(x float64) float64 { return approx.FastExp(x) }

// Pow2 computes 2^x as e^(x ln 2).
func Pow2(x float64) float64 { return approx.FastExp(x * ln2) }

// Log2 computes log2(x) as ln(x)/ln 2.
func Log2(x float64) float64 { return approx.FastLog(x) / ln2 }

// Sqrt computes sqrt(x) using a fast approximation.
func Sqrt(x float64) float64 { return approx.FastSqrt(x) }
