// Package window evaluates the tapering windows used by the interpolation
// kernels, the band-limited step tables and the response measurement.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeBlackman
	TypeKaiser
)

var (
	hannCoeffs     = []float64{0.5, -0.5}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// DefaultKaiserBeta gives roughly 90 dB of sidelobe rejection.
const DefaultKaiserBeta = 9

// At evaluates the window at x in [0, 1]. Positions outside are clamped.
func At(t Type, x float64) float64 {
	x = math.Max(0, math.Min(1, x))

	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeKaiser:
		return kaiserAt(x, DefaultKaiserBeta)
	default:
		return 1
	}
}

// Centered evaluates the window for an offset x from its centre over a
// total width. Offsets beyond half the width give zero.
func Centered(t Type, x, width float64) float64 {
	if width <= 0 || math.Abs(x) > width/2 {
		return 0
	}
	return At(t, x/width+0.5)
}

// Generate returns the symmetric window of the given length.
func Generate(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	den := float64(length - 1)
	for i := range out {
		out[i] = At(t, float64(i)/den)
	}

	return out
}

// FadeOut multiplies the last n samples of buf by the falling half of the
// window. A non-positive n leaves buf unchanged.
func FadeOut(t Type, buf []float64, n int) {
	n = min(n, len(buf))
	if n <= 0 {
		return
	}

	ramp := make([]float64, n)
	for i := range ramp {
		ramp[i] = At(t, 0.5+0.5*float64(i+1)/float64(n))
	}

	vecmath.MulBlockInPlace(buf[len(buf)-n:], ramp)
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func kaiserAt(x, beta float64) float64 {
	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
