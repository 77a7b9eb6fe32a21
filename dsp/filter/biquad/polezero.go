package biquad

import (
	"math"
	"math/cmplx"
)

// Poles returns the z-plane poles of the section denominator:
//
//	1 + A1*z^-1 + A2*z^-2 = 0
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the z-plane zeros of the section numerator:
//
//	B0 + B1*z^-1 + B2*z^-2 = 0
func (c *Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// PoleRadius returns the largest pole magnitude. Values below 1 mean stable.
func (c *Coefficients) PoleRadius() float64 {
	p := c.Poles()
	return math.Max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// DecaySamples estimates how many samples the impulse response needs to fall
// by decayDB, from the dominant pole radius. Unstable or marginal sections
// report -1.
func (c *Coefficients) DecaySamples(decayDB float64) int {
	r := c.PoleRadius()
	if r >= 1 || math.IsNaN(r) {
		return -1
	}
	if r < 1e-9 {
		return 2
	}
	n := -decayDB / (20 * math.Log10(r))
	return int(math.Ceil(n)) + 2
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	discriminant := complex(b*b-4*a*c, 0)
	sqrtDiscriminant := cmplx.Sqrt(discriminant)
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
