package shape

import "math"

// Tanh is a saturating tanh built on [Exp], so it follows the fastmath tag.
func Tanh(x float64) float64 {
	if x > 20 {
		return 1
	}
	if x < -20 {
		return -1
	}

	e := Exp(2 * x)

	return (e - 1) / (e + 1)
}

// SoftClip is the cubic soft clipper x - x^3/3, flat beyond |x| = 1.
func SoftClip(x float64) float64 {
	switch {
	case x >= 1:
		return 2.0 / 3.0
	case x <= -1:
		return -2.0 / 3.0
	default:
		return x - x*x*x/3
	}
}

// HardClip limits x to [-limit, limit].
func HardClip(x, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, x))
}

// Fold reflects x back into [-1, 1] as a triangle wavefolder.
func Fold(x float64) float64 {
	if x >= -1 && x <= 1 {
		return x
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	// Period 4: fold(x) = 1 - |((x+1) mod 4) - 2|.
	p := math.Mod(x+1, 4)
	if p < 0 {
		p += 4
	}

	return 1 - math.Abs(p-2)
}

// Quantize rounds x to the grid of a signed quantizer with the given number
// of levels above zero. levels <= 0 returns x unchanged.
func Quantize(x, levels float64) float64 {
	if levels <= 0 {
		return x
	}

	return math.Round(x*levels) / levels
}

// DBToGain is 10^(db/20) computed through [Pow2].
func DBToGain(db float64) float64 {
	// log2(10)/20
	return Pow2(db * 0.16609640474436813)
}
