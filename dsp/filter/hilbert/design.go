package hilbert

import (
	"fmt"
	"math"
)

// Preset selects a coefficient-count/transition design profile.
type Preset int

const (
	// PresetFast uses 8 coefficients with a 0.1 transition band.
	PresetFast Preset = iota
	// PresetBalanced improves image rejection in the low-mid band.
	PresetBalanced
	// PresetLowFrequency keeps quadrature accurate down to a few tens of Hz.
	PresetLowFrequency
)

func (p Preset) String() string {
	switch p {
	case PresetFast:
		return "fast"
	case PresetBalanced:
		return "balanced"
	case PresetLowFrequency:
		return "low_frequency"
	default:
		return "unknown"
	}
}

// Config returns coefficient count and normalized transition bandwidth.
func (p Preset) Config() (numberOfCoeffs int, transition float64, err error) {
	switch p {
	case PresetFast:
		return 8, 0.1, nil
	case PresetBalanced:
		return 12, 0.06, nil
	case PresetLowFrequency:
		return 20, 0.02, nil
	default:
		return 0, 0, fmt.Errorf("hilbert: invalid preset: %d", p)
	}
}

// Coefficients designs the allpass coefficients for the preset.
func (p Preset) Coefficients() ([]float64, error) {
	n, tr, err := p.Config()
	if err != nil {
		return nil, err
	}

	return DesignCoefficients(n, tr)
}

// DesignCoefficients computes polyphase allpass coefficients for the given
// number of coefficients and normalized transition bandwidth (0 < tr < 0.5).
func DesignCoefficients(numberOfCoeffs int, transition float64) ([]float64, error) {
	if err := validateDesign(numberOfCoeffs, transition); err != nil {
		return nil, err
	}

	k, q := transitionParams(transition)
	order := numberOfCoeffs*2 + 1

	coeffs := make([]float64, numberOfCoeffs)
	for i := range numberOfCoeffs {
		coeffs[i] = coefficient(i+1, k, q, order)
	}

	return coeffs, nil
}

// Attenuation returns the stopband attenuation in dB reached by a design.
func Attenuation(numberOfCoeffs int, transition float64) (float64, error) {
	if err := validateDesign(numberOfCoeffs, transition); err != nil {
		return 0, err
	}

	_, q := transitionParams(transition)
	v := 4 * math.Exp(float64(numberOfCoeffs*2+1)*0.5*math.Log(q))

	return -10 * math.Log10(v/(1+v)), nil
}

func validateDesign(numberOfCoeffs int, transition float64) error {
	if numberOfCoeffs < 1 {
		return fmt.Errorf("hilbert: number of coefficients must be >= 1: %d", numberOfCoeffs)
	}
	if math.IsNaN(transition) || transition <= 0 || transition >= 0.5 {
		return fmt.Errorf("hilbert: transition must be in (0, 0.5): %g", transition)
	}

	return nil
}

func validateCoefficients(coeffs []float64) error {
	if len(coeffs) < 2 {
		return fmt.Errorf("hilbert: need at least 2 coefficients, got %d", len(coeffs))
	}

	for i, c := range coeffs {
		if math.IsNaN(c) || math.Abs(c) >= 1 {
			return fmt.Errorf("hilbert: coefficient[%d] = %g outside (-1, 1)", i, c)
		}
	}

	return nil
}

func transitionParams(transition float64) (k, q float64) {
	k = math.Pow(math.Tan((1-transition*2)*math.Pi*0.25), 2)
	kksqrt := math.Pow(1-k*k, 0.25)
	e := 0.5 * (1 - kksqrt) / (1 + kksqrt)
	e4 := e * e * e * e
	q = e * (1 + e4*(2+e4*(15+150*e4)))

	return k, q
}

func coefficient(c int, k, q float64, order int) float64 {
	num := thetaNumerator(q, order, c) * math.Pow(q, 0.25)
	den := thetaDenominator(q, order, c) + 0.5
	ww := (num * num) / (den * den)

	r := math.Sqrt((1-ww*k)*(1-ww/k)) / (1 + ww)

	return (1 - r) / (1 + r)
}

// Jacobi theta series, summed until terms vanish.
func thetaNumerator(q float64, order, c int) float64 {
	sum, sign := 0.0, 1.0
	for i := 0; ; i++ {
		term := math.Pow(q, float64(i*(i+1))) * math.Sin(float64(i*2+1)*float64(c)*math.Pi/float64(order)) * sign
		sum += term
		sign = -sign
		if math.Abs(term) <= 1e-100 {
			return sum
		}
	}
}

func thetaDenominator(q float64, order, c int) float64 {
	sum, sign := 0.0, -1.0
	for i := 1; ; i++ {
		term := math.Pow(q, float64(i*i)) * math.Cos(2*float64(i)*float64(c)*math.Pi/float64(order)) * sign
		sum += term
		sign = -sign
		if math.Abs(term) <= 1e-100 {
			return sum
		}
	}
}
