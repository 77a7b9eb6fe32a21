package hilbert

import "math"

// Quadrature splits a signal into two outputs 90 degrees apart. The
// second output lags the first, so for cos input it tends to sin.
type Quadrature struct {
	coeffs []float64
	xMem   [2][]float64
	yMem   [2][]float64
	prev   float64
	phase  int
}

// NewQuadrature creates a quadrature network from explicit coefficients.
func NewQuadrature(coeffs []float64) (*Quadrature, error) {
	if err := validateCoefficients(coeffs); err != nil {
		return nil, err
	}

	q := &Quadrature{coeffs: append([]float64(nil), coeffs...)}
	for ph := range q.xMem {
		q.xMem[ph] = make([]float64, len(coeffs))
		q.yMem[ph] = make([]float64, len(coeffs))
	}

	return q, nil
}

// NewQuadraturePreset creates a quadrature network from a preset design.
func NewQuadraturePreset(p Preset) (*Quadrature, error) {
	coeffs, err := p.Coefficients()
	if err != nil {
		return nil, err
	}

	return NewQuadrature(coeffs)
}

// ProcessSample returns the in-phase and quadrature outputs for one sample.
func (q *Quadrature) ProcessSample(input float64) (re, im float64) {
	y := q.yMem[q.phase]
	x := q.xMem[q.phase]
	c := q.coeffs

	y[0] = (input+y[0])*c[0] - x[0]
	x[0] = input
	y[1] = (q.prev+y[1])*c[1] - x[1]
	x[1] = q.prev

	for i := 2; i < len(c); i++ {
		y[i] = (y[i-2]+y[i])*c[i] - x[i]
		x[i] = y[i-2]
	}

	last := len(c) - 1
	q.prev = input
	q.phase ^= 1

	return y[last-1], y[last]
}

// ProcessBlock fills re and im from input. All slices share input's length.
func (q *Quadrature) ProcessBlock(input, re, im []float64) {
	re = re[:len(input)]
	im = im[:len(input)]
	for i, v := range input {
		re[i], im[i] = q.ProcessSample(v)
	}
}

// Envelope returns the analytic magnitude for one sample.
func (q *Quadrature) Envelope(input float64) float64 {
	re, im := q.ProcessSample(input)
	return math.Hypot(re, im)
}

// Reset clears the allpass memories.
func (q *Quadrature) Reset() {
	for ph := range q.xMem {
		clear(q.xMem[ph])
		clear(q.yMem[ph])
	}

	q.prev = 0
	q.phase = 0
}

// Len returns the number of allpass coefficients.
func (q *Quadrature) Len() int { return len(q.coeffs) }
