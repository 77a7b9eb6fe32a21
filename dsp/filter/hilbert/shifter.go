package hilbert

import "math"

// Shifter moves every spectral component of its input by a fixed number of
// Hz (single-sideband modulation). Unlike pitch shifting, harmonic ratios
// are not preserved.
type Shifter struct {
	quad  *Quadrature
	phase float64
	inc   float64
}

// NewShifter returns a frequency shifter using the preset's quadrature design.
func NewShifter(p Preset) (*Shifter, error) {
	q, err := NewQuadraturePreset(p)
	if err != nil {
		return nil, err
	}

	return &Shifter{quad: q}, nil
}

// SetShift sets the shift amount in Hz. Negative values shift down.
func (s *Shifter) SetShift(hz, sampleRate float64) {
	s.inc = 2 * math.Pi * hz / sampleRate
}

// SetPhase sets the carrier phase in radians.
func (s *Shifter) SetPhase(phase float64) { s.phase = wrapPhase(phase) }

// ProcessSample returns the shifted sample.
func (s *Shifter) ProcessSample(x float64) float64 {
	re, im := s.quad.ProcessSample(x)
	sin, cos := math.Sincos(s.phase)

	s.phase = wrapPhase(s.phase + s.inc)

	return re*cos - im*sin
}

// Process shifts buf in place.
func (s *Shifter) Process(buf []float64) {
	for i, v := range buf {
		buf[i] = s.ProcessSample(v)
	}
}

// Reset clears the quadrature network and the carrier phase.
func (s *Shifter) Reset() {
	s.quad.Reset()
	s.phase = 0
}

func wrapPhase(p float64) float64 {
	if p >= math.Pi || p < -math.Pi {
		p = math.Mod(p+math.Pi, 2*math.Pi)
		if p < 0 {
			p += 2 * math.Pi
		}
		p -= math.Pi
	}

	return p
}
