package osc

import "math"

// MaxVoices is the largest unison count of [Saw].
const MaxVoices = 16

// Saw is a band-limited unison sawtooth. Voices are spread symmetrically
// in pitch around the centre frequency and start at staggered phases.
type Saw struct {
	phase  [MaxVoices]float64
	ratio  [MaxVoices]float64
	voices int
	spread float64
	inj    Injector
}

// NewSaw returns a saw with the given number of voices (clamped to
// 1..MaxVoices).
func NewSaw(voices int) *Saw {
	s := &Saw{}
	s.SetVoices(voices)

	return s
}

// SetVoices changes the unison count and restarts the oscillator.
func (s *Saw) SetVoices(voices int) {
	s.voices = min(max(voices, 1), MaxVoices)
	s.Reset()
}

// Voices returns the unison count.
func (s *Saw) Voices() int { return s.voices }

// Detune returns the pitch offset of voice v in cents for a total spread.
func (s *Saw) Detune(v int, spreadCents float64) float64 {
	if s.voices == 1 {
		return 0
	}

	return spreadCents * (float64(v)/float64(s.voices-1) - 0.5)
}

// Next produces one sample. inc is the centre frequency divided by the
// sample rate. spreadCents sets the distance between the outer voices.
func (s *Saw) Next(inc, spreadCents float64) float64 {
	if spreadCents != s.spread {
		s.setSpread(spreadCents)
	}

	gain := 1 / float64(s.voices)

	for v := range s.voices {
		vi := clampIncrement(inc * s.ratio[v])

		s.inj.AddSlope(2 * vi * gain)

		s.phase[v] += vi
		if s.phase[v] >= 1 {
			s.phase[v] -= 1
			s.inj.AddStep(s.phase[v]/vi, -2*gain)
		}
	}

	return s.inj.Next()
}

func (s *Saw) setSpread(spreadCents float64) {
	s.spread = spreadCents
	for v := range s.voices {
		s.ratio[v] = math.Exp2(s.Detune(v, spreadCents) / 1200)
	}
}

// Reset restarts every voice at its initial phase.
func (s *Saw) Reset() {
	start := 0.0
	for v := range s.voices {
		// Golden-ratio stagger keeps unison voices from starting in phase.
		p := math.Mod(0.5+float64(v)*0.6180339887498949, 1)
		s.phase[v] = p
		start += (2*p - 1) / float64(s.voices)
	}

	s.inj.Reset(start)
	s.setSpread(s.spread)
}
