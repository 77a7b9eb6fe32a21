package osc

import "math"

const (
	// MaxIncrement keeps the oscillators below 0.45 of the sample rate.
	MaxIncrement = 0.45
	minWidth     = 0.01
	maxWidth     = 0.99
)

// pulseCore tracks the phase and level of one pulse wave. It is high from
// phase 0 until the width, low until the wrap.
type pulseCore struct {
	phase float64
	high  bool
}

// advance runs the core for dt samples ending fracEnd samples before the
// current output, emitting steps of height 2 into inj.
func (p *pulseCore) advance(inj *Injector, inc, width, dt, fracEnd float64) {
	remaining := dt
	for {
		var t float64
		if p.high {
			t = math.Max((width-p.phase)/inc, 0)
		} else {
			t = (1 - p.phase) / inc
		}
		if t > remaining {
			p.phase += inc * remaining
			return
		}

		remaining -= t
		if p.high {
			p.phase = width
			p.high = false
			inj.AddStep(fracEnd+remaining, -2)
		} else {
			p.phase = 0
			p.high = true
			inj.AddStep(fracEnd+remaining, 2)
		}
	}
}

// reset jumps to phase 0 (high) at frac samples before the current output.
func (p *pulseCore) reset(inj *Injector, frac float64) {
	if !p.high {
		inj.AddStep(frac, 2)
	}
	p.phase = 0
	p.high = true
}

func (p *pulseCore) level() float64 {
	if p.high {
		return 1
	}

	return -1
}

// Pulse is a band-limited pulse oscillator with variable width. Its output
// is centred, so the mean stays at zero for every width.
type Pulse struct {
	core pulseCore
	inj  Injector
}

// NewPulse returns a pulse oscillator starting at the rising edge.
func NewPulse() *Pulse {
	p := &Pulse{}
	p.Reset()

	return p
}

// Next produces one sample. inc is the frequency divided by the sample
// rate, width the high fraction of the cycle.
func (p *Pulse) Next(inc, width float64) float64 {
	inc = clampIncrement(inc)
	width = clampWidth(width)

	p.core.advance(&p.inj, inc, width, 1, 0)

	return p.inj.Next() - (2*width - 1)
}

// Reset restarts the cycle.
func (p *Pulse) Reset() {
	p.core = pulseCore{high: true}
	p.inj.Reset(1)
}

// SyncPulse is a pulse oscillator whose cycle restarts on every cycle of a
// master oscillator running at a lower frequency.
type SyncPulse struct {
	slave  pulseCore
	master float64
	inj    Injector
}

// NewSyncPulse returns a hard-synced pulse oscillator.
func NewSyncPulse() *SyncPulse {
	s := &SyncPulse{}
	s.Reset()

	return s
}

// Next produces one sample. masterInc sets the perceived pitch, slaveInc
// the formant that the sync sweeps.
func (s *SyncPulse) Next(masterInc, slaveInc, width float64) float64 {
	masterInc = clampIncrement(masterInc)
	slaveInc = clampIncrement(slaveInc)
	width = clampWidth(width)

	s.master += masterInc
	if s.master < 1 {
		s.slave.advance(&s.inj, slaveInc, width, 1, 0)
	} else {
		s.master -= 1
		frac := s.master / masterInc

		s.slave.advance(&s.inj, slaveInc, width, 1-frac, frac)
		s.slave.reset(&s.inj, frac)
		s.slave.advance(&s.inj, slaveInc, width, frac, 0)
	}

	return s.inj.Next() - (2*width - 1)
}

// Level returns the slave's current naive level (+1 or -1).
func (s *SyncPulse) Level() float64 { return s.slave.level() }

// Reset restarts both oscillators.
func (s *SyncPulse) Reset() {
	s.slave = pulseCore{high: true}
	s.master = 0
	s.inj.Reset(1)
}

func clampIncrement(inc float64) float64 {
	if !(inc > 1e-9) {
		return 1e-9
	}

	return math.Min(inc, MaxIncrement)
}

func clampWidth(w float64) float64 {
	if math.IsNaN(w) {
		return 0.5
	}

	return math.Min(math.Max(w, minWidth), maxWidth)
}
