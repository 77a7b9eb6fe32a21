package param

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Lipol ramps linearly from its current value to a target over one block.
// The first SetTarget after construction or Reset jumps straight to the target.
type Lipol struct {
	value     float64
	target    float64
	step      float64
	remaining int
	primed    bool
}

// SetTarget starts a new ramp towards target, ending after BlockSize calls to Next.
func (l *Lipol) SetTarget(target float64) {
	if !l.primed {
		l.value, l.target = target, target
		l.remaining = 0
		l.primed = true
		return
	}

	l.target = target
	l.step = (target - l.value) * core.BlockSizeInv
	l.remaining = core.BlockSize
}

// Next advances the ramp by one sample and returns the new value.
func (l *Lipol) Next() float64 {
	if l.remaining > 0 {
		l.remaining--
		if l.remaining == 0 {
			l.value = l.target
		} else {
			l.value += l.step
		}
	}
	return l.value
}

// Fill writes the next len(dst) ramp values into dst.
func (l *Lipol) Fill(dst []float64) {
	for i := range dst {
		dst[i] = l.Next()
	}
}

// Value returns the current value.
func (l *Lipol) Value() float64 { return l.value }

// Target returns the ramp target.
func (l *Lipol) Target() float64 { return l.target }

// Instantize jumps to the target.
func (l *Lipol) Instantize() {
	l.value = l.target
	l.remaining = 0
}

// Reset forgets history so the next SetTarget jumps.
func (l *Lipol) Reset() {
	*l = Lipol{}
}

// Lag approaches its target exponentially: value += rate*(target-value).
type Lag struct {
	value  float64
	target float64
	rate   float64
	primed bool
}

const defaultLagRate = 0.004

// NewLag returns a Lag with the given per-sample rate in (0, 1].
func NewLag(rate float64) Lag {
	var l Lag
	l.SetRate(rate)
	return l
}

// LagRate returns the per-sample rate that closes 99.9% (-60 dB) of a step
// within seconds at sampleRate.
func LagRate(seconds, sampleRate float64) float64 {
	if seconds <= 0 || sampleRate <= 0 {
		return 1
	}
	return 1 - math.Exp(-6.907755278982137/(seconds*sampleRate))
}

// SetRate sets the per-sample rate, clamped to (0, 1].
func (l *Lag) SetRate(rate float64) {
	if !(rate > 0) {
		rate = defaultLagRate
	}
	l.rate = math.Min(rate, 1)
}

// SetTarget sets the value to approach. The first call after Reset jumps.
func (l *Lag) SetTarget(target float64) {
	if l.rate == 0 {
		l.rate = defaultLagRate
	}
	l.target = target
	if !l.primed {
		l.value = target
		l.primed = true
	}
}

// Next advances one sample and returns the new value.
func (l *Lag) Next() float64 {
	diff := l.target - l.value
	if math.Abs(diff) <= 1e-12*math.Max(1, math.Abs(l.target)) {
		l.value = l.target
		return l.value
	}
	l.value += l.rate * diff
	return l.value
}

// Value returns the current value.
func (l *Lag) Value() float64 { return l.value }

// Target returns the value being approached.
func (l *Lag) Target() float64 { return l.target }

// Instantize jumps to the target.
func (l *Lag) Instantize() { l.value = l.target }

// Reset forgets history so the next SetTarget jumps. The rate is kept.
func (l *Lag) Reset() {
	l.value, l.target, l.primed = 0, 0, false
}
