package osc

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-voicefx/dsp/window"
)

const (
	// InjectorTaps is the length of one band-limited impulse.
	InjectorTaps = 16
	// InjectorPhases is the sub-sample resolution of step placement.
	InjectorPhases = 64
	// InjectorLatency is the delay in samples between an event and its
	// centre in the output.
	InjectorLatency = InjectorTaps / 2

	ringSize = 32
	ringMask = ringSize - 1

	// Cutoff of the impulse relative to Nyquist.
	impulseCutoff = 0.8
)

var impulseTable = sync.OnceValue(buildImpulseTable)

// Rows are sampled half a sample early so that the running sum places the
// half-height point of each step at the event time.
func buildImpulseTable() *[InjectorPhases + 1][InjectorTaps]float64 {
	var t [InjectorPhases + 1][InjectorTaps]float64

	const half = InjectorTaps / 2
	for p := range InjectorPhases + 1 {
		frac := float64(p) / InjectorPhases
		sum := 0.0
		for j := range InjectorTaps {
			x := float64(j-InjectorLatency) + frac - 0.5
			if math.Abs(x) >= half {
				continue
			}
			t[p][j] = sincCut(x) * window.Centered(window.TypeBlackman, x, InjectorTaps)
			sum += t[p][j]
		}
		for j := range InjectorTaps {
			t[p][j] /= sum
		}
	}

	return &t
}

func sincCut(x float64) float64 {
	if x == 0 {
		return 1
	}

	y := math.Pi * impulseCutoff * x

	return math.Sin(y) / y
}

// Injector integrates slopes and band-limited steps into a waveform. Every
// contribution is delayed by [InjectorLatency] samples so steps can start
// before their centre.
type Injector struct {
	ring [ringSize]float64
	head int
	acc  float64
}

// AddStep adds a band-limited step of the given height that happened frac
// samples (0..1) before the sample about to be produced.
func (j *Injector) AddStep(frac, height float64) {
	p := int(math.Round(frac * InjectorPhases))
	p = min(max(p, 0), InjectorPhases)

	row := &impulseTable()[p]
	for k, c := range row {
		j.ring[(j.head+k)&ringMask] += height * c
	}
}

// AddSlope adds the waveform's change over the current sample.
func (j *Injector) AddSlope(v float64) {
	j.ring[(j.head+InjectorLatency)&ringMask] += v
}

// Next integrates and returns one output sample.
func (j *Injector) Next() float64 {
	j.acc += j.ring[j.head]
	j.ring[j.head] = 0
	j.head = (j.head + 1) & ringMask

	return j.acc
}

// Value returns the current integrator output.
func (j *Injector) Value() float64 { return j.acc }

// Reset clears pending contributions and sets the integrator to v.
func (j *Injector) Reset(v float64) {
	j.ring = [ringSize]float64{}
	j.head = 0
	j.acc = v
}
