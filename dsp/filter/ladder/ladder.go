// Package ladder implements a nonlinear four-stage transistor ladder lowpass
// with per-stage tanh saturation. Any of the four stage outputs can be
// tapped, giving 6, 12, 18 or 24 dB/oct slopes from one structure.
package ladder

import (
	"fmt"
	"math"
)

const (
	defaultThermalVoltage = 1.0
	maxResonance          = 4.0
	maxCutoffRatio        = 0.45
	stateLimit            = 32.0

	// Channels is the number of independent ladder states.
	Channels = 2
)

// Variant selects the update rule.
type Variant int

const (
	// VariantClassic is the plain four-stage nonlinear ladder.
	VariantClassic Variant = iota
	// VariantHuovilainen adds tuning and resonance compensation and a
	// half-sample feedback estimate.
	VariantHuovilainen
)

func (v Variant) String() string {
	switch v {
	case VariantClassic:
		return "classic"
	case VariantHuovilainen:
		return "huovilainen"
	default:
		return "unknown"
	}
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	variant         Variant
	thermalVoltage  float64
	normalizeOutput bool
}

// WithVariant selects the update rule.
func WithVariant(v Variant) Option {
	return func(cfg *config) error {
		if v != VariantClassic && v != VariantHuovilainen {
			return fmt.Errorf("ladder: invalid variant: %d", v)
		}

		cfg.variant = v

		return nil
	}
}

// WithThermalVoltage sets the saturation knee in [0.1, 10].
func WithThermalVoltage(vt float64) Option {
	return func(cfg *config) error {
		if !(vt >= 0.1 && vt <= 10) {
			return fmt.Errorf("ladder: thermal voltage must be in [0.1, 10]: %g", vt)
		}

		cfg.thermalVoltage = vt

		return nil
	}
}

// WithNormalizeOutput compensates the passband loss caused by resonance.
func WithNormalizeOutput(enabled bool) Option {
	return func(cfg *config) error {
		cfg.normalizeOutput = enabled
		return nil
	}
}

// State is the runtime state of one channel.
type State struct {
	Stage      [4]float64
	TanhLast   [3]float64
	PrevOutput float64
}

// Filter is a two-channel nonlinear ladder lowpass.
type Filter struct {
	sampleRate float64
	cfg        config

	cutoffHz  float64
	resonance float64
	drive     float64

	coefficient float64
	feedback    float64
	driveScale  float64
	outputScale float64

	state [Channels]State
}

// New constructs a ladder running at sampleRate.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("ladder: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := config{
		variant:         VariantHuovilainen,
		thermalVoltage:  defaultThermalVoltage,
		normalizeOutput: true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{sampleRate: sampleRate, cfg: cfg, cutoffHz: 1000, drive: 1}
	f.rebuild()

	return f, nil
}

// SetSampleRate changes the processing rate and recomputes coefficients.
func (f *Filter) SetSampleRate(sampleRate float64) {
	if sampleRate > 0 {
		f.sampleRate = sampleRate
		f.rebuild()
	}
}

// Set updates cutoff (Hz), resonance in [0, 4] and linear drive.
// Out-of-range values are clamped, so Set is safe to call per block.
func (f *Filter) Set(cutoffHz, resonance, drive float64) {
	f.cutoffHz = cutoffHz
	f.resonance = resonance
	f.drive = drive
	f.rebuild()
}

// CutoffHz returns the effective (clamped) cutoff.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// Resonance returns the clamped resonance.
func (f *Filter) Resonance() float64 { return f.resonance }

// Variant returns the update rule.
func (f *Filter) Variant() Variant { return f.cfg.variant }

// ProcessSample runs one sample on channel ch and returns stage poles-1
// (poles in 1..4).
func (f *Filter) ProcessSample(ch int, input float64, poles int) float64 {
	if math.IsNaN(input) || math.IsInf(input, 0) {
		input = 0
	}

	s := &f.state[ch]
	if f.cfg.variant == VariantHuovilainen {
		f.huovilainen(s, input)
	} else {
		f.classic(s, input)
	}

	poles = min(max(poles, 1), 4)

	return f.outputScale * s.Stage[poles-1]
}

// Process filters buf in place on channel ch.
func (f *Filter) Process(ch int, buf []float64, poles int) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(ch, x, poles)
	}
}

// Reset clears every channel.
func (f *Filter) Reset() {
	f.state = [Channels]State{}
}

// State returns a copy of channel ch's state.
func (f *Filter) State(ch int) State { return f.state[ch] }

func (f *Filter) classic(s *State, input float64) {
	u := input - f.feedback*s.Stage[3]
	g := f.coefficient
	k := f.driveScale

	s.Stage[0] = clipState(s.Stage[0] + g*(math.Tanh(k*u)-s.TanhLast[0]))
	s.TanhLast[0] = math.Tanh(k * s.Stage[0])

	s.Stage[1] = clipState(s.Stage[1] + g*(s.TanhLast[0]-s.TanhLast[1]))
	s.TanhLast[1] = math.Tanh(k * s.Stage[1])

	s.Stage[2] = clipState(s.Stage[2] + g*(s.TanhLast[1]-s.TanhLast[2]))
	s.TanhLast[2] = math.Tanh(k * s.Stage[2])

	s.Stage[3] = clipState(s.Stage[3] + g*(s.TanhLast[2]-math.Tanh(k*s.Stage[3])))
	s.PrevOutput = s.Stage[3]
}

func (f *Filter) huovilainen(s *State, input float64) {
	u := input - f.feedback*0.5*(s.Stage[3]+s.PrevOutput)
	g := f.coefficient
	k := f.driveScale

	t0 := math.Tanh(k * u)
	tS0 := math.Tanh(k * s.Stage[0])
	tS1 := math.Tanh(k * s.Stage[1])
	tS2 := math.Tanh(k * s.Stage[2])
	tS3 := math.Tanh(k * s.Stage[3])

	s.Stage[0] = clipState(s.Stage[0] + g*(t0-tS0))
	s.TanhLast[0] = math.Tanh(k * s.Stage[0])

	s.Stage[1] = clipState(s.Stage[1] + g*(s.TanhLast[0]-tS1))
	s.TanhLast[1] = math.Tanh(k * s.Stage[1])

	s.Stage[2] = clipState(s.Stage[2] + g*(s.TanhLast[1]-tS2))
	s.TanhLast[2] = math.Tanh(k * s.Stage[2])

	s.Stage[3] = clipState(s.Stage[3] + g*(s.TanhLast[2]-tS3))
	s.PrevOutput = s.Stage[3]
}

func (f *Filter) rebuild() {
	vt := f.cfg.thermalVoltage

	f.cutoffHz = math.Min(math.Max(f.cutoffHz, 1), maxCutoffRatio*f.sampleRate)
	if math.IsNaN(f.cutoffHz) {
		f.cutoffHz = 1000
	}
	f.resonance = math.Min(math.Max(f.resonance, 0), maxResonance)
	if math.IsNaN(f.resonance) {
		f.resonance = 0
	}
	f.drive = math.Min(math.Max(f.drive, 0.1), 24)
	if math.IsNaN(f.drive) {
		f.drive = 1
	}

	fc := f.cutoffHz / f.sampleRate
	f.driveScale = 0.5 * f.drive / vt
	f.feedback = f.resonance
	f.coefficient = (1 - math.Exp(-2*math.Pi*fc)) / f.driveScale

	if f.cfg.variant == VariantHuovilainen {
		fcr := math.Max(1.8730*fc*fc*fc+0.4955*fc*fc-0.6490*fc+0.9988, 0)
		f.coefficient = (1 - math.Exp(-2*math.Pi*fcr*fc)) / f.driveScale

		comp := math.Max(-3.9364*fc*fc+1.8409*fc+0.9968, 0)
		f.feedback = f.resonance * comp
	}

	f.outputScale = 1
	if f.cfg.normalizeOutput {
		f.outputScale = 1 + 0.5*f.feedback
	}
}

func clipState(v float64) float64 {
	if v > stateLimit {
		return stateLimit
	}
	if v < -stateLimit {
		return -stateLimit
	}
	if math.Abs(v) < 1e-30 {
		return 0
	}

	return v
}
