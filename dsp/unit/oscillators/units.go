package oscillators

import (
	"strconv"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/osc"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

var (
	levelSlot = unit.Slot{Label: "level", Desc: param.DB.WithDefault(-6)}
	widthSlot = unit.Slot{Label: "width", Desc: param.Percent.WithDefault(0.5)}
	freqSlot  = unit.Slot{Label: "freq", Desc: param.Freq.WithDefault(0)}

	// SyncRatio is the slave's distance above the master in semitones.
	SyncRatio = param.MustParse("f,0,0.04,60,12,semitones")
)

// Pulse is the variable width pulse generator.
type Pulse struct {
	generator
	osc *osc.Pulse
}

// NewPulse returns osc_pulse.
func NewPulse(ctx unit.Context, p *unit.Params) *Pulse {
	u := &Pulse{osc: osc.NewPulse()}
	u.generator = generator{
		Base:      unit.NewBase("osc_pulse", ctx, p, []unit.Slot{freqSlot, widthSlot, levelSlot}),
		levelSlot: 2,
		reset:     u.osc.Reset,
	}
	u.render = func(wave []float64, pitch float64) {
		inc, width := u.increment(0, pitch), u.Clamped(1)
		for i := range wave {
			wave[i] = u.osc.Next(inc, width)
		}
	}
	return u
}

// PulseSync is a pulse whose cycle is restarted by a lower master.
type PulseSync struct {
	generator
	osc *osc.SyncPulse
}

// NewPulseSync returns osc_pulse_sync.
func NewPulseSync(ctx unit.Context, p *unit.Params) *PulseSync {
	u := &PulseSync{osc: osc.NewSyncPulse()}
	u.generator = generator{
		Base: unit.NewBase("osc_pulse_sync", ctx, p, []unit.Slot{
			freqSlot,
			{Label: "sync", Desc: SyncRatio},
			widthSlot,
			levelSlot,
		}),
		levelSlot: 3,
		reset:     u.osc.Reset,
	}
	u.render = func(wave []float64, pitch float64) {
		master := u.increment(0, pitch)
		slave := master * core.SemitonesToRatio(u.Clamped(1))
		width := u.Clamped(2)
		for i := range wave {
			wave[i] = u.osc.Next(master, slave, width)
		}
	}
	return u
}

// unisonEntries labels the unison selector "1" to "16".
func unisonEntries() []string {
	e := make([]string, osc.MaxVoices)
	for i := range e {
		e[i] = strconv.Itoa(i + 1)
	}
	return e
}

// Saw is the unison sawtooth generator.
type Saw struct {
	generator
	osc *osc.Saw
}

// NewSaw returns osc_saw.
func NewSaw(ctx unit.Context, p *unit.Params) *Saw {
	u := &Saw{osc: osc.NewSaw(1)}
	u.generator = generator{
		Base: unit.NewBase("osc_saw", ctx, p,
			[]unit.Slot{
				freqSlot,
				{Label: "detune", Desc: param.MPitch.WithDefault(10)},
				levelSlot,
			},
			unit.Selector{Label: "unison", Entries: unisonEntries()},
		),
		levelSlot: 2,
		reset:     u.osc.Reset,
	}
	u.render = func(wave []float64, pitch float64) {
		if v := u.Int(0) + 1; v != u.osc.Voices() {
			u.osc.SetVoices(v)
		}
		inc, spread := u.increment(0, pitch), u.Clamped(1)
		for i := range wave {
			wave[i] = u.osc.Next(inc, spread)
		}
	}
	return u
}

// Sin is the sine generator.
type Sin struct {
	generator
	osc osc.Quadrature
}

// NewSin returns osc_sin.
func NewSin(ctx unit.Context, p *unit.Params) *Sin {
	u := &Sin{osc: osc.NewQuadrature()}
	u.generator = generator{
		Base:      unit.NewBase("osc_sin", ctx, p, []unit.Slot{freqSlot, levelSlot}),
		levelSlot: 1,
		reset:     u.osc.Reset,
	}
	u.render = func(wave []float64, pitch float64) {
		u.osc.SetRate(u.Omega(0, pitch))
		for i := range wave {
			_, wave[i] = u.osc.Process()
		}
	}
	return u
}
