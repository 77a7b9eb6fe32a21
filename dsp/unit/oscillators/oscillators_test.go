package oscillators

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

const sr = 48000

var ctx = unit.Context{SampleRate: sr}

func ready[U unit.Unit](u U) U {
	u.InitParams()
	u.Init()
	return u
}

func allUnits() map[string]func(*unit.Params) unit.Unit {
	return map[string]func(*unit.Params) unit.Unit{
		"osc_pulse":      func(p *unit.Params) unit.Unit { return NewPulse(ctx, p) },
		"osc_pulse_sync": func(p *unit.Params) unit.Unit { return NewPulseSync(ctx, p) },
		"osc_saw":        func(p *unit.Params) unit.Unit { return NewSaw(ctx, p) },
		"osc_sin":        func(p *unit.Params) unit.Unit { return NewSin(ctx, p) },
	}
}

func TestGeneratorsSoundWithoutInput(t *testing.T) {
	for name, ctor := range allUnits() {
		t.Run(name, func(t *testing.T) {
			u := ready(ctor(nil))
			if got := u.Name(); got != name {
				t.Fatalf("Name() = %q, want %q", got, name)
			}
			out := unit.Render(u, make([]float64, 4800), 0)
			testutil.RequireFinite(t, out)
			testutil.RequireBounded(t, out, 2)
			if testutil.Energy(out) == 0 {
				t.Fatal("silent output")
			}
			if u.TailLength() != core.TailInfinite {
				t.Fatalf("TailLength = %d, want infinite", u.TailLength())
			}
		})
	}
}

func TestGeneratorsAddToInput(t *testing.T) {
	for name, ctor := range allUnits() {
		t.Run(name, func(t *testing.T) {
			u := ready(ctor(nil))
			in := testutil.DeterministicNoise(1, 0.5, 2048)
			withInput := unit.Render(u, in, 0)

			u.Suspend()
			alone := unit.Render(u, make([]float64, len(in)), 0)
			for i := range in {
				alone[i] += in[i]
			}
			testutil.RequireSliceNearlyEqual(t, withInput, alone, 1e-12)
		})
	}
}

func TestGeneratorsWriteSameWaveToBothChannels(t *testing.T) {
	for name, ctor := range allUnits() {
		t.Run(name, func(t *testing.T) {
			u := ready(ctor(nil))
			zero := make([]float64, 1024)
			l, r := unit.RenderStereo(u, zero, zero, 0)
			testutil.RequireSliceNearlyEqual(t, l, r, 0)
		})
	}
}

func TestSinLevelAndPitch(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewSin(ctx, p))
	p.F[1] = 0

	out := unit.Render(u, make([]float64, sr), 12)
	if got := testutil.ToneLevel(out, 880, sr); math.Abs(got-1) > 0.01 {
		t.Fatalf("level at 880 Hz = %v, want 1", got)
	}
	if got := testutil.ToneLevel(out, 440, sr); got > 0.01 {
		t.Fatalf("level at 440 Hz = %v, want 0", got)
	}
}

func TestSawUnisonSelector(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewSaw(ctx, p))
	p.I[0] = 6

	unit.Render(u, make([]float64, 64), 0)
	if got := u.osc.Voices(); got != 7 {
		t.Fatalf("Voices() = %d, want 7", got)
	}
	if got := u.IPEntryCount(0); got != 16 {
		t.Fatalf("IPEntryCount(0) = %d, want 16", got)
	}
	if got := u.IPEntryLabel(0, 15); got != "16" {
		t.Fatalf("IPEntryLabel(0, 15) = %q, want %q", got, "16")
	}
}

func TestSawHasNoAudibleAliasing(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewSaw(ctx, p))
	// 5 kHz: harmonic 10 folds back to 2 kHz.
	p.F[0] = math.Log2(5000.0 / 440)
	p.F[1], p.F[2] = 0, 0

	out := unit.Render(u, make([]float64, sr), 0)[4800:]
	fund := testutil.ToneLevel(out, 5000, sr)
	alias := testutil.ToneLevel(out, 2000, sr)
	if alias > 0.01*fund {
		t.Fatalf("alias at 2 kHz = %v, fundamental %v", alias, fund)
	}
}

func TestPulseSyncFollowsMasterPitch(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewPulseSync(ctx, p))
	p.F[0] = math.Log2(200.0 / 440)
	p.F[1] = 7
	p.F[3] = 0

	out := unit.Render(u, make([]float64, sr), 0)[4800:]
	if got := testutil.ToneLevel(out, 200, sr); got < 0.05 {
		t.Fatalf("master fundamental level = %v, want audible", got)
	}
}

func TestSawStepIsSpreadOverSeveralSamples(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewSaw(ctx, p))
	p.F[0] = math.Log2(100.0 / 440)
	p.F[1] = 0

	// The default level puts the naive reset at a jump of 1.
	out := unit.Render(u, make([]float64, 4800), 0)
	var worst float64
	for i := 1; i < len(out); i++ {
		worst = max(worst, math.Abs(out[i]-out[i-1]))
	}
	if worst > 0.9 {
		t.Fatalf("largest sample step = %v, want < 0.9", worst)
	}
}
