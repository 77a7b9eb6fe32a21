package delays

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

func allUnits() map[string]func() unit.Unit {
	return map[string]func() unit.Unit{
		"COMB1":          func() unit.Unit { return NewComb1(ctx, nil) },
		"COMB3":          func() unit.Unit { return NewComb3(ctx, nil) },
		"COMB2":          func() unit.Unit { return NewComb2(ctx, nil) },
		"dualdelay":      func() unit.Unit { return NewDualDelay(ctx, nil) },
		"reverb":         func() unit.Unit { return NewReverb(ctx, nil) },
		"chorus":         func() unit.Unit { return NewChorus(ctx, nil) },
		"phaser":         func() unit.Unit { return NewPhaser(ctx, nil) },
		"rotary":         func() unit.Unit { return NewRotary(ctx, nil) },
		"fauxstereo":     func() unit.Unit { return NewFauxStereo(ctx, nil) },
		"fs_flange":      func() unit.Unit { return NewFSFlange(ctx, nil) },
		"freqshiftdelay": func() unit.Unit { return NewFreqShiftDelay(ctx, nil) },
	}
}

func TestNamesMatchConstructors(t *testing.T) {
	for name, ctor := range allUnits() {
		if got := ctor().Name(); got != name {
			t.Fatalf("Name() = %q, want %q", got, name)
		}
	}
}

func TestUnitsStayBoundedForTenSeconds(t *testing.T) {
	noise := testutil.DeterministicNoise(11, 0.5, 10*sr)
	for name, ctor := range allUnits() {
		t.Run(name, func(t *testing.T) {
			u := ready(ctor())
			l, r := unit.RenderStereo(u, noise, noise, 0)
			testutil.RequireFinite(t, l)
			testutil.RequireFinite(t, r)
			testutil.RequireBounded(t, l, 100)
			testutil.RequireBounded(t, r, 100)
		})
	}
}

// combOctave tunes a comb to a loop of exactly n samples.
func combOctave(n float64) float64 {
	return math.Log2(sr / n / 440)
}

func TestCombImpulseEchoes(t *testing.T) {
	for _, tc := range []struct {
		name string
		new  func(*unit.Params) *Comb
	}{
		{"COMB1", func(p *unit.Params) *Comb { return NewComb1(ctx, p) }},
		{"COMB3", func(p *unit.Params) *Comb { return NewComb3(ctx, p) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := &unit.Params{}
			u := ready(tc.new(p))
			p.F[0] = combOctave(100)
			p.F[1] = 0.5
			p.F[2] = 1

			got := unit.ImpulseResponse(u, 400, 0)
			want := map[int]float64{100: 1, 200: 0.5, 300: 0.25}
			for n, v := range got {
				w := want[n]
				if math.Abs(v-w) > 1e-6 {
					t.Fatalf("out[%d] = %v, want %v", n, v, w)
				}
			}
		})
	}
}

func TestCombDelayFollowsPitch(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewComb3(ctx, p))
	p.F[0] = combOctave(200)

	if got := u.DelaySamples(12); math.Abs(got-100) > 1e-9 {
		t.Fatalf("DelaySamples(+12) = %v, want 100", got)
	}
}

func TestComb2RingsAtItsFrequency(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewComb2(ctx, p))
	p.F[1] = 0.9

	if !u.InitFreqGraph() {
		t.Fatal("InitFreqGraph = false")
	}
	peak := u.FreqGraph(440)
	if off := u.FreqGraph(3000); off >= peak {
		t.Fatalf("FreqGraph(3000) = %v, want below peak %v", off, peak)
	}
	if peak <= 1 {
		t.Fatalf("FreqGraph(440) = %v, want resonant gain above 1", peak)
	}
}

func TestDualDelayEchoTiming(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewDualDelay(ctx, p))
	p.F[0] = math.Log2(0.01)
	p.F[1] = math.Log2(0.02)
	p.F[2] = 0

	in := testutil.Impulse(2048, 0)
	l, r := unit.RenderStereo(u, in, in, 0)
	if math.Abs(l[480]-1) > 1e-6 {
		t.Fatalf("left echo at 480 = %v, want 1", l[480])
	}
	if math.Abs(r[960]-1) > 1e-6 {
		t.Fatalf("right echo at 960 = %v, want 1", r[960])
	}
	if got := testutil.MaxAbs(l[:400]); got > 1e-6 {
		t.Fatalf("left before echo = %v, want silence", got)
	}
}

func TestDualDelayLoopGainsStayBelowUnity(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewDualDelay(ctx, p))
	p.F[2], p.F[3] = 1, 1

	fb, cross := u.loopGains()
	if s := fb + cross; s > maxFeedback+1e-12 {
		t.Fatalf("fb+cross = %v, want <= %v", s, maxFeedback)
	}
	if u.TailLength() >= core.TailInfinite {
		t.Fatal("TailLength infinite with sub-unity loop gain")
	}
}

func TestRingOut(t *testing.T) {
	tests := []struct {
		delay, gain float64
		want        int
	}{
		{delay: 100, gain: 0, want: 100},
		{delay: 100, gain: 0.1, want: 600},
		{delay: 100, gain: 1, want: core.TailInfinite},
	}
	for _, tt := range tests {
		// Allow one sample of rounding in the logarithm.
		if got := ringOut(tt.delay, tt.gain); got < tt.want || got > tt.want+1 {
			t.Fatalf("ringOut(%v, %v) = %d, want %d", tt.delay, tt.gain, got, tt.want)
		}
	}
}

func TestReverbSilentAfterSuspend(t *testing.T) {
	u := ready(NewReverb(ctx, nil))
	noise := testutil.DeterministicNoise(5, 1, 4096)
	unit.RenderStereo(u, noise, noise, 0)

	u.Suspend()
	var in, l, r core.Block
	u.ProcessStereo(in[:], in[:], l[:], r[:], 0)
	for i := range l {
		if l[i] != 0 || r[i] != 0 {
			t.Fatalf("out[%d] = (%v, %v), want exact zeros", i, l[i], r[i])
		}
	}
}

func TestReverbTapsFollowSizeAndDecay(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewReverb(ctx, p))
	var in, l, r core.Block

	u.ProcessStereo(in[:], in[:], l[:], r[:], 0)
	small, gain := u.TapLength(0), u.TapGain(0)

	p.F[1] = 0.5
	u.ProcessStereo(in[:], in[:], l[:], r[:], 0)
	if got := u.TapLength(0); got <= small {
		t.Fatalf("TapLength after growing = %v, want > %v", got, small)
	}

	p.F[2] += 1
	u.ProcessStereo(in[:], in[:], l[:], r[:], 0)
	if got := u.TapGain(0); got <= gain {
		t.Fatalf("TapGain with longer decay = %v, want > %v", got, gain)
	}
}

func TestReverbSpreadsAnImpulse(t *testing.T) {
	u := ready(NewReverb(ctx, nil))
	in := testutil.Impulse(sr, 0)
	l, r := unit.RenderStereo(u, in, in, 0)

	if testutil.Energy(l[sr/2:]) == 0 || testutil.Energy(r[sr/2:]) == 0 {
		t.Fatal("reverb tail silent after 0.5 s")
	}
}

func TestChorusZeroMixPassesInput(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewChorus(ctx, p))
	p.F[7] = 0

	in := testutil.DeterministicNoise(2, 0.5, 2048)
	l, r := unit.RenderStereo(u, in, in, 0)
	testutil.RequireSliceNearlyEqual(t, l, in, 1e-12)
	testutil.RequireSliceNearlyEqual(t, r, in, 1e-12)
}

func TestPhaserZeroMixPassesInput(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewPhaser(ctx, p))
	p.F[5] = 0

	in := testutil.DeterministicNoise(4, 0.5, 2048)
	l, _ := unit.RenderStereo(u, in, in, 0)
	testutil.RequireSliceNearlyEqual(t, l, in, 1e-12)
}

func TestPhaserGraphHasNotches(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewPhaser(ctx, p))
	p.F[5] = 0.5
	if !u.InitFreqGraph() {
		t.Fatal("InitFreqGraph = false")
	}

	lo := math.Inf(1)
	for hz := 50.0; hz < 15000; hz *= 1.01 {
		lo = math.Min(lo, u.FreqGraph(hz))
	}
	if lo > 0.2 {
		t.Fatalf("deepest notch = %v, want < 0.2", lo)
	}
}

func TestPhaserSpreadSeparatesChannels(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewPhaser(ctx, p))
	in := testutil.DeterministicNoise(9, 0.5, 4096)
	p.F[2] = 3

	p.F[4] = 0
	l, r := unit.RenderStereo(u, in, in, 0)
	testutil.RequireSliceNearlyEqual(t, l, r, 1e-12)

	u.Suspend()
	p.F[4] = 1
	l, r = unit.RenderStereo(u, in, in, 0)
	if d, _ := testutil.MaxAbsDiff(l, r); d < 1e-3 {
		t.Fatalf("channel difference = %v, want audible spread", d)
	}
}

func TestPhaserImpulseStaysBoundedAtRangeCorners(t *testing.T) {
	in := make([]float64, sr)
	in[0] = 1

	probe := NewPhaser(ctx, nil)
	slots := probe.Descriptors()
	for corner := range 1 << len(slots) {
		p := &unit.Params{}
		u := ready(NewPhaser(ctx, p))
		for i, s := range slots {
			p.F[i] = s.Desc.Min
			if corner&(1<<i) != 0 {
				p.F[i] = s.Desc.Max
			}
		}

		// The sections are lossless and the loop gain is below one, so an
		// impulse can never come back louder than it went in.
		l, r := unit.RenderStereo(u, in, in, 0)
		if got := max(testutil.MaxAbs(l), testutil.MaxAbs(r)); !(got <= 1+1e-9) {
			t.Fatalf("params %v: peak %v, want <= 1", p.F[:len(slots)], got)
		}
	}
}

func TestRotaryPassesBassToBothChannels(t *testing.T) {
	u := ready(NewRotary(ctx, nil))
	in := testutil.DeterministicSine(60, sr, 0.5, sr)
	l, r := unit.RenderStereo(u, in, in, 0)

	if testutil.Energy(l) == 0 || testutil.Energy(r) == 0 {
		t.Fatal("bass band silent")
	}
	if u.TailLength() != rotaryTail {
		t.Fatalf("TailLength = %d, want %d", u.TailLength(), rotaryTail)
	}
}

func TestFauxStereoMonoSumIsInput(t *testing.T) {
	u := ready(NewFauxStereo(ctx, nil))
	in := testutil.DeterministicNoise(6, 0.5, 4096)
	l, r := unit.RenderStereo(u, in, in, 0)

	for i := range in {
		if got := 0.5 * (l[i] + r[i]); math.Abs(got-in[i]) > 1e-12 {
			t.Fatalf("mid[%d] = %v, want %v", i, got, in[i])
		}
	}
	if d, _ := testutil.MaxAbsDiff(l, r); d == 0 {
		t.Fatal("fauxstereo left equals right, want widening")
	}
}

func TestFSFlangeDryOnly(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewFSFlange(ctx, p))
	p.F[4] = -96

	in := testutil.DeterministicNoise(8, 0.5, 2048)
	l, _ := unit.RenderStereo(u, in, in, 0)
	testutil.RequireSliceNearlyEqual(t, l, in, 1e-4)
}

func TestFreqShiftDelayMinimumDelay(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewFreqShiftDelay(unit.Context{SampleRate: 8000}, p))
	p.F[0] = -10

	if got := u.DelaySamples(); got != core.BlockSize {
		t.Fatalf("DelaySamples = %v, want %d", got, core.BlockSize)
	}
}

func TestFreqShiftDelayEchoesAfterDelay(t *testing.T) {
	p := &unit.Params{}
	u := ready(NewFreqShiftDelay(ctx, p))
	p.F[0] = math.Log2(0.01)
	p.F[1] = 0
	p.F[3] = 1

	in := testutil.Impulse(2048, 0)
	out := unit.Render(u, in, 0)
	if got := testutil.MaxAbs(out[:400]); got > 1e-3 {
		t.Fatalf("wet before echo = %v, want silence", got)
	}
	if testutil.Energy(out[400:1200]) == 0 {
		t.Fatal("no echo after 10 ms")
	}
}

func TestSuspendRepeatsOutput(t *testing.T) {
	in := testutil.DeterministicNoise(12, 0.5, 2048)
	for name, ctor := range allUnits() {
		t.Run(name, func(t *testing.T) {
			u := ready(ctor())
			a, _ := unit.RenderStereo(u, in, in, 0)
			u.Suspend()
			b, _ := unit.RenderStereo(u, in, in, 0)
			testutil.RequireSliceNearlyEqual(t, a, b, 1e-9)
		})
	}
}
