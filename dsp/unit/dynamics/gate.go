package dynamics

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// detector holds the shared gate decision and the per-channel state that
// defers each channel's switch to its next zero crossing.
type detector struct {
	hold int
	open bool
	zc   [2]bool
	prev [2]float64
}

// detect updates the gate decision from the level of one frame.
func (d *detector) detect(level, threshold float64, holdSamples int) {
	if level > threshold {
		d.open = true
		d.hold = holdSamples
		return
	}
	if d.hold > 0 {
		d.hold--
		return
	}
	d.open = false
}

// sync reports whether channel ch is open after sample x and whether x
// crossed zero.
func (d *detector) sync(ch int, x float64) (open, crossed bool) {
	crossed = d.prev[ch]*x <= 0
	if crossed {
		d.zc[ch] = d.open
	}
	d.prev[ch] = x
	return d.zc[ch], crossed
}

func (d *detector) reset() { *d = detector{} }

var gateSlots = struct {
	threshold, hold, reduction unit.Slot
}{
	threshold: unit.Slot{Label: "threshold", Desc: param.DB.WithDefault(-48)},
	hold:      unit.Slot{Label: "hold", Desc: param.Time.WithDefault(-6)},
	reduction: unit.Slot{Label: "reduction", Desc: param.DB.WithDefault(-96)},
}

// Gate mutes its input while the level stays below the threshold for
// longer than the hold time.
type Gate struct {
	unit.Base
	det detector
}

// NewGate returns the noise gate.
func NewGate(ctx unit.Context, p *unit.Params) *Gate {
	return &Gate{
		Base: unit.NewBase("gate", ctx, p, []unit.Slot{
			gateSlots.threshold,
			gateSlots.hold,
			gateSlots.reduction,
		}),
	}
}

func (u *Gate) holdSamples(i int) int {
	return int(u.Seconds(i) * u.SampleRate)
}

// Process renders one mono block.
func (u *Gate) Process(in, out []float64, _ float64) {
	th, hold, red := u.Gain(0), u.holdSamples(1), u.Gain(2)
	for i, x := range in {
		u.det.detect(math.Abs(x), th, hold)
		if open, _ := u.det.sync(0, x); open {
			out[i] = x
		} else {
			out[i] = x * red
		}
	}
}

// ProcessStereo renders one stereo block. Both channels share the gate
// decision.
func (u *Gate) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	th, hold, red := u.Gain(0), u.holdSamples(1), u.Gain(2)
	for i := range inL {
		l, r := inL[i], inR[i]
		u.det.detect(math.Max(math.Abs(l), math.Abs(r)), th, hold)
		if open, _ := u.det.sync(0, l); !open {
			l *= red
		}
		if open, _ := u.det.sync(1, r); !open {
			r *= red
		}
		outL[i], outR[i] = l, r
	}
}

// Suspend closes the gate.
func (u *Gate) Suspend() { u.det.reset() }

// MicroGateBuffer is the longest loop microgate can record.
const MicroGateBuffer = 4096

// MicroGate is a gate that records the start of every opening and loops it
// for as long as the gate stays open. A recording ends on the first zero
// crossing after the loop size is reached, so the loop joins without a
// click.
type MicroGate struct {
	unit.Base
	det detector

	loop      [2][MicroGateBuffer]float64
	pos       [2]int
	length    [2]int
	recording [2]bool
	wasOpen   [2]bool
}

// NewMicroGate returns the looping gate.
func NewMicroGate(ctx unit.Context, p *unit.Params) *MicroGate {
	return &MicroGate{
		Base: unit.NewBase("microgate", ctx, p, []unit.Slot{
			gateSlots.hold,
			{Label: "loop size", Desc: param.Percent.WithDefault(0.5)},
			gateSlots.threshold,
			gateSlots.reduction,
		}),
	}
}

// LoopTarget returns the minimum loop length in samples, 4 at zero and the
// whole buffer at full scale.
func (u *MicroGate) LoopTarget() int {
	n := int(4 * math.Exp2(10*u.Clamped(1)))
	return core.ClampInt(n, 4, MicroGateBuffer)
}

func (u *MicroGate) tick(ch int, x, red float64, target int) float64 {
	open, crossed := u.det.sync(ch, x)
	opened := open && !u.wasOpen[ch]
	u.wasOpen[ch] = open

	if !open {
		u.recording[ch] = false
		return x * red
	}
	if opened {
		u.recording[ch] = true
		u.pos[ch] = 0
	}

	if u.recording[ch] {
		p := u.pos[ch]
		if p == MicroGateBuffer || (p >= target && crossed) {
			u.recording[ch] = false
			u.length[ch] = p
			u.pos[ch] = 0
		} else {
			u.loop[ch][p] = x
			u.pos[ch]++
			return x
		}
	}

	y := u.loop[ch][u.pos[ch]]
	u.pos[ch] = (u.pos[ch] + 1) % u.length[ch]
	return y
}

// Process renders one mono block.
func (u *MicroGate) Process(in, out []float64, _ float64) {
	hold, target, th, red := int(u.Seconds(0)*u.SampleRate), u.LoopTarget(), u.Gain(2), u.Gain(3)
	for i, x := range in {
		u.det.detect(math.Abs(x), th, hold)
		out[i] = u.tick(0, x, red, target)
	}
}

// ProcessStereo renders one stereo block.
func (u *MicroGate) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	hold, target, th, red := int(u.Seconds(0)*u.SampleRate), u.LoopTarget(), u.Gain(2), u.Gain(3)
	for i := range inL {
		l, r := inL[i], inR[i]
		u.det.detect(math.Max(math.Abs(l), math.Abs(r)), th, hold)
		outL[i] = u.tick(0, l, red, target)
		outR[i] = u.tick(1, r, red, target)
	}
}

// Suspend closes the gate and forgets the loops.
func (u *MicroGate) Suspend() {
	u.det.reset()
	u.loop = [2][MicroGateBuffer]float64{}
	u.pos = [2]int{}
	u.length = [2]int{}
	u.recording = [2]bool{}
	u.wasOpen = [2]bool{}
}

// TailLength is infinite: an open gate keeps looping after the input stops.
func (u *MicroGate) TailLength() int { return core.TailInfinite }
