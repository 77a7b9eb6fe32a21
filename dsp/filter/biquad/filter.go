package biquad

import "github.com/cwbudde/algo-voicefx/dsp/core"

// Filter is a two-channel biquad whose coefficients glide to each new target
// across one render block. Both channels share coefficients but keep separate
// delay registers.
type Filter struct {
	cur     Coefficients
	target  Coefficients
	delta   Coefficients
	ramping bool
	primed  bool

	reg [2][2]float64
}

// SetCoefficients sets the coefficients to reach by the end of the next
// block. The first call after Suspend takes effect immediately.
func (f *Filter) SetCoefficients(c Coefficients) {
	if !f.primed {
		f.SetCoefficientsImmediate(c)
		return
	}

	f.target = c
	f.delta = Coefficients{
		B0: (c.B0 - f.cur.B0) * core.BlockSizeInv,
		B1: (c.B1 - f.cur.B1) * core.BlockSizeInv,
		B2: (c.B2 - f.cur.B2) * core.BlockSizeInv,
		A1: (c.A1 - f.cur.A1) * core.BlockSizeInv,
		A2: (c.A2 - f.cur.A2) * core.BlockSizeInv,
	}
	f.ramping = f.delta != Coefficients{}
}

// SetCoefficientsImmediate replaces the coefficients without a glide.
func (f *Filter) SetCoefficientsImmediate(c Coefficients) {
	f.cur, f.target = c, c
	f.delta = Coefficients{}
	f.ramping = false
	f.primed = true
}

// Coefficients returns the target coefficients.
func (f *Filter) Coefficients() Coefficients { return f.target }

// Process filters buf in place on the first channel.
func (f *Filter) Process(buf []float64) {
	f.run(0, buf)
	f.endBlock()
}

// ProcessTo filters src into dst on the first channel.
func (f *Filter) ProcessTo(dst, src []float64) {
	copy(dst, src)
	f.Process(dst[:len(src)])
}

// ProcessStereo filters left and right in place.
func (f *Filter) ProcessStereo(left, right []float64) {
	f.run(0, left)
	f.run(1, right)
	f.endBlock()
}

// ProcessSample filters one sample on channel ch with the target coefficients.
// It is meant for units that recompute coefficients every sample.
func (f *Filter) ProcessSample(ch int, x float64) float64 {
	c := &f.target
	r := &f.reg[ch&1]
	y := c.B0*x + r[0]
	r[0] = c.B1*x - c.A1*y + r[1]
	r[1] = c.B2*x - c.A2*y
	return y
}

// TickRamp filters sample i of the current block on channel ch, gliding
// exactly like Process. Units with per-sample feedback call it for every
// sample of the block and then EndBlock.
func (f *Filter) TickRamp(ch, i int, x float64) float64 {
	c := f.target
	if f.ramping {
		t := float64(i + 1)
		c = Coefficients{
			B0: f.cur.B0 + t*f.delta.B0,
			B1: f.cur.B1 + t*f.delta.B1,
			B2: f.cur.B2 + t*f.delta.B2,
			A1: f.cur.A1 + t*f.delta.A1,
			A2: f.cur.A2 + t*f.delta.A2,
		}
	}

	r := &f.reg[ch&1]
	y := c.B0*x + r[0]
	r[0] = c.B1*x - c.A1*y + r[1]
	r[1] = c.B2*x - c.A2*y
	return y
}

// EndBlock commits the glide after a block of TickRamp calls.
func (f *Filter) EndBlock() {
	f.reg[0][0], f.reg[0][1] = core.FlushDenormals(f.reg[0][0]), core.FlushDenormals(f.reg[0][1])
	f.reg[1][0], f.reg[1][1] = core.FlushDenormals(f.reg[1][0]), core.FlushDenormals(f.reg[1][1])
	f.endBlock()
}

func (f *Filter) run(ch int, buf []float64) {
	r := &f.reg[ch]
	k := activeKernel()
	if f.ramping {
		r[0], r[1] = k.ProcessRamp(f.cur.arch(), f.delta.arch(), r[0], r[1], buf)
	} else {
		r[0], r[1] = k.ProcessBlock(f.target.arch(), r[0], r[1], buf)
	}
	r[0] = core.FlushDenormals(r[0])
	r[1] = core.FlushDenormals(r[1])
}

func (f *Filter) endBlock() {
	f.cur = f.target
	f.delta = Coefficients{}
	f.ramping = false
}

// Suspend clears both channels' registers and drops the glide history.
func (f *Filter) Suspend() {
	f.reg = [2][2]float64{}
	f.ramping = false
	f.primed = false
	f.delta = Coefficients{}
}

// Magnitude returns |H(f)| of the target coefficients.
func (f *Filter) Magnitude(freqHz, sampleRate float64) float64 {
	return f.target.Magnitude(freqHz, sampleRate)
}
