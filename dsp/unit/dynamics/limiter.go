package dynamics

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// Limiter modes.
const (
	LimitPeak = iota
	LimitRMS
)

// Limiter follows the level of the pre-gained input with separate attack
// and release times and divides the signal by it whenever it exceeds 0 dB.
type Limiter struct {
	unit.Base

	pre, post param.Lipol
	env       float64
	at, re    float64

	preRamp, postRamp core.Block
}

// NewLimiter returns the limiter.
func NewLimiter(ctx unit.Context, p *unit.Params) *Limiter {
	u := &Limiter{
		Base: unit.NewBase("limiter", ctx, p,
			[]unit.Slot{
				{Label: "pre gain", Desc: param.DB},
				{Label: "post gain", Desc: param.DB},
				{Label: "attack", Desc: param.Time.WithDefault(-10)},
				{Label: "release", Desc: param.Time.WithDefault(-2)},
			},
			unit.Selector{Label: "mode", Entries: []string{"peak", "rms"}},
		),
	}
	u.CalcCoeffs()
	return u
}

// Init derives the envelope coefficients.
func (u *Limiter) Init() { u.CalcCoeffs() }

// CalcCoeffs derives the one-pole attack and release coefficients.
func (u *Limiter) CalcCoeffs() {
	u.at = math.Exp(-1 / (u.Seconds(2) * u.SampleRate))
	u.re = math.Exp(-1 / (u.Seconds(3) * u.SampleRate))
}

// gain advances the envelope by one frame of level a and returns the
// reduction gain.
func (u *Limiter) gain(a float64, rms bool) float64 {
	if rms {
		a *= a
	}
	if a > u.env {
		u.env = u.at*u.env + (1-u.at)*a
	} else {
		u.env = u.re*u.env + (1-u.re)*a
	}
	lvl := u.env
	if rms {
		lvl = math.Sqrt(lvl)
	}
	return 1 / math.Max(1, lvl)
}

func (u *Limiter) prepare(n int) (pre, post []float64) {
	u.CalcCoeffs()
	u.pre.SetTarget(u.Gain(0))
	u.post.SetTarget(u.Gain(1))
	pre, post = u.preRamp[:n], u.postRamp[:n]
	u.pre.Fill(pre)
	u.post.Fill(post)
	return pre, post
}

// Process renders one mono block.
func (u *Limiter) Process(in, out []float64, _ float64) {
	pre, post := u.prepare(len(in))
	rms := u.Int(0) == LimitRMS
	for i, x := range in {
		x *= pre[i]
		out[i] = x * u.gain(math.Abs(x), rms) * post[i]
	}
	u.env = core.FlushDenormals(u.env)
}

// ProcessStereo renders one stereo block. The louder channel drives the
// shared envelope.
func (u *Limiter) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	pre, post := u.prepare(len(inL))
	rms := u.Int(0) == LimitRMS
	for i := range inL {
		l, r := inL[i]*pre[i], inR[i]*pre[i]
		g := u.gain(math.Max(math.Abs(l), math.Abs(r)), rms) * post[i]
		outL[i], outR[i] = l*g, r*g
	}
	u.env = core.FlushDenormals(u.env)
}

// Envelope returns the current level estimate (squared in rms mode).
func (u *Limiter) Envelope() float64 { return u.env }

// Suspend clears the envelope.
func (u *Limiter) Suspend() {
	u.env = 0
	u.pre.Reset()
	u.post.Reset()
}
