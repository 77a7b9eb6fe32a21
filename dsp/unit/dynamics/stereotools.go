package dynamics

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/param"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// Stereo tool modes.
const (
	StereoNormal = iota
	StereoSwap
	StereoMono
	StereoSide
)

// StereoTools sets per-channel gain, routes the channels and scales the
// side signal.
type StereoTools struct {
	unit.Base

	ampL, ampR, width param.Lipol
	gl, gr, w         core.Block
}

// NewStereoTools returns stereotools.
func NewStereoTools(ctx unit.Context, p *unit.Params) *StereoTools {
	return &StereoTools{
		Base: unit.NewBase("stereotools", ctx, p,
			[]unit.Slot{
				{Label: "left gain", Desc: param.DB},
				{Label: "right gain", Desc: param.DB},
				{Label: "width", Desc: param.PercentBP},
			},
			unit.Selector{Label: "mode", Entries: []string{"normal", "swap", "mono", "side"}},
		),
	}
}

// Process scales a mono block by the left gain.
func (u *StereoTools) Process(in, out []float64, _ float64) {
	n := len(in)
	u.ampL.SetTarget(u.Gain(0))
	copy(out[:n], in)
	unit.ApplyRamp(out[:n], &u.ampL, u.gl[:])
}

// ProcessStereo renders one stereo block.
func (u *StereoTools) ProcessStereo(inL, inR, outL, outR []float64, _ float64) {
	n := len(inL)
	u.ampL.SetTarget(u.Gain(0))
	u.ampR.SetTarget(u.Gain(1))
	u.width.SetTarget(u.Clamped(2))
	u.ampL.Fill(u.gl[:n])
	u.ampR.Fill(u.gr[:n])
	u.width.Fill(u.w[:n])

	mode := u.Int(0)
	for i := range n {
		l, r := inL[i]*u.gl[i], inR[i]*u.gr[i]
		switch mode {
		case StereoSwap:
			l, r = r, l
		case StereoMono:
			m := 0.5 * (l + r)
			l, r = m, m
		case StereoSide:
			s := 0.5 * (l - r)
			l, r = s, -s
		}
		m, s := 0.5*(l+r), 0.5*(l-r)*u.w[i]
		outL[i], outR[i] = m+s, m-s
	}
}

// Suspend lets the gains jump.
func (u *StereoTools) Suspend() {
	u.ampL.Reset()
	u.ampR.Reset()
	u.width.Reset()
}
