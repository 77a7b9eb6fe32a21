// Package delays implements the delay-network units: the comb filters,
// dualdelay, reverb, chorus, phaser, rotary, fauxstereo, fs_flange and
// freqshiftdelay.
//
// Every line has a capacity fixed at construction, so the render path never
// allocates. Feedback gains are clamped to [-maxFeedback, maxFeedback] before
// they reach a loop.
package delays

import "github.com/cwbudde/algo-voicefx/dsp/core"

const maxFeedback = 0.99

func clampFeedback(v float64) float64 {
	return core.Clamp(v, -maxFeedback, maxFeedback)
}
