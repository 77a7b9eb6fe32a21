// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. A [Filter] is the stereo
// variant used by the effect units: its coefficients glide linearly to each
// new target over one render block so that modulated cutoffs do not step.
//
// Block kernels are registered per CPU capability and selected once through
// algo-vecmath/cpu feature detection.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package biquad
