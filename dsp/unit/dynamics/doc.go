// Package dynamics implements the level dependent and utility units: gate,
// microgate, limiter, clipper, fdistortion, fslewer, BF (bit reduction), OD
// (overdrive), treemonster and stereotools.
//
// Gates switch on zero crossings so opening and closing never cut a
// waveform mid-cycle. Nonlinear stages that alias run at twice the sample
// rate.
package dynamics
