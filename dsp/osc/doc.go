// Package osc provides the oscillator cores behind the oscillator and
// modulation units: a rotating-phasor quadrature sine and band-limited
// pulse and saw generators.
//
// The band-limited generators never compute a naive waveform. They feed an
// [Injector] with the waveform's slope and with band-limited steps at the
// exact sub-sample time of each discontinuity, and the injector integrates
// them back into the waveform.
package osc
