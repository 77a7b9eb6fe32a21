// Package oscillators implements the generator units: osc_pulse,
// osc_pulse_sync, osc_saw and osc_sin.
//
// A generator adds its waveform, scaled by a level in dB, to the input, so
// it can sit anywhere in a chain. Pitch follows the key like every other
// frequency parameter. Generators never fall silent, so their tail is
// infinite.
package oscillators
