// Package modulation implements the audio-rate modulation units: the ring
// modulator RING, the single-sideband frequency shifter FREQSHIFT and the
// phase modulator PMOD.
//
// RING and PMOD run at twice the sample rate through [halfrate.Oversampler]
// so the sidebands they create above Nyquist are filtered rather than
// folded back.
package modulation
