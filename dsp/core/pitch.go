package core

import "math"

// BlockSize is the number of frames every render call processes.
const BlockSize = 32

// BlockSizeInv is 1/BlockSize.
const BlockSizeInv = 1.0 / BlockSize

// TailInfinite is returned by units whose output cannot be shown to decay.
const TailInfinite = 0x1000000

// ReferenceHz is the frequency of octave 0 (A4).
const ReferenceHz = 440.0

// OctaveToHz converts an octave offset from A4 to Hz.
func OctaveToHz(oct float64) float64 {
	return ReferenceHz * math.Exp2(oct)
}

// HzToOctave converts Hz to an octave offset from A4. Non-positive input maps to -Inf.
func HzToOctave(hz float64) float64 {
	if hz <= 0 {
		return math.Inf(-1)
	}

	return math.Log2(hz / ReferenceHz)
}

// PitchedHz returns the frequency for an octave parameter shifted by a semitone offset.
func PitchedHz(oct, semitones float64) float64 {
	return OctaveToHz(oct + semitones/12)
}

// Omega converts Hz to normalized angular frequency in radians per sample.
func Omega(hz, sampleRate float64) float64 {
	return 2 * math.Pi * hz / sampleRate
}

// TimeToSeconds converts a log2-seconds parameter to seconds.
func TimeToSeconds(t float64) float64 {
	return math.Exp2(t)
}

// SemitonesToRatio converts a semitone interval to a frequency ratio.
func SemitonesToRatio(semitones float64) float64 {
	return math.Exp2(semitones / 12)
}
