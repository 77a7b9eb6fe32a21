// Package filters implements the biquad family (LP2A, HP2A, band and peak
// filters, equalizers, morphing filters) and the resonant SuperSVF and
// LP4M_sat units.
//
// Biquad units recompute their coefficients once per block and glide to
// them sample by sample. Resonance maps to Q through
// [design.ResonanceToQ], so zero resonance always yields real poles.
package filters
