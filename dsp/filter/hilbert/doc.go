// Package hilbert builds quadrature (90 degree) signal pairs with a
// polyphase half-pi allpass network and uses them for single-sideband
// frequency shifting.
//
// Coefficients come from [DesignCoefficients], which also serves the
// halfband resampler in package halfrate: both structures use the same
// elliptic polyphase allpass design. [Preset] picks a ready-made
// trade-off between cost and low-frequency accuracy.
package hilbert
