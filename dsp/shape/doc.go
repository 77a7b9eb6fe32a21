// Package shape provides the memoryless waveshapers used by the distortion
// and saturation units, plus the exponential helpers on their hot paths.
//
// Building with -tags fastmath swaps the exponential and logarithm helpers
// for the approximations from algo-approx.
package shape
