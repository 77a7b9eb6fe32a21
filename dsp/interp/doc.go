// Package interp provides fractional-position interpolation for delay lines.
//
//   - [Linear2]: 2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite, cheap and smooth under modulation
//   - [SincKernel]: 12-tap Blackman-windowed sinc with 256 quantized phases
//
// The sinc table is built once on first use and shared by every caller.
package interp
