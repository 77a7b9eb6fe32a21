// Package unit defines the contract shared by every filter, effect,
// oscillator and dynamics unit of the engine.
//
// A unit renders exactly one block of [core.BlockSize] frames per call. Its
// parameters live in a caller-owned [Params] that the unit reads once per
// block. Lifecycle calls follow this order:
//
//	u.InitParams() // write defaults, once per patch
//	u.Init()       // size/clear sample-rate dependent state
//	for each block {
//		u.Process(in, out, pitch)
//	}
//	u.Suspend()    // voice retrigger or release
//
// Families live in the subpackages filters, delays, modulation, oscillators
// and dynamics. The catalog subpackage maps unit names to constructors.
package unit
