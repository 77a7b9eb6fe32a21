// Package design provides the biquad coefficient designers used by the
// effect units.
//
// All designers follow the RBJ cookbook bilinear-transform formulas. Unlike a
// general purpose design library they never fail: frequency is clamped into
// (0, MaxOmega] and Q into [MinQ, MaxQ], so any parameter value a unit can
// produce yields a stable section.
package design
