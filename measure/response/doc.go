// Package response measures the magnitude response of a unit from its
// rendered impulse response.
//
// The measurement runs the unit like a host would, block by block with
// parameter smoothing and oversampling in place, so it is the reference
// that each unit's analytic FreqGraph is checked against.
//
// # Usage
//
//	u, _ := catalog.New("LP2A", unit.Context{SampleRate: 48000}, nil)
//	r, err := response.Measure(u, 8192)
//	fmt.Printf("%.1f dB at 1 kHz\n", r.DB(1000))
package response
