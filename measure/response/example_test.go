package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/dsp/unit/catalog"
	"github.com/cwbudde/algo-voicefx/measure/response"
)

func ExampleMeasure() {
	u, _ := catalog.New("clipper", unit.Context{SampleRate: 48000}, nil)

	r, err := response.Measure(u, 4096)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d bins, %.1f dB at 1 kHz\n", len(r.Mag), r.DB(1000))
	// Output: 2049 bins, 0.0 dB at 1 kHz
}
