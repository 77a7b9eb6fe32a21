// Package halfrate implements a polyphase IIR halfband filter pair for 2x
// oversampling. Each branch is a chain of first-order allpass sections at
// the low rate; even coefficients feed one branch, odd the other.
package halfrate

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/hilbert"
)

const (
	// DefaultCoefficients is the allpass count of the default design.
	DefaultCoefficients = 8
	// DefaultTransition is the normalized transition band of the default design.
	DefaultTransition = 0.05

	// decayDB is the attenuation at which a chain counts as rung out.
	decayDB = 100
)

var defaultCoeffs = sync.OnceValue(func() []float64 {
	c, err := hilbert.DesignCoefficients(DefaultCoefficients, DefaultTransition)
	if err != nil {
		panic(fmt.Sprintf("halfrate: default design: %v", err))
	}

	return c
})

// allpassChain holds both polyphase branches interleaved by coefficient index.
type allpassChain struct {
	coeffs []float64
	x      []float64
	y      []float64
}

func newChain(coeffs []float64) (allpassChain, error) {
	if len(coeffs) < 2 {
		return allpassChain{}, fmt.Errorf("halfrate: need at least 2 coefficients, got %d", len(coeffs))
	}
	for i, c := range coeffs {
		if !(c > -1 && c < 1) {
			return allpassChain{}, fmt.Errorf("halfrate: coefficient[%d] = %g outside (-1, 1)", i, c)
		}
	}

	return allpassChain{
		coeffs: append([]float64(nil), coeffs...),
		x:      make([]float64, len(coeffs)),
		y:      make([]float64, len(coeffs)),
	}, nil
}

func (a *allpassChain) run(even, odd float64) (float64, float64) {
	c := a.coeffs
	n := len(c)

	i := 0
	for ; i+1 < n; i += 2 {
		t0 := (even-a.y[i])*c[i] + a.x[i]
		t1 := (odd-a.y[i+1])*c[i+1] + a.x[i+1]
		a.x[i], a.x[i+1] = even, odd
		a.y[i], a.y[i+1] = t0, t1
		even, odd = t0, t1
	}
	if i < n {
		t0 := (even-a.y[i])*c[i] + a.x[i]
		a.x[i] = even
		a.y[i] = t0
		even = t0
	}

	return even, odd
}

// tail returns the samples, at the low rate, the slower branch needs to
// fall by decayDB. Each section contributes the ring out of its pole at -c,
// summed along the branch.
func (a *allpassChain) tail() int {
	var branch [2]float64
	for i, c := range a.coeffs {
		r := math.Abs(c)
		if r < 1e-9 {
			branch[i&1]++
			continue
		}
		branch[i&1] += math.Ceil(-decayDB / (20 * math.Log10(r)))
	}
	return int(max(branch[0], branch[1]))
}

func (a *allpassChain) reset() {
	clear(a.x)
	clear(a.y)
}

// Upsampler doubles the sample rate and suppresses the spectral image.
type Upsampler struct{ chain allpassChain }

// NewUpsampler creates an upsampler from explicit coefficients.
func NewUpsampler(coeffs []float64) (*Upsampler, error) {
	c, err := newChain(coeffs)
	if err != nil {
		return nil, err
	}

	return &Upsampler{chain: c}, nil
}

// Upsample writes 2*len(in) samples to out.
func (u *Upsampler) Upsample(in, out []float64) {
	out = out[:2*len(in)]
	for i, v := range in {
		out[2*i], out[2*i+1] = u.chain.run(v, v)
	}
}

// Reset clears the allpass state.
func (u *Upsampler) Reset() { u.chain.reset() }

// Downsampler lowpass-filters at the high rate and halves the sample rate.
type Downsampler struct{ chain allpassChain }

// NewDownsampler creates a downsampler from explicit coefficients.
func NewDownsampler(coeffs []float64) (*Downsampler, error) {
	c, err := newChain(coeffs)
	if err != nil {
		return nil, err
	}

	return &Downsampler{chain: c}, nil
}

// Downsample reads 2*len(out) samples from in.
func (d *Downsampler) Downsample(in, out []float64) {
	in = in[:2*len(out)]
	for i := range out {
		e, o := d.chain.run(in[2*i+1], in[2*i])
		out[i] = 0.5 * (e + o)
	}
}

// Reset clears the allpass state.
func (d *Downsampler) Reset() { d.chain.reset() }

// Oversampler runs a callback at twice the host rate on one channel.
type Oversampler struct {
	up      Upsampler
	down    Downsampler
	scratch []float64
}

// New returns an oversampler with the default design.
func New() *Oversampler {
	o, err := NewWithCoefficients(defaultCoeffs())
	if err != nil {
		panic(err)
	}

	return o
}

// NewWithCoefficients returns an oversampler using coeffs for both stages.
func NewWithCoefficients(coeffs []float64) (*Oversampler, error) {
	up, err := newChain(coeffs)
	if err != nil {
		return nil, err
	}
	down, err := newChain(coeffs)
	if err != nil {
		return nil, err
	}

	return &Oversampler{
		up:      Upsampler{up},
		down:    Downsampler{down},
		scratch: make([]float64, 2*core.BlockSize),
	}, nil
}

// Process upsamples buf, hands the 2x signal to fn and decimates the
// result back into buf. Blocks up to core.BlockSize frames never allocate.
func (o *Oversampler) Process(buf []float64, fn func(x2 []float64)) {
	n := 2 * len(buf)
	if cap(o.scratch) < n {
		o.scratch = make([]float64, n)
	}

	x2 := o.scratch[:n]
	o.up.Upsample(buf, x2)
	fn(x2)
	o.down.Downsample(x2, buf)
}

// TailLength is how many base rate samples the two stages keep ringing
// after the input stops.
func (o *Oversampler) TailLength() int {
	return o.up.chain.tail() + o.down.chain.tail()
}

// Reset clears both stages.
func (o *Oversampler) Reset() {
	o.up.Reset()
	o.down.Reset()
}
