// Package audition renders a unit into interleaved float32 PCM for playback.
package audition

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/osc"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

// Source selects the test signal fed into the unit.
type Source int

const (
	SourceSaw Source = iota
	SourceSine
	SourceNoise
	SourceSilence
)

var sourceNames = []string{"saw", "sine", "noise", "silence"}

// ParseSource maps a name from [SourceNames] to its Source.
func ParseSource(name string) (Source, error) {
	for i, n := range sourceNames {
		if n == name {
			return Source(i), nil
		}
	}
	return 0, fmt.Errorf("audition: unknown source %q", name)
}

// SourceNames lists the accepted source names.
func SourceNames() []string { return sourceNames }

// BytesPerFrame is the size of one interleaved stereo float32 frame.
const BytesPerFrame = 8

var errFrames = errors.New("audition: frame count must be positive")

// Stream renders a unit block by block and serves the result as
// little-endian float32 stereo frames. It stops with io.EOF after the
// requested number of frames.
type Stream struct {
	u      unit.Unit
	source Source
	level  float64
	inc    float64

	saw  *osc.Saw
	sine osc.Quadrature
	rng  *rand.Rand

	remaining int
	inL, inR  core.Block
	outL      core.Block
	outR      core.Block
	pending   []byte
	buf       [core.BlockSize * BytesPerFrame]byte
}

// NewStream returns a stream of frames frames of u driven by source at hz
// and the given peak level.
func NewStream(u unit.Unit, source Source, hz, level float64, frames int) (*Stream, error) {
	if frames <= 0 {
		return nil, errFrames
	}

	sr := unit.SampleRateOf(u)
	s := &Stream{
		u:         u,
		source:    source,
		level:     level,
		inc:       core.Clamp(hz/sr, 0, 0.5),
		saw:       osc.NewSaw(1),
		sine:      osc.NewQuadrature(),
		rng:       rand.New(rand.NewPCG(1, 2)),
		remaining: frames,
	}
	s.sine.SetRate(2 * math.Pi * s.inc)

	return s, nil
}

// Remaining returns the number of frames not yet rendered.
func (s *Stream) Remaining() int { return s.remaining }

func (s *Stream) fill() {
	for i := range s.inL {
		var x float64
		switch s.source {
		case SourceSaw:
			x = s.saw.Next(s.inc, 0)
		case SourceSine:
			_, x = s.sine.Process()
		case SourceNoise:
			x = 2*s.rng.Float64() - 1
		case SourceSilence:
		}
		s.inL[i] = s.level * x
		s.inR[i] = s.inL[i]
	}
}

func (s *Stream) render() {
	s.fill()
	s.u.ProcessStereo(s.inL[:], s.inR[:], s.outL[:], s.outR[:], 0)

	n := min(s.remaining, core.BlockSize)
	s.remaining -= n

	b := s.buf[:n*BytesPerFrame]
	for i := range n {
		l := float32(core.Clamp(s.outL[i], -1, 1))
		r := float32(core.Clamp(s.outR[i], -1, 1))
		binary.LittleEndian.PutUint32(b[i*BytesPerFrame:], math.Float32bits(l))
		binary.LittleEndian.PutUint32(b[i*BytesPerFrame+4:], math.Float32bits(r))
	}
	s.pending = b
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			if s.remaining == 0 {
				break
			}
			s.render()
		}
		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}
