// Package param describes unit parameters and smooths their values across
// render blocks.
package param

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the value type of a parameter slot.
type Kind byte

const (
	// KindFloat marks a continuous parameter.
	KindFloat Kind = 'f'
	// KindInt marks a discrete parameter.
	KindInt Kind = 'i'
)

// ErrMalformed is returned for descriptor strings that cannot be parsed.
var ErrMalformed = errors.New("param: malformed descriptor")

// Descriptor is the static range metadata of one parameter slot, written as
// "type,min,step,max,default,unit".
type Descriptor struct {
	Kind    Kind
	Min     float64
	Step    float64
	Max     float64
	Default float64
	Unit    string

	// RefHz is the frequency of octave 0 for "Hz" parameters. Zero means
	// 440 Hz; LFO rates count octaves from 1 Hz.
	RefHz float64
}

// Parse decodes a descriptor string.
func Parse(s string) (Descriptor, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 6 {
		return Descriptor{}, fmt.Errorf("%w: %q has %d fields, want 6", ErrMalformed, s, len(fields))
	}

	var d Descriptor

	switch kind := strings.TrimSpace(fields[0]); kind {
	case "f":
		d.Kind = KindFloat
	case "i":
		d.Kind = KindInt
	default:
		return Descriptor{}, fmt.Errorf("%w: unknown type %q", ErrMalformed, kind)
	}

	nums := [4]*float64{&d.Min, &d.Step, &d.Max, &d.Default}
	for i, dst := range nums {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i+1]), 64)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: field %d of %q: %v", ErrMalformed, i+1, s, err)
		}
		*dst = v
	}

	d.Unit = strings.TrimSpace(fields[5])

	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}

	// A default outside the range is pulled onto the nearest bound.
	d.Default = d.Clamp(d.Default)

	return d, nil
}

// MustParse is like Parse but panics on error. It is meant for package-level tables.
func MustParse(s string) Descriptor {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Validate checks range consistency.
func (d Descriptor) Validate() error {
	if d.Kind != KindFloat && d.Kind != KindInt {
		return fmt.Errorf("%w: unknown type %q", ErrMalformed, rune(d.Kind))
	}
	if !(d.Step > 0) {
		return fmt.Errorf("%w: step must be > 0: %v", ErrMalformed, d.Step)
	}
	if d.Min > d.Max {
		return fmt.Errorf("%w: min %v > max %v", ErrMalformed, d.Min, d.Max)
	}
	return nil
}

// String renders the descriptor in its textual form.
func (d Descriptor) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return strings.Join([]string{string(rune(d.Kind)), f(d.Min), f(d.Step), f(d.Max), f(d.Default), d.Unit}, ",")
}

// WithDefault returns a copy with another default, clamped into range.
func (d Descriptor) WithDefault(v float64) Descriptor {
	d.Default = d.Clamp(v)
	return d
}

// WithRange returns a copy with another range. The default is clamped into it.
func (d Descriptor) WithRange(min, max float64) Descriptor {
	d.Min, d.Max = min, max
	d.Default = d.Clamp(d.Default)
	return d
}

// WithRef returns a copy whose octave 0 sits at hz.
func (d Descriptor) WithRef(hz float64) Descriptor {
	d.RefHz = hz
	return d
}

// OctaveHz converts an octave value of a "Hz" parameter to Hz.
func (d Descriptor) OctaveHz(v float64) float64 {
	ref := d.RefHz
	if ref == 0 {
		ref = 440
	}
	return ref * math.Exp2(v)
}

// Clamp limits v to [Min, Max].
func (d Descriptor) Clamp(v float64) float64 {
	return math.Min(math.Max(v, d.Min), d.Max)
}

// Quantize rounds v to the nearest step from Min and clamps it.
func (d Descriptor) Quantize(v float64) float64 {
	steps := math.Round((v - d.Min) / d.Step)
	return d.Clamp(d.Min + steps*d.Step)
}

// Display formats a parameter value for humans. Frequencies are octaves from
// A4 and times are log2 seconds, so both are converted before printing.
func (d Descriptor) Display(v float64) string {
	switch d.Unit {
	case "Hz":
		hz := d.OctaveHz(v)
		if hz >= 1000 {
			return fmt.Sprintf("%.2f kHz", hz/1000)
		}
		return fmt.Sprintf("%.2f Hz", hz)
	case "s":
		sec := math.Exp2(v)
		if sec < 1 {
			return fmt.Sprintf("%.1f ms", sec*1000)
		}
		return fmt.Sprintf("%.2f s", sec)
	case "%":
		return fmt.Sprintf("%.1f %%", v*100)
	case "dB":
		return fmt.Sprintf("%.1f dB", v)
	case "oct":
		return fmt.Sprintf("%.2f oct", v)
	case "cents":
		return fmt.Sprintf("%.1f cents", v)
	default:
		return strings.TrimSpace(strconv.FormatFloat(v, 'g', 4, 64) + " " + d.Unit)
	}
}
