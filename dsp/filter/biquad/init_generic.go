//go:build !amd64 || purego

package biquad

import (
	_ "github.com/cwbudde/algo-voicefx/dsp/filter/biquad/internal/arch/generic"
)
