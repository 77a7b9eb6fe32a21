package design

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
)

const (
	defaultQ = 1 / math.Sqrt2

	// MinOmega is the lowest normalized angular frequency designers accept.
	MinOmega = 1e-5
	// MaxOmega keeps poles away from z = -1 where RBJ sections lose precision.
	MaxOmega = 0.99 * math.Pi
	// MinQ and MaxQ bound the quality factor.
	MinQ = 0.01
	MaxQ = 200.0
)

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := clampedW0(freq, sampleRate)
	q = clampedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2

	return normalizeBiquad(b0, b1, b0, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := clampedW0(freq, sampleRate)
	q = clampedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 + cw) / 2

	return normalizeBiquad(b0, -(1 + cw), b0, 1+alpha, -2*cw, 1-alpha)
}

// Bandpass designs a constant-skirt-gain bandpass biquad (peak gain = q).
func Bandpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := clampedW0(freq, sampleRate)
	q = clampedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	return normalizeBiquad(sw/2, 0, -sw/2, 1+alpha, -2*cw, 1-alpha)
}

// BandpassPeak designs a bandpass biquad with 0 dB gain at the center frequency.
func BandpassPeak(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := clampedW0(freq, sampleRate)
	q = clampedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(alpha, 0, -alpha, 1+alpha, -2*cw, 1-alpha)
}

// Notch designs a notch biquad centered at freq (Hz).
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := clampedW0(freq, sampleRate)
	q = clampedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(1, -2*cw, 1, 1+alpha, -2*cw, 1-alpha)
}

// Allpass designs an allpass biquad centered at freq (Hz).
func Allpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := clampedW0(freq, sampleRate)
	q = clampedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(1-alpha, -2*cw, 1+alpha, 1+alpha, -2*cw, 1-alpha)
}

// Peak designs a peaking-EQ biquad with gain in dB.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0 := clampedW0(freq, sampleRate)
	q = clampedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)

	return normalizeBiquad(1+alpha*a, -2*cw, 1-alpha*a, 1+alpha/a, -2*cw, 1-alpha/a)
}

// LowShelf designs a low-shelf biquad with gain in dB.
func LowShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0 := clampedW0(freq, sampleRate)
	q = clampedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// HighShelf designs a high-shelf biquad with gain in dB.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0 := clampedW0(freq, sampleRate)
	q = clampedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// LowpassMatched designs a lowpass whose magnitude matches the analog
// prototype at DC, at the cutoff and at Nyquist (Vicanek's matched
// second-order design). Unlike the bilinear lowpass it does not pinch to
// zero at Nyquist, so high cutoffs keep their resonance shape.
func LowpassMatched(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := clampedW0(freq, sampleRate)
	q = clampedQ(q)
	zeta := 1 / (2 * q)

	var a1 float64
	if zeta <= 1 {
		a1 = -2 * math.Exp(-zeta*w0) * math.Cos(math.Sqrt(1-zeta*zeta)*w0)
	} else {
		a1 = -2 * math.Exp(-zeta*w0) * math.Cosh(math.Sqrt(zeta*zeta-1)*w0)
	}
	a2 := math.Exp(-2 * zeta * w0)

	sn := math.Sin(w0 / 2)
	phi1 := sn * sn
	phi0 := 1 - phi1
	phi2 := 4 * phi0 * phi1

	bigA0 := (1 + a1 + a2) * (1 + a1 + a2)
	bigA1 := (1 - a1 + a2) * (1 - a1 + a2)
	bigA2 := -4 * a2

	r1 := (bigA0*phi0 + bigA1*phi1 + bigA2*phi2) * q * q
	bigB0 := bigA0
	bigB1 := math.Max((r1-bigB0*phi0)/phi1, 0)

	b0 := 0.5 * (math.Sqrt(bigB0) + math.Sqrt(bigB1))
	b1 := math.Sqrt(bigB0) - b0

	return biquad.Coefficients{B0: b0, B1: b1, A1: a1, A2: a2}
}

// ResonanceToQ maps a 0..1 resonance amount to Q. Zero gives Q = 0.5
// (critically damped, real poles); one gives Q = 25.
func ResonanceToQ(reso float64) float64 {
	reso = math.Min(math.Max(reso, 0), 1)
	return 0.5 / (1 - 0.98*reso)
}

// BandwidthToQ converts a bandwidth in octaves at normalized angular
// frequency w0 to Q, using the digital bandwidth relation of the RBJ cookbook.
func BandwidthToQ(bwOct, w0 float64) float64 {
	bwOct = math.Max(bwOct, 0.001)
	w0 = math.Min(math.Max(w0, MinOmega), MaxOmega)
	s := math.Sin(w0)
	return clampedQ(1 / (2 * math.Sinh(math.Ln2/2*bwOct*w0/s)))
}

func clampedW0(freq, sampleRate float64) float64 {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		sampleRate = 48000
	}
	w0 := 2 * math.Pi * freq / sampleRate
	if math.IsNaN(w0) {
		return MinOmega
	}
	return math.Min(math.Max(w0, MinOmega), MaxOmega)
}

func clampedQ(q float64) float64 {
	if math.IsNaN(q) || q <= 0 {
		return defaultQ
	}
	return math.Min(math.Max(q, MinQ), MaxQ)
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Passthrough
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
