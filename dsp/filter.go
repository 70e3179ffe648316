// Package dsp holds the static FIR designs and rate-change primitives the
// modem is built from: root-raised-cosine and fractional-delay taps, pulse
// shaping, interpolation and convolution.
package dsp

import "math"

// sinc is the normalized sinc, sin(pi*x)/(pi*x).
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// hamming returns tap j of an n point Hamming window.
func hamming(n, j int) float64 {
	return 0.54 - 0.46*math.Cos(2*math.Pi*float64(j)/float64(n-1))
}

// RRCTaps designs a symmetric root-raised-cosine FIR with n taps, roll-off
// alpha in [0,1], symbol period ts seconds and sample rate fs Hz. The taps
// are the raw closed-form impulse response with a peak of 1-alpha+4*alpha/pi
// and DC gain near ts*fs; the receive chain's decision thresholds are sized
// for that transmit level. The closed form has two singularities, the center
// tap and t = +/- ts/(4*alpha), which get their own branches; the general
// branch is never evaluated there.
func RRCTaps(n int, alpha, ts, fs float64) []float64 {
	td := 1 / fs
	h := make([]float64, n)
	for x := 0; x < n; x++ {
		t := (float64(x) - float64(n)/2) * td
		switch {
		case t == 0:
			h[x] = 1 - alpha + 4*alpha/math.Pi
		case alpha != 0 && (t == ts/(4*alpha) || t == -ts/(4*alpha)):
			h[x] = (alpha / math.Sqrt2) * ((1+2/math.Pi)*math.Sin(math.Pi/(4*alpha)) +
				(1-2/math.Pi)*math.Cos(math.Pi/(4*alpha)))
		default:
			h[x] = (math.Sin(math.Pi*t*(1-alpha)/ts) +
				4*alpha*(t/ts)*math.Cos(math.Pi*t*(1+alpha)/ts)) /
				(math.Pi * t * (1 - (4*alpha*t/ts)*(4*alpha*t/ts)) / ts)
		}
	}
	return h
}

// RectTaps returns the identity pulse of one symbol period: sps unit taps.
func RectTaps(sps int) []float64 {
	h := make([]float64, sps)
	for i := range h {
		h[i] = 1
	}
	return h
}

// FractionalDelayTaps designs an n tap windowed-sinc filter delaying its
// input by delay samples (0 <= delay < 1 for a pure fractional shift, but
// any value works). The taps are Hamming windowed so they decay to zero at
// both ends, and normalized to unity gain.
func FractionalDelayTaps(n int, delay float64) []float64 {
	lo := -((n + 1) / 2)
	h := make([]float64, n)
	var sum float64
	for i := 0; i < n; i++ {
		h[i] = sinc(float64(lo+i)-delay) * hamming(n, i)
		sum += h[i]
	}
	for i := range h {
		h[i] /= sum
	}
	return h
}
