package sync

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// CoarseFrequency estimates and removes a large residual carrier offset.
// Squaring the signal strips binary modulation and doubles the offset, so
// the peak of the squared signal's magnitude spectrum sits at twice the true
// offset; the original signal is derotated by half the peak frequency.
// Returns the corrected signal and the peak frequency estimate in Hz (twice
// the removed offset). The estimate is only trustworthy when the offset
// rotates the squared signal through at least a few FFT bins.
func CoarseFrequency(signal []complex128, fs float64) ([]complex128, float64) {
	n := len(signal)
	if n < 2 {
		return signal, 0
	}

	squared := make([]complex128, n)
	for i, s := range signal {
		squared[i] = s * s
	}

	fft := fourier.NewCmplxFFT(n)
	coeff := fft.Coefficients(nil, squared)

	// Magnitude spectrum in fftshift order, frequency axis -fs/2..fs/2.
	peakIdx := 0
	peakMag := math.Inf(-1)
	for i := range coeff {
		mag := cmplx.Abs(coeff[fft.ShiftIdx(i)])
		if mag > peakMag {
			peakMag = mag
			peakIdx = i
		}
	}
	peakFreq := -fs/2 + fs*float64(peakIdx)/float64(n-1)

	out := make([]complex128, n)
	ts := 1 / fs
	for i, s := range signal {
		out[i] = s * cmplx.Exp(complex(0, -2*math.Pi*peakFreq*ts*float64(i)/2))
	}
	return out, peakFreq
}
