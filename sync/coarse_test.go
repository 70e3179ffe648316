package sync

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coarseTone(n int, freq, fs float64) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = cmplx.Exp(complex(0, 2*math.Pi*freq*float64(i)/fs))
	}
	return out
}

// residualRate measures the mean per-sample phase increment of a tone.
func residualRate(signal []complex128) float64 {
	var sum float64
	for i := 1; i < len(signal); i++ {
		sum += cmplx.Phase(signal[i] * cmplx.Conj(signal[i-1]))
	}
	return sum / float64(len(signal)-1)
}

func TestCoarseFrequencyEstimatesTone(t *testing.T) {
	const (
		fs   = 1e6
		freq = 25000.0
	)

	// Odd and even lengths exercise both halves of the centered-spectrum
	// index mapping.
	for _, n := range []int{4096, 4095} {
		binWidth := fs / float64(n-1)
		for _, offset := range []float64{freq, -freq} {
			in := coarseTone(n, offset, fs)
			out, est := CoarseFrequency(in, fs)
			require.Len(t, out, n)

			// The squared tone peaks at twice the offset, to within
			// a bin.
			assert.InDelta(t, 2*offset, est, 1.5*binWidth, "n=%d offset=%g", n, offset)

			// After derotation the residual rate is sub-bin.
			resid := residualRate(out)
			assert.Less(t, math.Abs(resid), 2*math.Pi*binWidth/fs, "n=%d offset=%g", n, offset)
		}
	}
}

func TestCoarseFrequencyPreservesMagnitude(t *testing.T) {
	in := coarseTone(1024, 12500, 1e6)
	out, _ := CoarseFrequency(in, 1e6)
	for i, s := range out {
		assert.InDelta(t, 1, cmplx.Abs(s), 1e-9, "sample %d", i)
	}
}

func TestCoarseFrequencyShortInput(t *testing.T) {
	out, est := CoarseFrequency(nil, 1e6)
	assert.Empty(t, out)
	assert.Zero(t, est)

	one := []complex128{1 + 2i}
	out, est = CoarseFrequency(one, 1e6)
	assert.Equal(t, one, out)
	assert.Zero(t, est)
}
