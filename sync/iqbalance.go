package sync

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ND-IrishSat/CommunicationSystems/dsp"
)

// CorrectIQImbalance estimates amplitude/phase imbalance between the I and Q
// branches from second-order statistics and removes it. A symmetric moving
// average of radius meanPeriod strips DC and slow bias from each branch
// first; the closed-form estimator then yields the amplitude a and the
// phase skew sin(psi). If the correlation estimate puts sin(psi) outside
// [-1,1] the imbalance model does not hold and an explicit error is
// returned instead of propagating NaNs. A signal with no in-phase energy
// cannot support the estimate at all; that is the degenerate no-signal
// result, nil without an error.
func CorrectIQImbalance(signal []complex128, meanPeriod int) ([]complex128, error) {
	n := len(signal)
	if n == 0 {
		return nil, nil
	}

	re := make([]float64, n)
	im := make([]float64, n)
	for i, s := range signal {
		re[i] = real(s)
		im[i] = imag(s)
	}

	biasI := dsp.MovingMean(re, meanPeriod)
	biasQ := dsp.MovingMean(im, meanPeriod)
	centeredI := make([]float64, n)
	crossIQ := make([]float64, n)
	for i := range re {
		ci := re[i] - biasI[i]
		cq := im[i] - biasQ[i]
		centeredI[i] = ci * ci
		crossIQ[i] = ci * cq
	}

	a := math.Sqrt(2 * stat.Mean(centeredI, nil))
	if a == 0 || math.IsNaN(a) {
		return nil, nil
	}
	sinPsi := (2 / a) * stat.Mean(crossIQ, nil)
	if sinPsi < -1 || sinPsi > 1 {
		return nil, fmt.Errorf("sync: IQ imbalance estimate out of range, sin(psi)=%g", sinPsi)
	}
	cosPsi := math.Sqrt(1 - sinPsi*sinPsi)
	if cosPsi == 0 {
		return nil, fmt.Errorf("sync: IQ imbalance estimate degenerate, cos(psi)=0")
	}

	out := make([]complex128, n)
	for i := range signal {
		outI := re[i] / a
		outQ := (-sinPsi/(a*cosPsi))*re[i] + im[i]/cosPsi
		out[i] = complex(outI, outQ)
	}
	return out, nil
}
