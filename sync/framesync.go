package sync

import (
	"math/cmplx"

	"github.com/ND-IrishSat/CommunicationSystems/dsp"
)

// Synchronize locates the frame boundary by cross-correlating the signal
// against the known preamble and returns the recovered span, once with the
// preamble attached and once with it stripped. The signal is rescaled with
// (x+scale)/(2*scale), scale being the mean magnitude, so hard-decision
// amplitudes line up with the 0/1 preamble encoding before correlating; the
// slices returned index into the unscaled input.
//
// Only the global correlation maximum is used, so a buffer carrying more
// than one packet yields just the strongest one. The recovered window is
// [idx-len(preamble)+1 : idx+payloadLen+1]; the off-by-one carries the
// cross-correlation's inherent shift and must not be "fixed".
//
// Too little signal around the peak for a full window is a degenerate (nil)
// result, not an error.
func Synchronize(signal []complex128, preamble []byte, payloadLen int) (withPreamble, payload []complex128) {
	if len(signal) == 0 || len(preamble) == 0 {
		return nil, nil
	}

	var scale float64
	for _, s := range signal {
		scale += cmplx.Abs(s)
	}
	scale /= float64(len(signal))
	if scale == 0 {
		return nil, nil
	}

	rescaled := make([]complex128, len(signal))
	for i, s := range signal {
		rescaled[i] = (s + complex(scale, 0)) / complex(2*scale, 0)
	}

	// Matched filter: the time-reversed preamble bits.
	matched := make([]float64, len(preamble))
	for i, b := range preamble {
		matched[len(preamble)-1-i] = float64(b)
	}
	crosscorr := dsp.Convolve(rescaled, matched)

	idx := 0
	for i, c := range crosscorr {
		if real(c) > real(crosscorr[idx]) {
			idx = i
		}
	}

	start := idx - len(preamble) + 1
	end := idx + payloadLen + 1
	if start < 0 || end > len(signal) || start >= end {
		return nil, nil
	}
	withPreamble = signal[start:end]
	if len(withPreamble) <= len(preamble) {
		return withPreamble, nil
	}
	return withPreamble, withPreamble[len(preamble):]
}
