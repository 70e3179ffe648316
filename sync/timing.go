// Package sync implements the receiver synchronization chain: timing
// recovery, coarse and fine carrier recovery, IQ imbalance correction and
// frame synchronization. The timing and Costas loops are strictly
// sequential; each decode owns fresh loop state, so independent decodes may
// run concurrently.
package sync

import (
	"math"
	"math/cmplx"

	"github.com/ND-IrishSat/CommunicationSystems/dsp"
)

// interpFactor is the interpolation the timing loop reads fractional sample
// offsets out of.
const interpFactor = 16

// TimingRecovery is a Mueller and Muller decision-directed timing recovery
// loop. It consumes a sample stream at SPS samples per symbol and emits one
// symbol per symbol period.
type TimingRecovery struct {
	SPS  float64
	Gain float64

	mu   float64 // fractional symbol phase
	iIn  int
	iOut int
}

// NewTimingRecovery returns a loop for the given samples-per-symbol with the
// standard loop gain.
func NewTimingRecovery(sps float64) *TimingRecovery {
	return &TimingRecovery{SPS: sps, Gain: 0.3}
}

// Recover runs the loop over the whole input and returns the recovered
// symbol sequence. Input shorter than roughly interpFactor+2 samples yields
// an empty output; that is a valid degenerate result, not an error.
//
// Each step pulls the interpolated sample at the current fractional phase,
// slices it to a hard-decision rail value, and steers mu with the M&M error
// metric. The first two output slots stay zero and are discarded, as are
// any trailing slots the loop never filled.
func (t *TimingRecovery) Recover(in []complex128) []complex128 {
	interpolated := dsp.Interpolate(in, interpFactor)

	out := make([]complex128, len(in)+10)
	rail := make([]complex128, len(in)+10)
	t.mu = 0
	t.iIn = 0
	t.iOut = 2

	for t.iOut < len(in) && t.iIn+interpFactor < len(in) {
		idx := t.iIn*interpFactor + int(t.mu*interpFactor)
		if idx >= len(interpolated) {
			break
		}
		out[t.iOut] = interpolated[idx]
		rail[t.iOut] = complex(boolToFloat(real(out[t.iOut]) > 0), boolToFloat(imag(out[t.iOut]) > 0))

		x := (rail[t.iOut] - rail[t.iOut-2]) * cmplx.Conj(out[t.iOut-1])
		y := (out[t.iOut] - out[t.iOut-2]) * cmplx.Conj(rail[t.iOut-1])
		e := real(y - x)

		t.mu += t.SPS + t.Gain*e
		t.iIn += int(math.Floor(t.mu))
		t.mu -= math.Floor(t.mu)
		t.iOut++
	}
	return out[2:t.iOut]
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
