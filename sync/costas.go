package sync

import (
	"math"
	"math/cmplx"
)

// CostasLoop is a second-order phase/frequency tracking loop with the
// decision-directed error term for two-level constellations. Alpha steers
// phase, Beta steers frequency; smaller values trade lock speed for
// stability.
type CostasLoop struct {
	Alpha      float64
	Beta       float64
	SampleRate float64

	phase float64 // radians, kept in [0, 2*pi)
	freq  float64 // radians per sample

	// FreqLog records the frequency estimate in Hz after every sample,
	// for convergence diagnostics.
	FreqLog []float64
}

// NewCostasLoop returns a loop with zero initial phase and frequency.
// SampleRate is only used to convert the frequency trajectory to Hz.
func NewCostasLoop(alpha, beta, sampleRate float64) *CostasLoop {
	return &CostasLoop{Alpha: alpha, Beta: beta, SampleRate: sampleRate}
}

// Run derotates the input by the tracked phase, sample by sample, advancing
// the loop on each one. Phase and frequency persist across the whole input
// and are never reset mid-sequence. The phase wrap uses repeated 2*pi
// subtraction rather than a modulo so boundary values behave exactly like
// the recorded captures.
func (c *CostasLoop) Run(in []complex128) []complex128 {
	out := make([]complex128, len(in))
	for i, s := range in {
		out[i] = s * cmplx.Exp(complex(0, -c.phase))
		err := real(out[i]) * imag(out[i])

		c.freq += c.Beta * err
		c.FreqLog = append(c.FreqLog, c.freq*c.SampleRate/(2*math.Pi))
		c.phase += c.freq + c.Alpha*err

		for c.phase >= 2*math.Pi {
			c.phase -= 2 * math.Pi
		}
		for c.phase < 0 {
			c.phase += 2 * math.Pi
		}
	}
	return out
}
