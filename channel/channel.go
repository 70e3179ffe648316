// Package channel simulates link impairments for exercising the receive
// chain: thermal noise, phase noise, fractional sample delay and carrier
// frequency offset. It is not part of the receive path.
package channel

import (
	"math"
	"math/cmplx"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ND-IrishSat/CommunicationSystems/dsp"
)

// delayTaps is the length of the fractional-delay sinc filter.
const delayTaps = 21

// Impairments describes a simulated channel. NoisePower is inverted, as in
// the capture tooling: the AWGN amplitude is divided by sqrt(NoisePower),
// so larger values mean a cleaner channel.
type Impairments struct {
	StdDev          float64 // AWGN standard deviation before scaling, typically 1
	NoisePower      float64 // AWGN divisor, typically ~10
	PhaseNoise      float64 // phase noise strength in radians, typically 0.1
	FractionalDelay float64 // delay in samples, e.g. 0.4
	FrequencyOffset float64 // carrier offset in Hz
	SampleRate      float64 // Hz, for the offset rotation
	Seed            uint64  // 0 draws from the global source
}

// Apply runs the waveform through the impairment chain: AWGN and phase
// noise first, then the fractional delay filter (which lengthens the output
// by its taps-1), then the frequency offset rotation.
func (im *Impairments) Apply(in []complex128) []complex128 {
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	if im.Seed != 0 {
		normal.Src = rand.NewSource(im.Seed)
	}

	out := make([]complex128, len(in))
	copy(out, in)

	if im.NoisePower > 0 {
		amp := im.StdDev / (math.Sqrt2 * math.Sqrt(im.NoisePower))
		for i := range out {
			noise := complex(normal.Rand()*amp, normal.Rand()*amp)
			out[i] += noise
		}
	}
	if im.PhaseNoise > 0 {
		for i := range out {
			out[i] *= cmplx.Exp(complex(0, normal.Rand()*im.PhaseNoise))
		}
	}

	if im.FractionalDelay != 0 {
		out = dsp.Convolve(out, dsp.FractionalDelayTaps(delayTaps, im.FractionalDelay))
	}

	if im.FrequencyOffset != 0 && im.SampleRate > 0 {
		ts := 1 / im.SampleRate
		for i := range out {
			out[i] *= cmplx.Exp(complex(0, 2*math.Pi*im.FrequencyOffset*ts*float64(i)))
		}
	}
	return out
}
