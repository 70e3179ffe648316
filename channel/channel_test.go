package channel

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySeededDeterminism(t *testing.T) {
	in := make([]complex128, 256)
	for i := range in {
		in[i] = complex(float64(1-2*(i%2)), 0)
	}

	im := Impairments{StdDev: 1, NoisePower: 10, PhaseNoise: 0.1, Seed: 99}
	a := im.Apply(in)
	b := im.Apply(in)
	require.Len(t, b, len(a))
	assert.Equal(t, a, b)

	im.Seed = 100
	c := im.Apply(in)
	assert.NotEqual(t, a, c)
}

func TestApplyNoiseLevel(t *testing.T) {
	in := make([]complex128, 20000)
	im := Impairments{StdDev: 1, NoisePower: 10, Seed: 5}
	out := im.Apply(in)

	// Per-branch amplitude is StdDev/(sqrt2*sqrt(NoisePower)), so the
	// complex noise power is StdDev^2/NoisePower.
	var power float64
	for _, s := range out {
		power += real(s)*real(s) + imag(s)*imag(s)
	}
	power /= float64(len(out))
	assert.InDelta(t, 0.1, power, 0.01)
}

func TestApplyFractionalDelayPreservesLevel(t *testing.T) {
	in := make([]complex128, 400)
	for i := range in {
		in[i] = 1
	}
	im := Impairments{FractionalDelay: 0.4}
	out := im.Apply(in)

	// Full convolution with the delay filter lengthens the output.
	require.Len(t, out, len(in)+20)

	// Away from the edges a constant input stays constant through the
	// unity-gain delay filter.
	for _, s := range out[30 : len(out)-30] {
		assert.InDelta(t, 1, real(s), 1e-6)
		assert.InDelta(t, 0, imag(s), 1e-6)
	}
}

func TestApplyFrequencyOffsetRotation(t *testing.T) {
	in := make([]complex128, 1000)
	for i := range in {
		in[i] = 1
	}
	im := Impairments{FrequencyOffset: 1000, SampleRate: 1e6}
	out := im.Apply(in)
	require.Len(t, out, len(in))

	step := 2 * math.Pi * 1000 / 1e6
	for i, s := range out {
		assert.InDelta(t, 1, cmplx.Abs(s), 1e-9)
		assert.InDelta(t, math.Cos(step*float64(i)), real(s), 1e-9, "sample %d", i)
		assert.InDelta(t, math.Sin(step*float64(i)), imag(s), 1e-9, "sample %d", i)
	}
}

func TestApplyZeroImpairmentsIsIdentity(t *testing.T) {
	in := []complex128{1, 2i, -3, 0.5 - 0.5i}
	out := (&Impairments{}).Apply(in)
	assert.Equal(t, in, out)
}
