package dsp

// Convolve computes the full convolution of a complex sequence with real
// taps. Output length is len(x)+len(h)-1.
func Convolve(x []complex128, h []float64) []complex128 {
	if len(x) == 0 || len(h) == 0 {
		return nil
	}
	y := make([]complex128, len(x)+len(h)-1)
	for i, xi := range x {
		for j, hj := range h {
			y[i+j] += xi * complex(hj, 0)
		}
	}
	return y
}

// MovingMean computes a symmetric moving average with the given window
// radius. Near the sequence boundaries the window shrinks to whatever part
// of it is in range, so the output always has the same length as the input.
func MovingMean(x []float64, radius int) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		lo := i - radius
		if lo < 0 {
			lo = 0
		}
		hi := i + radius
		if hi > len(x)-1 {
			hi = len(x) - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += x[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}
