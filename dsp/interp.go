package dsp

// Interpolate resamples x to factor times its rate by zero stuffing and
// low-pass filtering with a Hamming windowed sinc. The output is aligned
// with the input: sample k*factor equals x[k], and the length is exactly
// len(x)*factor. The timing recovery loop reads fractional sample offsets
// out of this grid.
func Interpolate(x []complex128, factor int) []complex128 {
	if len(x) == 0 {
		return nil
	}
	half := 10 * factor
	ntaps := 2*half + 1
	h := make([]float64, ntaps)
	for i := range h {
		h[i] = sinc(float64(i-half)/float64(factor)) * hamming(ntaps, i)
	}
	stuffed := make([]complex128, len(x)*factor)
	for i, v := range x {
		stuffed[i*factor] = v
	}
	full := Convolve(stuffed, h)
	return full[half : half+len(stuffed)]
}
