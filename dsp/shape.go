package dsp

import "fmt"

// PulseShape selects the transmit pulse shaping filter.
type PulseShape int

const (
	PulseRect PulseShape = iota
	PulseRRC
)

func ParsePulseShape(s string) (PulseShape, error) {
	switch s {
	case "rect":
		return PulseRect, nil
	case "rrc":
		return PulseRRC, nil
	}
	return 0, fmt.Errorf("dsp: unknown pulse shape %q", s)
}

func (p PulseShape) String() string {
	switch p {
	case PulseRect:
		return "rect"
	case PulseRRC:
		return "rrc"
	}
	return "unknown"
}

// Upsample inserts sps-1 zeros after every symbol.
func Upsample(symbols []complex128, sps int) []complex128 {
	up := make([]complex128, len(symbols)*sps)
	for i, s := range symbols {
		up[i*sps] = s
	}
	return up
}

// Shape upsamples the symbol sequence by sps and applies the selected pulse
// shaping filter. For RRC the filter spans l symbols (l*sps taps) and the
// full convolution is returned, len(symbols)*sps + l*sps - 1 samples. For
// the rectangular pulse shaping degenerates to plain upsampling and the
// output is exactly len(symbols)*sps samples.
func Shape(symbols []complex128, sps int, fs float64, shape PulseShape, alpha float64, l int) []complex128 {
	up := Upsample(symbols, sps)
	if shape != PulseRRC {
		return up
	}
	n := l * sps
	tsym := float64(sps) / fs
	return Convolve(up, RRCTaps(n, alpha, tsym, fs))
}
