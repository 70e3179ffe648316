package modem

// preamble is an optimal periodic binary code for N = 63, truncated to 60
// bits: one dominant autocorrelation peak with low sidelobes, which is what
// the frame synchronizer keys on.
// https://ntrs.nasa.gov/citations/19800017860
var preamble = []byte{
	0, 1, 0, 0, 0, 0, 1, 1, 0, 0, 0, 1, 0, 1, 0, 0, 1, 1, 1, 1,
	0, 1, 0, 0, 0, 1, 1, 1, 0, 0, 1, 0, 0, 1, 0, 1, 1, 0, 1, 1,
	1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 1, 0, 1, 1, 1, 1, 1, 1, 0,
}

// PreambleLength is the number of bits in the frame preamble.
const PreambleLength = 60

// Preamble returns a copy of the fixed frame preamble, known identically to
// transmitter and receiver.
func Preamble() []byte {
	p := make([]byte, len(preamble))
	copy(p, preamble)
	return p
}
