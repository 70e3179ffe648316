package modem

import "math/cmplx"

// Constellation reference points with their bit patterns, listed in decision
// evaluation order. On an exact distance tie the first reference in the list
// wins.
type reference struct {
	bits  []byte
	point complex128
}

var qpskRefs = []reference{
	{[]byte{1, 1}, 1 + 1i},
	{[]byte{1, 0}, 1 - 1i},
	{[]byte{0, 0}, -1 - 1i},
	{[]byte{0, 1}, -1 + 1i},
}

var qam16Refs = []reference{
	{[]byte{1, 1, 1, 1}, 1 + 1i},
	{[]byte{1, 1, 1, 0}, 3 + 1i},
	{[]byte{1, 1, 0, 1}, -1 + 1i},
	{[]byte{1, 1, 0, 0}, -3 + 1i},
	{[]byte{1, 0, 1, 1}, 1 + 3i},
	{[]byte{1, 0, 1, 0}, 3 + 3i},
	{[]byte{1, 0, 0, 1}, -1 + 3i},
	{[]byte{1, 0, 0, 0}, -3 + 3i},
	{[]byte{0, 1, 1, 1}, 1 - 1i},
	{[]byte{0, 1, 1, 0}, 3 - 1i},
	{[]byte{0, 1, 0, 1}, -1 - 1i},
	{[]byte{0, 1, 0, 0}, -3 - 1i},
	{[]byte{0, 0, 1, 1}, 1 - 3i},
	{[]byte{0, 0, 1, 0}, 3 - 3i},
	{[]byte{0, 0, 0, 1}, -1 - 3i},
	{[]byte{0, 0, 0, 0}, -3 - 3i},
}

// nearest returns the first reference at minimum Euclidean distance from s.
func nearest(s complex128, refs []reference, gain float64) reference {
	best := refs[0]
	bestDist := cmplx.Abs(s - best.point*complex(gain, 0))
	for _, r := range refs[1:] {
		d := cmplx.Abs(s - r.point*complex(gain, 0))
		if d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}

// Demodulate maps recovered symbols to bits by minimum-distance detection
// against the scheme's constellation scaled by channelGain. preambleLen is
// the number of leading symbols that carry raw preamble bits; only 16-QAM
// treats them separately (hard threshold on the in-phase branch), the other
// schemes decide every symbol the same way.
//
// Bit ordering per scheme: BPSK and OOK emit one bit per symbol in symbol
// order. QPSK emits all in-phase bits followed by all quadrature bits.
// 16-QAM emits, per symbol, the quadrature bit pair then the in-phase bit
// pair.
func Demodulate(symbols []complex128, scheme Scheme, channelGain float64, preambleLen int) []byte {
	switch scheme {
	case OOK:
		on := complex(channelGain, 0)
		bits := make([]byte, 0, len(symbols))
		for _, s := range symbols {
			if cmplx.Abs(s-on) < cmplx.Abs(s) {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
		return bits

	case BPSK:
		minus := complex(-channelGain, 0)
		plus := complex(channelGain, 0)
		bits := make([]byte, 0, len(symbols))
		for _, s := range symbols {
			if cmplx.Abs(s-minus) < cmplx.Abs(s-plus) {
				bits = append(bits, 0)
			} else {
				bits = append(bits, 1)
			}
		}
		return bits

	case QPSK:
		iBits := make([]byte, 0, len(symbols))
		qBits := make([]byte, 0, len(symbols))
		for _, s := range symbols {
			r := nearest(s, qpskRefs, channelGain)
			iBits = append(iBits, r.bits[0])
			qBits = append(qBits, r.bits[1])
		}
		return append(iBits, qBits...)

	case QAM16:
		if preambleLen > len(symbols) {
			preambleLen = len(symbols)
		}
		bits := make([]byte, 0, preambleLen+4*(len(symbols)-preambleLen))
		for _, s := range symbols[:preambleLen] {
			if real(s) > 0.5 {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
		for _, s := range symbols[preambleLen:] {
			r := nearest(s, qam16Refs, channelGain)
			bits = append(bits, r.bits...)
		}
		return bits
	}
	return nil
}
