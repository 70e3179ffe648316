package modem

import "math"

// Modulate maps packet bits (preamble plus payload) to baseband symbols.
// The first preambleLen bits always map to real symbols so the frame
// synchronizer sees the preamble on the in-phase branch regardless of
// scheme. OOK and BPSK modulate the preamble like any other bit.
func Modulate(bits []byte, scheme Scheme, preambleLen int) []complex128 {
	switch scheme {
	case OOK:
		syms := make([]complex128, len(bits))
		for i, b := range bits {
			syms[i] = complex(float64(b), 0)
		}
		return syms

	case BPSK:
		syms := make([]complex128, len(bits))
		for i, b := range bits {
			syms[i] = complex(2*float64(b)-1, 0)
		}
		return syms

	case QPSK:
		if preambleLen > len(bits) {
			preambleLen = len(bits)
		}
		payload := bits[preambleLen:]
		half := len(payload) / 2
		syms := make([]complex128, 0, preambleLen+half)
		for _, b := range bits[:preambleLen] {
			syms = append(syms, complex(float64(b), 0))
		}
		// Independent I and Q bit streams, scaled to keep per-channel
		// symbol energy in line with OOK.
		for i := 0; i < half; i++ {
			re := 2*float64(payload[i]) - 1
			im := 2*float64(payload[half+i]) - 1
			syms = append(syms, complex(re/math.Sqrt2, im/math.Sqrt2))
		}
		return syms

	case QAM16:
		if preambleLen > len(bits) {
			preambleLen = len(bits)
		}
		payload := bits[preambleLen:]
		payload = payload[:len(payload)-len(payload)%4]
		syms := make([]complex128, 0, preambleLen+len(payload)/4)
		for _, b := range bits[:preambleLen] {
			syms = append(syms, complex(float64(b), 0))
		}
		for i := 0; i+4 <= len(payload); i += 4 {
			syms = append(syms, qam16Point(payload[i:i+4]))
		}
		return syms
	}
	return nil
}

func qam16Point(nibble []byte) complex128 {
	for _, r := range qam16Refs {
		if r.bits[0] == nibble[0] && r.bits[1] == nibble[1] &&
			r.bits[2] == nibble[2] && r.bits[3] == nibble[3] {
			return r.point
		}
	}
	return 0
}
