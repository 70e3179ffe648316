// Package modem maps bits to modulation symbols and back. Each scheme owns
// its constellation table; demodulation is minimum Euclidean distance
// against that table.
package modem

import "fmt"

// Scheme identifies a modulation scheme.
type Scheme int

const (
	OOK Scheme = iota
	BPSK
	QPSK
	QAM16
)

func ParseScheme(s string) (Scheme, error) {
	switch s {
	case "OOK":
		return OOK, nil
	case "BPSK":
		return BPSK, nil
	case "QPSK":
		return QPSK, nil
	case "QAM", "QAM16":
		return QAM16, nil
	}
	return 0, fmt.Errorf("modem: unknown modulation scheme %q", s)
}

func (s Scheme) String() string {
	switch s {
	case OOK:
		return "OOK"
	case BPSK:
		return "BPSK"
	case QPSK:
		return "QPSK"
	case QAM16:
		return "QAM16"
	}
	return "unknown"
}

// BitsPerSymbol returns the number of payload bits carried by one symbol.
func (s Scheme) BitsPerSymbol() int {
	switch s {
	case QPSK:
		return 2
	case QAM16:
		return 4
	}
	return 1
}
