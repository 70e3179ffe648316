// Package crc implements error detection with modulo-2 polynomial division.
// Bits are carried as 0/1 byte values so the division can treat them as
// elements of GF(2) directly.
package crc

import "fmt"

// DefaultKey is the generator polynomial used by the link layer, a degree-11
// polynomial with good single and double bit error coverage.
// See https://users.ece.cmu.edu/~koopman/crc/
var DefaultKey = []byte{1, 0, 0, 1, 1, 0, 0, 0, 0, 1, 1, 1}

func validateKey(key []byte) error {
	if len(key) < 2 {
		return fmt.Errorf("crc: key must have at least 2 bits, got %d", len(key))
	}
	if key[0] != 1 {
		return fmt.Errorf("crc: key must have a leading 1 bit")
	}
	return nil
}

// remainder performs modulo-2 long division of dividend by key and returns
// the final len(key)-1 remainder bits. A window with a leading 1 is XORed
// with the key; a leading 0 only shifts the window.
func remainder(dividend, key []byte) []byte {
	work := make([]byte, len(dividend))
	copy(work, dividend)
	for i := 0; i+len(key) <= len(work); i++ {
		if work[i] == 1 {
			for j, kb := range key {
				work[i+j] ^= kb
			}
		}
	}
	return work[len(work)-(len(key)-1):]
}

// Encode appends the CRC remainder of data to data, producing the codeword
// transmitted over the link. The remainder is computed over data extended
// with len(key)-1 zero bits.
func Encode(data, key []byte) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	padded := make([]byte, len(data)+len(key)-1)
	copy(padded, data)
	rem := remainder(padded, key)
	codeword := make([]byte, 0, len(data)+len(rem))
	codeword = append(codeword, data...)
	codeword = append(codeword, rem...)
	return codeword, nil
}

// Check divides the codeword by key and reports whether the remainder is
// zero, i.e. whether the codeword arrived without detectable errors.
func Check(codeword, key []byte) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	if len(codeword) < len(key)-1 {
		return false, nil
	}
	for _, b := range remainder(codeword, key) {
		if b != 0 {
			return false, nil
		}
	}
	return true, nil
}
