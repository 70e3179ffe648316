package crc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeKnownVector(t *testing.T) {
	// Hand-computed modulo-2 division: 100100000 / 1101 leaves 001.
	data := []byte{1, 0, 0, 1, 0, 0}
	key := []byte{1, 1, 0, 1}

	codeword, err := Encode(data, key)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 1, 0, 0, 0, 0, 1}, codeword)

	ok, err := Check(codeword, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.IntRange(0, 1), 0, 128).Draw(t, "data")
		keyTail := rapid.SliceOfN(rapid.IntRange(0, 1), 1, 15).Draw(t, "keyTail")

		key := []byte{1}
		for _, b := range keyTail {
			key = append(key, byte(b))
		}
		bits := make([]byte, len(data))
		for i, b := range data {
			bits[i] = byte(b)
		}

		codeword, err := Encode(bits, key)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if len(codeword) != len(bits)+len(key)-1 {
			t.Fatalf("codeword length %d, want %d", len(codeword), len(bits)+len(key)-1)
		}
		ok, err := Check(codeword, key)
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if !ok {
			t.Fatalf("round trip failed for data %v key %v", bits, key)
		}
	})
}

func TestSingleBitFlipDetected(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte((i * 7 / 3) % 2)
	}
	codeword, err := Encode(data, DefaultKey)
	require.NoError(t, err)

	// The default key detects every single-bit error.
	for i := range codeword {
		codeword[i] ^= 1
		ok, err := Check(codeword, DefaultKey)
		require.NoError(t, err)
		assert.False(t, ok, "flip at position %d went undetected", i)
		codeword[i] ^= 1
	}
}

func TestKeyValidation(t *testing.T) {
	_, err := Encode([]byte{1, 0}, []byte{1})
	assert.Error(t, err)

	_, err = Encode([]byte{1, 0}, []byte{0, 1, 1})
	assert.Error(t, err)

	_, err = Check([]byte{1, 0}, []byte{1})
	assert.Error(t, err)
}

func TestCheckDetectsCorruption(t *testing.T) {
	data := []byte{1, 0, 1, 1, 0, 0, 1, 0}
	codeword, err := Encode(data, DefaultKey)
	require.NoError(t, err)

	codeword[3] ^= 1
	ok, err := Check(codeword, DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
