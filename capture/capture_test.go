package capture

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryRoundTrip(t *testing.T) {
	in := []complex128{0.5 + 0.25i, -0.75 - 0.125i, 0, 0.999 - 0.999i}

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, in))
	assert.Equal(t, len(in)*4, buf.Len())

	out, err := ReadBinary(&buf)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.InDelta(t, real(in[i]), real(out[i]), 1e-3, "sample %d", i)
		assert.InDelta(t, imag(in[i]), imag(out[i]), 1e-3, "sample %d", i)
	}
}

func TestBinarySampleOrderIsQThenI(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, []complex128{0.5 + 0.25i}))

	b := buf.Bytes()
	require.Len(t, b, 4)
	q := int16(b[0]) | int16(b[1])<<8
	i := int16(b[2]) | int16(b[3])<<8
	assert.InDelta(t, 0.25, float64(q)/32768, 1e-3)
	assert.InDelta(t, 0.5, float64(i)/32768, 1e-3)
}

func TestBinaryClipsFullScale(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, []complex128{2 - 2i}))
	out, err := ReadBinary(&buf)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.InDelta(t, 1, real(out[0]), 1e-3)
	assert.InDelta(t, -1, imag(out[0]), 1e-3)
}

func TestBinaryTruncatedRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, []complex128{0.1 + 0.1i}))
	buf.Truncate(buf.Len() - 1)

	_, err := ReadBinary(&buf)
	assert.ErrorContains(t, err, "truncated")
}

func TestTextRoundTripExact(t *testing.T) {
	in := []complex128{0.5 + 0.25i, -1.5 - 2.25i, 3, -0.125i, 1e-7 + 2e9i}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, in))

	out, err := ReadText(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadTextForms(t *testing.T) {
	src := strings.NewReader("(1+2j)\n\n0.5, -0.25\n(-3-4j)\n")
	out, err := ReadText(src)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1 + 2i, 0.5 - 0.25i, -3 - 4i}, out)
}

func TestReadTextBadLine(t *testing.T) {
	_, err := ReadText(strings.NewReader("(1+2j)\nnonsense\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadSavePicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	in := []complex128{0.25 + 0.5i, -0.5 - 0.25i}

	txt := filepath.Join(dir, "capture.txt")
	require.NoError(t, Save(txt, in))
	out, err := Load(txt)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	raw := filepath.Join(dir, "capture.iq")
	require.NoError(t, Save(raw, in))
	out, err = Load(raw)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.InDelta(t, real(in[i]), real(out[i]), 1e-3)
		assert.InDelta(t, imag(in[i]), imag(out[i]), 1e-3)
	}
}
