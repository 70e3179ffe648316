// Package capture reads and writes IQ sample captures in the two formats
// the acquisition tooling produces: raw binary (16-bit signed little-endian
// integer pairs, quadrature then in-phase) and text (one complex value per
// line). It stands in for hardware acquisition: the receive chain always
// starts from a complete, time-ordered buffer.
package capture

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// int16Scale maps full-scale int16 samples onto [-1, 1).
const int16Scale = 32768.0

// ReadBinary decodes int16 little-endian Q/I pairs until EOF.
func ReadBinary(r io.Reader) ([]complex128, error) {
	br := bufio.NewReader(r)
	var samples []complex128
	for {
		var pair [2]int16
		if err := binary.Read(br, binary.LittleEndian, &pair); err != nil {
			if err == io.EOF {
				return samples, nil
			}
			if err == io.ErrUnexpectedEOF {
				return samples, fmt.Errorf("capture: truncated sample record")
			}
			return samples, err
		}
		q, i := pair[0], pair[1]
		samples = append(samples, complex(float64(i)/int16Scale, float64(q)/int16Scale))
	}
}

// WriteBinary encodes samples as int16 little-endian Q/I pairs, clipping to
// full scale.
func WriteBinary(w io.Writer, samples []complex128) error {
	bw := bufio.NewWriter(w)
	for _, s := range samples {
		pair := [2]int16{clip16(imag(s)), clip16(real(s))}
		if err := binary.Write(bw, binary.LittleEndian, &pair); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func clip16(v float64) int16 {
	v *= int16Scale - 1
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// ReadText decodes one complex value per line, either in numpy's
// "(re+imj)" form or as "re,im". Blank lines are skipped.
func ReadText(r io.Reader) ([]complex128, error) {
	var samples []complex128
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		s, err := parseComplex(text)
		if err != nil {
			return samples, fmt.Errorf("capture: line %d: %w", line, err)
		}
		samples = append(samples, s)
	}
	return samples, sc.Err()
}

// WriteText encodes one complex value per line in the "(re+imj)" form.
func WriteText(w io.Writer, samples []complex128) error {
	bw := bufio.NewWriter(w)
	for _, s := range samples {
		if _, err := fmt.Fprintf(bw, "(%g%+gj)\n", real(s), imag(s)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func parseComplex(s string) (complex128, error) {
	if i := strings.IndexByte(s, ','); i >= 0 {
		re, err := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
		if err != nil {
			return 0, err
		}
		im, err := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
		if err != nil {
			return 0, err
		}
		return complex(re, im), nil
	}
	// numpy writes the imaginary unit as j; ParseComplex wants i.
	c, err := strconv.ParseComplex(strings.ReplaceAll(s, "j", "i"), 128)
	if err != nil {
		return 0, fmt.Errorf("bad complex value %q: %w", s, err)
	}
	return c, nil
}

// Load reads a capture file, picking the format from the extension: .txt and
// .csv are text, everything else is raw binary.
func Load(path string) ([]complex128, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if isText(path) {
		return ReadText(f)
	}
	return ReadBinary(f)
}

// Save writes a capture file, picking the format the same way Load does.
func Save(path string, samples []complex128) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if isText(path) {
		return WriteText(f, samples)
	}
	return WriteBinary(f, samples)
}

func isText(path string) bool {
	return strings.HasSuffix(path, ".txt") || strings.HasSuffix(path, ".csv")
}
