package connectome

import (
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// Delimiters a matrix file may plausibly use.
var matrixDelimiters = map[rune]struct{}{
	'\t': {},
	',':  {},
	';':  {},
	'|':  {},
	' ':  {},
}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	if d, ok := detectDelimiter(r); ok {
		return d
	}

	return ','
}

// detectDelimiter reports false when the detector found no candidate at all.
func detectDelimiter(r io.Reader) (rune, bool) {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0]), true
	}

	return 0, false
}

// determineMatrixDelimiter is DetermineDelimiter restricted to the separators
// seen in numeric matrix files. Digits, signs and decimal points can look like
// consistent delimiters to the detector, so anything outside matrixDelimiters
// falls back to inspecting the first line. Space is only chosen when nothing
// else is present, since fixed-point output is often padded.
func determineMatrixDelimiter(data []byte) rune {
	if d, ok := detectDelimiter(bytes.NewReader(data)); ok && d != ' ' && isMatrixDelimiter(d) {
		return d
	}

	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	for _, candidate := range []byte{'\t', ',', ';', '|'} {
		if bytes.IndexByte(firstLine, candidate) >= 0 {
			return rune(candidate)
		}
	}

	return ' '
}

func isMatrixDelimiter(r rune) bool {
	_, ok := matrixDelimiters[r]
	return ok
}
