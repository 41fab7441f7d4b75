package connectome

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/go-git/go-billy/v5"
	"gonum.org/v1/gonum/mat"
)

// LoadMatrix parses a delimited numeric matrix. Compressed input (gzip, zip,
// xz, bzip2, zlib) is detected by its signature, and the delimiter is detected
// from the content, so both comma separated files and the tab separated output
// of SaveMatrixAsDelimitedText are accepted.
func LoadMatrix(r io.ReadSeeker) (*mat.Dense, error) {
	rc, err := MaybeDecompress(r)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, pfx.Err(err)
	}

	rows, err := splitMatrixRows(data, determineMatrixDelimiter(data))
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(rows) == 0 {
		return nil, pfx.Err(fmt.Errorf("no rows in matrix"))
	}

	nCols := len(rows[0])
	values := make([]float64, 0, len(rows)*nCols)
	for i, row := range rows {
		if len(row) != nCols {
			return nil, pfx.Err(fmt.Errorf("row %d has %d columns, expected %d", i, len(row), nCols))
		}
		for j, field := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("row %d column %d: %w", i, j, err))
			}
			values = append(values, v)
		}
	}

	return mat.NewDense(len(rows), nCols, values), nil
}

func splitMatrixRows(data []byte, delim rune) ([][]string, error) {
	if delim == ' ' {
		out := make([][]string, 0)
		scanner := bufio.NewScanner(bytes.NewReader(data))
		scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
		for scanner.Scan() {
			if fields := strings.Fields(scanner.Text()); len(fields) > 0 {
				out = append(out, fields)
			}
		}
		return out, scanner.Err()
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// LoadMatrixFile opens path on fsys and parses it with LoadMatrix.
func LoadMatrixFile(fsys billy.Filesystem, path string) (*mat.Dense, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := LoadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// LoadNet loads the matrix at path and binds it to atlas.
func LoadNet(fsys billy.Filesystem, path string, atlas *Atlas) (*Net, error) {
	m, err := LoadMatrixFile(fsys, path)
	if err != nil {
		return nil, err
	}

	n, err := NewNet(m, atlas)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return n, nil
}

// SaveMatrixAsDelimitedText writes m with one row per line and cells formatted
// %f and joined by tabs. Neither the last cell of a row nor the last row gets
// a trailing delimiter.
func SaveMatrixAsDelimitedText(w io.Writer, m mat.Matrix) error {
	bw := bufio.NewWriter(w)
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		for j := 0; j < cols; j++ {
			if j > 0 {
				if err := bw.WriteByte('\t'); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(m.At(i, j), 'f', 6, 64)); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// SaveMatrixFile creates (or truncates) path on fsys and writes m to it with
// SaveMatrixAsDelimitedText.
func SaveMatrixFile(fsys billy.Filesystem, path string, m mat.Matrix) error {
	f, err := fsys.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := SaveMatrixAsDelimitedText(f, m); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	return f.Close()
}
