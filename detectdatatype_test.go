package connectome

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const compressedMatrix = "1,0.5\n0.5,1\n"

// xz container (CRC32 check) holding compressedMatrix.
var xzMatrix = []byte{
	0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00, 0x00, 0x01, 0x69, 0x22, 0xde, 0x36, 0x02, 0x00, 0x21, 0x01,
	0x16, 0x00, 0x00, 0x00, 0x74, 0x2f, 0xe5, 0xa3, 0x01, 0x00, 0x0b, 0x31, 0x2c, 0x30, 0x2e, 0x35,
	0x0a, 0x30, 0x2e, 0x35, 0x2c, 0x31, 0x0a, 0x00, 0x39, 0xb7, 0xe3, 0x99, 0x00, 0x01, 0x20, 0x0c,
	0xa2, 0xdd, 0xb4, 0xbc, 0x90, 0x42, 0x99, 0x0d, 0x01, 0x00, 0x00, 0x00, 0x00, 0x01, 0x59, 0x5a,
}

// bzip2 stream holding compressedMatrix.
var bzip2Matrix = []byte{
	0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0xa1, 0x7a, 0xbf, 0x32, 0x00, 0x00,
	0x04, 0xd8, 0x00, 0x00, 0x10, 0x00, 0x05, 0x62, 0x00, 0x20, 0x00, 0x21, 0xa7, 0xa8, 0xda, 0x83,
	0x00, 0x58, 0x32, 0xd0, 0x67, 0x8b, 0xb9, 0x22, 0x9c, 0x28, 0x48, 0x50, 0xbd, 0x5f, 0x99, 0x00,
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zlibBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zipBytes(t *testing.T, name, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectDataType(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
		want  DataType
	}{
		{"gzip", gzipBytes(t, compressedMatrix), DataTypeGzip},
		{"zip", zipBytes(t, "corrcoef.csv", compressedMatrix), DataTypeZip},
		{"xz", xzMatrix, DataTypeXZ},
		{"bzip2", bzip2Matrix, DataTypeBZip2},
		{"zlib", zlibBytes(t, compressedMatrix), DataTypeZlib},
		{"text", []byte("1,2"), DataTypeNoCompression},
		{"text starting with 80", []byte("80,1\n1,80\n"), DataTypeNoCompression},
		{"text starting with x", []byte("x,1\n1,x\n"), DataTypeNoCompression},
		{"single byte", []byte("1"), DataTypeNoCompression},
		{"empty", nil, DataTypeNoCompression},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := DetectDataType(bytes.NewReader(c.input))
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestMaybeDecompress(t *testing.T) {
	cases := map[string][]byte{
		"gzip":  gzipBytes(t, compressedMatrix),
		"zip":   zipBytes(t, "corrcoef.csv", compressedMatrix),
		"xz":    xzMatrix,
		"bzip2": bzip2Matrix,
		"zlib":  zlibBytes(t, compressedMatrix),
		"text":  []byte(compressedMatrix),
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			rc, err := MaybeDecompress(bytes.NewReader(input))
			require.NoError(t, err)
			defer rc.Close()

			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, compressedMatrix, string(data))
		})
	}
}

func TestLoadMatrixCompressed(t *testing.T) {
	want := mat.NewDense(2, 2, []float64{1, 0.5, 0.5, 1})

	for name, input := range map[string][]byte{
		"zip":   zipBytes(t, "corrcoef.csv", compressedMatrix),
		"xz":    xzMatrix,
		"bzip2": bzip2Matrix,
		"zlib":  zlibBytes(t, compressedMatrix),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := LoadMatrix(bytes.NewReader(input))
			require.NoError(t, err)
			assert.True(t, mat.Equal(want, got))
		})
	}

	_, err := LoadMatrix(strings.NewReader("80,1\n1,80\n"))
	assert.NoError(t, err)
}
