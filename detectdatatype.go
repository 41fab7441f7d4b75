package connectome

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType reads up to 6 bytes from r and matches them against known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	// Match known signatures
Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	if isZlibHeader(buff) {
		return DataTypeZlib, nil
	}

	return DataTypeNoCompression, nil
}

// isZlibHeader checks the RFC 1950 header: deflate with a window of at most
// 32K, no preset dictionary, and a check value making the first two bytes a
// multiple of 31. Digits and separators all carry the FDICT bit, so numeric
// text never matches.
func isZlibHeader(buff []byte) bool {
	if len(buff) < 2 || buff[0]&0x0f != 8 || buff[0]>>4 > 7 || buff[1]&0x20 != 0 {
		return false
	}
	return (uint16(buff[0])<<8|uint16(buff[1]))%31 == 0
}

// MaybeDecompress sniffs the compression of r, rewinds it, and returns a reader
// that yields the decompressed bytes. Uncompressed input is returned as-is.
// Closing the returned reader never closes r.
func MaybeDecompress(r io.ReadSeeker) (io.ReadCloser, error) {
	dt, err := DetectDataType(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch dt {
	case DataTypeGzip:
		return gzip.NewReader(r)
	case DataTypeZip:
		zr := zipstream.NewReader(r)
		// Matrices are stored one per archive; read the first entry.
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return &readCloserFaker{zr}, nil
	case DataTypeBZip2:
		return &readCloserFaker{bzip2.NewReader(r)}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(r, 0)
		if err != nil {
			return nil, err
		}
		return &readCloserFaker{reader}, nil
	case DataTypeZlib:
		return zlib.NewReader(r)
	}

	return &readCloserFaker{r}, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
