package connectome

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/go-git/go-billy/v5"
)

// Ungzip decompresses path, which must end in .gz, into the same path with the
// suffix removed. The compressed source is left in place. It returns the path
// that was written.
func Ungzip(fsys billy.Filesystem, path string) (string, error) {
	if !strings.HasSuffix(path, ".gz") {
		return "", pfx.Err(fmt.Errorf("%s does not have a .gz suffix", path))
	}
	dest := strings.TrimSuffix(path, ".gz")

	in, err := fsys.Open(path)
	if err != nil {
		return "", pfx.Err(err)
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return "", pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	defer zr.Close()

	out, err := fsys.Create(dest)
	if err != nil {
		return "", pfx.Err(err)
	}

	if _, err := io.Copy(out, zr); err != nil {
		out.Close()
		return "", pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return dest, pfx.Err(out.Close())
}
