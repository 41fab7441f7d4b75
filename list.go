package connectome

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// ReadList reads a newline-delimited list of identifiers from path, which may
// be a gs:// URL when client is non-nil. Each line is whitespace-trimmed and
// blank lines are dropped. A missing file is returned as an error.
func ReadList(path string, client *storage.Client) ([]string, error) {
	f, err := MaybeOpenFromGoogleStorage(path, client)
	if err != nil {
		return nil, fmt.Errorf("ReadList: %w", err)
	}
	defer f.Close()

	return ParseList(f)
}

// ParseList is ReadList for an already opened reader.
func ParseList(r io.Reader) ([]string, error) {
	out := make([]string, 0)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}

	return out, pfx.Err(scanner.Err())
}
