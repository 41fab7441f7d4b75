package scan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Separator splits a scan folder name into subject and time label.
const Separator = "_"

// RangeSeparator splits a sub-window file stem into its start and end.
const RangeSeparator = "-"

var (
	ErrNoSeparator  = errors.New("scan: name has no subject separator")
	ErrNotSubwindow = errors.New("scan: not a sub-window file")
)

// ScanEntry identifies one scan folder.
type ScanEntry struct {
	Subject   string
	TimeLabel string
	Name      string // folder name, <Subject>_<TimeLabel>
	Path      string // folder path on the selector's filesystem
}

// ParseScanName splits name at the first Separator. The subject must be
// non-empty; the time label may be empty ("sub01_").
func ParseScanName(name string) (subject, timeLabel string, err error) {
	i := strings.Index(name, Separator)
	if i < 0 {
		return "", "", fmt.Errorf("%w: %q", ErrNoSeparator, name)
	}
	if i == 0 {
		return "", "", fmt.Errorf("%w: %q has an empty subject", ErrNoSeparator, name)
	}

	return name[:i], name[i+len(Separator):], nil
}

// Window is the time range of a dynamic sub-window, parsed from a file named
// <start>-<end>.csv.
type Window struct {
	Start int
	End   int
}

func (w Window) String() string {
	return fmt.Sprintf("%d%s%d", w.Start, RangeSeparator, w.End)
}

// ParseWindowName parses a bold_net file name such as "0-99.csv". Names with
// any further suffix, including compression extensions, are ErrNotSubwindow.
func ParseWindowName(fileName string) (Window, error) {
	stem := strings.TrimSuffix(fileName, ".csv")
	if stem == fileName {
		return Window{}, fmt.Errorf("%w: %q is not a .csv file", ErrNotSubwindow, fileName)
	}

	parts := strings.SplitN(stem, RangeSeparator, 2)
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("%w: %q", ErrNotSubwindow, fileName)
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %v", ErrNotSubwindow, fileName, err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %v", ErrNotSubwindow, fileName, err)
	}

	return Window{Start: start, End: end}, nil
}
