package scan

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/carbocation/connectome"
	"github.com/go-git/go-billy/v5"
)

const (
	// BoldNetDir holds every matrix of a scan for one atlas.
	BoldNetDir = "bold_net"

	// CorrcoefFile is the whole-scan connectivity matrix.
	CorrcoefFile = "corrcoef.csv"

	// TimeseriesFile is the regional time series the matrices were built from.
	TimeseriesFile = "timeseries.csv"
)

// Selector loads nets for one atlas out of a directory of scan folders.
//
// Dynamic sub-windows are the plain "<start>-<end>.csv" files of a scan's
// bold_net directory. Compressed copies such as "0-99.csv.gz" are not counted;
// run netungzip first, which keeps the archive beside the extracted file.
type Selector struct {
	FS    billy.Filesystem
	Root  string
	Atlas *connectome.Atlas

	// Logger receives one line per skipped entry. Defaults to log.Default().
	Logger *log.Logger

	// Rand drives RandomSubwindows. Set it to a seeded source for
	// reproducible draws.
	Rand *rand.Rand
}

func New(fsys billy.Filesystem, root string, atlas *connectome.Atlas) *Selector {
	return &Selector{
		FS:     fsys,
		Root:   root,
		Atlas:  atlas,
		Logger: log.Default(),
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SubjectGroup is every scan of one subject, in folder-name order.
type SubjectGroup struct {
	Subject string
	Scans   []ScanEntry
}

// Skip records an entry that was left out of a selection.
type Skip struct {
	Path   string `csv:"path"`
	Reason string `csv:"reason"`
}

// Loaded is one net that made it into a selection.
type Loaded struct {
	Scan   ScanEntry
	Window *Window // nil for whole-scan matrices
	File   string
	Net    *connectome.Net
}

// Selection is the outcome of a selection pass: the nets that loaded, and the
// entries that were skipped along the way.
type Selection struct {
	Loaded  []Loaded
	Skipped []Skip
}

// Nets returns the loaded nets in selection order.
func (s Selection) Nets() []*connectome.Net {
	out := make([]*connectome.Net, 0, len(s.Loaded))
	for _, v := range s.Loaded {
		out = append(out, v.Net)
	}
	return out
}

func (s *Selector) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

func (s *Selector) skip(skipped *[]Skip, path string, reason error) {
	s.logger().Printf("Skipping %s: %v\n", path, reason)
	*skipped = append(*skipped, Skip{Path: path, Reason: reason.Error()})
}

// boldNetDir is <scan>/<atlas>/bold_net.
func (s *Selector) boldNetDir(entry ScanEntry) string {
	return s.FS.Join(entry.Path, s.Atlas.Name, BoldNetDir)
}

// CorrcoefPath is the whole-scan matrix path for entry.
func (s *Selector) CorrcoefPath(entry ScanEntry) string {
	return s.FS.Join(s.boldNetDir(entry), CorrcoefFile)
}

// scans lists the scan folders under Root in lexicographic order. Folders
// whose names cannot be parsed are returned as skips.
func (s *Selector) scans() ([]ScanEntry, []Skip, error) {
	infos, err := s.FS.ReadDir(s.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("listing %s: %w", s.Root, err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	skipped := make([]Skip, 0)
	out := make([]ScanEntry, 0, len(infos))
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}

		path := s.FS.Join(s.Root, info.Name())
		subject, timeLabel, err := ParseScanName(info.Name())
		if err != nil {
			s.skip(&skipped, path, err)
			continue
		}

		out = append(out, ScanEntry{
			Subject:   subject,
			TimeLabel: timeLabel,
			Name:      info.Name(),
			Path:      path,
		})
	}

	return out, skipped, nil
}

// Groups returns the scans under Root grouped by subject. Subjects appear in
// the order they are first seen in the sorted listing.
func (s *Selector) Groups() ([]SubjectGroup, []Skip, error) {
	entries, skipped, err := s.scans()
	if err != nil {
		return nil, nil, err
	}

	return groupBySubject(entries), skipped, nil
}

func groupBySubject(entries []ScanEntry) []SubjectGroup {
	index := make(map[string]int)
	out := make([]SubjectGroup, 0)
	for _, entry := range entries {
		i, exists := index[entry.Subject]
		if !exists {
			i = len(out)
			index[entry.Subject] = i
			out = append(out, SubjectGroup{Subject: entry.Subject})
		}
		out[i].Scans = append(out[i].Scans, entry)
	}

	return out
}

// load reads file into a Loaded value. A missing file is recorded in skipped
// and reported as ok == false with a nil error; any other failure is returned.
func (s *Selector) load(entry ScanEntry, window *Window, file string, skipped *[]Skip) (Loaded, bool, error) {
	net, err := connectome.LoadNet(s.FS, file, s.Atlas)
	if errors.Is(err, os.ErrNotExist) {
		s.skip(skipped, file, errors.New("file not found"))
		return Loaded{}, false, nil
	} else if err != nil {
		return Loaded{}, false, err
	}

	return Loaded{Scan: entry, Window: window, File: file, Net: net}, true, nil
}
