package scan

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"
)

var ErrInsufficientSubwindows = errors.New("scan: not enough sub-windows to draw from")

// Windowing describes how the dynamic sub-windows of a scan were produced. It
// is carried for logging; the files on disk decide what is loaded.
type Windowing struct {
	Length int
	Step   int
}

type subwindowFile struct {
	scan   ScanEntry
	window Window
	path   string
}

// subwindows lists the sub-window matrices of one scan ordered by window. The
// reserved whole-scan files are never returned. A missing bold_net directory
// is recorded in skipped.
func (s *Selector) subwindows(entry ScanEntry, skipped *[]Skip) ([]subwindowFile, error) {
	dir := s.boldNetDir(entry)
	infos, err := s.FS.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		s.skip(skipped, dir, errors.New("directory not found"))
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	out := make([]subwindowFile, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || info.Name() == CorrcoefFile || info.Name() == TimeseriesFile {
			continue
		}

		window, err := ParseWindowName(info.Name())
		if err != nil {
			continue
		}

		out = append(out, subwindowFile{scan: entry, window: window, path: s.FS.Join(dir, info.Name())})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].window.Start != out[j].window.Start {
			return out[i].window.Start < out[j].window.Start
		}
		return out[i].window.End < out[j].window.End
	})

	return out, nil
}

func (s *Selector) loadSubwindows(files []subwindowFile, out *Selection) error {
	for _, file := range files {
		window := file.window
		loaded, ok, err := s.load(file.scan, &window, file.path, &out.Skipped)
		if err != nil {
			return err
		} else if ok {
			out.Loaded = append(out.Loaded, loaded)
		}
	}

	return nil
}

// AllSubwindows loads every sub-window of the scan at the 1-based ordinal
// position of each allowed subject.
func (s *Selector) AllSubwindows(windowing Windowing, ordinal int, allow AllowList) (Selection, error) {
	if ordinal < 1 {
		return Selection{}, fmt.Errorf("ordinal position must be >= 1, got %d", ordinal)
	}

	groups, skipped, err := s.Groups()
	if err != nil {
		return Selection{}, err
	}

	s.logger().Printf("Loading dynamic sub-windows (length %d, step %d) of scan #%d per subject\n", windowing.Length, windowing.Step, ordinal)

	out := Selection{Skipped: skipped}
	for _, group := range groups {
		if !allow.Allows(group.Subject) || len(group.Scans) < ordinal {
			continue
		}

		files, err := s.subwindows(group.Scans[ordinal-1], &out.Skipped)
		if err != nil {
			return out, err
		}

		if err := s.loadSubwindows(files, &out); err != nil {
			return out, err
		}
	}

	return out, nil
}

// RandomSubwindows draws total sub-windows across the allowed scans without
// replacement. Draws happen in passes: each pass takes one not yet chosen
// sub-window, uniformly at random, from every scan that still has one. A pass
// that would overshoot total is shuffled and truncated. Coverage is therefore
// spread evenly over scans instead of draining one scan first.
//
// allowScans filters by scan folder name. If fewer than total sub-windows
// exist, ErrInsufficientSubwindows is returned before anything is drawn.
func (s *Selector) RandomSubwindows(total int, allowScans AllowList) (Selection, error) {
	if total < 0 {
		return Selection{}, fmt.Errorf("total must be >= 0, got %d", total)
	}

	entries, skipped, err := s.scans()
	if err != nil {
		return Selection{}, err
	}

	out := Selection{Skipped: skipped}

	pools := make([][]subwindowFile, 0, len(entries))
	available := 0
	for _, entry := range entries {
		if !allowScans.Allows(entry.Name) {
			continue
		}

		files, err := s.subwindows(entry, &out.Skipped)
		if err != nil {
			return out, err
		}
		if len(files) == 0 {
			continue
		}

		pools = append(pools, files)
		available += len(files)
	}

	if available < total {
		return out, fmt.Errorf("%w: want %d, have %d", ErrInsufficientSubwindows, total, available)
	}

	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	chosen := drawSubwindows(rng, pools, total)

	return out, s.loadSubwindows(chosen, &out)
}

// drawSubwindows consumes pools. The caller guarantees that the pools hold at
// least total files between them.
func drawSubwindows(rng *rand.Rand, pools [][]subwindowFile, total int) []subwindowFile {
	out := make([]subwindowFile, 0, total)

	for len(out) < total {
		batch := make([]subwindowFile, 0, len(pools))
		for i, pool := range pools {
			if len(pool) == 0 {
				continue
			}

			k := rng.Intn(len(pool))
			batch = append(batch, pool[k])

			pool[k] = pool[len(pool)-1]
			pools[i] = pool[:len(pool)-1]
		}

		if deficit := total - len(out); len(batch) > deficit {
			rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
			batch = batch[:deficit]
		}

		out = append(out, batch...)
	}

	return out
}
