package scan

import (
	"errors"
	"fmt"
)

var ErrMissingTimeLabel = errors.New("scan: time label not found for subject")

// Temporal holds up to limit nets per subject, in time order.
type Temporal struct {
	BySubject map[string][]Loaded
	Skipped   []Skip
}

// AllUpToLimit loads the first limit scans of every allowed subject. Subjects
// with fewer than limit loadable scans are left out entirely.
//
// If timeLabels has an entry for a subject, those labels choose and order the
// subject's scans instead of the folder order. A label with no matching scan
// folder fails the whole call with ErrMissingTimeLabel.
func (s *Selector) AllUpToLimit(limit int, allow AllowList, timeLabels map[string][]string) (Temporal, error) {
	if limit < 1 {
		return Temporal{}, fmt.Errorf("limit must be >= 1, got %d", limit)
	}

	groups, skipped, err := s.Groups()
	if err != nil {
		return Temporal{}, err
	}

	out := Temporal{
		BySubject: make(map[string][]Loaded),
		Skipped:   skipped,
	}

	for _, group := range groups {
		if !allow.Allows(group.Subject) {
			continue
		}

		candidates := group.Scans
		if labels, ok := timeLabels[group.Subject]; ok {
			candidates, err = orderByTimeLabel(group, labels)
			if err != nil {
				return out, err
			}
		}

		scans := make([]Loaded, 0, limit)
		for _, entry := range candidates {
			if len(scans) == limit {
				break
			}

			loaded, ok, err := s.load(entry, nil, s.CorrcoefPath(entry), &out.Skipped)
			if err != nil {
				return out, err
			} else if ok {
				scans = append(scans, loaded)
			}
		}

		if len(scans) < limit {
			s.logger().Printf("Subject %s has %d of %d required scans; excluding\n", group.Subject, len(scans), limit)
			continue
		}

		out.BySubject[group.Subject] = scans
	}

	return out, nil
}

func orderByTimeLabel(group SubjectGroup, labels []string) ([]ScanEntry, error) {
	byLabel := make(map[string]ScanEntry, len(group.Scans))
	for _, entry := range group.Scans {
		byLabel[entry.TimeLabel] = entry
	}

	out := make([]ScanEntry, 0, len(labels))
	for _, label := range labels {
		entry, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("%w: subject %s, label %q", ErrMissingTimeLabel, group.Subject, label)
		}
		out = append(out, entry)
	}

	return out, nil
}
