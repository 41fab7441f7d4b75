package scan

import "fmt"

// ByOrdinal loads, for every allowed subject, the scan at the 1-based ordinal
// position among that subject's scans (1 is the first visit). Subjects with
// fewer scans contribute nothing.
func (s *Selector) ByOrdinal(ordinal int, allow AllowList) (Selection, error) {
	if ordinal < 1 {
		return Selection{}, fmt.Errorf("ordinal position must be >= 1, got %d", ordinal)
	}

	groups, skipped, err := s.Groups()
	if err != nil {
		return Selection{}, err
	}

	out := Selection{Skipped: skipped}
	for _, group := range groups {
		if !allow.Allows(group.Subject) || len(group.Scans) < ordinal {
			continue
		}

		entry := group.Scans[ordinal-1]
		loaded, ok, err := s.load(entry, nil, s.CorrcoefPath(entry), &out.Skipped)
		if err != nil {
			return out, err
		} else if ok {
			out.Loaded = append(out.Loaded, loaded)
		}
	}

	return out, nil
}
