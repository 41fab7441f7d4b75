package scan

// All loads the whole-scan matrix of every scan folder. When include is
// non-nil only folders whose full name it contains are loaded.
func (s *Selector) All(include AllowList) (Selection, error) {
	entries, skipped, err := s.scans()
	if err != nil {
		return Selection{}, err
	}

	out := Selection{Skipped: skipped}
	for _, entry := range entries {
		if !include.Allows(entry.Name) {
			continue
		}

		loaded, ok, err := s.load(entry, nil, s.CorrcoefPath(entry), &out.Skipped)
		if err != nil {
			return out, err
		} else if ok {
			out.Loaded = append(out.Loaded, loaded)
		}
	}

	return out, nil
}
