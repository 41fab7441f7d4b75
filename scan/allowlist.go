package scan

import (
	"cloud.google.com/go/storage"
	"github.com/carbocation/connectome"
)

// AllowList is a set of subject or scan identifiers. A nil AllowList allows
// everything; an empty, non-nil one allows nothing.
type AllowList map[string]struct{}

func NewAllowList(ids ...string) AllowList {
	out := make(AllowList, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// LoadAllowList reads a newline-delimited identifier file (local or gs://).
func LoadAllowList(path string, client *storage.Client) (AllowList, error) {
	ids, err := connectome.ReadList(path, client)
	if err != nil {
		return nil, err
	}

	return NewAllowList(ids...), nil
}

func (a AllowList) Allows(id string) bool {
	if a == nil {
		return true
	}
	_, ok := a[id]
	return ok
}
