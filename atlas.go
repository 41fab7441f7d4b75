package connectome

import (
	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Atlas is an ordered labeling of brain regions. Name is the directory used for
// this atlas beneath each scan folder; Labels fix the row/column order of every
// Net built on it.
type Atlas struct {
	Name   string
	Labels []string
}

func NewAtlas(name string, labels []string) *Atlas {
	return &Atlas{Name: name, Labels: labels}
}

// LoadAtlas reads region labels, one per line, from labelPath (local or gs://).
func LoadAtlas(name, labelPath string, client *storage.Client) (*Atlas, error) {
	labels, err := ReadList(labelPath, client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return NewAtlas(name, labels), nil
}

// Count is the number of regions. Zero means the atlas is unlabeled and any
// square matrix is accepted.
func (a *Atlas) Count() int {
	if a == nil {
		return 0
	}
	return len(a.Labels)
}

// Label returns the label of region i, or "" when the atlas is unlabeled.
func (a *Atlas) Label(i int) string {
	if i < 0 || i >= a.Count() {
		return ""
	}
	return a.Labels[i]
}
