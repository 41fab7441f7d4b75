package connectome

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// LocalFS returns the host filesystem together with path expanded and made
// absolute, ready to be handed to the billy based loaders and selectors.
func LocalFS(path string) (billy.Filesystem, string, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return nil, "", err
	}

	return osfs.New("/"), abs, nil
}
