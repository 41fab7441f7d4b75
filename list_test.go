package connectome

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	ids, err := ParseList(strings.NewReader("  sub01\nsub02\t\n\nsub03"))
	require.NoError(t, err)
	assert.Equal(t, []string{"sub01", "sub02", "sub03"}, ids)
}

func TestReadList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subjects.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))

	ids, err := ReadList(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestReadListMissing(t *testing.T) {
	_, err := ReadList(filepath.Join(t.TempDir(), "nope.txt"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadAtlas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("Precentral_L\nPrecentral_R\n"), 0644))

	a, err := LoadAtlas("aal", path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Count())
	assert.Equal(t, "Precentral_R", a.Label(1))
	assert.Equal(t, "", a.Label(2))
}
