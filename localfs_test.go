package connectome

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLocalFS(t *testing.T) {
	dir := t.TempDir()

	fs, abs, err := LocalFS(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	path := fs.Join(abs, "corrcoef.csv")
	require.NoError(t, SaveMatrixFile(fs, path, mat.NewDense(1, 1, []float64{0.5})))

	b, err := os.ReadFile(filepath.Join(dir, "corrcoef.csv"))
	require.NoError(t, err)
	assert.Equal(t, "0.500000", string(b))
}
