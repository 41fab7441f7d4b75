package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/connectome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func writeNet(t *testing.T, path string, v float64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	body := fmt.Sprintf("1\t%f\n%f\t1", v, v)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func layout(t *testing.T) string {
	root := t.TempDir()
	for i, name := range []string{"A_1", "A_2", "B_1"} {
		dir := filepath.Join(root, name, "aal", "bold_net")
		writeNet(t, filepath.Join(dir, "corrcoef.csv"), float64(i+1)/10)
		writeNet(t, filepath.Join(dir, "0-9.csv"), 0.5)
		writeNet(t, filepath.Join(dir, "10-19.csv"), 0.7)
	}
	return root
}

func TestRunOrdinalWithMean(t *testing.T) {
	root := layout(t)
	out := filepath.Join(t.TempDir(), "manifest.csv")
	meanPath := filepath.Join(t.TempDir(), "mean.csv")

	require.NoError(t, run(options{
		Root:       root,
		Atlas:      "aal",
		Mode:       "ordinal",
		Ordinal:    1,
		Output:     out,
		MeanOutput: meanPath,
	}, nil, rand.New(rand.NewSource(1))))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "subject,time_label,scan,window,file", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "A,1,A_1,,"))
	assert.True(t, strings.HasPrefix(lines[2], "B,1,B_1,,"))

	fs, abs, err := connectome.LocalFS(meanPath)
	require.NoError(t, err)
	mean, err := connectome.LoadMatrixFile(fs, abs)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, mean.At(0, 1), 1e-6)
	assert.True(t, mat.EqualApprox(mean, mean.T(), 1e-12))
}

func TestRunRandom(t *testing.T) {
	out := filepath.Join(t.TempDir(), "manifest.csv")

	require.NoError(t, run(options{
		Root:   layout(t),
		Atlas:  "aal",
		Mode:   "random",
		N:      4,
		Output: out,
	}, nil, rand.New(rand.NewSource(7))))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, lines, 5)
}

func TestRunTemporalWithLabels(t *testing.T) {
	dir := t.TempDir()
	labels := filepath.Join(dir, "labels.txt")
	require.NoError(t, os.WriteFile(labels, []byte("A 2 1\n"), 0644))
	out := filepath.Join(dir, "manifest.csv")

	require.NoError(t, run(options{
		Root:       layout(t),
		Atlas:      "aal",
		Mode:       "temporal",
		Limit:      2,
		TimeLabels: labels,
		Output:     out,
	}, nil, rand.New(rand.NewSource(1))))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "A,2,A_2,,"))
	assert.True(t, strings.HasPrefix(lines[2], "A,1,A_1,,"))
}

func TestRunUnknownMode(t *testing.T) {
	err := run(options{Root: layout(t), Atlas: "aal", Mode: "everything"}, nil, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}
