package scan

import (
	"fmt"
	"path"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSubwindows fills scan's bold_net with n windows of length 10 plus the
// reserved whole-scan files.
func writeSubwindows(t *testing.T, fs billy.Filesystem, scan string, n int) {
	t.Helper()
	dir := "bold/" + scan + "/" + testAtlas + "/bold_net/"
	writeMatrix(t, fs, dir+CorrcoefFile, 0.9)
	require.NoError(t, util.WriteFile(fs, dir+TimeseriesFile, []byte("1,2,3\n4,5,6\n"), 0644))
	require.NoError(t, util.WriteFile(fs, dir+"notes.txt", []byte("qc ok"), 0644))
	for i := 0; i < n; i++ {
		writeMatrix(t, fs, fmt.Sprintf("%s%d-%d.csv", dir, i*10, i*10+9), float64(i)/10)
	}
}

func countByScan(sel Selection) map[string]int {
	out := make(map[string]int)
	for _, v := range sel.Loaded {
		out[v.Scan.Name]++
	}
	return out
}

func TestRandomSubwindowsEvenCoverage(t *testing.T) {
	fs := memfs.New()
	writeSubwindows(t, fs, "A_1", 3)
	writeSubwindows(t, fs, "B_1", 2)
	writeSubwindows(t, fs, "C_1", 1)

	sel, err := newTestSelector(fs).RandomSubwindows(5, nil)
	require.NoError(t, err)
	require.Len(t, sel.Loaded, 5)

	// The first pass draws once from every scan, the second from the two
	// scans that still have windows left.
	assert.Equal(t, map[string]int{"A_1": 2, "B_1": 2, "C_1": 1}, countByScan(sel))

	seen := make(map[string]struct{})
	for _, v := range sel.Loaded {
		require.NotNil(t, v.Window)
		assert.NotContains(t, seen, v.File, "sub-window drawn twice")
		seen[v.File] = struct{}{}
	}
}

func TestRandomSubwindowsTruncatesLastPass(t *testing.T) {
	fs := memfs.New()
	writeSubwindows(t, fs, "A_1", 4)
	writeSubwindows(t, fs, "B_1", 4)
	writeSubwindows(t, fs, "C_1", 4)

	for seed := int64(0); seed < 20; seed++ {
		s := newTestSelector(fs)
		s.Rand.Seed(seed)

		sel, err := s.RandomSubwindows(8, nil)
		require.NoError(t, err)
		require.Len(t, sel.Loaded, 8)

		for scan, n := range countByScan(sel) {
			assert.True(t, n == 2 || n == 3, "scan %s drew %d windows", scan, n)
		}
	}
}

func TestRandomSubwindowsNeverDrawsReservedFiles(t *testing.T) {
	fs := memfs.New()
	writeSubwindows(t, fs, "A_1", 2)

	sel, err := newTestSelector(fs).RandomSubwindows(2, nil)
	require.NoError(t, err)
	for _, v := range sel.Loaded {
		assert.NotContains(t, []string{CorrcoefFile, TimeseriesFile}, path.Base(v.File))
		assert.Contains(t, []Window{{0, 9}, {10, 19}}, *v.Window)
	}
}

func TestRandomSubwindowsAllowList(t *testing.T) {
	fs := memfs.New()
	writeSubwindows(t, fs, "A_1", 3)
	writeSubwindows(t, fs, "B_1", 3)

	sel, err := newTestSelector(fs).RandomSubwindows(3, NewAllowList("B_1"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"B_1": 3}, countByScan(sel))
}

func TestRandomSubwindowsInsufficient(t *testing.T) {
	fs := memfs.New()
	writeSubwindows(t, fs, "A_1", 2)
	require.NoError(t, fs.MkdirAll("bold/B_1", 0755))

	sel, err := newTestSelector(fs).RandomSubwindows(3, nil)
	assert.ErrorIs(t, err, ErrInsufficientSubwindows)
	assert.Empty(t, sel.Loaded)
	require.Len(t, sel.Skipped, 1)
	assert.Equal(t, "bold/B_1/"+testAtlas+"/bold_net", sel.Skipped[0].Path)
}

func TestRandomSubwindowsReproducible(t *testing.T) {
	fs := memfs.New()
	writeSubwindows(t, fs, "A_1", 5)
	writeSubwindows(t, fs, "B_1", 5)

	files := func() []string {
		s := newTestSelector(fs)
		sel, err := s.RandomSubwindows(6, nil)
		require.NoError(t, err)
		out := make([]string, 0, len(sel.Loaded))
		for _, v := range sel.Loaded {
			out = append(out, v.File)
		}
		return out
	}

	assert.Equal(t, files(), files())
}

func TestAllSubwindows(t *testing.T) {
	fs := memfs.New()
	writeSubwindows(t, fs, "A_1", 1)
	writeSubwindows(t, fs, "A_2", 12)
	writeSubwindows(t, fs, "B_1", 2)
	writeSubwindows(t, fs, "B_2", 3)
	writeSubwindows(t, fs, "C_1", 3)

	s := newTestSelector(fs)

	sel, err := s.AllSubwindows(Windowing{Length: 10, Step: 10}, 2, NewAllowList("A", "B"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A_2": 12, "B_2": 3}, countByScan(sel))

	// Numeric window order, so 100-109 follows 90-99.
	assert.Equal(t, Window{Start: 90, End: 99}, *sel.Loaded[9].Window)
	assert.Equal(t, Window{Start: 100, End: 109}, *sel.Loaded[10].Window)
	assert.InDelta(t, 1.0, sel.Loaded[10].Net.At(0, 1), 1e-9)
}

func TestAllSubwindowsIgnoresCompressedCopies(t *testing.T) {
	fs := memfs.New()
	writeSubwindows(t, fs, "A_1", 2)
	dir := "bold/A_1/" + testAtlas + "/bold_net/"
	require.NoError(t, util.WriteFile(fs, dir+"20-29.csv.gz", []byte{0x1f, 0x8b, 0x08, 0x00}, 0644))
	require.NoError(t, util.WriteFile(fs, dir+"0-9.csv.gz", []byte{0x1f, 0x8b, 0x08, 0x00}, 0644))

	sel, err := newTestSelector(fs).AllSubwindows(Windowing{Length: 10, Step: 10}, 1, nil)
	require.NoError(t, err)
	require.Len(t, sel.Loaded, 2)
	for _, v := range sel.Loaded {
		assert.Equal(t, ".csv", path.Ext(v.File))
	}
	assert.Empty(t, sel.Skipped)
}
