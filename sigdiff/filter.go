package sigdiff

import (
	"errors"
	"fmt"
	"log"

	"github.com/carbocation/connectome"
)

var (
	ErrEmptyGroup    = errors.New("sigdiff: group has no nets")
	ErrShapeMismatch = errors.New("sigdiff: nets differ in size")
	ErrNoLabels      = errors.New("sigdiff: atlas has no region labels")
)

// Logger receives the discovery summary of every per-cell filter.
var Logger = log.Default()

// Cell addresses one connection, always with Row < Col.
type Cell struct {
	Row int `csv:"row"`
	Col int `csv:"col"`
}

// Report summarizes one per-cell filter run.
type Report struct {
	Significant int
	Tested      int
	Alpha       float64
}

// DiscoveryRate is the fraction of tested connections that were significant.
func (r Report) DiscoveryRate() float64 {
	if r.Tested == 0 {
		return 0
	}
	return float64(r.Significant) / float64(r.Tested)
}

func (r Report) String() string {
	return fmt.Sprintf("%d of %d connections differ (discovery rate %.4f at alpha %.4f)", r.Significant, r.Tested, r.DiscoveryRate(), r.Alpha)
}

// checkGroups returns the common region count of both groups.
func checkGroups(groupA, groupB []*connectome.Net) (int, error) {
	if len(groupA) == 0 || len(groupB) == 0 {
		return 0, ErrEmptyGroup
	}

	size := groupA[0].Size()
	for _, group := range [][]*connectome.Net{groupA, groupB} {
		for _, n := range group {
			r, c := n.Data.Dims()
			if r != size || c != size {
				return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, r, c, size, size)
			}
		}
	}

	return size, nil
}

// cellValues collects the value at (i, j) from every net in group into buf.
func cellValues(buf []float64, group []*connectome.Net, i, j int) []float64 {
	buf = buf[:0]
	for _, n := range group {
		buf = append(buf, n.At(i, j))
	}
	return buf
}

// eachUpperCell runs WelchTTest once for every connection i < j and calls fn
// with the cells whose p is below alpha.
func eachUpperCell(groupA, groupB []*connectome.Net, alpha float64, fn func(i, j int)) (Report, error) {
	size, err := checkGroups(groupA, groupB)
	if err != nil {
		return Report{}, err
	}

	report := Report{Alpha: alpha}
	bufA := make([]float64, 0, len(groupA))
	bufB := make([]float64, 0, len(groupB))
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			bufA = cellValues(bufA, groupA, i, j)
			bufB = cellValues(bufB, groupB, i, j)

			_, p := WelchTTest(bufA, bufB)
			report.Tested++
			if p < alpha {
				report.Significant++
				fn(i, j)
			}
		}
	}

	Logger.Println(report)

	return report, nil
}

// PerCellReport is PerCell that also returns the run summary.
func PerCellReport(groupA, groupB []*connectome.Net, alpha float64) ([]Cell, Report, error) {
	out := make([]Cell, 0)
	report, err := eachUpperCell(groupA, groupB, alpha, func(i, j int) {
		out = append(out, Cell{Row: i, Col: j})
	})
	if err != nil {
		return nil, report, err
	}

	return out, report, nil
}

// PerCell tests every connection of the upper triangle (the matrices are
// symmetric and the diagonal is ignored) between the nets of groupA and
// groupB, and returns the connections with p < alpha. The number found and
// the discovery rate are written to Logger.
func PerCell(groupA, groupB []*connectome.Net, alpha float64) ([]Cell, error) {
	out, _, err := PerCellReport(groupA, groupB, alpha)
	return out, err
}

// PerCellByLabel is PerCell for label-addressed datasets: connections are
// reported as "<label i>-<label j>" using the atlas of the first net in groupA.
func PerCellByLabel(groupA, groupB []*connectome.Net, alpha float64) ([]string, error) {
	if len(groupA) == 0 {
		return nil, ErrEmptyGroup
	}
	atlas := groupA[0].Atlas
	if atlas.Count() == 0 {
		return nil, ErrNoLabels
	}

	out := make([]string, 0)
	_, err := eachUpperCell(groupA, groupB, alpha, func(i, j int) {
		out = append(out, atlas.Label(i)+"-"+atlas.Label(j))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// PerRow compares each row of netA with the same row of netB. The diagonal
// entry is dropped from both rows before testing so self-connections do not
// bias the result.
func PerRow(netA, netB *connectome.Net, alpha float64) ([]bool, error) {
	size, err := checkGroups([]*connectome.Net{netA}, []*connectome.Net{netB})
	if err != nil {
		return nil, err
	}

	out := make([]bool, size)
	for i := 0; i < size; i++ {
		_, p := WelchTTest(withoutIndex(netA.Row(i), i), withoutIndex(netB.Row(i), i))
		out[i] = p < alpha
	}

	return out, nil
}

func withoutIndex(row []float64, i int) []float64 {
	return append(row[:i:i], row[i+1:]...)
}
