package connectome

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var ErrShape = errors.New("connectome: matrix shape does not fit atlas")

// Net is a symmetric connectivity matrix over the regions of an Atlas.
type Net struct {
	Data  *mat.Dense
	Atlas *Atlas
}

// NewNet checks that data is square and, for labeled atlases, that its
// dimension matches the atlas.
func NewNet(data *mat.Dense, atlas *Atlas) (*Net, error) {
	r, c := data.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d is not square", ErrShape, r, c)
	}
	if n := atlas.Count(); n > 0 && n != r {
		return nil, fmt.Errorf("%w: %dx%d matrix, atlas %q has %d regions", ErrShape, r, c, atlas.Name, n)
	}

	return &Net{Data: data, Atlas: atlas}, nil
}

// Size is the number of regions (rows) in the net.
func (n *Net) Size() int {
	r, _ := n.Data.Dims()
	return r
}

func (n *Net) At(i, j int) float64 {
	return n.Data.At(i, j)
}

// Row returns a copy of row i.
func (n *Net) Row(i int) []float64 {
	return mat.Row(nil, i, n.Data)
}
