package sigdiff

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// WelchTTest is the two-sided unpaired t-test for samples a and b without the
// equal-variance assumption. Degrees of freedom follow Welch-Satterthwaite.
//
// Samples with fewer than two values give NaN. When both samples have zero
// variance the result is NaN for equal means and (-)Inf, 0 otherwise.
func WelchTTest(a, b []float64) (t, p float64) {
	if len(a) < 2 || len(b) < 2 {
		return math.NaN(), math.NaN()
	}

	na, nb := float64(len(a)), float64(len(b))
	ma, va := stat.MeanVariance(a, nil)
	mb, vb := stat.MeanVariance(b, nil)

	sa, sb := va/na, vb/nb
	diff := ma - mb

	if sa+sb == 0 {
		if diff == 0 {
			return math.NaN(), math.NaN()
		}
		return math.Copysign(math.Inf(1), diff), 0
	}

	t = diff / math.Sqrt(sa+sb)
	df := (sa + sb) * (sa + sb) / (sa*sa/(na-1) + sb*sb/(nb-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.CDF(-math.Abs(t))

	return t, p
}
