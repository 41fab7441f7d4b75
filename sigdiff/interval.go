package sigdiff

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ConfidenceInterval returns the mean of values and the Student-t interval
// around it at the given confidence (e.g. 0.95). With fewer than two values
// the bounds are NaN.
func ConfidenceInterval(values []float64, confidence float64) (mean, lower, upper float64) {
	data := stats.LoadRawData(values)

	mean, err := stats.Mean(data)
	if err != nil {
		return math.NaN(), math.NaN(), math.NaN()
	}
	if len(values) < 2 {
		return mean, math.NaN(), math.NaN()
	}

	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return mean, math.NaN(), math.NaN()
	}
	se := sd / math.Sqrt(float64(len(values)))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(len(values) - 1)}
	h := se * dist.Quantile((1+confidence)/2)

	return mean, mean - h, mean + h
}
