package nonrigid

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// madScale converts a median absolute deviation into a standard deviation
// estimate for normally distributed data.
const madScale = 1.4826

// Dists is a vector of per-pair distances together with its summary statistics.
type Dists struct {
	Values []float64 `json:"-"`
	Mean   float64   `json:"mean"`
	Median float64   `json:"median"`
	Std    float64   `json:"std"`
	StdMAD float64   `json:"std_mad"`
}

// NewDists computes the summary statistics of values. Std is the sample
// standard deviation (n-1 denominator) and is zero for a single value. The
// median of an even-length vector is the upper of the two middle values, and
// the median absolute deviation follows the same convention.
func NewDists(values []float64) (Dists, error) {
	if len(values) == 0 {
		return Dists{}, fmt.Errorf("computing distance statistics: %w", ErrEmptyResult)
	}

	d := Dists{Values: values}
	d.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		d.Std = stat.StdDev(values, nil)
	}
	d.Median = median(values)

	dev := make([]float64, len(values))
	for i, v := range values {
		dev[i] = math.Abs(v - d.Median)
	}
	d.StdMAD = madScale * median(dev)
	return d, nil
}

// median returns the element at rank n/2 of the sorted values without
// modifying values.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

// Len returns the number of distances.
func (d Dists) Len() int { return len(d.Values) }
