package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyInput is returned when a quantile is requested over an empty distribution.
var ErrEmptyInput = errors.New("stats: empty input distribution")

// QuantileBreaks holds the values at the {0, .25, .5, .75, 1} quantiles of a
// distribution. Breaks are monotonically non-decreasing, with the minimum at
// index 0 and the maximum at index 4.
type QuantileBreaks [5]float64

// breakQuantiles are the quantiles the color scale is anchored at.
var breakQuantiles = [5]float64{0, 0.25, 0.5, 0.75, 1}

// Min returns the lowest break (the distribution minimum).
func (b QuantileBreaks) Min() float64 { return b[0] }

// Max returns the highest break (the distribution maximum).
func (b QuantileBreaks) Max() float64 { return b[4] }

// Degenerate reports whether every break is equal, i.e. the distribution has a
// single distinct value.
func (b QuantileBreaks) Degenerate() bool {
	return b[0] == b[4]
}

// Quantile calculates the q-th quantile (0-1) of sorted values
// using linear interpolation between closest ranks.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	n := float64(len(sorted))
	index := q * (n - 1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sorted[lower]
	}

	// Linear interpolation
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Breaks computes the five quantile breaks of values. The input is not
// modified; non-finite values are ignored. Returns ErrEmptyInput when no
// finite value remains.
func Breaks(values []float64) (QuantileBreaks, error) {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sorted = append(sorted, v)
	}
	if len(sorted) == 0 {
		return QuantileBreaks{}, ErrEmptyInput
	}
	sort.Float64s(sorted)

	var breaks QuantileBreaks
	for i, q := range breakQuantiles {
		breaks[i] = Quantile(sorted, q)
	}
	return breaks, nil
}
