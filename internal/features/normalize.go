package features

import "gonum.org/v1/gonum/floats"

// Default normalization range.
const (
	DefaultRangeMin = 0
	DefaultRangeMax = 255
)

// Normalize min-max rescales each feature array independently so its
// minimum maps to smin and its maximum to smax. A constant array has
// no spread to rescale; every element maps to smin.
func (fs *FeatureSet) Normalize(smin, smax float64) {
	for _, col := range fs.Columns() {
		normalize(col, smin, smax)
	}
}

func normalize(xs []float64, smin, smax float64) {
	if len(xs) == 0 {
		return
	}
	lo := floats.Min(xs)
	hi := floats.Max(xs)
	if hi == lo {
		for i := range xs {
			xs[i] = smin
		}
		return
	}
	span := smax - smin
	for i := range xs {
		xs[i] = (xs[i]-lo)/(hi-lo)*span + smin
	}
}
