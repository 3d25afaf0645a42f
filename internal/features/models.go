package features

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnNames is the fixed output column order.
var ColumnNames = []string{"dwell_time", "mean", "height", "num_levels"}

// FeatureSet holds the four derived feature arrays, one entry per
// event, in event order.
type FeatureSet struct {
	DwellTime []float64
	Mean      []float64
	Height    []float64
	NumLevels []float64
}

// NumEvents returns the number of events the features describe.
func (fs *FeatureSet) NumEvents() int {
	return len(fs.DwellTime)
}

// Columns returns the feature arrays in ColumnNames order. The slices
// alias the set's storage, so callers may rescale them in place.
func (fs *FeatureSet) Columns() [][]float64 {
	return [][]float64{fs.DwellTime, fs.Mean, fs.Height, fs.NumLevels}
}

// ColumnStats summarizes one feature array for reporting.
type ColumnStats struct {
	Name   string
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summary computes per-feature summary statistics in column order.
func (fs *FeatureSet) Summary() []ColumnStats {
	cols := fs.Columns()
	out := make([]ColumnStats, len(cols))
	for i, col := range cols {
		s := ColumnStats{Name: ColumnNames[i]}
		if len(col) > 0 {
			s.Min = floats.Min(col)
			s.Max = floats.Max(col)
			s.Mean = stat.Mean(col, nil)
		}
		if len(col) > 1 {
			s.StdDev = stat.StdDev(col, nil)
		}
		out[i] = s
	}
	return out
}
