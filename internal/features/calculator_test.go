package features_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/nanopore_analyzer_go/internal/features"
	"github.com/user/nanopore_analyzer_go/internal/parser"
)

func twoEventRecords() parser.EventRecords {
	return parser.EventRecords{
		Coordinates: []float64{0, 4},
		Events:      []float64{10, 20, 30, 5, 9, 1},
		Fits:        []float64{1, 2, 3, 4, 5, 6},
		EventFits:   [][]float64{{1.5, 2, 2.5}, {5, 6}},
		Levels:      []float64{2, 3},
	}
}

func TestCompute(t *testing.T) {
	rec := twoEventRecords()
	fs, err := features.Compute(&rec)
	require.NoError(t, err)

	require.Equal(t, 2, fs.NumEvents())
	require.Equal(t, []float64{3, 2}, fs.DwellTime)
	require.Equal(t, []float64{2.0, 5.5}, fs.Mean)
	require.Equal(t, []float64{20, 8}, fs.Height)
	require.Equal(t, []float64{2, 3}, fs.NumLevels)
}

func TestComputeDwellMatchesLevelFitLength(t *testing.T) {
	rec := parser.EventRecords{
		Coordinates: []float64{0, 1, 4},
		Events:      []float64{1, 2, 3, 4, 5, 6, 7},
		Fits:        []float64{1, 2, 3, 4, 5, 6, 7},
		EventFits:   [][]float64{{0}, {0, 0, 0}, {0, 0, 0}},
		Levels:      []float64{1, 2, 1},
	}
	fs, err := features.Compute(&rec)
	require.NoError(t, err)

	for i, ef := range rec.EventFits {
		require.Equal(t, float64(len(ef)), fs.DwellTime[i], "event %d", i)
	}
}

func TestComputeFractionalCoordinateFloors(t *testing.T) {
	rec := twoEventRecords()
	rec.Coordinates = []float64{0.9, 4.2}

	fs, err := features.Compute(&rec)
	require.NoError(t, err)
	// floor(0.9) = 0, floor(4.2) = 4: same windows as the integer case.
	require.Equal(t, []float64{2.0, 5.5}, fs.Mean)
}

func TestComputeWindowOverflow(t *testing.T) {
	rec := twoEventRecords()
	rec.Coordinates = []float64{0, 5} // second window is [5,7), past 6 samples

	_, err := features.Compute(&rec)
	var we *features.WindowError
	require.ErrorAs(t, err, &we)
	require.Equal(t, 1, we.Event)
	require.Equal(t, 7, we.End)
}

func TestComputeEmptyWindow(t *testing.T) {
	rec := twoEventRecords()
	rec.EventFits[1] = nil

	_, err := features.Compute(&rec)
	var we *features.WindowError
	require.ErrorAs(t, err, &we)
}

func TestComputeNegativeStart(t *testing.T) {
	rec := twoEventRecords()
	rec.Coordinates = []float64{-1, 4}

	_, err := features.Compute(&rec)
	var we *features.WindowError
	require.ErrorAs(t, err, &we)
}

func TestSummary(t *testing.T) {
	fs := &features.FeatureSet{
		DwellTime: []float64{3, 2},
		Mean:      []float64{2, 6},
		Height:    []float64{20, 8},
		NumLevels: []float64{2, 3},
	}
	summary := fs.Summary()
	require.Len(t, summary, 4)
	require.Equal(t, "mean", summary[1].Name)
	require.Equal(t, 2.0, summary[1].Min)
	require.Equal(t, 6.0, summary[1].Max)
	require.Equal(t, 4.0, summary[1].Mean)
}
