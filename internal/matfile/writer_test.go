package matfile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/nanopore_analyzer_go/internal/matfile"
)

func TestRoundTripNumeric(t *testing.T) {
	in := &matfile.File{
		Arrays: []*matfile.Array{
			matfile.NewRow("dwell_time", []float64{3, 2, 7}),
			matfile.NewRow("mean", []float64{2.5, -1.25, 0}),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, matfile.Write(&buf, in))

	out, err := matfile.Read(&buf)
	require.NoError(t, err)
	require.Len(t, out.Arrays, 2)

	dwell, ok := out.Lookup("dwell_time")
	require.True(t, ok)
	require.Equal(t, matfile.ClassDouble, dwell.Class)
	require.Equal(t, []int{1, 3}, dwell.Dims)
	require.Equal(t, []float64{3, 2, 7}, dwell.Data)

	mean, ok := out.Lookup("mean")
	require.True(t, ok)
	require.Equal(t, []float64{2.5, -1.25, 0}, mean.Data)
}

func TestRoundTripCellAndStruct(t *testing.T) {
	levelFits := matfile.NewCellRow("", []*matfile.Array{
		matfile.NewRow("", []float64{1.5, 2, 2.5}),
		matfile.NewRow("", []float64{5, 6}),
	})
	coords := matfile.NewCellRow("", []*matfile.Array{
		matfile.NewRow("", []float64{0}),
		matfile.NewRow("", []float64{4}),
	})

	db := matfile.NewStruct("EventDatabase",
		[]string{"ConcatenatedStartCoordinates", "AllLevelFits", "NumberOfLevels"},
		map[string]*matfile.Array{
			"ConcatenatedStartCoordinates": coords,
			"AllLevelFits":                 levelFits,
			"NumberOfLevels":               matfile.NewRow("NumberOfLevels", []float64{2, 3}),
		})

	var buf bytes.Buffer
	require.NoError(t, matfile.Write(&buf, &matfile.File{Arrays: []*matfile.Array{db}}))

	out, err := matfile.Read(&buf)
	require.NoError(t, err)

	got, ok := out.Lookup("EventDatabase")
	require.True(t, ok)
	require.Equal(t, matfile.ClassStruct, got.Class)
	require.Equal(t,
		[]string{"ConcatenatedStartCoordinates", "AllLevelFits", "NumberOfLevels"},
		got.FieldOrder)

	crd := got.Fields["ConcatenatedStartCoordinates"]
	require.NotNil(t, crd)
	require.Equal(t, matfile.ClassCell, crd.Class)
	require.Len(t, crd.Cells, 2)
	require.Equal(t, []float64{0}, crd.Cells[0].Data)
	require.Equal(t, []float64{4}, crd.Cells[1].Data)

	fits := got.Fields["AllLevelFits"]
	require.NotNil(t, fits)
	require.Equal(t, []float64{1.5, 2, 2.5}, fits.Cells[0].Data)
	require.Equal(t, []float64{5, 6}, fits.Cells[1].Data)

	lvl := got.Fields["NumberOfLevels"]
	require.NotNil(t, lvl)
	require.Equal(t, []float64{2, 3}, lvl.Data)
}

func TestWriteLongFieldName(t *testing.T) {
	db := matfile.NewStruct("DB",
		[]string{"ThisFieldNameIsFarTooLongToFitInTheFixedWidthSlot"},
		map[string]*matfile.Array{
			"ThisFieldNameIsFarTooLongToFitInTheFixedWidthSlot": matfile.NewRow("", []float64{1}),
		})

	var buf bytes.Buffer
	err := matfile.Write(&buf, &matfile.File{Arrays: []*matfile.Array{db}})
	require.Error(t, err)
}
