package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/nanopore_analyzer_go/internal/features"
	"github.com/user/nanopore_analyzer_go/internal/matfile"
)

const inputCSV = `Coordinates,Events,Fits,EventFits,Levels
0,10,1,1.5;2;2.5,2
4,20,2,5;6,3
,30,3,,
,5,4,,
,9,5,,
,1,6,,
`

func TestRunCSVToCSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "events.csv")
	out := filepath.Join(dir, "features.csv")
	require.NoError(t, os.WriteFile(in, []byte(inputCSV), 0o644))

	app := NewApp(Options{InputPath: in, OutputPath: out, RangeMin: 0, RangeMax: 255})
	require.NoError(t, app.Run())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	// dwell [3,2], mean [2,5.5], height [20,8], levels [2,3], min-maxed
	// over two events: each column becomes {0,255} in some order.
	require.Equal(t, "dwell_time,mean,height,num_levels\n255,0,255,0\n0,255,0,255\n", string(raw))
}

func TestRunCSVToMAT(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "events.csv")
	out := filepath.Join(dir, "features.mat")
	require.NoError(t, os.WriteFile(in, []byte(inputCSV), 0o644))

	app := NewApp(Options{InputPath: in, OutputPath: out, RangeMin: 0, RangeMax: 255})
	require.NoError(t, app.Run())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	mat, err := matfile.Read(f)
	require.NoError(t, err)

	dwell, ok := mat.Lookup("dwell_time")
	require.True(t, ok)
	require.Equal(t, []float64{255, 0}, dwell.Data)

	mean, ok := mat.Lookup("mean")
	require.True(t, ok)
	require.Equal(t, []float64{0, 255}, mean.Data)
}

func TestRunRejectsEmptyRange(t *testing.T) {
	app := NewApp(Options{InputPath: "in.csv", OutputPath: "out.csv", RangeMin: 255, RangeMax: 0})
	require.Error(t, app.Run())
}

func TestRunPropagatesLoadFailure(t *testing.T) {
	dir := t.TempDir()
	app := NewApp(Options{
		InputPath:  filepath.Join(dir, "missing.csv"),
		OutputPath: filepath.Join(dir, "out.csv"),
		RangeMin:   features.DefaultRangeMin,
		RangeMax:   features.DefaultRangeMax,
	})
	require.Error(t, app.Run())
}

func TestRunWithReport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "events.csv")
	out := filepath.Join(dir, "features.csv")
	pdf := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(in, []byte(inputCSV), 0o644))

	app := NewApp(Options{InputPath: in, OutputPath: out, ReportPath: pdf, RangeMin: 0, RangeMax: 255})
	require.NoError(t, app.Run())

	info, err := os.Stat(pdf)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}
