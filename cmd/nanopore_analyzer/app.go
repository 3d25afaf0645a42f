package main

import (
	"fmt"
	"log"

	"github.com/user/nanopore_analyzer_go/internal/features"
	"github.com/user/nanopore_analyzer_go/internal/parser"
	"github.com/user/nanopore_analyzer_go/internal/report"
	"github.com/user/nanopore_analyzer_go/internal/writer"
)

// Options configures one extraction run. Input and output paths are
// explicit; nothing depends on the process working directory.
type Options struct {
	InputPath  string
	OutputPath string
	ReportPath string
	RangeMin   float64
	RangeMax   float64
}

// App drives one input file through load, feature computation,
// normalization and save. Every failure propagates unchanged.
type App struct {
	opts Options
}

func NewApp(opts Options) *App {
	return &App{opts: opts}
}

func (a *App) Run() error {
	if a.opts.RangeMax <= a.opts.RangeMin {
		return fmt.Errorf("normalization range [%g, %g] is empty", a.opts.RangeMin, a.opts.RangeMax)
	}

	log.Printf("Loading: %s", a.opts.InputPath)
	ds, err := parser.Load(a.opts.InputPath)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d events (%s format, %d signal samples)",
		ds.Records.NumEvents(), ds.Source, len(ds.Records.Events))

	fs, err := features.Compute(&ds.Records)
	if err != nil {
		return err
	}

	fs.Normalize(a.opts.RangeMin, a.opts.RangeMax)

	if err := writer.Save(a.opts.OutputPath, fs); err != nil {
		return err
	}

	if a.opts.ReportPath != "" {
		if err := a.writeReport(fs); err != nil {
			return err
		}
		log.Printf("Report saved to %s", a.opts.ReportPath)
	}

	fmt.Printf("Features saved to %s\n", a.opts.OutputPath)
	return nil
}

func (a *App) writeReport(fs *features.FeatureSet) error {
	plots := make(map[string][]byte, len(features.ColumnNames))
	for i, col := range fs.Columns() {
		name := features.ColumnNames[i]
		img, err := report.CreateHistogram(col, name)
		if err != nil {
			return fmt.Errorf("error plotting %s: %w", name, err)
		}
		plots[name] = img
	}
	return report.BuildPDFReport(a.opts.ReportPath, fs.Summary(), fs.NumEvents(),
		a.opts.RangeMin, a.opts.RangeMax, plots)
}
