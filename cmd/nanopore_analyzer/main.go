package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/user/nanopore_analyzer_go/internal/features"
)

func main() {
	var opts Options
	flag.StringVar(&opts.InputPath, "in", "", "input event database (.mat or .csv)")
	flag.StringVar(&opts.OutputPath, "out", "", "output feature file (.mat or .csv)")
	flag.StringVar(&opts.ReportPath, "report", "", "optional PDF report path")
	flag.Float64Var(&opts.RangeMin, "smin", features.DefaultRangeMin, "lower bound of the normalization range")
	flag.Float64Var(&opts.RangeMax, "smax", features.DefaultRangeMax, "upper bound of the normalization range")
	flag.Parse()

	if opts.InputPath == "" || opts.OutputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: nanopore_analyzer -in <input.mat|input.csv> -out <output.mat|output.csv> [-report <report.pdf>]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := NewApp(opts).Run(); err != nil {
		log.Fatalf("nanopore_analyzer: %v", err)
	}
}
