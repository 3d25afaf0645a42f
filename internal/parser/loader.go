package parser

import (
	"github.com/user/nanopore_analyzer_go/internal/format"
)

// Load reads an event database from a .mat or .csv file, validates the
// parallel-array invariants and returns the records tagged with their
// source format. Unsupported extensions fail before any I/O; reader
// failures come back as *LoadError.
func Load(path string) (*Dataset, error) {
	f, err := format.Detect(path)
	if err != nil {
		return nil, err
	}

	var rec EventRecords
	switch f {
	case format.MAT:
		rec, err = loadMAT(path)
	case format.CSV:
		rec, err = loadCSV(path)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if err := rec.validate(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return &Dataset{Records: rec, Source: f}, nil
}
