package parser

import (
	"fmt"

	"github.com/user/nanopore_analyzer_go/internal/format"
)

// Column names required in tabular input files.
const (
	ColCoordinates = "Coordinates"
	ColEvents      = "Events"
	ColFits        = "Fits"
	ColEventFits   = "EventFits"
	ColLevels      = "Levels"
)

// Keys expected in matrix-format input files.
const (
	KeyEventDatabase = "EventDatabase"
	KeyStartCoords   = "ConcatenatedStartCoordinates"
	KeyEvents        = "ConcatenatedEvents"
	KeyFits          = "ConcatenatedFits"
	KeyLevelFits     = "AllLevelFits"
	KeyNumLevels     = "NumberOfLevels"
)

// EventRecords holds the five parallel arrays of one event database,
// validated once at load time. Coordinates, EventFits and Levels are
// indexed by event; Events and Fits share one concatenated sample
// index space spanning all events.
type EventRecords struct {
	Coordinates []float64
	Events      []float64
	Fits        []float64
	EventFits   [][]float64
	Levels      []float64
}

// NumEvents returns the event count.
func (r *EventRecords) NumEvents() int {
	return len(r.Coordinates)
}

func (r *EventRecords) validate() error {
	n := len(r.Coordinates)
	if len(r.EventFits) != n || len(r.Levels) != n {
		return fmt.Errorf("per-event arrays disagree: %d coordinates, %d event fits, %d level counts",
			n, len(r.EventFits), len(r.Levels))
	}
	if len(r.Events) != len(r.Fits) {
		return fmt.Errorf("signal arrays disagree: %d events samples, %d fits samples",
			len(r.Events), len(r.Fits))
	}
	return nil
}

// Dataset tags validated event records with the format they came from.
type Dataset struct {
	Records EventRecords
	Source  format.Format
}

// LoadError wraps a failure while reading or validating an input file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
