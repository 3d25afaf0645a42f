package features

import (
	"fmt"
	"math"

	"github.com/user/nanopore_analyzer_go/internal/parser"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowError reports an event whose sample window falls outside the
// concatenated signal arrays, or is empty.
type WindowError struct {
	Event     int
	Start     int
	End       int
	SignalLen int
}

func (e *WindowError) Error() string {
	if e.Start == e.End {
		return fmt.Sprintf("event %d has an empty sample window", e.Event)
	}
	return fmt.Sprintf("event %d window [%d:%d) exceeds signal length %d", e.Event, e.Start, e.End, e.SignalLen)
}

// Compute derives the four summary features for every event:
//
//	dwell_time  number of level-fit samples for the event
//	mean        arithmetic mean of Fits over the event's window
//	height      max minus min of Events over the same window
//	num_levels  the event's level count, copied through
//
// The window is the half-open range [floor(coord), floor(coord)+dwell)
// into the concatenated sample arrays.
func Compute(rec *parser.EventRecords) (*FeatureSet, error) {
	n := rec.NumEvents()
	fs := &FeatureSet{
		DwellTime: make([]float64, n),
		Mean:      make([]float64, n),
		Height:    make([]float64, n),
		NumLevels: make([]float64, n),
	}

	for i := 0; i < n; i++ {
		start := int(math.Floor(rec.Coordinates[i]))
		dwell := len(rec.EventFits[i])
		end := start + dwell

		if dwell == 0 {
			return nil, &WindowError{Event: i, Start: start, End: end, SignalLen: len(rec.Fits)}
		}
		if start < 0 || end > len(rec.Fits) || end > len(rec.Events) {
			return nil, &WindowError{Event: i, Start: start, End: end, SignalLen: len(rec.Fits)}
		}

		fs.DwellTime[i] = float64(dwell)
		fs.Mean[i] = stat.Mean(rec.Fits[start:end], nil)

		window := rec.Events[start:end]
		fs.Height[i] = floats.Max(window) - floats.Min(window)

		fs.NumLevels[i] = rec.Levels[i]
	}

	return fs, nil
}
