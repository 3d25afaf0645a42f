package parser

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Tabular files carry all five arrays as named columns in one sheet.
// Events and Fits span every data row; Coordinates, EventFits and
// Levels occupy the first n_events rows and are blank below that.
// An EventFits cell packs that event's level-fit samples separated
// by semicolons.
func loadCSV(path string) (EventRecords, error) {
	f, err := os.Open(path)
	if err != nil {
		return EventRecords{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return EventRecords{}, err
	}
	if len(rows) == 0 {
		return EventRecords{}, fmt.Errorf("empty file")
	}

	idx, err := columnIndex(rows[0])
	if err != nil {
		return EventRecords{}, err
	}

	var rec EventRecords
	for rowNum, row := range rows[1:] {
		if err := appendFloatCell(&rec.Events, row[idx[ColEvents]]); err != nil {
			return EventRecords{}, fmt.Errorf("row %d, column %s: %w", rowNum+2, ColEvents, err)
		}
		if err := appendFloatCell(&rec.Fits, row[idx[ColFits]]); err != nil {
			return EventRecords{}, fmt.Errorf("row %d, column %s: %w", rowNum+2, ColFits, err)
		}
		if err := appendFloatCell(&rec.Coordinates, row[idx[ColCoordinates]]); err != nil {
			return EventRecords{}, fmt.Errorf("row %d, column %s: %w", rowNum+2, ColCoordinates, err)
		}
		if err := appendFloatCell(&rec.Levels, row[idx[ColLevels]]); err != nil {
			return EventRecords{}, fmt.Errorf("row %d, column %s: %w", rowNum+2, ColLevels, err)
		}

		cell := strings.TrimSpace(row[idx[ColEventFits]])
		if cell == "" {
			continue
		}
		samples, err := parseEventFitsCell(cell)
		if err != nil {
			return EventRecords{}, fmt.Errorf("row %d, column %s: %w", rowNum+2, ColEventFits, err)
		}
		rec.EventFits = append(rec.EventFits, samples)
	}

	return rec, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{ColCoordinates, ColEvents, ColFits, ColEventFits, ColLevels} {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return idx, nil
}

// appendFloatCell parses one cell and appends it to the column,
// treating a blank cell as padding below the column's real length.
func appendFloatCell(col *[]float64, cell string) error {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", cell)
	}
	*col = append(*col, v)
	return nil
}

func parseEventFitsCell(cell string) ([]float64, error) {
	parts := strings.Split(cell, ";")
	samples := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid level-fit sample %q", part)
		}
		samples = append(samples, v)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples in cell %q", cell)
	}
	return samples, nil
}
