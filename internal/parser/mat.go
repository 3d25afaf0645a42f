package parser

import (
	"fmt"
	"os"

	"github.com/user/nanopore_analyzer_go/internal/matfile"
)

func loadMAT(path string) (EventRecords, error) {
	f, err := os.Open(path)
	if err != nil {
		return EventRecords{}, err
	}
	defer f.Close()

	mat, err := matfile.Read(f)
	if err != nil {
		return EventRecords{}, err
	}

	ev, err := numericVar(mat, KeyEvents)
	if err != nil {
		return EventRecords{}, err
	}
	fits, err := numericVar(mat, KeyFits)
	if err != nil {
		return EventRecords{}, err
	}

	db, ok := mat.Lookup(KeyEventDatabase)
	if !ok {
		return EventRecords{}, fmt.Errorf("missing key %q", KeyEventDatabase)
	}
	if db.Class != matfile.ClassStruct {
		return EventRecords{}, fmt.Errorf("key %q is %s, expected a struct", KeyEventDatabase, db.Class)
	}

	crd, err := structField(db, KeyStartCoords)
	if err != nil {
		return EventRecords{}, err
	}
	coord, err := ExtractCoordinates(crd)
	if err != nil {
		return EventRecords{}, err
	}

	levelFits, err := structField(db, KeyLevelFits)
	if err != nil {
		return EventRecords{}, err
	}
	evfit, err := extractLevelFits(levelFits)
	if err != nil {
		return EventRecords{}, err
	}

	numLevels, err := structField(db, KeyNumLevels)
	if err != nil {
		return EventRecords{}, err
	}
	if numLevels.Class == matfile.ClassCell {
		return EventRecords{}, fmt.Errorf("field %q must be numeric", KeyNumLevels)
	}

	return EventRecords{
		Coordinates: coord,
		Events:      ev,
		Fits:        fits,
		EventFits:   evfit,
		Levels:      numLevels.Data,
	}, nil
}

func numericVar(mat *matfile.File, key string) ([]float64, error) {
	arr, ok := mat.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("missing key %q", key)
	}
	if arr.Data == nil {
		return nil, fmt.Errorf("key %q is %s, expected a numeric array", key, arr.Class)
	}
	return arr.Data, nil
}

func structField(db *matfile.Array, name string) (*matfile.Array, error) {
	field, ok := db.Fields[name]
	if !ok {
		return nil, fmt.Errorf("struct %q is missing field %q", db.Name, name)
	}
	return field, nil
}

// ExtractCoordinates flattens the nested start-coordinate storage of
// matrix-format files into one scalar per event. Each nested entry
// must hold exactly one value. Plain numeric storage is accepted
// as-is, since it is already flat.
func ExtractCoordinates(crd *matfile.Array) ([]float64, error) {
	if crd.Class != matfile.ClassCell {
		if crd.Data == nil {
			return nil, fmt.Errorf("field %q is %s, expected nested or numeric coordinates", crd.Name, crd.Class)
		}
		return crd.Data, nil
	}

	coord := make([]float64, len(crd.Cells))
	for i, cell := range crd.Cells {
		if len(cell.Data) != 1 {
			return nil, fmt.Errorf("coordinate %d holds %d values, expected exactly one scalar", i, len(cell.Data))
		}
		coord[i] = cell.Data[0]
	}
	return coord, nil
}

// extractLevelFits unpacks the per-event level-fit cell array into a
// ragged slice, one sub-slice per event.
func extractLevelFits(arr *matfile.Array) ([][]float64, error) {
	if arr.Class != matfile.ClassCell {
		return nil, fmt.Errorf("field %q is %s, expected a cell array", arr.Name, arr.Class)
	}
	evfit := make([][]float64, len(arr.Cells))
	for i, cell := range arr.Cells {
		if cell.Data == nil {
			return nil, fmt.Errorf("level fits for event %d are %s, expected numeric", i, cell.Class)
		}
		evfit[i] = cell.Data
	}
	return evfit, nil
}
