package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/user/nanopore_analyzer_go/internal/features"
	"github.com/user/nanopore_analyzer_go/internal/format"
	"github.com/user/nanopore_analyzer_go/internal/matfile"
)

// Save writes the feature arrays to a .mat or .csv file, columns in
// ColumnNames order. Unsupported extensions fail before any file is
// created.
func Save(path string, fs *features.FeatureSet) error {
	f, err := format.Detect(path)
	if err != nil {
		return err
	}

	switch f {
	case format.MAT:
		return saveMAT(path, fs)
	default:
		return saveCSV(path, fs)
	}
}

func saveMAT(path string, fs *features.FeatureSet) error {
	file := &matfile.File{}
	for i, col := range fs.Columns() {
		file.Arrays = append(file.Arrays, matfile.NewRow(features.ColumnNames[i], col))
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer out.Close()

	if err := matfile.Write(out, file); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return out.Close()
}

func saveCSV(path string, fs *features.FeatureSet) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(features.ColumnNames); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	cols := fs.Columns()
	row := make([]string, len(cols))
	for i := 0; i < fs.NumEvents(); i++ {
		for j, col := range cols {
			row[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("error writing %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return out.Close()
}
