package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies one of the two supported file layouts.
type Format int

const (
	MAT Format = iota // MATLAB level 5 container
	CSV               // plain tabular file
)

func (f Format) String() string {
	switch f {
	case MAT:
		return "mat"
	case CSV:
		return "csv"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// UnsupportedFormatError is returned when a path's extension maps to
// neither supported format. No I/O has been attempted when it is raised.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s: use .mat or .csv", e.Ext, e.Path)
}

// Detect maps a path to its Format by extension, case-insensitively.
// It never touches the filesystem, so load and save sides can both
// reject bad paths before opening anything.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mat":
		return MAT, nil
	case ".csv":
		return CSV, nil
	default:
		return 0, &UnsupportedFormatError{Path: path, Ext: ext}
	}
}
