package matfile

import "fmt"

// MAT-file level 5 element data types.
const (
	miINT8       = 1
	miUINT8      = 2
	miINT16      = 3
	miUINT16     = 4
	miINT32      = 5
	miUINT32     = 6
	miSINGLE     = 7
	miDOUBLE     = 9
	miINT64      = 12
	miUINT64     = 13
	miMATRIX     = 14
	miCOMPRESSED = 15
	miUTF8       = 16
)

// Class identifies the MATLAB array class of a parsed element.
type Class uint8

const (
	ClassCell   Class = 1
	ClassStruct Class = 2
	ClassObject Class = 3
	ClassChar   Class = 4
	ClassSparse Class = 5
	ClassDouble Class = 6
	ClassSingle Class = 7
	ClassInt8   Class = 8
	ClassUint8  Class = 9
	ClassInt16  Class = 10
	ClassUint16 Class = 11
	ClassInt32  Class = 12
	ClassUint32 Class = 13
)

func (c Class) String() string {
	switch c {
	case ClassCell:
		return "cell"
	case ClassStruct:
		return "struct"
	case ClassChar:
		return "char"
	case ClassDouble:
		return "double"
	case ClassSingle:
		return "single"
	case ClassInt8, ClassUint8, ClassInt16, ClassUint16, ClassInt32, ClassUint32:
		return "integer"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Array is one MATLAB array. Numeric classes carry Data (widened to
// float64, column-major), cells carry Cells, scalar structs carry
// Fields plus FieldOrder for deterministic writing.
type Array struct {
	Name       string
	Class      Class
	Dims       []int
	Data       []float64
	Cells      []*Array
	Fields     map[string]*Array
	FieldOrder []string
}

// NumElements returns the product of the array dimensions.
func (a *Array) NumElements() int {
	n := 1
	for _, d := range a.Dims {
		n *= d
	}
	return n
}

// NewRow builds a 1xN double array.
func NewRow(name string, data []float64) *Array {
	return &Array{
		Name:  name,
		Class: ClassDouble,
		Dims:  []int{1, len(data)},
		Data:  data,
	}
}

// NewCellRow builds a 1xN cell array over the given elements.
func NewCellRow(name string, cells []*Array) *Array {
	return &Array{
		Name:  name,
		Class: ClassCell,
		Dims:  []int{1, len(cells)},
		Cells: cells,
	}
}

// NewStruct builds a 1x1 struct array. Field order follows the order
// of the names slice; each value keeps its map key as field name.
func NewStruct(name string, order []string, fields map[string]*Array) *Array {
	return &Array{
		Name:       name,
		Class:      ClassStruct,
		Dims:       []int{1, 1},
		Fields:     fields,
		FieldOrder: order,
	}
}

// File is the parsed top-level content of a MAT-file, in file order.
type File struct {
	Arrays []*Array
}

// Lookup returns the top-level array with the given name.
func (f *File) Lookup(name string) (*Array, bool) {
	for _, a := range f.Arrays {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}
