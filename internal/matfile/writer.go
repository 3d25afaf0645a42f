package matfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const headerText = "MATLAB 5.0 MAT-file, Created by: nanopore_analyzer"

// structFieldNameLen matches the fixed 32-byte field-name slots MATLAB
// itself writes.
const structFieldNameLen = 32

// Write serializes the file's arrays as an uncompressed little-endian
// MAT-file level 5 stream. Numeric arrays are written as miDOUBLE
// regardless of their class on read.
func Write(w io.Writer, f *File) error {
	bw := bufio.NewWriter(w)

	hdr := make([]byte, headerSize)
	for i := range hdr[:116] {
		hdr[i] = ' '
	}
	copy(hdr, headerText)
	binary.LittleEndian.PutUint16(hdr[124:126], 0x0100)
	copy(hdr[126:128], "IM")
	if _, err := bw.Write(hdr); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for _, arr := range f.Arrays {
		payload, err := encodeMatrix(arr)
		if err != nil {
			return err
		}
		if err := writeElement(bw, miMATRIX, payload); err != nil {
			return fmt.Errorf("error writing array %q: %w", arr.Name, err)
		}
	}

	return bw.Flush()
}

// writeElement emits a full-form tag, the payload and zero padding up
// to the next 8-byte boundary.
func writeElement(w io.Writer, typ uint32, data []byte) error {
	var tag [8]byte
	binary.LittleEndian.PutUint32(tag[0:4], typ)
	binary.LittleEndian.PutUint32(tag[4:8], uint32(len(data)))
	if _, err := w.Write(tag[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if pad := (8 - len(data)%8) % 8; pad > 0 {
		if _, err := w.Write(make([]byte, pad)); err != nil {
			return err
		}
	}
	return nil
}

func encodeMatrix(arr *Array) ([]byte, error) {
	buf := &bytes.Buffer{}

	class := arr.Class
	switch class {
	case ClassCell, ClassStruct:
	default:
		class = ClassDouble
	}

	flags := make([]byte, 8)
	binary.LittleEndian.PutUint32(flags[0:4], uint32(class))
	if err := writeElement(buf, miUINT32, flags); err != nil {
		return nil, err
	}

	dims := arr.Dims
	if len(dims) == 0 {
		dims = defaultDims(arr)
	}
	dimBytes := make([]byte, 4*len(dims))
	for i, d := range dims {
		binary.LittleEndian.PutUint32(dimBytes[i*4:i*4+4], uint32(int32(d)))
	}
	if err := writeElement(buf, miINT32, dimBytes); err != nil {
		return nil, err
	}

	if err := writeElement(buf, miINT8, []byte(arr.Name)); err != nil {
		return nil, err
	}

	switch class {
	case ClassDouble:
		real := make([]byte, 8*len(arr.Data))
		for i, v := range arr.Data {
			binary.LittleEndian.PutUint64(real[i*8:i*8+8], math.Float64bits(v))
		}
		if err := writeElement(buf, miDOUBLE, real); err != nil {
			return nil, err
		}
	case ClassCell:
		for i, cell := range arr.Cells {
			payload, err := encodeMatrix(cell)
			if err != nil {
				return nil, fmt.Errorf("cell %d of %q: %w", i, arr.Name, err)
			}
			if err := writeElement(buf, miMATRIX, payload); err != nil {
				return nil, err
			}
		}
	case ClassStruct:
		if err := encodeStructFields(buf, arr); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func encodeStructFields(buf *bytes.Buffer, arr *Array) error {
	lenBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBytes, structFieldNameLen)
	if err := writeElement(buf, miINT32, lenBytes); err != nil {
		return err
	}

	names := make([]byte, structFieldNameLen*len(arr.FieldOrder))
	for i, name := range arr.FieldOrder {
		if len(name) >= structFieldNameLen {
			return fmt.Errorf("field name %q of %q exceeds %d bytes", name, arr.Name, structFieldNameLen-1)
		}
		copy(names[i*structFieldNameLen:], name)
	}
	if err := writeElement(buf, miINT8, names); err != nil {
		return err
	}

	for _, name := range arr.FieldOrder {
		field, ok := arr.Fields[name]
		if !ok {
			return fmt.Errorf("struct %q is missing field %q", arr.Name, name)
		}
		// Field names live in the name table, not on the element.
		clone := *field
		clone.Name = ""
		payload, err := encodeMatrix(&clone)
		if err != nil {
			return fmt.Errorf("field %q of %q: %w", name, arr.Name, err)
		}
		if err := writeElement(buf, miMATRIX, payload); err != nil {
			return err
		}
	}
	return nil
}

func defaultDims(arr *Array) []int {
	switch arr.Class {
	case ClassCell:
		return []int{1, len(arr.Cells)}
	case ClassStruct:
		return []int{1, 1}
	default:
		return []int{1, len(arr.Data)}
	}
}
