package matfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

const headerSize = 128

// complex flag bit inside the array-flags word.
const flagComplex = 0x08

// Read parses a MAT-file level 5 stream. Numeric, cell and 1x1 struct
// arrays are supported; compressed and complex elements are rejected.
func Read(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)

	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(br, hdr); err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	var order binary.ByteOrder
	switch string(hdr[126:128]) {
	case "IM":
		order = binary.LittleEndian
	case "MI":
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("not a level 5 MAT-file: bad endian indicator %q", hdr[126:128])
	}

	d := &decoder{r: br, order: order}

	file := &File{}
	for {
		typ, data, err := d.readElement()
		if err == io.EOF {
			return file, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error reading data element: %w", err)
		}

		switch typ {
		case miMATRIX:
			arr, err := d.parseMatrix(data)
			if err != nil {
				return nil, err
			}
			file.Arrays = append(file.Arrays, arr)
		case miCOMPRESSED:
			return nil, fmt.Errorf("compressed MAT element found: resave the file without compression")
		default:
			return nil, fmt.Errorf("unexpected top-level element type %d", typ)
		}
	}
}

type decoder struct {
	r     io.Reader
	order binary.ByteOrder
}

// readElement reads one tagged data element, handling both the normal
// and the packed small-element tag layout, and consumes the trailing
// padding so the stream stays 8-byte aligned.
func (d *decoder) readElement() (uint32, []byte, error) {
	var word [4]byte
	if _, err := io.ReadFull(d.r, word[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, nil, err
	}
	w := d.order.Uint32(word[:])

	// Small data element: the upper half of the first word carries the
	// byte count and the payload lives in the next 4 bytes.
	if w>>16 != 0 {
		n := w >> 16
		if n > 4 {
			return 0, nil, fmt.Errorf("small element with %d bytes", n)
		}
		buf := make([]byte, 4)
		if _, err := io.ReadFull(d.r, buf); err != nil {
			return 0, nil, err
		}
		return w & 0xffff, buf[:n], nil
	}

	var sizeWord [4]byte
	if _, err := io.ReadFull(d.r, sizeWord[:]); err != nil {
		return 0, nil, err
	}
	n := d.order.Uint32(sizeWord[:])

	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return 0, nil, err
	}
	if pad := (8 - n%8) % 8; pad > 0 {
		if _, err := io.CopyN(io.Discard, d.r, int64(pad)); err != nil {
			return 0, nil, err
		}
	}
	return w, buf, nil
}

// parseMatrix decodes the payload of one miMATRIX element.
func (d *decoder) parseMatrix(payload []byte) (*Array, error) {
	sub := &decoder{r: bytes.NewReader(payload), order: d.order}

	typ, flags, err := sub.readElement()
	if err != nil {
		return nil, fmt.Errorf("error reading array flags: %w", err)
	}
	if typ != miUINT32 || len(flags) < 8 {
		return nil, fmt.Errorf("malformed array flags element (type %d, %d bytes)", typ, len(flags))
	}
	flagWord := d.order.Uint32(flags[:4])
	class := Class(flagWord & 0xff)
	if (flagWord>>8)&flagComplex != 0 {
		return nil, fmt.Errorf("complex array data is not supported")
	}

	typ, dimBytes, err := sub.readElement()
	if err != nil {
		return nil, fmt.Errorf("error reading dimensions: %w", err)
	}
	if typ != miINT32 || len(dimBytes)%4 != 0 {
		return nil, fmt.Errorf("malformed dimensions element (type %d)", typ)
	}
	dims := make([]int, len(dimBytes)/4)
	for i := range dims {
		dims[i] = int(int32(d.order.Uint32(dimBytes[i*4 : i*4+4])))
	}

	typ, nameBytes, err := sub.readElement()
	if err != nil {
		return nil, fmt.Errorf("error reading array name: %w", err)
	}
	if typ != miINT8 {
		return nil, fmt.Errorf("malformed array name element (type %d)", typ)
	}

	arr := &Array{
		Name:  strings.TrimRight(string(nameBytes), "\x00"),
		Class: class,
		Dims:  dims,
	}

	switch class {
	case ClassDouble, ClassSingle,
		ClassInt8, ClassUint8, ClassInt16, ClassUint16, ClassInt32, ClassUint32:
		typ, raw, err := sub.readElement()
		if err != nil {
			return nil, fmt.Errorf("error reading real part of %q: %w", arr.Name, err)
		}
		arr.Data, err = toFloat64(typ, raw, d.order)
		if err != nil {
			return nil, fmt.Errorf("array %q: %w", arr.Name, err)
		}
		if len(arr.Data) != arr.NumElements() {
			return nil, fmt.Errorf("array %q: %d values for %v dims", arr.Name, len(arr.Data), dims)
		}
	case ClassCell:
		n := arr.NumElements()
		arr.Cells = make([]*Array, 0, n)
		for i := 0; i < n; i++ {
			typ, cellPayload, err := sub.readElement()
			if err != nil {
				return nil, fmt.Errorf("error reading cell %d of %q: %w", i, arr.Name, err)
			}
			if typ != miMATRIX {
				return nil, fmt.Errorf("cell %d of %q has element type %d", i, arr.Name, typ)
			}
			cell, err := d.parseMatrix(cellPayload)
			if err != nil {
				return nil, err
			}
			arr.Cells = append(arr.Cells, cell)
		}
	case ClassStruct:
		if arr.NumElements() != 1 {
			return nil, fmt.Errorf("struct array %q is %v: only 1x1 structs are supported", arr.Name, dims)
		}
		if err := d.parseStructFields(sub, arr); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("array %q has unsupported class %s", arr.Name, class)
	}

	return arr, nil
}

func (d *decoder) parseStructFields(sub *decoder, arr *Array) error {
	typ, lenBytes, err := sub.readElement()
	if err != nil {
		return fmt.Errorf("error reading field name length of %q: %w", arr.Name, err)
	}
	if typ != miINT32 || len(lenBytes) < 4 {
		return fmt.Errorf("malformed field name length in %q", arr.Name)
	}
	fieldLen := int(int32(d.order.Uint32(lenBytes[:4])))
	if fieldLen <= 0 {
		return fmt.Errorf("struct %q has field name length %d", arr.Name, fieldLen)
	}

	typ, nameBytes, err := sub.readElement()
	if err != nil {
		return fmt.Errorf("error reading field names of %q: %w", arr.Name, err)
	}
	if typ != miINT8 || len(nameBytes)%fieldLen != 0 {
		return fmt.Errorf("malformed field names in %q", arr.Name)
	}

	nFields := len(nameBytes) / fieldLen
	arr.Fields = make(map[string]*Array, nFields)
	arr.FieldOrder = make([]string, 0, nFields)
	for i := 0; i < nFields; i++ {
		name := strings.TrimRight(string(nameBytes[i*fieldLen:(i+1)*fieldLen]), "\x00")
		arr.FieldOrder = append(arr.FieldOrder, name)
	}

	for _, name := range arr.FieldOrder {
		typ, fieldPayload, err := sub.readElement()
		if err != nil {
			return fmt.Errorf("error reading field %q of %q: %w", name, arr.Name, err)
		}
		if typ != miMATRIX {
			return fmt.Errorf("field %q of %q has element type %d", name, arr.Name, typ)
		}
		field, err := d.parseMatrix(fieldPayload)
		if err != nil {
			return err
		}
		field.Name = name
		arr.Fields[name] = field
	}
	return nil
}

// toFloat64 widens raw element bytes of any numeric type to float64.
func toFloat64(typ uint32, data []byte, order binary.ByteOrder) ([]float64, error) {
	width, ok := typeWidth(typ)
	if !ok {
		return nil, fmt.Errorf("unsupported numeric element type %d", typ)
	}
	if len(data)%width != 0 {
		return nil, fmt.Errorf("numeric element size %d not a multiple of %d", len(data), width)
	}

	out := make([]float64, len(data)/width)
	for i := range out {
		b := data[i*width : (i+1)*width]
		switch typ {
		case miINT8:
			out[i] = float64(int8(b[0]))
		case miUINT8:
			out[i] = float64(b[0])
		case miINT16:
			out[i] = float64(int16(order.Uint16(b)))
		case miUINT16:
			out[i] = float64(order.Uint16(b))
		case miINT32:
			out[i] = float64(int32(order.Uint32(b)))
		case miUINT32:
			out[i] = float64(order.Uint32(b))
		case miSINGLE:
			out[i] = float64(math.Float32frombits(order.Uint32(b)))
		case miDOUBLE:
			out[i] = math.Float64frombits(order.Uint64(b))
		case miINT64:
			out[i] = float64(int64(order.Uint64(b)))
		case miUINT64:
			out[i] = float64(order.Uint64(b))
		}
	}
	return out, nil
}

func typeWidth(typ uint32) (int, bool) {
	switch typ {
	case miINT8, miUINT8:
		return 1, true
	case miINT16, miUINT16:
		return 2, true
	case miINT32, miUINT32, miSINGLE:
		return 4, true
	case miDOUBLE, miINT64, miUINT64:
		return 8, true
	default:
		return 0, false
	}
}
