package marshal

import (
	"errors"
	"fmt"
	"unsafe"
)

// TypeTag selects how a host value is read and how many bytes are written.
type TypeTag uint8

const (
	Int32 TypeTag = iota
	Int64
	Bool
	Float32
	Float32Array4
	Int32Array4
	ForeignBuffer
)

// ArrayLen is the element count of the fixed array tags.
const ArrayLen = 4

func (t TypeTag) String() string {
	switch t {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Bool:
		return "bool"
	case Float32:
		return "float32"
	case Float32Array4:
		return "float32[4]"
	case Int32Array4:
		return "int32[4]"
	case ForeignBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("TypeTag(%d)", uint8(t))
	}
}

// Width returns the number of bytes a value of this tag occupies in the
// native struct, or 0 for an unknown tag.
func (t TypeTag) Width() uintptr {
	switch t {
	case Int32, Float32:
		return 4
	case Int64:
		return 8
	case Bool:
		return 1
	case Float32Array4, Int32Array4:
		return 4 * ArrayLen
	case ForeignBuffer:
		return unsafe.Sizeof(unsafe.Pointer(nil))
	default:
		return 0
	}
}

// Align returns the required alignment of the destination field.
func (t TypeTag) Align() uintptr {
	switch t {
	case Int32, Float32, Float32Array4, Int32Array4:
		return unsafe.Alignof(int32(0))
	case Int64:
		return unsafe.Alignof(int64(0))
	case ForeignBuffer:
		return unsafe.Alignof(unsafe.Pointer(nil))
	default:
		return 1
	}
}

// FieldDescriptor maps one host property onto a native struct field.
type FieldDescriptor struct {
	Name   string
	Tag    TypeTag
	Offset uintptr
}

// Field is shorthand for building a descriptor.
func Field(name string, tag TypeTag, offset uintptr) FieldDescriptor {
	return FieldDescriptor{Name: name, Tag: tag, Offset: offset}
}

// Errors reported by table validation and marshaling.
var (
	ErrUnsupportedTag      = errors.New("marshal: unsupported type tag")
	ErrArrayLengthMismatch = errors.New("marshal: array shorter than fixed length")
	ErrDuplicateField      = errors.New("marshal: duplicate field name")
	ErrFieldOutOfBounds    = errors.New("marshal: field outside native struct")
	ErrMisalignedField     = errors.New("marshal: misaligned field offset")
	ErrNilDestination      = errors.New("marshal: nil destination")
)

// Validate checks that every descriptor addresses a properly aligned region
// inside a struct of the given size and that names are unique.
func Validate(table []FieldDescriptor, size uintptr) error {
	seen := make(map[string]struct{}, len(table))
	for _, fd := range table {
		if _, dup := seen[fd.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateField, fd.Name)
		}
		seen[fd.Name] = struct{}{}

		w := fd.Tag.Width()
		if w == 0 {
			return fmt.Errorf("%w: %q has %s", ErrUnsupportedTag, fd.Name, fd.Tag)
		}
		if fd.Offset > size || size-fd.Offset < w {
			return fmt.Errorf("%w: %q at %d+%d exceeds %d", ErrFieldOutOfBounds, fd.Name, fd.Offset, w, size)
		}
		if fd.Offset%fd.Tag.Align() != 0 {
			return fmt.Errorf("%w: %q at %d", ErrMisalignedField, fd.Name, fd.Offset)
		}
	}
	return nil
}

// MustValidate is like Validate but panics. It is meant for package-level
// tables checked at init.
func MustValidate(table []FieldDescriptor, size uintptr) []FieldDescriptor {
	if err := Validate(table, size); err != nil {
		panic(err)
	}
	return table
}
