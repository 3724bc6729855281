package marshal

import (
	"fmt"
	"unsafe"
)

// Value reads back the native field described by fd from src. Buffers are
// returned as their unsafe.Pointer address.
func Value[T any](src *T, fd FieldDescriptor) (any, error) {
	if src == nil {
		return nil, ErrNilDestination
	}
	if fd.Offset+fd.Tag.Width() > unsafe.Sizeof(*src) {
		return nil, fmt.Errorf("%w: %q", ErrFieldOutOfBounds, fd.Name)
	}
	p := unsafe.Add(unsafe.Pointer(src), fd.Offset)
	switch fd.Tag {
	case Int32:
		return *(*int32)(p), nil
	case Int64:
		return *(*int64)(p), nil
	case Bool:
		return *(*bool)(p), nil
	case Float32:
		return *(*float32)(p), nil
	case Float32Array4:
		return *(*[ArrayLen]float32)(p), nil
	case Int32Array4:
		return *(*[ArrayLen]int32)(p), nil
	case ForeignBuffer:
		return *(*unsafe.Pointer)(p), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedTag, fd.Tag)
}
