package marshal

import (
	"fmt"
	"unsafe"
)

// Object is a host-side configuration object. Field reports the value of the
// named property and whether the object has it at all.
type Object interface {
	Field(name string) (any, bool)
}

// Map is a sparse Object, typically decoded from a config file.
type Map map[string]any

// Field implements Object.
func (m Map) Field(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Marshal writes every property of obj described by table into dst.
//
// Properties that are absent, nil, or hold a value of the wrong type are
// skipped and the destination field keeps whatever dst already held. A fixed
// array shorter than ArrayLen stops the marshal with ErrArrayLengthMismatch.
// obj is never modified.
func Marshal[T any](dst *T, table []FieldDescriptor, obj Object) error {
	if dst == nil {
		return ErrNilDestination
	}
	if err := Validate(table, unsafe.Sizeof(*dst)); err != nil {
		return err
	}
	if obj == nil {
		return nil
	}

	base := unsafe.Pointer(dst)
	for _, fd := range table {
		v, ok := obj.Field(fd.Name)
		if !ok || v == nil {
			continue
		}
		if _, err := store(unsafe.Add(base, fd.Offset), fd.Tag, v); err != nil {
			return fmt.Errorf("field %q: %w", fd.Name, err)
		}
	}
	return nil
}

// Missing returns the names of the descriptors obj cannot supply, in table
// order. These are the fields Marshal leaves at their defaults.
func Missing(table []FieldDescriptor, obj Object) []string {
	var names []string
	for _, fd := range table {
		if obj == nil {
			names = append(names, fd.Name)
			continue
		}
		v, ok := obj.Field(fd.Name)
		if !ok || v == nil {
			names = append(names, fd.Name)
			continue
		}
		var scratch [2]uint64
		if fd.Tag.Width() > unsafe.Sizeof(scratch) {
			continue
		}
		if ok, _ := store(unsafe.Pointer(&scratch), fd.Tag, v); !ok {
			names = append(names, fd.Name)
		}
	}
	return names
}

// store writes v at dst according to tag. It reports false when v cannot be
// read as tag, in which case nothing is written.
func store(dst unsafe.Pointer, tag TypeTag, v any) (bool, error) {
	switch tag {
	case Int32:
		n, ok := toInt32(v)
		if ok {
			*(*int32)(dst) = n
		}
		return ok, nil
	case Int64:
		n, ok := toInt64(v)
		if ok {
			*(*int64)(dst) = n
		}
		return ok, nil
	case Bool:
		b, ok := toBool(v)
		if ok {
			*(*bool)(dst) = b
		}
		return ok, nil
	case Float32:
		f, ok := toFloat32(v)
		if ok {
			*(*float32)(dst) = f
		}
		return ok, nil
	case Float32Array4:
		arr, ok, err := float32Array(v)
		if !ok || err != nil {
			return ok, err
		}
		*(*[ArrayLen]float32)(dst) = arr
		return true, nil
	case Int32Array4:
		arr, ok, err := int32Array(v)
		if !ok || err != nil {
			return ok, err
		}
		*(*[ArrayLen]int32)(dst) = arr
		return true, nil
	case ForeignBuffer:
		p, ok := toPointer(v)
		if ok && p != nil {
			*(*unsafe.Pointer)(dst) = p
		}
		return ok, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedTag, tag)
	}
}
