package marshal

import (
	"math"
	"strconv"
	"unsafe"
)

// toInt64 converts integer kinds and integral floats to int64.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uintptr:
		return int64(n), true
	case float32:
		return integral(float64(n))
	case float64:
		return integral(n)
	default:
		return 0, false
	}
}

func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// toInt32 is toInt64 restricted to the int32 range.
func toInt32(v any) (int32, bool) {
	n, ok := toInt64(v)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

// toFloat32 converts float and integer kinds to float32.
func toFloat32(v any) (float32, bool) {
	switch n := v.(type) {
	case float32:
		return n, true
	case float64:
		return float32(n), true
	}
	if i, ok := toInt64(v); ok {
		return float32(i), true
	}
	return 0, false
}

// toBool accepts booleans and their canonical string forms.
func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		return parsed, err == nil
	default:
		return false, false
	}
}

// Addresser is implemented by externally owned memory regions whose address
// may be stored in a native struct.
type Addresser interface {
	Pointer() unsafe.Pointer
}

// toPointer resolves the address of a foreign buffer value. A nil buffer
// resolves to (nil, true) so the field keeps its zero default.
func toPointer(v any) (unsafe.Pointer, bool) {
	switch b := v.(type) {
	case Addresser:
		return b.Pointer(), true
	case unsafe.Pointer:
		return b, true
	case []byte:
		if len(b) == 0 {
			return nil, true
		}
		return unsafe.Pointer(&b[0]), true
	default:
		return nil, false
	}
}

// float32Array reads at least ArrayLen elements from a host array.
func float32Array(v any) (arr [ArrayLen]float32, ok bool, err error) {
	var elems []float32
	switch a := v.(type) {
	case [ArrayLen]float32:
		return a, true, nil
	case []float32:
		if a == nil {
			return arr, false, nil
		}
		elems = a
	case []float64:
		if a == nil {
			return arr, false, nil
		}
		elems = make([]float32, len(a))
		for i, f := range a {
			elems[i] = float32(f)
		}
	case []any:
		if a == nil {
			return arr, false, nil
		}
		elems = make([]float32, len(a))
		for i, e := range a {
			f, ok := toFloat32(e)
			if !ok {
				return arr, false, nil
			}
			elems[i] = f
		}
	default:
		return arr, false, nil
	}
	if len(elems) < ArrayLen {
		return arr, true, ErrArrayLengthMismatch
	}
	copy(arr[:], elems[:ArrayLen])
	return arr, true, nil
}

// int32Array reads at least ArrayLen elements from a host array.
func int32Array(v any) (arr [ArrayLen]int32, ok bool, err error) {
	var elems []int32
	switch a := v.(type) {
	case [ArrayLen]int32:
		return a, true, nil
	case []int32:
		if a == nil {
			return arr, false, nil
		}
		elems = a
	case []int:
		if a == nil {
			return arr, false, nil
		}
		elems = make([]int32, len(a))
		for i, n := range a {
			c, ok := toInt32(n)
			if !ok {
				return arr, false, nil
			}
			elems[i] = c
		}
	case []int64:
		if a == nil {
			return arr, false, nil
		}
		elems = make([]int32, len(a))
		for i, n := range a {
			c, ok := toInt32(n)
			if !ok {
				return arr, false, nil
			}
			elems[i] = c
		}
	case []any:
		if a == nil {
			return arr, false, nil
		}
		elems = make([]int32, len(a))
		for i, e := range a {
			c, ok := toInt32(e)
			if !ok {
				return arr, false, nil
			}
			elems[i] = c
		}
	default:
		return arr, false, nil
	}
	if len(elems) < ArrayLen {
		return arr, true, ErrArrayLengthMismatch
	}
	copy(arr[:], elems[:ArrayLen])
	return arr, true, nil
}
