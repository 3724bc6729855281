package ngl

import (
	"runtime"
	"unsafe"
)

// Buffer is an externally owned byte region whose address is handed to the
// engine. The engine writes into it; this module never frees it.
type Buffer interface {
	Pointer() unsafe.Pointer
	Len() int
}

// DirectBuffer is a pinned Go allocation usable as a Buffer. Pinning keeps its
// address stable while the engine holds it between calls.
type DirectBuffer struct {
	data   []byte
	pinner runtime.Pinner
}

// NewDirectBuffer allocates and pins n zeroed bytes.
func NewDirectBuffer(n int) *DirectBuffer {
	b := &DirectBuffer{data: make([]byte, n)}
	if n > 0 {
		b.pinner.Pin(&b.data[0])
	}
	return b
}

// PinBytes wraps a caller-owned slice as a Buffer and pins it until Free.
// Free only unpins; the slice itself is left untouched.
func PinBytes(b []byte) *DirectBuffer {
	d := &DirectBuffer{data: b}
	if len(b) > 0 {
		d.pinner.Pin(&b[0])
	}
	return d
}

// Pointer returns the address of the first byte, or nil for an empty or
// freed buffer.
func (b *DirectBuffer) Pointer() unsafe.Pointer {
	if b == nil || len(b.data) == 0 {
		return nil
	}
	return unsafe.Pointer(&b.data[0])
}

// Len returns the buffer size in bytes.
func (b *DirectBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Bytes exposes the buffer contents.
func (b *DirectBuffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Free unpins the buffer. It must not be used by the engine afterwards.
func (b *DirectBuffer) Free() {
	if b == nil {
		return
	}
	b.pinner.Unpin()
	b.data = nil
}
