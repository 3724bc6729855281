// Package errors provides structured error handling for the nopegl boundary layer.
//
// Native status codes are never reinterpreted: an Error of kind KindNative
// carries the engine's code verbatim and Code recovers it.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindAllocation indicates the engine returned a null context or scene.
	KindAllocation
	// KindMarshal indicates a host configuration object could not be marshaled.
	KindMarshal
	// KindNative indicates a negative status code returned by the engine.
	KindNative
	// KindInvalidHandle indicates use of a released or null context handle.
	KindInvalidHandle
	// KindInvalidState indicates an operation called in the wrong lifecycle state.
	KindInvalidState
	// KindSceneParse indicates the engine rejected a scene description.
	KindSceneParse
	// KindInvalidBuffer indicates a null or unresolved capture buffer.
	KindInvalidBuffer
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindAllocation:
		return "allocation"
	case KindMarshal:
		return "marshal"
	case KindNative:
		return "native"
	case KindInvalidHandle:
		return "invalid-handle"
	case KindInvalidState:
		return "invalid-state"
	case KindSceneParse:
		return "scene-parse"
	case KindInvalidBuffer:
		return "invalid-buffer"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors for caller misuse and allocation failures.
var (
	ErrOutOfMemory   = stderrors.New("native allocation failed")
	ErrInvalidHandle = stderrors.New("invalid or released context handle")
	ErrInvalidState  = stderrors.New("operation not valid in current state")
	ErrInvalidBuffer = stderrors.New("capture buffer is nil or has no address")
)

// Error represents a structured error raised at the native boundary.
type Error struct {
	// Op is the operation that failed (e.g., "nopegl.Context.Draw").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Code is the native status code, when the engine produced one.
	Code int
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Kind == KindNative || e.Kind == KindSceneParse {
		if e.Err != nil {
			return fmt.Sprintf("%s [%s] code=%d: %v", e.Op, e.Kind, e.Code, e.Err)
		}
		return fmt.Sprintf("%s [%s] code=%d", e.Op, e.Kind, e.Code)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Native wraps a negative engine status code. It returns nil for code >= 0.
func Native(op string, code int) error {
	if code >= 0 {
		return nil
	}
	return &Error{Op: op, Kind: KindNative, Code: code}
}

// SceneParse wraps a status code returned while parsing a scene description.
func SceneParse(op string, code int) error {
	if code >= 0 {
		return nil
	}
	return &Error{Op: op, Kind: KindSceneParse, Code: code}
}

// New builds an Error of the given kind around err.
func New(op string, kind ErrorKind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Code returns the native status code carried by err and whether one was found.
func Code(err error) (int, bool) {
	var e *Error
	if stderrors.As(err, &e) && e.Code != 0 {
		return e.Code, true
	}
	return 0, false
}

// KindOf returns the kind of the first Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "logbridge.engine").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors that cannot be returned to a caller.
type ErrorHandler interface {
	// HandleError is called for a swallowed failure.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
