package ngl

import (
	"errors"
	"unsafe"
)

// Handle is an opaque native context handle. Zero is null.
type Handle uintptr

// SceneHandle is an opaque, engine-refcounted scene handle. Zero is null.
type SceneHandle uintptr

// EngineLogFunc receives one formatted engine log record.
type EngineLogFunc func(level int, file string, line int, fn string, msg string)

// MediaLogFunc receives one formatted media framework log record.
type MediaLogFunc func(level int, msg string)

// Engine is the native rendering engine. Every int result is a native status
// code: negative values are errors and are returned unchanged to callers.
type Engine interface {
	// Create allocates a context, returning 0 when allocation fails.
	Create() Handle
	// Configure applies cfg. The engine copies what it needs; cfg is not retained.
	Configure(ctx Handle, cfg *Config) int
	// SetScene installs scene (0 for none). The context takes its own reference.
	SetScene(ctx Handle, scene SceneHandle) int
	Resize(ctx Handle, width, height int32) int
	Draw(ctx Handle, t float64) int
	// SetCaptureBuffer records the address used for pixel readback on draw.
	SetCaptureBuffer(ctx Handle, buf unsafe.Pointer) int
	// Free releases the context and every reference it holds.
	Free(ctx Handle)

	// SceneCreate allocates an empty scene with one reference, or 0.
	SceneCreate() SceneHandle
	SceneInitFromString(scene SceneHandle, text string) int
	SceneUnref(scene SceneHandle)

	SetLogCallback(fn EngineLogFunc)
	SetLogMinLevel(level int)
	SetJavaVM(vm uintptr) int
	SetAppContext(ref uintptr) int
}

// Media is the media decoding framework linked next to the engine.
type Media interface {
	SetLogCallback(fn MediaLogFunc)
	SetLogLevel(level int)
	SetJavaVM(vm uintptr) int
	SetAppContext(ref uintptr) int
}

// WindowSystem wraps platform drawing surfaces into native window handles.
type WindowSystem interface {
	// AcquireWindow returns a native window handle for surface.
	AcquireWindow(surface any) (uintptr, error)
	// ReleaseWindow drops a handle from AcquireWindow. Zero is ignored.
	ReleaseWindow(window uintptr)
}

// WindowSizer is implemented by engines that can report the current size of
// a window handle.
type WindowSizer interface {
	WindowSize(window uintptr) (width, height int, ok bool)
}

// Runtime bundles the native collaborators used by one process.
type Runtime struct {
	Engine  Engine
	Media   Media
	Windows WindowSystem
}

// ErrNotSupported is returned by Native when the module was built without the
// native engine.
var ErrNotSupported = errors.New("ngl: native engine not available in this build")
