package ngl

import (
	"unsafe"

	"github.com/nopeforge/nopegl-go/pkg/marshal"
)

// Rendering backends.
const (
	BackendAuto int32 = iota
	BackendOpenGL
	BackendOpenGLES
	BackendVulkan
)

// Windowing platforms.
const (
	PlatformAuto int32 = iota
	PlatformXLib
	PlatformAndroid
	PlatformMacOS
	PlatformIOS
	PlatformWindows
	PlatformWayland
)

// CaptureBufferCPU selects readback into caller memory.
const CaptureBufferCPU int32 = 0

// SwapIntervalUnset lets the engine pick its own swap interval.
const SwapIntervalUnset int32 = -1

// Config is the native parameter block handed to Engine.Configure. Its layout
// is fixed; ConfigFields addresses its host-visible fields by byte offset.
type Config struct {
	Platform          int32
	Backend           int32
	Display           uintptr
	Window            int64
	SwapInterval      int32
	Offscreen         bool
	Width             int32
	Height            int32
	Samples           int32
	SetSurfacePts     bool
	ClearColor        [4]float32
	CaptureBuffer     unsafe.Pointer
	CaptureBufferType int32
	HUD               bool
	HUDMeasureWindow  int32
	HUDRefreshRate    [2]int32
	HUDScale          int32
	Debug             bool
}

// NewConfig returns the default parameter block used before marshaling.
func NewConfig() Config {
	return Config{
		SwapInterval:      SwapIntervalUnset,
		CaptureBufferType: CaptureBufferCPU,
	}
}

// ConfigFields maps host-visible configuration properties onto Config.
var ConfigFields = marshal.MustValidate([]marshal.FieldDescriptor{
	marshal.Field("backend", marshal.Int32, unsafe.Offsetof(Config{}.Backend)),
	marshal.Field("window", marshal.Int64, unsafe.Offsetof(Config{}.Window)),
	marshal.Field("offscreen", marshal.Bool, unsafe.Offsetof(Config{}.Offscreen)),
	marshal.Field("width", marshal.Int32, unsafe.Offsetof(Config{}.Width)),
	marshal.Field("height", marshal.Int32, unsafe.Offsetof(Config{}.Height)),
	marshal.Field("samples", marshal.Int32, unsafe.Offsetof(Config{}.Samples)),
	marshal.Field("setSurfacePts", marshal.Bool, unsafe.Offsetof(Config{}.SetSurfacePts)),
	marshal.Field("clearColor", marshal.Float32Array4, unsafe.Offsetof(Config{}.ClearColor)),
	marshal.Field("captureBuffer", marshal.ForeignBuffer, unsafe.Offsetof(Config{}.CaptureBuffer)),
	marshal.Field("hud", marshal.Bool, unsafe.Offsetof(Config{}.HUD)),
	marshal.Field("hudScale", marshal.Int32, unsafe.Offsetof(Config{}.HUDScale)),
}, unsafe.Sizeof(Config{}))
