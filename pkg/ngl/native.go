//go:build nopegl && cgo

package ngl

/*
#cgo pkg-config: libnopegl libavutil

#include <stdint.h>
#include <stdlib.h>
#include <libavutil/log.h>
#include <nopegl.h>

void nopegl_go_install_log(void);
void nopegl_go_install_av_log(void);
*/
import "C"

import (
	"sync/atomic"
	"unsafe"
)

var (
	engineLog atomic.Pointer[EngineLogFunc]
	mediaLog  atomic.Pointer[MediaLogFunc]
)

//export nopeglGoLog
func nopeglGoLog(level C.int, file *C.char, line C.int, fn *C.char, msg *C.char) {
	cb := engineLog.Load()
	if cb == nil {
		return
	}
	(*cb)(int(level), C.GoString(file), int(line), C.GoString(fn), C.GoString(msg))
}

//export nopeglGoAVLog
func nopeglGoAVLog(level C.int, msg *C.char) {
	cb := mediaLog.Load()
	if cb == nil {
		return
	}
	(*cb)(int(level), C.GoString(msg))
}

type nativeEngine struct{}

// Native returns the linked libnopegl engine and media framework.
func Native() (*Runtime, error) {
	return &Runtime{
		Engine:  nativeEngine{},
		Media:   nativeMedia{},
		Windows: nativeWindows{},
	}, nil
}

func ctxPtr(h Handle) *C.struct_ngl_ctx {
	return (*C.struct_ngl_ctx)(unsafe.Pointer(uintptr(h)))
}

func scenePtr(h SceneHandle) *C.struct_ngl_scene {
	return (*C.struct_ngl_scene)(unsafe.Pointer(uintptr(h)))
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func (nativeEngine) Create() Handle {
	return Handle(uintptr(unsafe.Pointer(C.ngl_create())))
}

func (nativeEngine) Configure(ctx Handle, cfg *Config) int {
	var c C.struct_ngl_config
	c.platform = C.int(cfg.Platform)
	c.backend = C.int(cfg.Backend)
	c.display = C.uintptr_t(cfg.Display)
	c.window = C.uintptr_t(cfg.Window)
	c.swap_interval = C.int(cfg.SwapInterval)
	c.offscreen = cbool(cfg.Offscreen)
	c.width = C.int32_t(cfg.Width)
	c.height = C.int32_t(cfg.Height)
	c.samples = C.int(cfg.Samples)
	c.set_surface_pts = cbool(cfg.SetSurfacePts)
	for i, v := range cfg.ClearColor {
		c.clear_color[i] = C.float(v)
	}
	c.capture_buffer = (*C.uint8_t)(cfg.CaptureBuffer)
	c.capture_buffer_type = C.int(cfg.CaptureBufferType)
	c.hud = cbool(cfg.HUD)
	c.hud_measure_window = C.int(cfg.HUDMeasureWindow)
	c.hud_refresh_rate[0] = C.int(cfg.HUDRefreshRate[0])
	c.hud_refresh_rate[1] = C.int(cfg.HUDRefreshRate[1])
	c.hud_scale = C.int(cfg.HUDScale)
	c.debug = cbool(cfg.Debug)
	return int(C.ngl_configure(ctxPtr(ctx), &c))
}

func (nativeEngine) SetScene(ctx Handle, scene SceneHandle) int {
	return int(C.ngl_set_scene(ctxPtr(ctx), scenePtr(scene)))
}

func (nativeEngine) Resize(ctx Handle, width, height int32) int {
	return int(C.ngl_resize(ctxPtr(ctx), C.int32_t(width), C.int32_t(height)))
}

func (nativeEngine) Draw(ctx Handle, t float64) int {
	return int(C.ngl_draw(ctxPtr(ctx), C.double(t)))
}

func (nativeEngine) SetCaptureBuffer(ctx Handle, buf unsafe.Pointer) int {
	return int(C.ngl_set_capture_buffer(ctxPtr(ctx), buf))
}

func (nativeEngine) Free(ctx Handle) {
	p := ctxPtr(ctx)
	C.ngl_freep(&p)
}

func (nativeEngine) SceneCreate() SceneHandle {
	return SceneHandle(uintptr(unsafe.Pointer(C.ngl_scene_create())))
}

func (nativeEngine) SceneInitFromString(scene SceneHandle, text string) int {
	cs := C.CString(text)
	defer C.free(unsafe.Pointer(cs))
	return int(C.ngl_scene_init_from_str(scenePtr(scene), cs))
}

func (nativeEngine) SceneUnref(scene SceneHandle) {
	p := scenePtr(scene)
	C.ngl_scene_unrefp(&p)
}

func (nativeEngine) SetLogCallback(fn EngineLogFunc) {
	if fn == nil {
		engineLog.Store(nil)
		return
	}
	engineLog.Store(&fn)
	C.nopegl_go_install_log()
}

func (nativeEngine) SetLogMinLevel(level int) {
	C.ngl_log_set_min_level(C.int(level))
}

type nativeMedia struct{}

func (nativeMedia) SetLogCallback(fn MediaLogFunc) {
	if fn == nil {
		mediaLog.Store(nil)
		return
	}
	mediaLog.Store(&fn)
	C.nopegl_go_install_av_log()
}

func (nativeMedia) SetLogLevel(level int) {
	C.av_log_set_level(C.int(level))
}
