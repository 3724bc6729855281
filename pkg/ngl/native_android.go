//go:build nopegl && cgo && android

package ngl

/*
#cgo LDFLAGS: -landroid
#cgo pkg-config: libavcodec

#include <jni.h>
#include <android/native_window.h>
#include <android/native_window_jni.h>
#include <libavcodec/jni.h>
#include <nopegl.h>

static ANativeWindow *nopegl_window_from_surface(uintptr_t env, uintptr_t surface)
{
    return ANativeWindow_fromSurface((JNIEnv *)env, (jobject)surface);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// JNISurface identifies an android.view.Surface from the JNI side.
type JNISurface struct {
	Env     uintptr
	Surface uintptr
}

func (nativeEngine) SetJavaVM(vm uintptr) int {
	return int(C.ngl_jni_set_java_vm(unsafe.Pointer(vm)))
}

func (nativeEngine) SetAppContext(ref uintptr) int {
	return int(C.ngl_android_set_application_context(unsafe.Pointer(ref)))
}

func (nativeMedia) SetJavaVM(vm uintptr) int {
	return int(C.av_jni_set_java_vm(unsafe.Pointer(vm), nil))
}

// SetAppContext expects ref to already be a JNI global reference.
func (nativeMedia) SetAppContext(ref uintptr) int {
	return int(C.av_jni_set_android_app_ctx(unsafe.Pointer(ref), nil))
}

type nativeWindows struct{}

func (nativeWindows) AcquireWindow(surface any) (uintptr, error) {
	s, ok := surface.(JNISurface)
	if !ok {
		return 0, fmt.Errorf("ngl: surface must be JNISurface, got %T", surface)
	}
	win := C.nopegl_window_from_surface(C.uintptr_t(s.Env), C.uintptr_t(s.Surface))
	if win == nil {
		return 0, fmt.Errorf("ngl: no native window for surface")
	}
	return uintptr(unsafe.Pointer(win)), nil
}

func (nativeWindows) ReleaseWindow(window uintptr) {
	if window == 0 {
		return
	}
	C.ANativeWindow_release((*C.ANativeWindow)(unsafe.Pointer(window)))
}
