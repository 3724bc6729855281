//go:build nopegl && cgo && !android

package ngl

import "fmt"

func (nativeEngine) SetJavaVM(vm uintptr) int      { return StatusUnsupported }
func (nativeEngine) SetAppContext(ref uintptr) int { return StatusUnsupported }
func (nativeMedia) SetJavaVM(vm uintptr) int       { return StatusUnsupported }
func (nativeMedia) SetAppContext(ref uintptr) int  { return StatusUnsupported }

// Desktop windows are created by the host toolkit; their handles pass through.
type nativeWindows struct{}

func (nativeWindows) AcquireWindow(surface any) (uintptr, error) {
	switch w := surface.(type) {
	case uintptr:
		return w, nil
	case int64:
		return uintptr(w), nil
	default:
		return 0, fmt.Errorf("ngl: surface must be a native window handle, got %T", surface)
	}
}

func (nativeWindows) ReleaseWindow(uintptr) {}
