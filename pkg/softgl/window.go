package softgl

import "fmt"

// Surface is a drawing surface that can be wrapped into a window handle.
type Surface struct {
	Width  int
	Height int
}

// AcquireWindow implements ngl.WindowSystem. surface must be a Surface or a
// *Surface.
func (e *Engine) AcquireWindow(surface any) (uintptr, error) {
	var s Surface
	switch v := surface.(type) {
	case Surface:
		s = v
	case *Surface:
		if v == nil {
			return 0, fmt.Errorf("softgl: nil surface")
		}
		s = *v
	default:
		return 0, fmt.Errorf("softgl: unsupported surface type %T", surface)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	h := e.id()
	e.windows[h] = &s
	return h, nil
}

// ReleaseWindow implements ngl.WindowSystem.
func (e *Engine) ReleaseWindow(window uintptr) {
	if window == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.windows, window)
}

// WindowSize returns the current size of a window.
func (e *Engine) WindowSize(window uintptr) (width, height int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.windows[window]
	if !ok {
		return 0, 0, false
	}
	return s.Width, s.Height, true
}
