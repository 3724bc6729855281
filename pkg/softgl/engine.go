package softgl

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gg"

	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

// Stats counts live handles.
type Stats struct {
	Contexts int
	Scenes   int
	Windows  int
}

type renderContext struct {
	configured bool
	offscreen  bool
	window     uintptr
	width      int
	height     int
	clear      gg.RGBA
	dc         *gg.Context
	scene      ngl.SceneHandle
	capture    unsafe.Pointer
	frames     uint64
}

// Engine is a software ngl.Engine. It also implements ngl.WindowSystem.
// All methods are safe for concurrent use; log sinks must not call back into
// the engine.
type Engine struct {
	mu       sync.Mutex
	next     uintptr
	contexts map[ngl.Handle]*renderContext
	scenes   map[ngl.SceneHandle]*scene
	windows  map[uintptr]*Surface

	logFn    atomic.Pointer[ngl.EngineLogFunc]
	minLevel atomic.Int32
	javaVM   atomic.Uintptr
	appCtx   atomic.Uintptr

	media *Media
}

// New returns an engine with no live handles.
func New() *Engine {
	e := &Engine{
		contexts: make(map[ngl.Handle]*renderContext),
		scenes:   make(map[ngl.SceneHandle]*scene),
		windows:  make(map[uintptr]*Surface),
		media:    newMedia(),
	}
	e.minLevel.Store(ngl.LogInfo)
	return e
}

// Runtime bundles the engine with its media framework and window system.
func (e *Engine) Runtime() ngl.Runtime {
	return ngl.Runtime{Engine: e, Media: e.media, Windows: e}
}

// Media returns the engine's media framework.
func (e *Engine) Media() *Media { return e.media }

// Stats reports the number of live contexts, scenes and windows.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Contexts: len(e.contexts),
		Scenes:   len(e.scenes),
		Windows:  len(e.windows),
	}
}

func (e *Engine) id() uintptr {
	e.next++
	return e.next
}

// Create implements ngl.Engine.
func (e *Engine) Create() ngl.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	h := ngl.Handle(e.id())
	e.contexts[h] = &renderContext{}
	return h
}

// Configure implements ngl.Engine. A capture buffer in cfg replaces the
// current one; a nil one leaves it in place. The installed scene survives.
func (e *Engine) Configure(h ngl.Handle, cfg *ngl.Config) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	rc, ok := e.contexts[h]
	if !ok || cfg == nil {
		return ngl.StatusInvalidArg
	}
	if cfg.Backend < ngl.BackendAuto || cfg.Backend > ngl.BackendVulkan {
		e.logf(ngl.LogError, "backend %d is not supported", cfg.Backend)
		return ngl.StatusUnsupported
	}
	if cfg.Samples < 0 {
		return ngl.StatusInvalidArg
	}

	w, ht := int(cfg.Width), int(cfg.Height)
	var window uintptr
	if cfg.Offscreen {
		if w <= 0 || ht <= 0 {
			e.logf(ngl.LogError, "invalid offscreen dimensions %dx%d", w, ht)
			return ngl.StatusInvalidArg
		}
	} else {
		window = uintptr(cfg.Window)
		s, ok := e.windows[window]
		if window == 0 || !ok {
			e.logf(ngl.LogError, "onscreen rendering requires a window")
			return ngl.StatusInvalidArg
		}
		if w <= 0 || ht <= 0 {
			w, ht = s.Width, s.Height
		}
		if w <= 0 || ht <= 0 {
			return ngl.StatusInvalidArg
		}
	}

	if rc.dc == nil {
		rc.dc = gg.NewContext(w, ht)
	} else if err := rc.dc.Resize(w, ht); err != nil {
		e.logf(ngl.LogError, "resize surface: %v", err)
		return ngl.StatusExternal
	}

	rc.configured = true
	rc.offscreen = cfg.Offscreen
	rc.window = window
	rc.width, rc.height = w, ht
	rc.clear = gg.RGBA{
		R: float64(cfg.ClearColor[0]),
		G: float64(cfg.ClearColor[1]),
		B: float64(cfg.ClearColor[2]),
		A: float64(cfg.ClearColor[3]),
	}
	if cfg.CaptureBuffer != nil {
		rc.capture = cfg.CaptureBuffer
	}
	e.logf(ngl.LogInfo, "configured %dx%d backend=%d offscreen=%t", w, ht, cfg.Backend, cfg.Offscreen)
	return ngl.StatusOK
}

// SetScene implements ngl.Engine.
func (e *Engine) SetScene(h ngl.Handle, s ngl.SceneHandle) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	rc, ok := e.contexts[h]
	if !ok {
		return ngl.StatusInvalidArg
	}
	if !rc.configured {
		return ngl.StatusInvalidUsage
	}
	if s != 0 {
		sc, ok := e.scenes[s]
		if !ok {
			return ngl.StatusInvalidArg
		}
		if sc.root == nil {
			e.logf(ngl.LogError, "scene %d is not initialized", s)
			return ngl.StatusInvalidUsage
		}
		sc.refs++
	}
	old := rc.scene
	rc.scene = s
	if old != 0 {
		e.unrefLocked(old)
	}
	return ngl.StatusOK
}

// Resize implements ngl.Engine. Offscreen contexts cannot be resized.
func (e *Engine) Resize(h ngl.Handle, width, height int32) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	rc, ok := e.contexts[h]
	if !ok {
		return ngl.StatusInvalidArg
	}
	if !rc.configured || rc.offscreen {
		e.logf(ngl.LogError, "resize is only available for onscreen contexts")
		return ngl.StatusInvalidUsage
	}
	if width <= 0 || height <= 0 {
		return ngl.StatusInvalidArg
	}
	if err := rc.dc.Resize(int(width), int(height)); err != nil {
		return ngl.StatusExternal
	}
	rc.width, rc.height = int(width), int(height)
	if s, ok := e.windows[rc.window]; ok {
		s.Width, s.Height = rc.width, rc.height
	}
	return ngl.StatusOK
}

// Draw implements ngl.Engine. The frame is cleared, the scene is rendered
// and the pixels are copied to the capture buffer when one is set. The
// capture buffer must hold width*height*4 bytes.
func (e *Engine) Draw(h ngl.Handle, t float64) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	rc, ok := e.contexts[h]
	if !ok {
		return ngl.StatusInvalidArg
	}
	if !rc.configured {
		e.logf(ngl.LogError, "context must be configured before drawing")
		return ngl.StatusInvalidUsage
	}

	rc.dc.ClearWithColor(rc.clear)
	if rc.scene != 0 {
		if sc, ok := e.scenes[rc.scene]; ok {
			if err := render(rc.dc, sc.root); err != nil {
				e.logf(ngl.LogError, "render at t=%g: %v", t, err)
				return ngl.StatusExternal
			}
		}
	}
	if rc.capture != nil {
		pix := rc.dc.ResizeTarget().Data()
		copy(unsafe.Slice((*byte)(rc.capture), len(pix)), pix)
	}
	rc.frames++
	e.logf(ngl.LogVerbose, "frame %d drawn at t=%g", rc.frames, t)
	return ngl.StatusOK
}

// SetCaptureBuffer implements ngl.Engine. A nil address disables capture.
func (e *Engine) SetCaptureBuffer(h ngl.Handle, buf unsafe.Pointer) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	rc, ok := e.contexts[h]
	if !ok {
		return ngl.StatusInvalidArg
	}
	rc.capture = buf
	return ngl.StatusOK
}

// Free implements ngl.Engine. Unknown handles are ignored.
func (e *Engine) Free(h ngl.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rc, ok := e.contexts[h]
	if !ok {
		return
	}
	if rc.scene != 0 {
		e.unrefLocked(rc.scene)
	}
	if rc.dc != nil {
		_ = rc.dc.Close()
	}
	delete(e.contexts, h)
}

// Frames returns the number of frames drawn by a context.
func (e *Engine) Frames(h ngl.Handle) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if rc, ok := e.contexts[h]; ok {
		return rc.frames
	}
	return 0
}

// SetLogCallback implements ngl.Engine.
func (e *Engine) SetLogCallback(fn ngl.EngineLogFunc) {
	if fn == nil {
		e.logFn.Store(nil)
		return
	}
	e.logFn.Store(&fn)
}

// SetLogMinLevel implements ngl.Engine.
func (e *Engine) SetLogMinLevel(level int) {
	e.minLevel.Store(int32(level))
}

// SetJavaVM implements ngl.Engine. The value is recorded and otherwise unused.
func (e *Engine) SetJavaVM(vm uintptr) int {
	e.javaVM.Store(vm)
	return ngl.StatusOK
}

// SetAppContext implements ngl.Engine. The value is recorded and otherwise
// unused.
func (e *Engine) SetAppContext(ref uintptr) int {
	e.appCtx.Store(ref)
	return ngl.StatusOK
}

// AppContext returns the values registered with SetJavaVM and SetAppContext.
func (e *Engine) AppContext() (vm, ref uintptr) {
	return e.javaVM.Load(), e.appCtx.Load()
}

func (e *Engine) logf(level int, format string, args ...any) {
	if int32(level) < e.minLevel.Load() {
		return
	}
	fn := e.logFn.Load()
	if fn == nil {
		return
	}
	file, line, name := "?", 0, "?"
	if pc, f, l, ok := runtime.Caller(1); ok {
		file, line = f, l
		if i := strings.LastIndex(file, "/pkg/"); i >= 0 {
			file = file[i+len("/pkg/"):]
		}
		if rf := runtime.FuncForPC(pc); rf != nil {
			name = rf.Name()
			if i := strings.LastIndexByte(name, '.'); i >= 0 {
				name = name[i+1:]
			}
		}
	}
	(*fn)(level, file, line, name, fmt.Sprintf(format, args...))
}
