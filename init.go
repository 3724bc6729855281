package nopegl

import (
	"sync"

	nglerrors "github.com/nopeforge/nopegl-go/pkg/errors"
	"github.com/nopeforge/nopegl-go/pkg/logbridge"
	"github.com/nopeforge/nopegl-go/pkg/ngl"
	"github.com/nopeforge/nopegl-go/pkg/softgl"
)

// InitOptions configures the one-time process setup.
type InitOptions struct {
	// JavaVM and AppContext are registered with the engine and the media
	// framework when non-zero. Only Android builds use them.
	JavaVM     uintptr
	AppContext uintptr

	// Sink receives native engine and media framework records. Nil discards
	// them.
	Sink logbridge.Sink

	// Runtime overrides the native collaborators. When nil the linked
	// native engine is used, or the software engine if there is none.
	Runtime *ngl.Runtime
}

var (
	initOnce sync.Once
	initErr  error

	runtimeMu sync.Mutex
	current   *ngl.Runtime
)

// Init performs process setup. Only the first call has any effect; later
// calls return its result.
func Init(opts InitOptions) error {
	initOnce.Do(func() {
		initErr = setup(opts)
	})
	return initErr
}

func setup(opts InitOptions) error {
	const op = "nopegl.Init"

	rt := opts.Runtime
	if rt == nil {
		rt = defaultRuntime()
	}
	if opts.JavaVM != 0 {
		if rt.Media != nil {
			if ret := rt.Media.SetJavaVM(opts.JavaVM); ret < 0 {
				return nglerrors.Native(op, ret)
			}
		}
		if ret := rt.Engine.SetJavaVM(opts.JavaVM); ret < 0 {
			return nglerrors.Native(op, ret)
		}
	}

	logbridge.Install(logbridge.New(opts.Sink))
	logbridge.Attach(rt.Engine, rt.Media)

	if opts.AppContext != 0 {
		if ret := rt.Engine.SetAppContext(opts.AppContext); ret < 0 {
			return nglerrors.Native(op, ret)
		}
		if rt.Media != nil {
			if ret := rt.Media.SetAppContext(opts.AppContext); ret < 0 {
				return nglerrors.Native(op, ret)
			}
		}
	}

	runtimeMu.Lock()
	current = rt
	runtimeMu.Unlock()
	return nil
}

func defaultRuntime() *ngl.Runtime {
	rt, err := ngl.Native()
	if err == nil {
		return rt
	}
	Logger().Warn("native engine unavailable, using software engine", "err", err)
	sw := softgl.New().Runtime()
	return &sw
}

// processRuntime returns the runtime chosen by Init, running Init with
// default options if it has not been called.
func processRuntime() (*ngl.Runtime, error) {
	if err := Init(InitOptions{}); err != nil {
		return nil, err
	}
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	return current, nil
}

// CreateNativeWindow wraps a platform surface into a native window handle
// suitable for the "window" configuration property.
func CreateNativeWindow(surface any) (uintptr, error) {
	rt, err := processRuntime()
	if err != nil {
		return 0, err
	}
	if rt.Windows == nil {
		return 0, ngl.ErrNotSupported
	}
	return rt.Windows.AcquireWindow(surface)
}

// ReleaseNativeWindow releases a handle from CreateNativeWindow. Zero is
// ignored.
func ReleaseNativeWindow(window uintptr) {
	if window == 0 {
		return
	}
	rt, err := processRuntime()
	if err != nil || rt.Windows == nil {
		return
	}
	rt.Windows.ReleaseWindow(window)
}
