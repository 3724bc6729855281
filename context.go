package nopegl

import (
	"fmt"
	"unsafe"

	"github.com/google/uuid"

	nglerrors "github.com/nopeforge/nopegl-go/pkg/errors"
	"github.com/nopeforge/nopegl-go/pkg/marshal"
	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

// State is a Context lifecycle state.
type State int

const (
	Uninitialized State = iota
	Created
	Configured
	Running
	Released
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Created:
		return "created"
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// Option configures NewContext.
type Option func(*contextOptions)

type contextOptions struct {
	engine ngl.Engine
}

// WithEngine drives the context with e instead of the process runtime.
func WithEngine(e ngl.Engine) Option {
	return func(o *contextOptions) { o.engine = e }
}

// WithRuntime drives the context with the engine of rt.
func WithRuntime(rt ngl.Runtime) Option {
	return func(o *contextOptions) { o.engine = rt.Engine }
}

// Context owns one native engine context. It is not safe for concurrent use:
// a single owner drives the whole lifecycle.
type Context struct {
	id      uuid.UUID
	engine  ngl.Engine
	handle  ngl.Handle
	state   State
	scene   bool
	capture ngl.Buffer
	// pinned wraps a []byte capture handed in through Configure.
	pinned *ngl.DirectBuffer

	// Current target size, used to bound capture writes. Set by Configure
	// and updated by a successful onscreen Resize.
	offscreen     bool
	width, height int32
}

// NewContext allocates a native context. It returns ErrOutOfMemory when the
// engine cannot allocate one.
func NewContext(opts ...Option) (*Context, error) {
	const op = "nopegl.NewContext"

	var o contextOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		rt, err := processRuntime()
		if err != nil {
			return nil, err
		}
		o.engine = rt.Engine
	}

	h := o.engine.Create()
	if h == 0 {
		return nil, &nglerrors.Error{Op: op, Kind: nglerrors.KindAllocation, Code: ngl.StatusMemory, Err: nglerrors.ErrOutOfMemory}
	}
	c := &Context{
		id:     uuid.New(),
		engine: o.engine,
		handle: h,
		state:  Created,
	}
	Logger().Debug("context created", "ctx", c.id)
	return c, nil
}

// ID identifies the context in diagnostics.
func (c *Context) ID() uuid.UUID { return c.id }

// State returns the lifecycle state.
func (c *Context) State() State {
	if c == nil {
		return Uninitialized
	}
	return c.state
}

// HasScene reports whether a scene is installed.
func (c *Context) HasScene() bool { return c != nil && c.scene }

// Handle returns the native handle, or 0 once released.
func (c *Context) Handle() ngl.Handle {
	if c == nil {
		return 0
	}
	return c.handle
}

func (c *Context) check(op string, allowed ...State) error {
	if c == nil || c.state == Released || c.handle == 0 {
		return nglerrors.New(op, nglerrors.KindInvalidHandle, nglerrors.ErrInvalidHandle)
	}
	for _, s := range allowed {
		if c.state == s {
			return nil
		}
	}
	return nglerrors.New(op, nglerrors.KindInvalidState, nglerrors.ErrInvalidState)
}

// Configure marshals cfg into the engine's parameter block and applies it.
// A missing or mistyped property keeps the engine default. On an engine
// failure the context drops back to Created and must be configured again
// before drawing; a marshal failure leaves the state unchanged.
//
// A captureBuffer given as ngl.Buffer is retained; a []byte is pinned and
// retained until replaced or released. Raw addresses carry no length and
// fail with ErrInvalidBuffer.
func (c *Context) Configure(cfg marshal.Object) error {
	const op = "nopegl.Context.Configure"
	if err := c.check(op, Created, Configured, Running); err != nil {
		return err
	}

	capture, pinned, err := captureFrom(cfg)
	if err != nil {
		return nglerrors.New(op, nglerrors.KindInvalidBuffer, err)
	}
	obj := cfg
	if pinned != nil {
		obj = withCapture{Object: cfg, buf: pinned}
	}

	native := ngl.NewConfig()
	if err := marshal.Marshal(&native, ngl.ConfigFields, obj); err != nil {
		pinned.Free()
		return nglerrors.New(op, nglerrors.KindMarshal, err)
	}
	if ret := c.engine.Configure(c.handle, &native); ret < 0 {
		pinned.Free()
		c.state = Created
		Logger().Debug("configure failed", "ctx", c.id, "status", ngl.StatusString(ret))
		return nglerrors.Native(op, ret)
	}

	if capture != nil {
		c.setCapture(capture, pinned)
	}
	c.offscreen = native.Offscreen
	c.width, c.height = native.Width, native.Height
	if !native.Offscreen && (c.width <= 0 || c.height <= 0) {
		c.width, c.height = 0, 0
		if ws, ok := c.engine.(ngl.WindowSizer); ok {
			if w, h, ok := ws.WindowSize(uintptr(native.Window)); ok {
				c.width, c.height = int32(w), int32(h)
			}
		}
	}
	c.state = Configured
	Logger().Debug("context configured", "ctx", c.id,
		"offscreen", native.Offscreen, "width", native.Width, "height", native.Height)
	return nil
}

// LoadScene parses text into a new scene and installs it. If the engine
// rejects the text, the previously installed scene stays active.
func (c *Context) LoadScene(text string) error {
	const op = "nopegl.Context.LoadScene"
	if err := c.check(op, Configured, Running); err != nil {
		return err
	}
	if err := loadScene(op, c.engine, c.handle, text); err != nil {
		return err
	}
	c.scene = true
	Logger().Debug("scene loaded", "ctx", c.id, "bytes", len(text))
	return nil
}

// ResetScene removes the installed scene and draws one frame at time zero so
// the previous content is flushed. Engine failures are reported to the
// error handler, never returned.
func (c *Context) ResetScene() error {
	const op = "nopegl.Context.ResetScene"
	if err := c.check(op, Configured, Running); err != nil {
		return err
	}
	if ret := c.engine.SetScene(c.handle, 0); ret < 0 {
		nglerrors.ReportNative(op, ret)
	} else {
		c.scene = false
	}
	if err := c.captureFits(op); err != nil {
		var e *nglerrors.Error
		if nglerrors.As(err, &e) {
			nglerrors.Report(e)
		}
		return nil
	}
	if ret := c.engine.Draw(c.handle, 0); ret < 0 {
		nglerrors.ReportNative(op, ret)
	} else {
		c.state = Running
	}
	return nil
}

// Resize forwards new surface dimensions to the engine. Values are not
// validated here.
func (c *Context) Resize(width, height int32) error {
	const op = "nopegl.Context.Resize"
	if err := c.check(op, Configured, Running); err != nil {
		return err
	}
	if ret := c.engine.Resize(c.handle, width, height); ret < 0 {
		return nglerrors.Native(op, ret)
	}
	if !c.offscreen {
		c.width, c.height = width, height
	}
	return nil
}

// Draw renders the frame at time t. The first successful draw moves the
// context to Running.
func (c *Context) Draw(t float64) error {
	const op = "nopegl.Context.Draw"
	if err := c.check(op, Configured, Running); err != nil {
		return err
	}
	if err := c.captureFits(op); err != nil {
		return err
	}
	if ret := c.engine.Draw(c.handle, t); ret < 0 {
		return nglerrors.Native(op, ret)
	}
	if c.state == Configured {
		Logger().Debug("context running", "ctx", c.id)
	}
	c.state = Running
	return nil
}

// SetCaptureBuffer makes buf the destination of pixel readback on each
// draw. The buffer stays owned by the caller, and the context keeps a
// reference so it outlives the engine's use of its address.
func (c *Context) SetCaptureBuffer(buf ngl.Buffer) error {
	const op = "nopegl.Context.SetCaptureBuffer"
	if err := c.check(op, Created, Configured, Running); err != nil {
		return err
	}
	if buf == nil || buf.Pointer() == nil {
		return nglerrors.New(op, nglerrors.KindInvalidBuffer, nglerrors.ErrInvalidBuffer)
	}
	if ret := c.engine.SetCaptureBuffer(c.handle, buf.Pointer()); ret < 0 {
		return nglerrors.Native(op, ret)
	}
	c.setCapture(buf, nil)
	return nil
}

// Release frees the native context. It is safe to call more than once;
// every other operation on a released context returns ErrInvalidHandle.
func (c *Context) Release() {
	if c == nil || c.state == Released {
		return
	}
	if c.handle != 0 {
		c.engine.Free(c.handle)
	}
	c.handle = 0
	c.state = Released
	c.scene = false
	c.setCapture(nil, nil)
	Logger().Debug("context released", "ctx", c.id)
}

// setCapture replaces the retained capture target, unpinning a slice this
// context pinned earlier.
func (c *Context) setCapture(buf ngl.Buffer, pinned *ngl.DirectBuffer) {
	if c.pinned != nil && c.pinned != pinned {
		c.pinned.Free()
	}
	c.capture = buf
	c.pinned = pinned
}

// captureFits checks that the capture target holds a full frame at the
// current target size.
func (c *Context) captureFits(op string) error {
	if c.capture == nil {
		return nil
	}
	need := int(c.width) * int(c.height) * 4
	if need <= 0 {
		return nglerrors.New(op, nglerrors.KindInvalidBuffer,
			fmt.Errorf("%w: target size unknown", nglerrors.ErrInvalidBuffer))
	}
	if n := c.capture.Len(); n < need {
		return nglerrors.New(op, nglerrors.KindInvalidBuffer,
			fmt.Errorf("%w: %d bytes, frame needs %d", nglerrors.ErrInvalidBuffer, n, need))
	}
	return nil
}

// captureFrom resolves the captureBuffer property of cfg into a sized
// buffer. A []byte is pinned and returned as both values; raw addresses
// carry no length and are rejected. Absent or empty values yield nil.
func captureFrom(cfg marshal.Object) (ngl.Buffer, *ngl.DirectBuffer, error) {
	if cfg == nil {
		return nil, nil, nil
	}
	v, ok := cfg.Field("captureBuffer")
	if !ok || v == nil {
		return nil, nil, nil
	}
	switch b := v.(type) {
	case ngl.Buffer:
		if b.Pointer() == nil {
			return nil, nil, nil
		}
		return b, nil, nil
	case []byte:
		if len(b) == 0 {
			return nil, nil, nil
		}
		p := ngl.PinBytes(b)
		return p, p, nil
	case unsafe.Pointer:
		if b == nil {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: raw address has no length", nglerrors.ErrInvalidBuffer)
	case marshal.Addresser:
		if b.Pointer() == nil {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: %T has no length", nglerrors.ErrInvalidBuffer, v)
	}
	return nil, nil, nil
}

// withCapture substitutes the pinned capture buffer for the caller's value.
type withCapture struct {
	marshal.Object
	buf ngl.Buffer
}

func (o withCapture) Field(name string) (any, bool) {
	if name == "captureBuffer" {
		return o.buf, true
	}
	return o.Object.Field(name)
}

// Status converts an error returned by this package to an engine status
// code. Native codes are returned unchanged; nil maps to ngl.StatusOK.
func Status(err error) int {
	if err == nil {
		return ngl.StatusOK
	}
	if code, ok := nglerrors.Code(err); ok {
		return code
	}
	switch nglerrors.KindOf(err) {
	case nglerrors.KindAllocation:
		return ngl.StatusMemory
	case nglerrors.KindInvalidHandle, nglerrors.KindInvalidState:
		return ngl.StatusInvalidUsage
	case nglerrors.KindInvalidBuffer, nglerrors.KindMarshal:
		return ngl.StatusInvalidArg
	}
	return ngl.StatusGeneric
}
