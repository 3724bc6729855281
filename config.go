package nopegl

import (
	"github.com/nopeforge/nopegl-go/pkg/marshal"
	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

// Rendering backends accepted in Config.Backend.
const (
	BackendAuto     = ngl.BackendAuto
	BackendOpenGL   = ngl.BackendOpenGL
	BackendOpenGLES = ngl.BackendOpenGLES
	BackendVulkan   = ngl.BackendVulkan
)

// Config is the typed host configuration. It supplies every property named
// in ngl.ConfigFields; a nil CaptureBuffer is treated as absent.
type Config struct {
	Backend       int32
	Window        int64
	Offscreen     bool
	Width         int32
	Height        int32
	Samples       int32
	SetSurfacePts bool
	ClearColor    [4]float32
	CaptureBuffer ngl.Buffer
	HUD           bool
	HUDScale      int32
}

var _ marshal.Object = (*Config)(nil)

// DefaultConfig returns a configuration with the HUD scale set to 1 and
// everything else zero.
func DefaultConfig() Config {
	return Config{HUDScale: 1}
}

// Field implements marshal.Object.
func (c *Config) Field(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	switch name {
	case "backend":
		return c.Backend, true
	case "window":
		return c.Window, true
	case "offscreen":
		return c.Offscreen, true
	case "width":
		return c.Width, true
	case "height":
		return c.Height, true
	case "samples":
		return c.Samples, true
	case "setSurfacePts":
		return c.SetSurfacePts, true
	case "clearColor":
		return c.ClearColor, true
	case "captureBuffer":
		if c.CaptureBuffer == nil {
			return nil, false
		}
		return c.CaptureBuffer, true
	case "hud":
		return c.HUD, true
	case "hudScale":
		return c.HUDScale, true
	}
	return nil, false
}
