package ngl

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/nopeforge/nopegl-go/pkg/marshal"
)

func TestConfigFieldsNames(t *testing.T) {
	want := []string{
		"backend", "window", "offscreen", "width", "height", "samples",
		"setSurfacePts", "clearColor", "captureBuffer", "hud", "hudScale",
	}
	if len(ConfigFields) != len(want) {
		t.Fatalf("len(ConfigFields) = %d, want %d", len(ConfigFields), len(want))
	}
	for i, fd := range ConfigFields {
		if fd.Name != want[i] {
			t.Errorf("ConfigFields[%d].Name = %q, want %q", i, fd.Name, want[i])
		}
	}
}

func TestConfigFieldsMatchLayout(t *testing.T) {
	typ := reflect.TypeOf(Config{})
	byOffset := make(map[uintptr]reflect.StructField, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		byOffset[f.Offset] = f
	}
	for _, fd := range ConfigFields {
		f, ok := byOffset[fd.Offset]
		if !ok {
			t.Errorf("%q: offset %d does not start a Config field", fd.Name, fd.Offset)
			continue
		}
		if f.Type.Size() != fd.Tag.Width() {
			t.Errorf("%q: field %s is %d bytes, tag %s writes %d", fd.Name, f.Name, f.Type.Size(), fd.Tag, fd.Tag.Width())
		}
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.SwapInterval != SwapIntervalUnset {
		t.Errorf("SwapInterval = %d, want %d", cfg.SwapInterval, SwapIntervalUnset)
	}
	if cfg.CaptureBuffer != nil || cfg.Width != 0 || cfg.HUDScale != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestMarshalConfig(t *testing.T) {
	buf := NewDirectBuffer(64 * 64 * 4)
	defer buf.Free()

	cfg := NewConfig()
	err := marshal.Marshal(&cfg, ConfigFields, marshal.Map{
		"backend":       BackendVulkan,
		"offscreen":     true,
		"width":         64,
		"height":        64,
		"clearColor":    []float32{1, 0, 0, 1},
		"captureBuffer": buf,
		"hudScale":      2,
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if cfg.Backend != BackendVulkan || !cfg.Offscreen || cfg.Width != 64 || cfg.Height != 64 {
		t.Errorf("scalars not marshaled: %+v", cfg)
	}
	if cfg.ClearColor != [4]float32{1, 0, 0, 1} {
		t.Errorf("ClearColor = %v", cfg.ClearColor)
	}
	if cfg.CaptureBuffer != buf.Pointer() {
		t.Errorf("CaptureBuffer = %p, want %p", cfg.CaptureBuffer, buf.Pointer())
	}
	if cfg.HUDScale != 2 || cfg.HUD {
		t.Errorf("hud fields = %v/%d", cfg.HUD, cfg.HUDScale)
	}
	if cfg.SwapInterval != SwapIntervalUnset {
		t.Errorf("engine-internal SwapInterval overwritten: %d", cfg.SwapInterval)
	}
}

func TestDirectBuffer(t *testing.T) {
	buf := NewDirectBuffer(16)
	if buf.Len() != 16 || len(buf.Bytes()) != 16 {
		t.Fatalf("Len() = %d", buf.Len())
	}
	if buf.Pointer() != unsafe.Pointer(&buf.Bytes()[0]) {
		t.Error("Pointer() does not address the first byte")
	}
	buf.Free()
	if buf.Pointer() != nil || buf.Len() != 0 {
		t.Error("freed buffer still exposes memory")
	}

	var nilBuf *DirectBuffer
	if nilBuf.Pointer() != nil || nilBuf.Len() != 0 {
		t.Error("nil buffer should be empty")
	}
	nilBuf.Free()

	if NewDirectBuffer(0).Pointer() != nil {
		t.Error("empty buffer should have no address")
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{StatusOK, "ok"},
		{StatusMemory, "out of memory"},
		{StatusInvalidData, "invalid data"},
		{3, "ok (3)"},
		{-1, "status -1"},
	}
	for _, tt := range tests {
		if got := StatusString(tt.code); got != tt.want {
			t.Errorf("StatusString(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestStatusCodesAreNegative(t *testing.T) {
	for code := range statusNames {
		if code > 0 {
			t.Errorf("status %d should not be positive", code)
		}
	}
}
