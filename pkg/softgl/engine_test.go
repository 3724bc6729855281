package softgl

import (
	"testing"

	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

func offscreen(w, h int32) *ngl.Config {
	cfg := ngl.NewConfig()
	cfg.Offscreen = true
	cfg.Width, cfg.Height = w, h
	return &cfg
}

func loadScene(t *testing.T, e *Engine, h ngl.Handle, text string) {
	t.Helper()
	s := e.SceneCreate()
	defer e.SceneUnref(s)
	if ret := e.SceneInitFromString(s, text); ret != 0 {
		t.Fatalf("SceneInitFromString = %s", ngl.StatusString(ret))
	}
	if ret := e.SetScene(h, s); ret != 0 {
		t.Fatalf("SetScene = %s", ngl.StatusString(ret))
	}
}

func TestConfigureValidation(t *testing.T) {
	e := New()
	h := e.Create()
	defer e.Free(h)

	badBackend := offscreen(8, 8)
	badBackend.Backend = 7
	noWindow := ngl.NewConfig()
	noWindow.Width, noWindow.Height = 8, 8

	tests := []struct {
		name string
		cfg  *ngl.Config
		want int
	}{
		{"nil config", nil, ngl.StatusInvalidArg},
		{"zero size", offscreen(0, 8), ngl.StatusInvalidArg},
		{"negative size", offscreen(8, -1), ngl.StatusInvalidArg},
		{"backend", badBackend, ngl.StatusUnsupported},
		{"onscreen without window", &noWindow, ngl.StatusInvalidArg},
		{"ok", offscreen(8, 8), ngl.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Configure(h, tt.cfg); got != tt.want {
				t.Errorf("Configure = %s, want %s", ngl.StatusString(got), ngl.StatusString(tt.want))
			}
		})
	}

	if got := e.Configure(ngl.Handle(9999), offscreen(8, 8)); got != ngl.StatusInvalidArg {
		t.Errorf("Configure(unknown) = %s", ngl.StatusString(got))
	}
}

func TestDrawBeforeConfigure(t *testing.T) {
	e := New()
	h := e.Create()
	defer e.Free(h)

	if got := e.Draw(h, 0); got != ngl.StatusInvalidUsage {
		t.Errorf("Draw = %s, want invalid usage", ngl.StatusString(got))
	}
	s := e.SceneCreate()
	defer e.SceneUnref(s)
	if got := e.SetScene(h, s); got != ngl.StatusInvalidUsage {
		t.Errorf("SetScene = %s, want invalid usage", ngl.StatusString(got))
	}
}

func TestClearCapture(t *testing.T) {
	e := New()
	h := e.Create()
	defer e.Free(h)

	buf := ngl.NewDirectBuffer(64 * 64 * 4)
	defer buf.Free()

	cfg := offscreen(64, 64)
	cfg.ClearColor = [4]float32{1, 0, 0, 1}
	cfg.CaptureBuffer = buf.Pointer()
	if ret := e.Configure(h, cfg); ret != 0 {
		t.Fatalf("Configure = %s", ngl.StatusString(ret))
	}
	if ret := e.Draw(h, 0); ret != 0 {
		t.Fatalf("Draw = %s", ngl.StatusString(ret))
	}

	pix := buf.Bytes()
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 0xff || pix[i+1] != 0 || pix[i+2] != 0 || pix[i+3] != 0xff {
			t.Fatalf("pixel %d = %v, want opaque red", i/4, pix[i:i+4])
		}
	}
	if got := e.Frames(h); got != 1 {
		t.Errorf("Frames = %d, want 1", got)
	}
}

func TestSceneRendering(t *testing.T) {
	e := New()
	h := e.Create()
	defer e.Free(h)

	buf := ngl.NewDirectBuffer(32 * 32 * 4)
	defer buf.Free()

	cfg := offscreen(32, 32)
	cfg.ClearColor = [4]float32{0, 0, 0, 1}
	if ret := e.Configure(h, cfg); ret != 0 {
		t.Fatalf("Configure = %s", ngl.StatusString(ret))
	}
	if ret := e.SetCaptureBuffer(h, buf.Pointer()); ret != 0 {
		t.Fatalf("SetCaptureBuffer = %s", ngl.StatusString(ret))
	}

	// Green quad over the right half of the frame.
	loadScene(t, e, h, `# Nope.GL v0.11.0
Quad corner:0,-1,0 width:1,0,0 height:0,2,0
DCol color:0,1,0 geometry:1
`)
	if ret := e.Draw(h, 0.5); ret != 0 {
		t.Fatalf("Draw = %s", ngl.StatusString(ret))
	}

	at := func(x, y int) []byte {
		i := (y*32 + x) * 4
		return buf.Bytes()[i : i+4]
	}
	if p := at(4, 16); p[0] != 0 || p[1] != 0 || p[2] != 0 {
		t.Errorf("left pixel = %v, want black", p)
	}
	if p := at(24, 16); p[1] < 0xf0 || p[0] != 0 {
		t.Errorf("right pixel = %v, want green", p)
	}
}

func TestSceneRefcounting(t *testing.T) {
	e := New()
	h := e.Create()
	if ret := e.Configure(h, offscreen(4, 4)); ret != 0 {
		t.Fatalf("Configure = %s", ngl.StatusString(ret))
	}

	loadScene(t, e, h, redScene)
	if got := e.Stats().Scenes; got != 1 {
		t.Fatalf("Scenes after load = %d, want 1", got)
	}
	if _, ok := e.sceneMetadata(h); !ok {
		t.Error("sceneMetadata: no scene installed")
	}

	// Replacing the scene drops the old one.
	loadScene(t, e, h, redScene)
	if got := e.Stats().Scenes; got != 1 {
		t.Errorf("Scenes after reload = %d, want 1", got)
	}

	if ret := e.SetScene(h, 0); ret != 0 {
		t.Fatalf("SetScene(0) = %s", ngl.StatusString(ret))
	}
	if got := e.Stats().Scenes; got != 0 {
		t.Errorf("Scenes after reset = %d, want 0", got)
	}

	loadScene(t, e, h, redScene)
	e.Free(h)
	if got := e.Stats(); got != (Stats{}) {
		t.Errorf("Stats after Free = %+v, want zero", got)
	}
}

func TestFailedInitKeepsScene(t *testing.T) {
	e := New()
	s := e.SceneCreate()
	defer e.SceneUnref(s)

	if ret := e.SceneInitFromString(s, redScene); ret != 0 {
		t.Fatalf("SceneInitFromString = %s", ngl.StatusString(ret))
	}
	if ret := e.SceneInitFromString(s, "nope"); ret >= 0 {
		t.Fatalf("SceneInitFromString(invalid) = %d, want negative", ret)
	}

	h := e.Create()
	defer e.Free(h)
	if ret := e.Configure(h, offscreen(4, 4)); ret != 0 {
		t.Fatalf("Configure = %s", ngl.StatusString(ret))
	}
	if ret := e.SetScene(h, s); ret != 0 {
		t.Errorf("SetScene = %s, want ok", ngl.StatusString(ret))
	}
}

func TestUninitializedSceneRejected(t *testing.T) {
	e := New()
	h := e.Create()
	defer e.Free(h)
	if ret := e.Configure(h, offscreen(4, 4)); ret != 0 {
		t.Fatalf("Configure = %s", ngl.StatusString(ret))
	}
	s := e.SceneCreate()
	defer e.SceneUnref(s)
	if ret := e.SetScene(h, s); ret != ngl.StatusInvalidUsage {
		t.Errorf("SetScene = %s, want invalid usage", ngl.StatusString(ret))
	}
}

func TestResize(t *testing.T) {
	e := New()
	h := e.Create()
	defer e.Free(h)

	if ret := e.Configure(h, offscreen(256, 256)); ret != 0 {
		t.Fatalf("Configure = %s", ngl.StatusString(ret))
	}
	if ret := e.Resize(h, 128, 128); ret == 0 {
		t.Error("Resize of an offscreen context should fail")
	}

	win, err := e.AcquireWindow(Surface{Width: 100, Height: 50})
	if err != nil {
		t.Fatalf("AcquireWindow: %v", err)
	}
	defer e.ReleaseWindow(win)

	cfg := ngl.NewConfig()
	cfg.Window = int64(win)
	if ret := e.Configure(h, &cfg); ret != 0 {
		t.Fatalf("Configure onscreen = %s", ngl.StatusString(ret))
	}
	if ret := e.Resize(h, 0, 10); ret != ngl.StatusInvalidArg {
		t.Errorf("Resize(0, 10) = %s", ngl.StatusString(ret))
	}
	if ret := e.Resize(h, 200, 80); ret != 0 {
		t.Fatalf("Resize = %s", ngl.StatusString(ret))
	}
	if w, ht, _ := e.WindowSize(win); w != 200 || ht != 80 {
		t.Errorf("WindowSize = %dx%d, want 200x80", w, ht)
	}
	if ret := e.Draw(h, 0); ret != 0 {
		t.Errorf("Draw = %s", ngl.StatusString(ret))
	}
}

func TestWindows(t *testing.T) {
	e := New()
	if _, err := e.AcquireWindow("surface"); err == nil {
		t.Error("AcquireWindow accepted a string")
	}
	if _, err := e.AcquireWindow((*Surface)(nil)); err == nil {
		t.Error("AcquireWindow accepted a nil surface")
	}
	w, err := e.AcquireWindow(&Surface{Width: 1, Height: 1})
	if err != nil || w == 0 {
		t.Fatalf("AcquireWindow = %d, %v", w, err)
	}
	e.ReleaseWindow(0)
	if got := e.Stats().Windows; got != 1 {
		t.Errorf("Windows = %d, want 1", got)
	}
	e.ReleaseWindow(w)
	if got := e.Stats().Windows; got != 0 {
		t.Errorf("Windows = %d, want 0", got)
	}
}

func TestEngineLog(t *testing.T) {
	e := New()
	type rec struct {
		level int
		fn    string
		msg   string
	}
	var got []rec
	e.SetLogCallback(func(level int, file string, line int, fn string, msg string) {
		if file == "" || line == 0 {
			t.Errorf("record without location: %q:%d", file, line)
		}
		got = append(got, rec{level, fn, msg})
	})

	h := e.Create()
	defer e.Free(h)
	e.Configure(h, offscreen(0, 0))
	e.Configure(h, offscreen(2, 2))
	e.Draw(h, 0)

	if len(got) != 2 {
		t.Fatalf("records = %+v, want error and info", got)
	}
	if got[0].level != ngl.LogError || got[0].fn != "Configure" {
		t.Errorf("first record = %+v", got[0])
	}
	if got[1].level != ngl.LogInfo {
		t.Errorf("second record = %+v", got[1])
	}

	got = nil
	e.SetLogMinLevel(ngl.LogVerbose)
	e.Draw(h, 1)
	if len(got) != 1 || got[0].level != ngl.LogVerbose {
		t.Errorf("verbose records = %+v", got)
	}

	e.SetLogCallback(nil)
	e.Draw(h, 2)
}

func TestMedia(t *testing.T) {
	e := New()
	m := e.Media()
	var msgs []string
	m.SetLogCallback(func(level int, msg string) { msgs = append(msgs, msg) })

	m.Logf(ngl.AVLogDebug, "hidden")
	m.Logf(ngl.AVLogWarning, "shown %d", 1)
	if len(msgs) != 1 || msgs[0] != "shown 1\n" {
		t.Errorf("msgs = %q", msgs)
	}

	m.SetLogLevel(ngl.AVLogTrace)
	if m.LogLevel() != ngl.AVLogTrace {
		t.Errorf("LogLevel = %d", m.LogLevel())
	}

	m.SetJavaVM(1)
	m.SetAppContext(2)
	if vm, ref := m.AppContext(); vm != 1 || ref != 2 {
		t.Errorf("AppContext = %d, %d", vm, ref)
	}
	e.SetJavaVM(3)
	e.SetAppContext(4)
	if vm, ref := e.AppContext(); vm != 3 || ref != 4 {
		t.Errorf("engine AppContext = %d, %d", vm, ref)
	}
}
