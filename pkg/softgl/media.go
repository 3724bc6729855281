package softgl

import (
	"fmt"
	"sync"

	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

// Media stands in for the media framework linked next to the engine. It
// records registrations and filters its records by level the way the
// framework does: lower values are more severe.
type Media struct {
	mu     sync.Mutex
	fn     ngl.MediaLogFunc
	level  int
	javaVM uintptr
	appCtx uintptr
}

func newMedia() *Media {
	return &Media{level: ngl.AVLogInfo}
}

// SetLogCallback implements ngl.Media.
func (m *Media) SetLogCallback(fn ngl.MediaLogFunc) {
	m.mu.Lock()
	m.fn = fn
	m.mu.Unlock()
}

// SetLogLevel implements ngl.Media.
func (m *Media) SetLogLevel(level int) {
	m.mu.Lock()
	m.level = level
	m.mu.Unlock()
}

// LogLevel returns the current verbosity.
func (m *Media) LogLevel() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

// SetJavaVM implements ngl.Media.
func (m *Media) SetJavaVM(vm uintptr) int {
	m.mu.Lock()
	m.javaVM = vm
	m.mu.Unlock()
	return 0
}

// SetAppContext implements ngl.Media.
func (m *Media) SetAppContext(ref uintptr) int {
	m.mu.Lock()
	m.appCtx = ref
	m.mu.Unlock()
	return 0
}

// AppContext returns the registered VM and application context.
func (m *Media) AppContext() (vm, ref uintptr) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.javaVM, m.appCtx
}

// Logf emits a record through the installed callback when level passes the
// current verbosity. Records end with a newline like the framework's own.
func (m *Media) Logf(level int, format string, args ...any) {
	m.mu.Lock()
	fn, limit := m.fn, m.level
	m.mu.Unlock()
	if fn == nil || level > limit {
		return
	}
	fn(level, fmt.Sprintf(format, args...)+"\n")
}
