package logbridge

import (
	"strconv"
	"strings"
	"sync/atomic"

	nglerrors "github.com/nopeforge/nopegl-go/pkg/errors"
	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

// Bridge formats native records and hands them to a Sink.
type Bridge struct {
	sink Sink
}

// New returns a bridge writing to sink. A nil sink discards records.
func New(sink Sink) *Bridge {
	if sink == nil {
		sink = nopSink{}
	}
	return &Bridge{sink: sink}
}

// Engine forwards one engine record as "<file>:<line> <function>: <message>".
func (b *Bridge) Engine(level int, file string, line int, fn string, msg string) {
	defer nglerrors.Recover("logbridge.Engine")
	var sb strings.Builder
	sb.Grow(len(file) + len(fn) + len(msg) + 16)
	sb.WriteString(file)
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(line))
	sb.WriteByte(' ')
	sb.WriteString(fn)
	sb.WriteString(": ")
	sb.WriteString(msg)
	b.sink.Log(EngineLevel(level), EngineTag, sb.String())
}

// Media forwards one media framework record unchanged apart from its
// trailing newline.
func (b *Bridge) Media(level int, msg string) {
	defer nglerrors.Recover("logbridge.Media")
	b.sink.Log(MediaLevel(level), MediaTag, strings.TrimRight(msg, "\n"))
}

var installed atomic.Pointer[Bridge]

var nop = New(nil)

// Install makes b the process-wide bridge used by EngineCallback and
// MediaCallback. Passing nil restores the discarding bridge.
func Install(b *Bridge) {
	installed.Store(b)
}

// Installed returns the process-wide bridge. It is safe to call before
// Install.
func Installed() *Bridge {
	if b := installed.Load(); b != nil {
		return b
	}
	return nop
}

// EngineCallback forwards to the installed bridge. It is the function
// registered with ngl.Engine.SetLogCallback.
func EngineCallback(level int, file string, line int, fn string, msg string) {
	Installed().Engine(level, file, line, fn, msg)
}

// MediaCallback forwards to the installed bridge. It is the function
// registered with ngl.Media.SetLogCallback.
func MediaCallback(level int, msg string) {
	Installed().Media(level, msg)
}

// Attach registers the process-wide callbacks with both native log sources
// and sets their minimum verbosity to info.
func Attach(engine ngl.Engine, media ngl.Media) {
	if engine != nil {
		engine.SetLogCallback(EngineCallback)
		engine.SetLogMinLevel(ngl.LogInfo)
	}
	if media != nil {
		media.SetLogLevel(ngl.AVLogInfo)
		media.SetLogCallback(MediaCallback)
	}
}
