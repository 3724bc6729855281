// Package logbridge forwards the engine's and the media framework's native
// log records to a host logging sink.
//
// Native severities are mapped through fixed tables. Anything a table does not
// cover, including out-of-range values, maps to Verbose: records are never
// dropped on account of their level.
package logbridge

import (
	"fmt"

	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

// Level is a host log severity.
type Level int8

const (
	Verbose Level = iota
	Debug
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Verbose:
		return "verbose"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Level(%d)", int8(l))
	}
}

// Source tags attached to forwarded records.
const (
	EngineTag = "ngl"
	MediaTag  = "ffmpeg"
)

var engineLevels = [...]Level{
	ngl.LogVerbose: Verbose,
	ngl.LogDebug:   Debug,
	ngl.LogInfo:    Info,
	ngl.LogWarning: Warn,
	ngl.LogError:   Error,
}

var mediaLevels = map[int]Level{
	ngl.AVLogTrace:   Verbose,
	ngl.AVLogVerbose: Verbose,
	ngl.AVLogDebug:   Debug,
	ngl.AVLogInfo:    Info,
	ngl.AVLogWarning: Warn,
	ngl.AVLogError:   Error,
}

// EngineLevel maps a native engine severity to a host level.
func EngineLevel(native int) Level {
	if native >= 0 && native < len(engineLevels) {
		return engineLevels[native]
	}
	return Verbose
}

// MediaLevel maps a native media framework severity to a host level.
func MediaLevel(native int) Level {
	if l, ok := mediaLevels[native]; ok {
		return l
	}
	return Verbose
}
