package ngl

// Engine log levels.
const (
	LogVerbose = 0
	LogDebug   = 1
	LogInfo    = 2
	LogWarning = 3
	LogError   = 4
	LogQuiet   = 1 << 8
)

// Media framework log levels.
const (
	AVLogQuiet   = -8
	AVLogPanic   = 0
	AVLogFatal   = 8
	AVLogError   = 16
	AVLogWarning = 24
	AVLogInfo    = 32
	AVLogVerbose = 40
	AVLogDebug   = 48
	AVLogTrace   = 56
)
