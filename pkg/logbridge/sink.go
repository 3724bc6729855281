package logbridge

import (
	"context"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
	"go.uber.org/zap"
)

// Sink is the host logging facility.
type Sink interface {
	Log(level Level, tag, msg string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(level Level, tag, msg string)

// Log implements Sink.
func (f SinkFunc) Log(level Level, tag, msg string) { f(level, tag, msg) }

type nopSink struct{}

func (nopSink) Log(Level, string, string) {}

// LevelVerbose is the slog level used for Verbose records.
const LevelVerbose = slog.LevelDebug - 4

type slogSink struct{ l *slog.Logger }

// SlogSink writes records to l with the tag as a "tag" attribute.
func SlogSink(l *slog.Logger) Sink {
	if l == nil {
		l = slog.Default()
	}
	return slogSink{l: l}
}

func (s slogSink) Log(level Level, tag, msg string) {
	var lvl slog.Level
	switch level {
	case Debug:
		lvl = slog.LevelDebug
	case Info:
		lvl = slog.LevelInfo
	case Warn:
		lvl = slog.LevelWarn
	case Error:
		lvl = slog.LevelError
	default:
		lvl = LevelVerbose
	}
	s.l.Log(context.Background(), lvl, msg, slog.String("tag", tag))
}

type zapSink struct{ l *zap.Logger }

// ZapSink writes records to l. Verbose and Debug both map to zap's debug.
func ZapSink(l *zap.Logger) Sink {
	if l == nil {
		l = zap.NewNop()
	}
	return zapSink{l: l}
}

func (s zapSink) Log(level Level, tag, msg string) {
	f := zap.String("tag", tag)
	switch level {
	case Info:
		s.l.Info(msg, f)
	case Warn:
		s.l.Warn(msg, f)
	case Error:
		s.l.Error(msg, f)
	default:
		s.l.Debug(msg, f)
	}
}

type charmSink struct{ l *charmlog.Logger }

// CharmSink writes records to a charmbracelet logger.
func CharmSink(l *charmlog.Logger) Sink {
	if l == nil {
		l = charmlog.Default()
	}
	return charmSink{l: l}
}

func (s charmSink) Log(level Level, tag, msg string) {
	switch level {
	case Info:
		s.l.Info(msg, "tag", tag)
	case Warn:
		s.l.Warn(msg, "tag", tag)
	case Error:
		s.l.Error(msg, "tag", tag)
	default:
		s.l.Debug(msg, "tag", tag)
	}
}
