package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	charmlog "github.com/charmbracelet/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nopeforge/nopegl-go/pkg/logbridge"
)

// newSink builds the sink that receives engine and media records. The
// returned flush function must be called before exiting.
func newSink(kind string, w io.Writer, verbose bool) (logbridge.Sink, func(), error) {
	switch kind {
	case "", "charm":
		l := charmlog.NewWithOptions(w, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
			Prefix:          "nglrender",
		})
		if verbose {
			l.SetLevel(charmlog.DebugLevel)
		}
		return logbridge.CharmSink(l), func() {}, nil

	case "slog":
		level := slog.LevelInfo
		if verbose {
			level = logbridge.LevelVerbose
		}
		l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
		return logbridge.SlogSink(l), func() {}, nil

	case "zap":
		level := zapcore.InfoLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		enc := zap.NewDevelopmentEncoderConfig()
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
		l := zap.New(core)
		return logbridge.ZapSink(l), func() { _ = l.Sync() }, nil
	}
	return nil, nil, fmt.Errorf("unknown logger %q (use charm, slog, or zap)", kind)
}

// diagnostics returns the slog logger used for the layer's own messages.
func diagnostics(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
