// Package log provides a small, concurrency-safe logging interface based
// on [log/slog].
//
// The zero value Logger is usable and discards everything, so library code
// can hold a Logger unconditionally:
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelTrace))
//	logger.Debug("matching", slog.Int("tokens", len(args)))
//
// Output format, minimum level, time layout, caller info, and ANSI-colored
// pretty printing are all applied at creation time using functional
// options.
package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger wraps a [slog.Logger] configured through functional options.
type Logger struct {
	*slog.Logger

	level  Level
	format Format
}

// Make creates a new [Logger] that writes to w. The default configuration
// is [DefaultLevel], [DefaultFormat], [DefaultTimeLayout], caller info
// disabled, and pretty printing disabled.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{
		Logger: slog.New(cfg.handler()),
		level:  cfg.level,
		format: cfg.format,
	}
}

// With returns a new Logger that includes the given attributes in every
// message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
		level:  l.level,
		format: l.format,
	}
}

// Level returns the minimum level the logger was created with.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the output format the logger was created with.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	return l.format
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(LevelTrace, msg, attrs...)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(LevelDebug, msg, attrs...)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(LevelInfo, msg, attrs...)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(LevelWarn, msg, attrs...)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(LevelError, msg, attrs...)
}

func (l Logger) log(level Level, msg string, attrs ...slog.Attr) {
	// Zero value loggers silently discard.
	if l.Logger == nil {
		return
	}

	ctx := context.Background()
	if !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	// Capture the caller of the exported level method: runtime.Callers,
	// log, and the wrapper itself make three frames to skip.
	var pcs [1]uintptr

	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.Handler().Handle(ctx, r)
}
