package logging

import (
	"context"
	"io"
	"log/slog"
)

// slog has no notion of TRACE, FATAL, ALL or OFF, so they are placed around its built-in levels
const (
	slogLevelAll   = slog.Level(-12)
	slogLevelTrace = slog.Level(-8)
	slogLevelFatal = slog.Level(12)
	slogLevelOff   = slog.Level(1 << 10)
)

// Logger is a leveled logger whose verbosity belongs to the instance,
// so that changing it never affects other Loggers in the process.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
}

// New creates a Logger writing text records to w, at the given level
func New(w io.Writer, level int) *Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(toSlogLevel(level))
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{Logger: slog.New(handler), level: lvl}
}

// Discard creates a Logger which drops every record
func Discard() *Logger {
	return New(io.Discard, OffLevel)
}

// SetLevel changes the verbosity of this Logger
func (l *Logger) SetLevel(level int) {
	l.level.Set(toSlogLevel(level))
}

// Level returns the current verbosity of this Logger
func (l *Logger) Level() int {
	switch lvl := l.level.Level(); {
	case lvl <= slogLevelAll:
		return AllLevel
	case lvl <= slogLevelTrace:
		return TraceLevel
	case lvl <= slog.LevelDebug:
		return DebugLevel
	case lvl <= slog.LevelInfo:
		return InfoLevel
	case lvl <= slog.LevelWarn:
		return WarnLevel
	case lvl <= slog.LevelError:
		return ErrorLevel
	case lvl <= slogLevelFatal:
		return FatalLevel
	default:
		return OffLevel
	}
}

// Trace logs at TRACE level
func (l *Logger) Trace(msg string, args ...any) {
	l.Log(context.Background(), slogLevelTrace, msg, args...)
}

// Fatal logs at FATAL level. Unlike log.Fatal, it does not exit the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Log(context.Background(), slogLevelFatal, msg, args...)
}

func toSlogLevel(level int) slog.Level {
	switch level {
	case AllLevel:
		return slogLevelAll
	case TraceLevel:
		return slogLevelTrace
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	case FatalLevel:
		return slogLevelFatal
	case OffLevel:
		return slogLevelOff
	default:
		return slog.LevelInfo
	}
}
