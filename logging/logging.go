package logging

import (
	"fmt"
	"strings"
)

const (
	// AllLevel indicates that every log message should be emitted
	AllLevel = iota
	// TraceLevel indicates a log message's level of criticality
	TraceLevel
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
	// OffLevel indicates that no log message should be emitted
	OffLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case AllLevel:
		return "ALL"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	case OffLevel:
		return "OFF"
	default:
		return "TRACE"
	}
}

// ParseLevel translates one of ALL, DEBUG, ERROR, FATAL, INFO, OFF, TRACE or WARN
// (case-insensitive) to a log level enum
func ParseLevel(level string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "ALL":
		return AllLevel, nil
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	case "OFF":
		return OffLevel, nil
	default:
		return 0, fmt.Errorf("%q is not a log level, expected one of ALL, DEBUG, ERROR, FATAL, INFO, OFF, TRACE, WARN", level)
	}
}
