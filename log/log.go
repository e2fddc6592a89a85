// Package log provides leveled logging for the maxrng library.
//
// The package exposes the classic Tracef..Criticalf interface and forwards to
// a log/slog backend. The level gate is checked with an atomic before any
// formatting work is done, so disabled levels are cheap.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

// Severity describes a log level.
type Severity uint32

const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

var logLevel = uint32(InfoLevel)

// SetLogLevel sets the minimum severity that is logged.
func SetLogLevel(level Severity) {
	if level < TraceLevel || level > CriticalLevel {
		return
	}
	atomic.StoreUint32(&logLevel, uint32(level))
}

// GetLogLevel returns the current minimum severity.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(&logLevel))
}

// ParseLevel returns the Severity for the given name, or 0 if unknown.
func ParseLevel(level string) Severity {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warning":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical":
		return CriticalLevel
	}
	return 0
}

func (s Severity) String() string {
	switch s {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarningLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	case CriticalLevel:
		return "critical"
	default:
		return "none"
	}
}

func (s Severity) toSLogLevel() slog.Level {
	// slog has no trace or critical level, map them to the edges.
	switch s {
	case TraceLevel:
		return slog.LevelDebug - 4
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarningLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func log(level Severity, msg string) {
	if uint32(level) < atomic.LoadUint32(&logLevel) {
		return
	}
	logger().Log(context.Background(), level.toSLogLevel(), msg)
}

func Trace(msg string) { log(TraceLevel, msg) }

func Tracef(format string, things ...interface{}) {
	if uint32(TraceLevel) >= atomic.LoadUint32(&logLevel) {
		log(TraceLevel, fmt.Sprintf(format, things...))
	}
}

func Debug(msg string) { log(DebugLevel, msg) }

func Debugf(format string, things ...interface{}) {
	if uint32(DebugLevel) >= atomic.LoadUint32(&logLevel) {
		log(DebugLevel, fmt.Sprintf(format, things...))
	}
}

func Info(msg string) { log(InfoLevel, msg) }

func Infof(format string, things ...interface{}) {
	if uint32(InfoLevel) >= atomic.LoadUint32(&logLevel) {
		log(InfoLevel, fmt.Sprintf(format, things...))
	}
}

func Warning(msg string) { log(WarningLevel, msg) }

func Warningf(format string, things ...interface{}) {
	if uint32(WarningLevel) >= atomic.LoadUint32(&logLevel) {
		log(WarningLevel, fmt.Sprintf(format, things...))
	}
}

func Error(msg string) { log(ErrorLevel, msg) }

func Errorf(format string, things ...interface{}) {
	if uint32(ErrorLevel) >= atomic.LoadUint32(&logLevel) {
		log(ErrorLevel, fmt.Sprintf(format, things...))
	}
}

func Critical(msg string) { log(CriticalLevel, msg) }

func Criticalf(format string, things ...interface{}) {
	if uint32(CriticalLevel) >= atomic.LoadUint32(&logLevel) {
		log(CriticalLevel, fmt.Sprintf(format, things...))
	}
}
