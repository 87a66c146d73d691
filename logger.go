package mqttcodec

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync/atomic"
)

// LogLevel represents the logging level.
type LogLevel int32

const (
	// LogLevelDebug is the debug log level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the info log level.
	LogLevelInfo
	// LogLevelWarn is the warn log level.
	LogLevelWarn
	// LogLevelError is the error log level.
	LogLevelError
	// LogLevelNone disables all logging.
	LogLevelNone
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LogFields represents key-value pairs for structured logging.
type LogFields map[string]any

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, fields LogFields)

	// Info logs an info message.
	Info(msg string, fields LogFields)

	// Warn logs a warning message.
	Warn(msg string, fields LogFields)

	// Error logs an error message.
	Error(msg string, fields LogFields)

	// Level returns the current log level.
	Level() LogLevel

	// SetLevel sets the log level.
	SetLevel(level LogLevel)
}

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct{}

// NewNoOpLogger creates a new no-op logger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug does nothing.
func (*NoOpLogger) Debug(_ string, _ LogFields) {}

// Info does nothing.
func (*NoOpLogger) Info(_ string, _ LogFields) {}

// Warn does nothing.
func (*NoOpLogger) Warn(_ string, _ LogFields) {}

// Error does nothing.
func (*NoOpLogger) Error(_ string, _ LogFields) {}

// Level returns LogLevelNone.
func (*NoOpLogger) Level() LogLevel { return LogLevelNone }

// SetLevel does nothing.
func (*NoOpLogger) SetLevel(_ LogLevel) {}

// StdLogger writes structured log lines through the standard library
// logger.
type StdLogger struct {
	logger *log.Logger
	level  atomic.Int32
}

// NewStdLogger creates a logger writing to w at the given level.
func NewStdLogger(w io.Writer, level LogLevel) *StdLogger {
	l := &StdLogger{
		logger: log.New(w, "", log.LstdFlags),
	}
	l.level.Store(int32(level))
	return l
}

// Debug logs a debug message.
func (l *StdLogger) Debug(msg string, fields LogFields) {
	l.write(LogLevelDebug, msg, fields)
}

// Info logs an info message.
func (l *StdLogger) Info(msg string, fields LogFields) {
	l.write(LogLevelInfo, msg, fields)
}

// Warn logs a warning message.
func (l *StdLogger) Warn(msg string, fields LogFields) {
	l.write(LogLevelWarn, msg, fields)
}

// Error logs an error message.
func (l *StdLogger) Error(msg string, fields LogFields) {
	l.write(LogLevelError, msg, fields)
}

// Level returns the current log level.
func (l *StdLogger) Level() LogLevel {
	return LogLevel(l.level.Load())
}

// SetLevel sets the log level.
func (l *StdLogger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

func (l *StdLogger) write(level LogLevel, msg string, fields LogFields) {
	if level < l.Level() {
		return
	}

	var sb strings.Builder
	sb.WriteString("[" + level.String() + "] " + msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, fields[k])
		}
	}

	l.logger.Print(sb.String())
}
