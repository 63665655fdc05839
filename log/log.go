// Package log implements structured logging for the chain-spec tooling.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// log.DefaultCaller + 1 for the leveling wrapper in this package.
const defaultCallerUnwind = 5

// Logger is a structured logger.
type Logger struct {
	base   log.Logger
	logger log.Logger
	level  Level
	module string
}

// NewDefaultLogger initializes a new logger instance with default settings.
// For usage outside tests, prefer RootLogger() from package `cmd/common`.
func NewDefaultLogger(module string) *Logger {
	logger, err := NewLogger(module, os.Stdout, FmtJSON, LevelInfo)
	if err != nil {
		// NewLogger only fails on an invalid format.
		panic(err)
	}
	return logger
}

// NewNopLogger returns a logger that discards everything. Library entry
// points that are not handed a logger use it.
func NewNopLogger() *Logger {
	return &Logger{
		base:   log.NewNopLogger(),
		logger: log.NewNopLogger(),
		level:  LevelError,
		module: "nop",
	}
}

// NewLogger initializes a new logger instance.
func NewLogger(module string, w io.Writer, format Format, lvl Level) (*Logger, error) {
	var base log.Logger
	switch format {
	case FmtLogfmt:
		base = log.NewLogfmtLogger(log.NewSyncWriter(w))
	case FmtJSON:
		base = log.NewJSONLogger(log.NewSyncWriter(w))
	default:
		return nil, fmt.Errorf("log: unsupported log format: %v", format)
	}

	return &Logger{
		base:   base,
		logger: withPrefixes(base, defaultCallerUnwind),
		level:  lvl,
		module: module,
	}, nil
}

func withPrefixes(base log.Logger, callerUnwind int) log.Logger {
	return log.WithPrefix(base,
		"ts", log.DefaultTimestampUTC,
		"caller", log.Caller(callerUnwind),
	)
}

func (l *Logger) log(lvl Level, leveled func(log.Logger) log.Logger, msg string, keyvals []interface{}) {
	if l.level > lvl {
		return
	}
	keyvals = append([]interface{}{"module", l.module, "msg", msg}, keyvals...)
	_ = leveled(l.logger).Log(keyvals...)
}

// Debug logs the message and key value pairs at the Debug log level.
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.log(LevelDebug, level.Debug, msg, keyvals)
}

// Info logs the message and key value pairs at the Info log level.
func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.log(LevelInfo, level.Info, msg, keyvals)
}

// Warn logs the message and key value pairs at the Warn log level.
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.log(LevelWarn, level.Warn, msg, keyvals)
}

// Error logs the message and key value pairs at the Error log level.
func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.log(LevelError, level.Error, msg, keyvals)
}

// With returns a clone of the logger with the provided key/value pairs
// added as context for all subsequent logs.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{
		base:   log.With(l.base, keyvals...),
		logger: log.With(l.logger, keyvals...),
		level:  l.level,
		module: l.module,
	}
}

// WithModule returns a clone of the logger with the provided module
// added as context for all subsequent logs.
func (l *Logger) WithModule(module string) *Logger {
	return &Logger{
		base:   l.base,
		logger: l.logger,
		level:  l.level,
		module: module,
	}
}

// WithCallerUnwind returns a clone of the logger that reports the caller
// `unwind` frames up the stack. Used when the logger is wrapped by another
// logging facade.
func (l *Logger) WithCallerUnwind(unwind int) *Logger {
	return &Logger{
		base:   l.base,
		logger: withPrefixes(l.base, unwind),
		level:  l.level,
		module: l.module,
	}
}

// Level is the logging level.
func (l *Logger) Level() Level {
	return l.level
}
