package util

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// LogLevel selects how chatty the logger is.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a LogLevel. Unknown strings get
// LevelInfo and an error.
func ParseLevel(s string) (LogLevel, error) {
	switch s {
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger is a level-filtered wrapper around the standard library logger.
// The level can be changed at runtime (config reload) from any goroutine.
type Logger struct {
	level atomic.Int32
	base  *log.Logger
}

// NewLogger returns a Logger writing to stderr.
func NewLogger(level LogLevel) *Logger {
	return NewLoggerWriter(level, os.Stderr)
}

// NewLoggerWriter returns a Logger writing to w.
func NewLoggerWriter(level LogLevel, w io.Writer) *Logger {
	l := &Logger{base: log.New(w, "", log.LstdFlags)}
	l.level.Store(int32(level))
	return l
}

func (l *Logger) SetLevel(level LogLevel) { l.level.Store(int32(level)) }

func (l *Logger) logf(level LogLevel, tag, format string, args ...interface{}) {
	if level < LogLevel(l.level.Load()) {
		return
	}
	l.base.Printf("%s %s", tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, "DEBUG", format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, "INFO", format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, "WARN", format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, "ERROR", format, args...)
}
