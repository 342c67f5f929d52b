package flycam

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Logger is the logging surface every flycam component takes. Hosts can
// pass their own implementation.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

// DefaultLogger prints "[prefix] LEVEL: message" lines. DEBUG and INFO go
// to one writer, WARN and ERROR to the other.
type DefaultLogger struct {
	debug  atomic.Bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewLogger(os.Stdout, os.Stderr, prefix, debug)
}

func NewLogger(out, errOut io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	l := &DefaultLogger{
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
	l.debug.Store(debug)
	return l
}

func (l *DefaultLogger) DebugEnabled() bool        { return l.debug.Load() }
func (l *DefaultLogger) SetDebug(enabled bool)     { l.debug.Store(enabled) }
func (l *DefaultLogger) Debugf(f string, a ...any) { l.logf(levelDebug, f, a...) }
func (l *DefaultLogger) Infof(f string, a ...any)  { l.logf(levelInfo, f, a...) }
func (l *DefaultLogger) Warnf(f string, a ...any)  { l.logf(levelWarn, f, a...) }
func (l *DefaultLogger) Errorf(f string, a ...any) { l.logf(levelError, f, a...) }

func (l *DefaultLogger) logf(level logLevel, format string, args ...any) {
	if level == levelDebug && !l.DebugEnabled() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = fmt.Sprintf("[%s] %s: %s", l.prefix, levelNames[level], msg)
	} else {
		msg = levelNames[level] + ": " + msg
	}

	w := l.out
	if level >= levelWarn {
		w = l.err
	}
	w.Print(msg)
}

type nopLogger struct{}

// NewNopLogger discards everything. Components fall back to it when given a
// nil Logger.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
