// Package dlog is a thin wrapper around the standard log package. It adds
// Debug functions for development logging; these are compiled in with the
// `debug` build tag and are no-ops otherwise.
package dlog

import (
	"io"
	"log"
	"os"
)

// DefaultFlags are the flags every executable in this repository logs with.
const DefaultFlags = log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile

type Logger struct {
	*log.Logger
}

type LoggerOption struct {
	f func(*Logger)
}

// NewLogger returns a Logger writing to stderr with the standard flags,
// modified by any options supplied.
func NewLogger(options ...LoggerOption) *Logger {
	l := &Logger{log.New(os.Stderr, "", log.LstdFlags)}

	for _, option := range options {
		option.f(l)
	}

	return l
}

// NewComponentLogger returns the logger used by an executable: stderr,
// DefaultFlags and the component name as prefix.
func NewComponentLogger(component string, options ...LoggerOption) *Logger {
	base := []LoggerOption{
		LoggerSetOutput(os.Stderr),
		LoggerSetPrefix(component + ": "),
		LoggerSetFlags(DefaultFlags),
	}

	return NewLogger(append(base, options...)...)
}

func LoggerSetOutput(w io.Writer) LoggerOption {
	return LoggerOption{
		func(l *Logger) {
			l.SetOutput(w)
		},
	}
}

func LoggerSetPrefix(p string) LoggerOption {
	return LoggerOption{
		func(l *Logger) {
			l.SetPrefix(p)
		},
	}
}

func LoggerSetFlags(flag int) LoggerOption {
	return LoggerOption{
		func(l *Logger) {
			l.SetFlags(flag)
		},
	}
}

// Discard is a logger for tests and for components that have been given no
// logger.
func Discard() *Logger {
	return NewLogger(LoggerSetOutput(io.Discard), LoggerSetFlags(0))
}
