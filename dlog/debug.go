//go:build debug
// +build debug

package dlog

import (
	"fmt"
)

// Debugf calls l.Output to print to the logger.
// Arguments are handled in the manner of fmt.Printf.
func (l *Logger) Debugf(format string, v ...interface{}) {
	_ = l.Output(2, "DEBUG "+fmt.Sprintf(format, v...))
}

// Debug calls l.Output to print to the logger.
// Arguments are handled in the manner of fmt.Print.
func (l *Logger) Debug(v ...interface{}) {
	_ = l.Output(2, "DEBUG "+fmt.Sprint(v...))
}

// Debugln calls l.Output to print to the logger.
// Arguments are handled in the manner of fmt.Println.
func (l *Logger) Debugln(v ...interface{}) {
	_ = l.Output(2, "DEBUG "+fmt.Sprintln(v...))
}
