// Package logger provides a prefixed, leveled, colored logger.
package logger

import (
	"errors"
	"io"
	"log"
)

const (
	colorReset = "\033[0m"

	infoLevel    = "INFO"
	warningLevel = "WARNING"
	errorLevel   = "ERROR"
)

// Logger writes lines of the form "[PREFIX] [LEVEL] message" with the prefix
// rendered in the configured color.
type Logger struct {
	out    *log.Logger
	prefix string
	color  string
}

// New creates a Logger writing to w.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("logger: nil writer")
	}
	if prefix == "" {
		return nil, errors.New("logger: empty prefix")
	}
	return &Logger{
		out:    log.New(w, "", log.LstdFlags),
		prefix: prefix,
		color:  color,
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write(infoLevel, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write(warningLevel, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write(errorLevel, msg)
}

func (l *Logger) write(level, msg string) {
	l.out.Printf("%s[%s]%s [%s] %s", l.color, l.prefix, colorReset, level, msg)
}
