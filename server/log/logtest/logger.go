// Package logtest implements support for testing Loggers.
package logtest

import (
	"bytes"
	"fmt"
	"sync"

	"chartdash/server/log"
)

// DiscardLogger is a Logger that ignores everything written to it.
var DiscardLogger = new(discardLogger)

// NewLogger creates a Logger that records what is written to it.
func NewLogger() *Logger {
	l := Logger{
		buf: new(bytes.Buffer),
	}
	return &l
}

// discardLogger is a logger that logs nothing.
type discardLogger struct{}

// DiscardLogger (and other log.Loggers) implement the server's log.Logger interface.
var _ log.Logger = DiscardLogger

// Printf implements the log.Logger interface.
func (discardLogger) Printf(format string, v ...interface{}) {
	// NOOP
}

// Logger is a logger that writes to a buffer to be read later.
type Logger struct {
	buf *bytes.Buffer
	mu  sync.RWMutex
}

// Logger implements the server's log.Logger interface.
var _ log.Logger = NewLogger()

// Printf implements the log.Logger interface.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.buf, format, v...)
}

// String returns the recorded string.
func (l *Logger) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.buf.String()
}

// Empty returns if the buffer is empty.
func (l *Logger) Empty() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.buf.Len() == 0
}

// Reset discards what has been recorded.
func (l *Logger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.Reset()
}
