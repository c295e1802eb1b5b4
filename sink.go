package ulog

import (
	"fmt"
	"os"
)

// Sink consumes one fully formatted log line, vprintf style: a format
// string already containing the level letter, timestamp and tag, plus the
// matching arguments. The return value is ignored by the dispatch path.
//
// A sink may be invoked concurrently from multiple goroutines when the
// bounded lock times out; the logger's lock is the only serialization a
// sink can rely on, so implementations must be reentrant.
type Sink func(format string, args ...interface{}) (int, error)

// StdoutSink writes lines to standard output. It is the sink every new
// Logger starts with.
func StdoutSink(format string, args ...interface{}) (int, error) {
	return fmt.Fprintf(os.Stdout, format, args...)
}

// StderrSink writes lines to standard error.
func StderrSink(format string, args ...interface{}) (int, error) {
	return fmt.Fprintf(os.Stderr, format, args...)
}

// SetSink replaces the active output sink and returns the previous one,
// so callers can temporarily redirect output and later restore it:
//
//	old := logger.SetSink(fileSink)
//	defer logger.SetSink(old)
//
// The swap happens under the shared lock. A nil sink restores StdoutSink.
func (l *Logger) SetSink(s Sink) Sink {
	if s == nil {
		s = StdoutSink
	}
	l.plat.Lock()
	old := l.sink
	l.sink = s
	l.plat.Unlock()
	return old
}
