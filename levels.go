package ulog

import (
	"fmt"
	"strings"
)

// Level represents the severity of a log line. Lower values are more
// severe; a line is emitted only when its level is at or below both the
// logger's ceiling and the runtime threshold for its tag.
type Level int

const (
	// LevelNone disables output entirely.
	LevelNone Level = iota
	// LevelError is for critical errors the component cannot recover from
	// on its own.
	LevelError
	// LevelWarn is for error conditions from which recovery measures have
	// been taken.
	LevelWarn
	// LevelInfo is for messages describing the normal flow of events.
	LevelInfo
	// LevelDebug is for extra information not needed in normal use
	// (values, pointers, sizes).
	LevelDebug
	// LevelVerbose is for large chunks of debugging information or
	// frequent messages that can flood the output.
	LevelVerbose
)

var levelNames = []string{"none", "error", "warn", "info", "debug", "verbose"}

// One letter per level, used as the line prefix. LevelNone never reaches
// the formatter.
var levelLetters = []byte{'?', 'E', 'W', 'I', 'D', 'V'}

// ANSI color per level, matching the classic serial-console scheme:
// errors red, warnings brown, info green, debug and verbose uncolored.
var levelColors = []string{
	"",
	"\033[0;31m",
	"\033[0;33m",
	"\033[0;32m",
	"",
	"",
}

const colorReset = "\033[0m"

// String returns the lowercase name of the level.
func (l Level) String() string {
	if l >= LevelNone && l <= LevelVerbose {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Letter returns the single-character prefix used in formatted lines.
func (l Level) Letter() byte {
	if l > LevelNone && l <= LevelVerbose {
		return levelLetters[l]
	}
	return '?'
}

func (l Level) color() string {
	if l > LevelNone && l <= LevelVerbose {
		return levelColors[l]
	}
	return ""
}

// ParseLevel converts a level name to a Level. Names are matched
// case-insensitively; both "warn" and "warning" are accepted.
//
// Returns an error for unrecognized names.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return LevelNone, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "verbose", "trace":
		return LevelVerbose, nil
	}
	return LevelNone, fmt.Errorf("unknown log level %q", s)
}
