package ulog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/DarryZh/ulog/pkg/platform"
)

const (
	// DefaultLevel seeds the wildcard threshold before any runtime
	// configuration happens.
	DefaultLevel = LevelInfo

	// DefaultCeiling is the build-time maximum severity. A Logger can
	// never emit above its ceiling no matter what the registry allows;
	// the check runs before any lock or registry work so disabled call
	// sites cost a single comparison.
	DefaultCeiling = LevelVerbose

	// DefaultRegistryCapacity bounds the per-tag level table. Tags set
	// past the capacity silently evaluate as the wildcard default.
	DefaultRegistryCapacity = 64

	// DefaultLockTimeout is the bounded wait used on the hot path. We
	// don't expect to hit it; contention is low, and the most likely
	// cause is a log call from an interrupt-style context that should
	// have used the early path instead. On timeout the line is emitted
	// without the lock rather than dropped.
	DefaultLockTimeout = 10 * time.Millisecond
)

// TimestampSource selects how emitted lines are stamped.
type TimestampSource int

const (
	// TimestampMonotonic stamps lines with a decimal millisecond count.
	TimestampMonotonic TimestampSource = iota
	// TimestampWallClock stamps lines with HH:MM:SS.mmm system time.
	TimestampWallClock
)

// Logger is the single-instance logging context: the per-tag level
// registry, the active sink, and the platform lock and clocks behind one
// handle. Construct one per process (or use Default) and share it by
// reference; it lives for the program lifetime and is never torn down.
//
// All methods are safe for concurrent use on platforms that provide real
// locking. A dispatch call never fails visibly: the worst case under
// contention is an interleaved or dropped line, never a crash, since this
// primitive has to stay usable while reporting faults.
type Logger struct {
	plat   platform.Platform
	levels *levelRegistry
	sink   Sink

	ceiling      Level
	defaultLevel Level
	colors       bool
	tsSource     TimestampSource

	// Probe for the buffer dump staging path, see buffers.go. Nil means
	// all memory is byte-addressable.
	accessible func([]byte) bool

	pool *bufferPool
}

// New constructs a Logger. With no options it targets a hosted POSIX
// environment, writes to stdout, and starts with every tag at
// DefaultLevel.
func New(opts ...Option) *Logger {
	l := &Logger{
		plat:         platform.NewPOSIX(),
		sink:         StdoutSink,
		ceiling:      DefaultCeiling,
		defaultLevel: DefaultLevel,
		tsSource:     TimestampMonotonic,
		pool:         newBufferPool(hexdumpLineCap),
	}
	capacity := DefaultRegistryCapacity
	for _, opt := range opts {
		opt(l, &capacity)
	}
	l.levels = newLevelRegistry(capacity, l.defaultLevel)
	return l
}

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// Default returns the process-wide Logger, constructing it on first use.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}

// SetLevel sets the minimum severity threshold for tag. The reserved tag
// "*" sets the process-wide default, which also covers every tag with no
// explicit entry. Re-setting a tag updates it in place.
//
// Note that SetLevel cannot raise output above the Logger's ceiling.
func (l *Logger) SetLevel(tag string, level Level) {
	l.plat.Lock()
	l.levels.set(tag, level)
	if tag == WildcardTag {
		l.defaultLevel = level
	}
	l.plat.Unlock()
}

// GetLevel returns the effective threshold for tag: its explicit entry if
// one exists, else the wildcard default. Useful to skip building
// expensive log arguments.
func (l *Logger) GetLevel(tag string) Level {
	l.plat.Lock()
	lv := l.levels.get(tag)
	l.plat.Unlock()
	return lv
}

// Enabled reports whether a line at level for tag would be emitted.
func (l *Logger) Enabled(level Level, tag string) bool {
	if level == LevelNone || level > l.ceiling {
		return false
	}
	return level <= l.levelFor(tag)
}

// Ceiling returns the build-time maximum severity this Logger was
// constructed with.
func (l *Logger) Ceiling() Level {
	return l.ceiling
}

// levelFor is the hot-path registry read. It uses the bounded lock so a
// stuck writer cannot starve logging; on timeout it reads unlocked.
func (l *Logger) levelFor(tag string) Level {
	acquired := l.plat.TryLockTimeout(DefaultLockTimeout)
	lv := l.levels.get(tag)
	if acquired {
		l.plat.Unlock()
	}
	return lv
}

// Writef is the dispatch gate. It decides emit/drop for one line and, if
// emitting, stamps and forwards it to the active sink:
//
//  1. levels above the ceiling return immediately, before any lock or
//     registry work
//  2. levels above the tag's runtime threshold are dropped with no side
//     effects
//  3. the shared lock is acquired with a bounded wait; on timeout the
//     line is emitted anyway, trading exclusion for availability, so
//     output interleaving under extreme contention is accepted behavior
//
// Not for use from interrupt-style contexts; those must use EarlyLogf.
func (l *Logger) Writef(level Level, tag, format string, args ...interface{}) {
	if level == LevelNone || level > l.ceiling {
		return
	}
	if level > l.levelFor(tag) {
		return
	}
	acquired := l.plat.TryLockTimeout(DefaultLockTimeout)
	l.emit(level, tag, format, args)
	if acquired {
		l.plat.Unlock()
	}
}

// Writev is the slice-args variant of Writef, provided so ulog can serve
// as the sink of another logging framework without re-splatting arguments.
func (l *Logger) Writev(level Level, tag, format string, args []interface{}) {
	l.Writef(level, tag, format, args...)
}

// emit renders the line wrapper and invokes the sink. Callers hold the
// shared lock when they can; emit itself must not block.
func (l *Logger) emit(level Level, tag string, format string, args []interface{}) {
	var stamp interface{}
	var verb string
	if l.tsSource == TimestampWallClock {
		stamp = l.plat.SystemTimestamp()
		verb = "%s"
	} else {
		stamp = l.plat.Timestamp()
		verb = "%d"
	}

	color, reset := "", ""
	if l.colors {
		color = level.color()
		if color != "" {
			reset = colorReset
		}
	}
	wrapped := color + string(level.Letter()) + " (" + verb + ") %s: " + format + reset + "\n"

	sinkArgs := make([]interface{}, 0, len(args)+2)
	sinkArgs = append(sinkArgs, stamp, tag)
	sinkArgs = append(sinkArgs, args...)
	l.sink(wrapped, sinkArgs...) //nolint:errcheck // sink failures are the sink's problem
}

// Errorf logs a formatted line at LevelError.
func (l *Logger) Errorf(tag, format string, args ...interface{}) {
	l.Writef(LevelError, tag, format, args...)
}

// Warnf logs a formatted line at LevelWarn.
func (l *Logger) Warnf(tag, format string, args ...interface{}) {
	l.Writef(LevelWarn, tag, format, args...)
}

// Infof logs a formatted line at LevelInfo.
func (l *Logger) Infof(tag, format string, args ...interface{}) {
	l.Writef(LevelInfo, tag, format, args...)
}

// Debugf logs a formatted line at LevelDebug.
func (l *Logger) Debugf(tag, format string, args ...interface{}) {
	l.Writef(LevelDebug, tag, format, args...)
}

// Verbosef logs a formatted line at LevelVerbose.
func (l *Logger) Verbosef(tag, format string, args ...interface{}) {
	l.Writef(LevelVerbose, tag, format, args...)
}

// EarlyLogf is the startup/interrupt-safe path: no lock, no sink
// indirection, no per-tag filtering. It is gated by the ceiling and the
// wildcard default only, stamps with the monotonic clock, and writes
// straight to stdout. Intended for code that runs before the scheduler
// (or with interrupts off), where the regular path must not be used.
func (l *Logger) EarlyLogf(level Level, tag, format string, args ...interface{}) {
	if level == LevelNone || level > l.ceiling || level > l.defaultLevel {
		return
	}
	color, reset := "", ""
	if l.colors {
		color = level.color()
		if color != "" {
			reset = colorReset
		}
	}
	wrapped := color + string(level.Letter()) + " (%d) %s: " + format + reset + "\n"
	sinkArgs := make([]interface{}, 0, len(args)+2)
	sinkArgs = append(sinkArgs, l.plat.Timestamp(), tag)
	sinkArgs = append(sinkArgs, args...)
	fmt.Fprintf(os.Stdout, wrapped, sinkArgs...)
}
