package ulog

import "github.com/DarryZh/ulog/pkg/platform"

// Option configures a Logger at construction time. Options model what
// the embedded builds fix at compile time (platform variant, level
// ceiling, color output, timestamp source), so they cannot be changed on
// a live Logger; runtime control is limited to SetLevel and SetSink.
type Option func(l *Logger, registryCapacity *int)

// WithPlatform selects the platform variant. Exactly one platform backs
// a Logger for its whole lifetime.
func WithPlatform(p platform.Platform) Option {
	return func(l *Logger, _ *int) {
		if p != nil {
			l.plat = p
		}
	}
}

// WithCeiling fixes the maximum severity this Logger can ever emit,
// independent of runtime level configuration.
func WithCeiling(level Level) Option {
	return func(l *Logger, _ *int) {
		l.ceiling = level
	}
}

// WithDefaultLevel seeds the wildcard threshold.
func WithDefaultLevel(level Level) Option {
	return func(l *Logger, _ *int) {
		l.defaultLevel = level
	}
}

// WithColors enables or disables ANSI color in line prefixes.
func WithColors(enabled bool) Option {
	return func(l *Logger, _ *int) {
		l.colors = enabled
	}
}

// WithTimestampSource selects monotonic-milliseconds or wall-clock
// stamping.
func WithTimestampSource(src TimestampSource) Option {
	return func(l *Logger, _ *int) {
		l.tsSource = src
	}
}

// WithRegistryCapacity bounds the number of per-tag level entries. Tags
// set past the bound silently evaluate as the wildcard default.
func WithRegistryCapacity(n int) Option {
	return func(_ *Logger, capacity *int) {
		if n > 0 {
			*capacity = n
		}
	}
}

// WithSink sets the initial output sink.
func WithSink(s Sink) Option {
	return func(l *Logger, _ *int) {
		if s != nil {
			l.sink = s
		}
	}
}

// WithAccessibilityProbe installs the predicate the buffer dump
// formatters use to decide whether a region is directly byte-addressable.
// Regions reported inaccessible are staged through a word-aligned copy
// before formatting. The default treats all memory as addressable.
func WithAccessibilityProbe(probe func([]byte) bool) Option {
	return func(l *Logger, _ *int) {
		l.accessible = probe
	}
}
