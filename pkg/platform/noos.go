package platform

import "time"

// NoOS is the platform variant for builds with no operating system at
// all: a single cooperative execution context. There is nothing to
// exclude against, so the lock is a bare flag, kept only so misuse shows
// up in a debugger.
type NoOS struct {
	locked bool
}

// NewNoOS returns a NoOS platform.
func NewNoOS() *NoOS {
	return &NoOS{}
}

func (n *NoOS) Lock() {
	n.locked = true
}

func (n *NoOS) TryLockTimeout(time.Duration) bool {
	n.locked = true
	return true
}

func (n *NoOS) Unlock() {
	n.locked = false
}

// Timestamp returns the cycle-counter-derived millisecond count; no OS
// tick source exists on this build.
func (n *NoOS) Timestamp() uint32 {
	return uptimeMS()
}

// SystemTimestamp has no wall clock to read, so it is the decimal
// rendering of the monotonic counter.
func (n *NoOS) SystemTimestamp() string {
	return decimalStamp(n.Timestamp())
}
