package platform

import "time"

// POSIX is the platform variant for hosted builds with preemptive
// threads. The lock is a channel-based mutex so the bounded acquisition
// can time out, which sync.Mutex cannot do.
type POSIX struct {
	mu chan struct{}
}

// NewPOSIX returns a ready-to-use POSIX platform.
func NewPOSIX() *POSIX {
	return &POSIX{mu: make(chan struct{}, 1)}
}

func (p *POSIX) Lock() {
	p.mu <- struct{}{}
}

func (p *POSIX) TryLockTimeout(timeout time.Duration) bool {
	select {
	case p.mu <- struct{}{}:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (p *POSIX) Unlock() {
	<-p.mu
}

// Timestamp returns milliseconds from the monotonic clock.
func (p *POSIX) Timestamp() uint32 {
	return uptimeMS()
}

// SystemTimestamp formats the current wall-clock time as HH:MM:SS.mmm.
func (p *POSIX) SystemTimestamp() string {
	return time.Now().Format(systemTimeLayout)
}
