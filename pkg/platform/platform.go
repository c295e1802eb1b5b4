// Package platform provides the small capability surface the logger needs
// from the environment it runs on: mutual exclusion between execution
// contexts and two timestamp sources. Exactly one implementation is
// selected when the logger is constructed; there is no runtime switching
// between variants.
//
// Three variants are provided:
//
//   - POSIX: preemptive threads, a real timed mutex, a real wall clock.
//   - RTOS: two operating regimes. Before the scheduler starts there is a
//     single execution context, so locks are no-ops and time comes from a
//     cycle-counter-derived early clock. After the scheduler starts, time
//     is the latched early base plus ticks converted to milliseconds.
//   - NoOS: single cooperative context, the lock is a bare flag.
package platform

import "time"

// Platform is implemented by each build variant. Unlock must only be
// called after a matching Lock or a TryLockTimeout that returned true;
// violating this is caller error and is not runtime-checked.
type Platform interface {
	// Lock blocks indefinitely until the shared lock is held. A no-op
	// while no scheduler is running, since only one execution context
	// exists then.
	Lock()
	// TryLockTimeout attempts the shared lock, waiting at most timeout.
	// It reports whether the lock was acquired. Same pre-scheduler no-op
	// as Lock (reports true).
	TryLockTimeout(timeout time.Duration) bool
	// Unlock releases the shared lock.
	Unlock()
	// Timestamp returns monotonic milliseconds. It never blocks and must
	// stay usable after a fault.
	Timestamp() uint32
	// SystemTimestamp returns a wall-clock string, HH:MM:SS.mmm once a
	// real clock is available, a plain decimal millisecond count before.
	SystemTimestamp() string
}

var bootTime = time.Now()

// uptimeMS is the cycle-counter stand-in shared by the variants: milliseconds
// since process start, read from the Go runtime's monotonic clock.
func uptimeMS() uint32 {
	return uint32(time.Since(bootTime).Milliseconds())
}

// decimalStamp renders v as a plain decimal string, digits assembled
// right to left into a fixed buffer, no leading zeros except a single "0".
// Used where no wall clock exists yet.
func decimalStamp(v uint32) string {
	var buf [10]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte(v%10) + '0'
		v /= 10
		if v == 0 {
			break
		}
	}
	return string(buf[i:])
}

const systemTimeLayout = "15:04:05.000"
