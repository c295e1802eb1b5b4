package platform

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickPeriod matches a 1000 Hz scheduler tick.
const DefaultTickPeriod = time.Millisecond

// RTOS is the platform variant for preemptive-RTOS builds. It moves
// through two one-way regimes:
//
//   - Pre-Scheduler: a single execution context. Locking is a no-op and
//     Timestamp reads the early clock, which depends on nothing but the
//     cycle counter and so keeps working after a crash.
//   - Scheduler-Active: full concurrency. Timestamp becomes the early
//     base, latched exactly once, plus scheduler ticks converted to
//     milliseconds.
//
// The regime is queried at call time; there is no notification into this
// type beyond StartScheduler flipping the flag.
type RTOS struct {
	sched      atomic.Bool
	schedStart time.Time
	tickPeriod time.Duration

	// Shared lock, created lazily on first use. Two contexts racing to
	// create it before any lock exists is a known benign race: the window
	// is single-threaded in practice, and guarding it would need a lock
	// before one exists.
	mu chan struct{}

	// Monotonic base latched from the early clock by the primary core the
	// first time Timestamp runs after the scheduler becomes active. Zero
	// means not yet latched; once nonzero it is never recomputed.
	base uint32

	earlyClock func() uint32
	coreID     func() int

	// SystemTimestamp shares one formatting buffer process-wide, so the
	// Scheduler-Active path serializes on fmtMu.
	fmtMu sync.Mutex
}

// RTOSOption configures an RTOS platform at construction.
type RTOSOption func(*RTOS)

// WithTickPeriod overrides the scheduler tick period used to convert
// ticks to milliseconds.
func WithTickPeriod(d time.Duration) RTOSOption {
	return func(r *RTOS) {
		if d > 0 {
			r.tickPeriod = d
		}
	}
}

// WithEarlyClock overrides the cycle-counter-derived early clock.
func WithEarlyClock(fn func() uint32) RTOSOption {
	return func(r *RTOS) {
		if fn != nil {
			r.earlyClock = fn
		}
	}
}

// WithCoreID overrides the executing-core probe. Only core 0 latches the
// timestamp base; other cores read it, or zero if not yet latched.
func WithCoreID(fn func() int) RTOSOption {
	return func(r *RTOS) {
		if fn != nil {
			r.coreID = fn
		}
	}
}

// NewRTOS returns an RTOS platform in the Pre-Scheduler regime.
func NewRTOS(opts ...RTOSOption) *RTOS {
	r := &RTOS{
		tickPeriod: DefaultTickPeriod,
		earlyClock: uptimeMS,
		coreID:     func() int { return 0 },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StartScheduler transitions to the Scheduler-Active regime. The
// transition is one-way.
func (r *RTOS) StartScheduler() {
	r.schedStart = time.Now()
	r.sched.Store(true)
}

// SchedulerActive reports whether the scheduler has started.
func (r *RTOS) SchedulerActive() bool {
	return r.sched.Load()
}

func (r *RTOS) lazyMutex() chan struct{} {
	if r.mu == nil {
		r.mu = make(chan struct{}, 1)
	}
	return r.mu
}

func (r *RTOS) Lock() {
	mu := r.lazyMutex()
	if !r.sched.Load() {
		return
	}
	mu <- struct{}{}
}

func (r *RTOS) TryLockTimeout(timeout time.Duration) bool {
	mu := r.lazyMutex()
	if !r.sched.Load() {
		return true
	}
	select {
	case mu <- struct{}{}:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (r *RTOS) Unlock() {
	if !r.sched.Load() {
		return
	}
	<-r.mu
}

// Timestamp returns monotonic milliseconds, reconciling time elapsed
// before the scheduler existed with ticks counted since it started.
func (r *RTOS) Timestamp() uint32 {
	if !r.sched.Load() {
		return r.earlyClock()
	}
	if r.base == 0 && r.coreID() == 0 {
		r.base = r.earlyClock()
	}
	ticks := uint32(time.Since(r.schedStart) / r.tickPeriod)
	return r.base + ticks*uint32(r.tickPeriod/time.Millisecond)
}

// EarlyTimestamp reads the early clock directly, regardless of regime.
func (r *RTOS) EarlyTimestamp() uint32 {
	return r.earlyClock()
}

// SystemTimestamp returns HH:MM:SS.mmm once the scheduler is running.
// Before that no wall clock exists, so it synthesizes a decimal string of
// the early millisecond counter instead.
func (r *RTOS) SystemTimestamp() string {
	if !r.sched.Load() {
		return decimalStamp(r.earlyClock())
	}
	r.fmtMu.Lock()
	s := time.Now().Format(systemTimeLayout)
	r.fmtMu.Unlock()
	return s
}
