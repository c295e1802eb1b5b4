// Package ulog is an embedded-friendly logging facility: per-tag severity
// filtering, a swappable vprintf-style output sink, and hex/char/hexdump
// buffer dump formatting, portable across preemptive-RTOS, POSIX-threaded
// and bare-metal no-OS targets, including the pre-scheduler startup
// window.
//
// Key properties:
//
//   - Per-tag level thresholds with a "*" wildcard default
//   - A build-time level ceiling checked before any lock or registry work
//   - Bounded lock acquisition on the hot path: on contention a line is
//     emitted unlocked rather than lost
//   - Timestamps that work before an OS scheduler exists and keep working
//     after a crash
//   - Buffer dumps in fixed 16-byte lines, safe for non-byte-addressable
//     memory regions
//
// Basic usage:
//
//	logger := ulog.New()
//	logger.SetLevel("wifi", ulog.LevelDebug)
//
//	logger.Infof("main", "boot complete after %d ms", elapsed)
//	logger.Debugf("wifi", "rssi=%d", rssi)
//	logger.DumpHexdump("wifi", frame, ulog.LevelVerbose)
//
// Redirecting output:
//
//	backend, _ := backends.NewFileBackend("/var/log/app.log")
//	old := logger.SetSink(backend.Sink())
//	defer logger.SetSink(old)
//
// Platform selection is fixed at construction:
//
//	rtos := platform.NewRTOS()
//	logger := ulog.New(ulog.WithPlatform(rtos))
//	// ... single-context startup code may log already ...
//	rtos.StartScheduler()
//
// The facility never fails visibly: under extreme contention or registry
// exhaustion lines may be dropped or interleaved, but logging never
// crashes or hangs the caller, so it stays usable during fault reporting.
package ulog
