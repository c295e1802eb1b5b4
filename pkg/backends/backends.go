// Package backends provides ready-made output sinks for ulog beyond the
// default stdout writer: a process-safe file sink and a NATS-publishing
// sink. A backend owns its transport; the ulog dispatch lock is the only
// serialization its sink can rely on, so every sink here is reentrant.
package backends

import "github.com/DarryZh/ulog"

// Backend is an output destination that can hand out a ulog sink and be
// shut down when the process no longer needs it.
type Backend interface {
	// Sink returns the vprintf-style consumer to install with SetSink.
	Sink() ulog.Sink
	// Close flushes and releases the backend's resources. The sink must
	// not be used afterwards.
	Close() error
}
