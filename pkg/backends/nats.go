package backends

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"github.com/DarryZh/ulog"
)

// DefaultNATSSubject is used when no subject is configured.
const DefaultNATSSubject = "ulog.lines"

var _ Backend = (*NATSBackend)(nil)

// NATSBackend publishes each formatted line to a NATS subject, turning
// the logger into a lightweight log shipper for fleets of devices.
type NATSBackend struct {
	conn    *nats.Conn
	subject string
}

// NewNATSBackend connects to the NATS server at url and publishes to
// subject. Extra nats.Options (credentials, TLS, reconnect policy) are
// passed through to the connection.
func NewNATSBackend(url, subject string, opts ...nats.Option) (*NATSBackend, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	if subject == "" {
		subject = DefaultNATSSubject
	}
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to NATS %s", url)
	}
	return &NATSBackend{conn: conn, subject: subject}, nil
}

// Subject returns the subject lines are published to.
func (b *NATSBackend) Subject() string {
	return b.subject
}

// Sink returns a sink that publishes each line as one message. Publish
// is async in the NATS client, so the logging hot path never waits on
// the network.
func (b *NATSBackend) Sink() ulog.Sink {
	return func(format string, args ...interface{}) (int, error) {
		line := fmt.Sprintf(format, args...)
		if err := b.conn.Publish(b.subject, []byte(line)); err != nil {
			return 0, errors.Wrap(err, "publish log line")
		}
		return len(line), nil
	}
}

// Close flushes pending publishes and drains the connection.
func (b *NATSBackend) Close() error {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return errors.Wrap(err, "drain NATS connection")
	}
	return nil
}
