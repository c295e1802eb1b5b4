package backends

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/DarryZh/ulog"
)

// DefaultBufferSize for buffered file writes.
const DefaultBufferSize = 32 * 1024

var _ Backend = (*FileBackend)(nil)

// FileBackend appends log lines to a file. A sidecar flock serializes
// writers across processes sharing the file, so several programs can log
// to one destination without shredding each other's lines.
type FileBackend struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	lock   *flock.Flock
	path   string
}

// NewFileBackend opens (creating if needed) the log file at path.
func NewFileBackend(path string) (*FileBackend, error) {
	cleanPath := filepath.Clean(path)
	// #nosec G301 - log directories need to be accessible by other processes
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}
	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644) // #nosec G302 - log files need to be readable
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cleanPath)
	}
	return &FileBackend{
		file:   file,
		writer: bufio.NewWriterSize(file, DefaultBufferSize),
		lock:   flock.New(cleanPath + ".lock"),
		path:   cleanPath,
	}, nil
}

// Path returns the cleaned log file path.
func (b *FileBackend) Path() string {
	return b.path
}

// Sink returns a sink that writes each line under the file lock and
// flushes it immediately, so lines survive a crash right after emission.
// Lock or write failures drop the line; a logging sink has nowhere to
// report its own errors.
func (b *FileBackend) Sink() ulog.Sink {
	return func(format string, args ...interface{}) (int, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if err := b.lock.Lock(); err != nil {
			return 0, errors.Wrap(err, "acquire file lock")
		}
		defer b.lock.Unlock() //nolint:errcheck
		n, err := fmt.Fprintf(b.writer, format, args...)
		if err != nil {
			return n, err
		}
		return n, b.writer.Flush()
	}
}

// Close flushes buffered data and closes the file.
func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	flushErr := b.writer.Flush()
	if err := b.file.Close(); err != nil {
		return errors.Wrapf(err, "close %s", b.path)
	}
	return flushErr
}
