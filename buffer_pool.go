package ulog

import (
	"bytes"
	"sync"
)

// maxPooledBuffer keeps oversized scratch buffers out of the pool so a
// single huge dump cannot pin memory for the process lifetime.
const maxPooledBuffer = 32 * 1024

// bufferPool recycles the scratch buffers the dump formatters render
// lines into, keeping the hot path free of per-line allocations.
type bufferPool struct {
	pool sync.Pool
}

func newBufferPool(capacity int) *bufferPool {
	bp := &bufferPool{}
	bp.pool = sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, capacity))
		},
	}
	return bp
}

// get returns a clean buffer ready for use. Pair with put.
func (bp *bufferPool) get() *bytes.Buffer {
	buf, ok := bp.pool.Get().(*bytes.Buffer)
	if !ok {
		return &bytes.Buffer{}
	}
	buf.Reset()
	return buf
}

func (bp *bufferPool) put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	bp.pool.Put(buf)
}
