package rawfmt

import "sync"

const (
	bufferSinkDefaultCap = 256
	bufferSinkMaxCap     = 64 << 10
)

// BufferSink collects rendered bytes in memory.
type BufferSink struct {
	buf []byte
}

// Bytes returns the collected bytes. The slice aliases the sink's storage.
func (b *BufferSink) Bytes() []byte { return b.buf }

// String returns the collected bytes as a string.
func (b *BufferSink) String() string { return string(b.buf) }

// Len returns the number of collected bytes.
func (b *BufferSink) Len() int { return len(b.buf) }

// Reset empties the sink, keeping its storage.
func (b *BufferSink) Reset() { b.buf = b.buf[:0] }

func (b *BufferSink) Send(p []byte) {
	b.buf = append(b.buf, p...)
}

func (b *BufferSink) SendRepeat(c byte, n int) {
	if n <= 0 {
		return
	}
	b.reserve(n)
	for range n {
		b.buf = append(b.buf, c)
	}
}

func (b *BufferSink) reserve(n int) {
	need := len(b.buf) + n
	if need <= cap(b.buf) {
		return
	}
	newBuf := make([]byte, len(b.buf), max(cap(b.buf)*2, need))
	copy(newBuf, b.buf)
	b.buf = newBuf
}

var bufferSinkPool = sync.Pool{
	New: func() any {
		return &BufferSink{buf: make([]byte, 0, bufferSinkDefaultCap)}
	},
}

func acquireBufferSink() *BufferSink {
	b := bufferSinkPool.Get().(*BufferSink)
	b.buf = b.buf[:0]
	return b
}

func releaseBufferSink(b *BufferSink) {
	if cap(b.buf) > bufferSinkMaxCap {
		b.buf = make([]byte, 0, bufferSinkDefaultCap)
	} else {
		b.buf = b.buf[:0]
	}
	bufferSinkPool.Put(b)
}
