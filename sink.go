package rawfmt

import "io"

// Sink receives the bytes produced by Render. Send must not retain p after it
// returns.
type Sink interface {
	Send(p []byte)
}

// RepeatSink is implemented by sinks that can emit n copies of b without
// being handed an n-byte buffer. Sinks without it get padding in fixed
// chunks.
type RepeatSink interface {
	Sink
	SendRepeat(b byte, n int)
}

const padChunk = 8

// sendRepeat emits n copies of b to s. n <= 0 is a no-op.
func sendRepeat(s Sink, b byte, n int) {
	if n <= 0 {
		return
	}
	if rs, ok := s.(RepeatSink); ok {
		rs.SendRepeat(b, n)
		return
	}
	var pad [padChunk]byte
	for i := range pad {
		pad[i] = b
	}
	for n > 0 {
		chunk := min(n, padChunk)
		s.Send(pad[:chunk])
		n -= chunk
	}
}

type discardSink struct{}

func (discardSink) Send([]byte)          {}
func (discardSink) SendRepeat(byte, int) {}

// Discard is a Sink on which all Send calls succeed without doing anything.
var Discard RepeatSink = discardSink{}

// WriterSink adapts an io.Writer. It counts the bytes the writer accepted and
// keeps the first error; once an error is seen further sends are dropped.
type WriterSink struct {
	w   io.Writer
	n   int
	err error
}

// NewWriterSink returns a Sink writing to w. A nil w discards.
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		w = io.Discard
	}
	return &WriterSink{w: w}
}

func (s *WriterSink) Send(p []byte) {
	if s.err != nil || len(p) == 0 {
		return
	}
	n, err := s.w.Write(p)
	s.n += n
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	s.err = err
}

// Written returns the number of bytes the writer accepted.
func (s *WriterSink) Written() int { return s.n }

// Err returns the first write error, if any.
func (s *WriterSink) Err() error { return s.err }

// teeSink forwards every send to each of its sinks in order.
type teeSink struct {
	sinks []Sink
}

func newTeeSink(sinks ...Sink) Sink {
	live := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	if len(live) == 1 {
		return live[0]
	}
	return &teeSink{sinks: live}
}

func (t *teeSink) Send(p []byte) {
	for _, s := range t.sinks {
		s.Send(p)
	}
}

func (t *teeSink) SendRepeat(b byte, n int) {
	for _, s := range t.sinks {
		sendRepeat(s, b, n)
	}
}
