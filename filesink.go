package rawfmt

import (
	"errors"
	"io"
	"sync/atomic"
	"syscall"
)

// WriteFailure describes one Send that FileSink gave up on.
type WriteFailure struct {
	Err       error
	Written   int
	Attempted int
}

// FileSinkStats captures aggregated counters for a FileSink.
type FileSinkStats struct {
	// Interrupts counts writes retried after EINTR.
	Interrupts uint64
	// Failures counts sends abandoned on a non-retryable error.
	Failures uint64
}

// FileSinkOption customizes a FileSink.
type FileSinkOption func(*FileSink)

// WithFailureHook registers fn to be called whenever a Send stops early.
func WithFailureHook(fn func(WriteFailure)) FileSinkOption {
	return func(s *FileSink) {
		s.onFailure = fn
	}
}

// FileSink writes straight to a file descriptor through Syscalls. It does
// not own the descriptor.
//
// A write interrupted by a signal is retried at once, without limit. Any
// other error ends the current Send quietly; the bytes already written stay
// counted. FileSink is not safe for concurrent use.
type FileSink struct {
	sys        Syscalls
	fd         int
	total      int
	onFailure  func(WriteFailure)
	interrupts atomic.Uint64
	failures   atomic.Uint64
}

// NewFileSink returns a FileSink writing to fd. A nil sys selects
// SystemCalls.
func NewFileSink(sys Syscalls, fd int, opts ...FileSinkOption) *FileSink {
	if sys == nil {
		sys = SystemCalls()
	}
	s := &FileSink{sys: sys, fd: fd}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *FileSink) Send(p []byte) {
	attempted := len(p)
	written := 0
	for len(p) > 0 {
		n, err := s.sys.Write(s.fd, p)
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				s.interrupts.Add(1)
				continue
			}
			s.fail(err, written, attempted)
			return
		}
		if n <= 0 {
			// a write that takes nothing would loop forever
			s.fail(io.ErrShortWrite, written, attempted)
			return
		}
		n = min(n, len(p))
		p = p[n:]
		written += n
		s.total += n
	}
}

func (s *FileSink) fail(err error, written, attempted int) {
	s.failures.Add(1)
	if s.onFailure != nil {
		s.onFailure(WriteFailure{
			Err:       err,
			Written:   written,
			Attempted: attempted,
		})
	}
}

// Written returns the total number of bytes written over the sink's life.
func (s *FileSink) Written() int {
	return s.total
}

// Stats returns cumulative retry and failure counters.
func (s *FileSink) Stats() FileSinkStats {
	return FileSinkStats{
		Interrupts: s.interrupts.Load(),
		Failures:   s.failures.Load(),
	}
}
