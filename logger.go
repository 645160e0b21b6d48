package rawfmt

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// DefaultPath is where a Logger writes when Options.Path is empty.
const DefaultPath = "/tmp/link_log"

// DefaultPerm is the permission a Logger creates its file with when
// Options.Perm is zero.
const DefaultPerm os.FileMode = 0o777

// Options controls where and how a Logger writes.
type Options struct {
	// Path of the log file. Defaults to DefaultPath.
	Path string

	// Append keeps existing contents. By default the file is truncated the
	// first time the Logger opens it.
	Append bool

	// Perm is used when the file is created. Defaults to DefaultPerm.
	Perm os.FileMode

	// Syscalls overrides the platform boundary. Defaults to SystemCalls().
	Syscalls Syscalls

	// Mirror receives a copy of every rendered byte. Mirrored bytes are not
	// part of the counts the Logger reports.
	Mirror io.Writer

	// OnFailure observes writes to the log file that stopped early.
	OnFailure func(WriteFailure)
}

// Logger renders formatted lines into one file. The file is opened on first
// use; if that fails the call returns 0 and the next call tries again. Once
// open, the descriptor is kept until Close.
//
// A Logger is safe for concurrent use. Calls are serialised so lines from
// different goroutines do not interleave.
type Logger struct {
	opts  Options
	flags int

	mu     sync.Mutex
	fd     int
	closed bool

	total     atomic.Int64
	closeOnce sync.Once
	closeErr  error
}

// New returns a Logger for opts. Nothing is opened until the first write.
func New(opts Options) *Logger {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Perm == 0 {
		opts.Perm = DefaultPerm
	}
	if opts.Syscalls == nil {
		opts.Syscalls = SystemCalls()
	}
	flags := os.O_RDWR | os.O_CREATE | os.O_TRUNC
	if opts.Append {
		flags = os.O_RDWR | os.O_CREATE | os.O_APPEND
	}
	return &Logger{opts: opts, flags: flags, fd: -1}
}

// Path returns the file the Logger writes to.
func (l *Logger) Path() string {
	return l.opts.Path
}

// Printf renders format with args into the log file and returns the number
// of bytes written, or 0 when the file cannot be opened.
func (l *Logger) Printf(format string, args ...any) int {
	return l.Render(format, NewArgs(args...))
}

// Render is Printf with a caller-supplied Cursor.
func (l *Logger) Render(format string, args Cursor) int {
	return l.write(func(s Sink) {
		Render(s, format, args)
	})
}

// Debugf writes one line prefixed with the calling function's name and line
// number: "name() - 42: message\n".
func (l *Logger) Debugf(format string, args ...any) int {
	return l.debugf(2, format, args)
}

func (l *Logger) debugf(skip int, format string, args []any) int {
	fn, line := callerFrame(skip + 1)
	return l.write(func(s Sink) {
		Render(s, "%s() - %d: ", NewArgs(fn, line))
		Render(s, format, NewArgs(args...))
		s.Send(newline)
	})
}

var newline = []byte{'\n'}

func (l *Logger) write(render func(Sink)) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	fd, ok := l.openLocked()
	if !ok {
		return 0
	}
	fs := NewFileSink(l.opts.Syscalls, fd, WithFailureHook(l.opts.OnFailure))
	var sink Sink = fs
	if l.opts.Mirror != nil {
		sink = newTeeSink(fs, NewWriterSink(l.opts.Mirror))
	}
	render(sink)

	n := fs.Written()
	l.total.Add(int64(n))
	return n
}

func (l *Logger) openLocked() (int, bool) {
	if l.closed {
		return -1, false
	}
	if l.fd >= 0 {
		return l.fd, true
	}
	fd, err := l.opts.Syscalls.Open(l.opts.Path, l.flags, uint32(l.opts.Perm.Perm()))
	if err != nil || fd < 0 {
		return -1, false
	}
	l.fd = fd
	return fd, true
}

// Written returns the number of bytes written to the file over the
// Logger's life.
func (l *Logger) Written() int64 {
	return l.total.Load()
}

// Close releases the file descriptor. Later writes return 0. Close is
// idempotent; every call returns the result of the first.
func (l *Logger) Close() error {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.closed = true
		if l.fd >= 0 {
			l.closeErr = l.opts.Syscalls.Close(l.fd)
			l.fd = -1
		}
	})
	return l.closeErr
}

var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
)

// Default returns the package Logger, creating one for DefaultPath on first
// use.
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(Options{})
	}
	return defaultLogger
}

// SetDefault replaces the package Logger and returns the previous one, which
// may be nil. The previous Logger is not closed.
func SetDefault(l *Logger) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultLogger
	defaultLogger = l
	return prev
}

// Logf writes through the package Logger. It returns the number of bytes
// written, or 0 if the log file could not be opened.
func Logf(format string, args ...any) int {
	return Default().Printf(format, args...)
}

// Debugf writes a caller-prefixed line through the package Logger.
func Debugf(format string, args ...any) int {
	return Default().debugf(2, format, args)
}
