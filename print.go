package rawfmt

import "io"

// Append renders format with args and appends the result to dst.
func Append(dst []byte, format string, args ...any) []byte {
	b := acquireBufferSink()
	Render(b, format, NewArgs(args...))
	dst = append(dst, b.buf...)
	releaseBufferSink(b)
	return dst
}

// Sprintf renders format with args into a new string.
func Sprintf(format string, args ...any) string {
	b := acquireBufferSink()
	Render(b, format, NewArgs(args...))
	s := string(b.buf)
	releaseBufferSink(b)
	return s
}

// Fprintf renders format with args to w. It returns the number of bytes w
// accepted and the first write error. Output stops at the first error.
func Fprintf(w io.Writer, format string, args ...any) (int, error) {
	s := NewWriterSink(w)
	Render(s, format, NewArgs(args...))
	return s.Written(), s.Err()
}
