// Package rawfmt is a small printf engine for places where fmt and os are off
// limits or unwelcome: code running inside a hooked process, early bootstrap,
// or anything that must not re-enter the library it instruments. Formatting
// uses fixed stack buffers, and the file sink writes through raw system calls
// with no buffering layer in between.
//
// # Design overview
//
//   - Render walks the format once, sending literal runs to a Sink as they
//     are found. Numbers are formatted into a 32-byte buffer on the stack.
//   - Arguments come from a Cursor that is asked for exactly the width the
//     directive needs (1, 2, 4 or 8 bytes, a pointer or a string). Args
//     builds one from ordinary Go values.
//   - Padding goes through RepeatSink when the sink offers it, otherwise in
//     8-byte chunks, so wide fields never need a wide buffer.
//   - FileSink retries on EINTR and stops quietly on any other error; the
//     byte count reflects what the kernel accepted.
//   - Logger owns one lazily opened file and returns the bytes written per
//     call, or 0 when the file could not be opened.
//
// # Usage
//
//	n := rawfmt.Logf("pid %d: hook %s at %p\n", pid, name, addr)
//
// Debugf mirrors the classic debug macro and prefixes the caller:
//
//	rawfmt.Debugf("fd=%d", fd) // "openHook() - 42: fd=7\n"
//
// For in-memory formatting use Sprintf or Append; for an io.Writer use
// Fprintf.
//
// # Conversions
//
// Flags 0, -, space and +; a field width; a precision; length modifiers hh,
// h, l, ll, z and t; conversions d, i, o, x, X, s, c, p and %%. Precision and
// the space and + flags are parsed but change nothing. %o sign-extends its
// argument like %d and then prints the bit pattern as unsigned octal.
// Floating point, positional arguments and wide characters are not
// supported.
package rawfmt
