package rawfmt

import (
	"io"

	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

// isTerminal reports whether w is a file descriptor attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
