package rawfmt

// Syscalls is the platform boundary FileSink and Logger write through. Each
// call maps to one kernel entry point; nothing is buffered. Errors follow the
// kernel's: an interrupted call reports syscall.EINTR.
type Syscalls interface {
	// Open opens path with os.O_* flags and permission bits, returning a
	// file descriptor.
	Open(path string, flags int, perm uint32) (int, error)
	// Write writes p to fd and returns how many bytes the kernel took.
	Write(fd int, p []byte) (int, error)
	Close(fd int) error
}

// SystemCalls returns the Syscalls implementation for the host platform.
func SystemCalls() Syscalls {
	return hostSyscalls{}
}
