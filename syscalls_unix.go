//go:build unix

package rawfmt

import "golang.org/x/sys/unix"

type hostSyscalls struct{}

func (hostSyscalls) Open(path string, flags int, perm uint32) (int, error) {
	return unix.Open(path, flags|unix.O_CLOEXEC, perm)
}

func (hostSyscalls) Write(fd int, p []byte) (int, error) {
	return unix.Write(fd, p)
}

func (hostSyscalls) Close(fd int) error {
	return unix.Close(fd)
}
