//go:build !unix

package rawfmt

import "errors"

// hostSyscalls on platforms without x/sys/unix reports every call as
// unsupported, so a Logger there always returns zero bytes.
type hostSyscalls struct{}

func (hostSyscalls) Open(string, int, uint32) (int, error) {
	return -1, errors.ErrUnsupported
}

func (hostSyscalls) Write(int, []byte) (int, error) {
	return -1, errors.ErrUnsupported
}

func (hostSyscalls) Close(int) error {
	return errors.ErrUnsupported
}
