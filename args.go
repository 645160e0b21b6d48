package rawfmt

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Cursor is a one-directional sequence of typed arguments. The interpreter
// picks the pull from the directive's length modifier and conversion, so a
// Cursor never has to guess what the caller meant.
//
// Pulling past the end is the caller's mistake; implementations must not
// panic but may return anything.
type Cursor interface {
	PullU8() uint8
	PullU16() uint16
	PullU32() uint32
	PullU64() uint64
	PullPointer() uintptr
	PullString() string
}

// Args is a Cursor over a slice of Go values.
//
// Integer values of any width are taken by bit pattern: signed values are
// sign-extended to 64 bits first and then truncated to the pulled width, the
// same as an int passed through C varargs. Strings, byte slices, errors and
// fmt.Stringer values satisfy PullString. Pointers, uintptr and
// unsafe.Pointer satisfy PullPointer. A value of the wrong kind, or a pull
// past the last value, yields zero or "".
type Args struct {
	values []any
	next   int
}

// NewArgs returns a Cursor over values.
func NewArgs(values ...any) *Args {
	return &Args{values: values}
}

// Remaining reports how many values have not been pulled yet.
func (a *Args) Remaining() int {
	if a == nil || a.next >= len(a.values) {
		return 0
	}
	return len(a.values) - a.next
}

func (a *Args) pull() any {
	if a == nil || a.next >= len(a.values) {
		return nil
	}
	v := a.values[a.next]
	a.next++
	return v
}

func (a *Args) PullU8() uint8   { return uint8(integerBits(a.pull())) }
func (a *Args) PullU16() uint16 { return uint16(integerBits(a.pull())) }
func (a *Args) PullU32() uint32 { return uint32(integerBits(a.pull())) }
func (a *Args) PullU64() uint64 { return integerBits(a.pull()) }

func (a *Args) PullPointer() uintptr {
	return pointerBits(a.pull())
}

func (a *Args) PullString() string {
	switch v := a.pull().(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func integerBits(v any) uint64 {
	switch n := v.(type) {
	case int:
		return uint64(int64(n))
	case int8:
		return uint64(int64(n))
	case int16:
		return uint64(int64(n))
	case int32:
		return uint64(int64(n))
	case int64:
		return uint64(n)
	case uint:
		return uint64(n)
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint64:
		return n
	case uintptr:
		return uint64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case unsafe.Pointer:
		return uint64(uintptr(n))
	default:
		return 0
	}
}

func pointerBits(v any) uintptr {
	switch p := v.(type) {
	case nil:
		return 0
	case uintptr:
		return p
	case unsafe.Pointer:
		return uintptr(p)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice:
		return rv.Pointer()
	default:
		return uintptr(integerBits(v))
	}
}
