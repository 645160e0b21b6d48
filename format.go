package rawfmt

import (
	"math"
	"strings"
	"unsafe"
)

const pointerSize = int(unsafe.Sizeof(uintptr(0)))

// directive is one parsed %-conversion.
type directive struct {
	zeroPad   bool
	leftAlign bool
	// sign records ' ' or '+'. It is parsed but no conversion applies it.
	sign byte
	// width and precision are -1 when absent. precision has no effect on
	// any conversion.
	width     int
	precision int
	// size is how many bytes an integer conversion pulls: 1, 2, 4 or 8.
	size int
	verb byte
}

var percent = []byte{'%'}

// Render interprets format and sends the result to sink, pulling one
// argument from args per conversion.
//
// Supported: flags "0", "-", " ", "+"; a decimal field width; a decimal
// precision (accepted and ignored); length modifiers hh, h, l, ll, z, t;
// conversions d, i, o, x, X, s, c, p and %%. The ' ' and '+' flags are
// accepted but never print a sign.
//
// Render never fails. Unknown conversions produce empty (padded) content.
// A '%' that ends the format, possibly after flags, is printed literally and
// stops the render.
func Render(sink Sink, format string, args Cursor) {
	if sink == nil {
		sink = Discard
	}
	if args == nil {
		args = (*Args)(nil)
	}

	nn := 0
	for {
		mm := nn
		for mm < len(format) && format[mm] != '%' {
			mm++
		}
		if mm > nn {
			sink.Send(stringBytes(format[nn:mm]))
			nn = mm
		}
		if nn >= len(format) {
			return
		}
		nn++ // '%'

		d := directive{width: -1, precision: -1, size: 4}
		var c byte
	flags:
		for {
			if nn >= len(format) {
				// single trailing '%'
				sink.Send(percent)
				return
			}
			c = format[nn]
			nn++
			switch c {
			case '0':
				d.zeroPad = true
			case '-':
				d.leftAlign = true
			case ' ', '+':
				d.sign = c
			default:
				break flags
			}
		}

		if isDigit(c) {
			d.width, nn = parseDecimal(format, nn-1)
			c = byteAt(format, nn)
			nn++
		}

		if c == '.' {
			d.precision, nn = parseDecimal(format, nn)
			c = byteAt(format, nn)
			nn++
		}

		switch c {
		case 'h':
			d.size = 2
			if byteAt(format, nn) == 'h' {
				d.size = 1
				nn++
			}
			c = byteAt(format, nn)
			nn++
		case 'l':
			d.size = 8
			if byteAt(format, nn) == 'l' {
				nn++
			}
			c = byteAt(format, nn)
			nn++
		case 'z', 't':
			d.size = pointerSize
			c = byteAt(format, nn)
			nn++
		}
		d.verb = c

		var nb numberBuffer
		emit(sink, &d, convert(&nb, &d, args))

		// the directive ran into the end of the format
		if nn > len(format) {
			return
		}
	}
}

// convert produces the content for d, using nb for anything it has to
// format.
func convert(nb *numberBuffer, d *directive, args Cursor) []byte {
	switch d.verb {
	case 's':
		return cString(args.PullString())
	case 'c':
		// a NUL char renders as nothing
		nb[0] = byte(args.PullU32())
		if nb[0] == 0 {
			return nil
		}
		return nb[:1]
	case 'p':
		nb[0] = '0'
		nb[1] = 'x'
		n := formatHex(nb[2:], uint64(args.PullPointer()), false)
		return nb[:2+n]
	case '%':
		return percent
	}

	// %o is sign-extended like %d but rendered as unsigned digits, so
	// negative values come out as their two's complement in octal.
	signed := d.verb == 'd' || d.verb == 'i' || d.verb == 'o'
	value := pullInteger(args, d.size)
	if signed {
		shift := uint(64 - 8*d.size)
		value = uint64(int64(value<<shift) >> shift)
	}

	var n int
	switch d.verb {
	case 'd', 'i':
		n = formatDecimal(nb[:], value, true)
	case 'o':
		n = formatOctal(nb[:], value, false)
	case 'x', 'X':
		n = formatHex(nb[:], value, d.verb == 'X')
	}
	return nb[:n]
}

func emit(sink Sink, d *directive, content []byte) {
	pad := d.width - len(content)
	padChar := byte(' ')
	if d.zeroPad {
		padChar = '0'
	}
	if pad > 0 && !d.leftAlign {
		sendRepeat(sink, padChar, pad)
	}
	if len(content) > 0 {
		sink.Send(content)
	}
	if pad > 0 && d.leftAlign {
		sendRepeat(sink, padChar, pad)
	}
}

func pullInteger(args Cursor, size int) uint64 {
	switch size {
	case 1:
		return uint64(args.PullU8())
	case 2:
		return uint64(args.PullU16())
	case 4:
		return uint64(args.PullU32())
	default:
		return args.PullU64()
	}
}

// parseDecimal reads a run of decimal digits starting at pos and returns its
// value and the position after the run. No sign is accepted. The value
// saturates at math.MaxInt32.
func parseDecimal(format string, pos int) (int, int) {
	v := 0
	for pos < len(format) && isDigit(format[pos]) {
		if v <= (math.MaxInt32-9)/10 {
			v = v*10 + int(format[pos]-'0')
		} else {
			v = math.MaxInt32
		}
		pos++
	}
	return v, pos
}

func isDigit(c byte) bool {
	return c-'0' < 10
}

// byteAt treats everything past the end of s as NUL.
func byteAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// cString cuts s at its first NUL byte.
func cString(s string) []byte {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return stringBytes(s)
}

// stringBytes views s as a byte slice without copying. Sinks never write to
// what they are sent.
func stringBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
