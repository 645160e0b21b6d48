package rawfmt

const (
	decimalDigits  = "0123456789"
	hexDigitsLower = "0123456789abcdef"
	hexDigitsUpper = "0123456789ABCDEF"
)

// numberBufferSize holds any 64-bit value in base 8 (22 digits) plus a sign,
// a "0x" prefix and the NUL sentinel.
const numberBufferSize = 32

type numberBuffer [numberBufferSize]byte

// formatNumber writes value in base into buf using digits, most significant
// digit first, followed by a NUL sentinel. It returns the number of digits
// written. One slot of buf is always reserved for the sentinel; digits that do
// not fit are dropped, so an undersized buf keeps the low-order digits.
func formatNumber(buf []byte, value uint64, base int, digits string) int {
	if len(buf) == 0 {
		return 0
	}
	b := uint64(base)
	end := len(buf) - 1
	pos := 0

	// least significant digit first
	for value != 0 {
		d := value % b
		value /= b
		if pos < end {
			buf[pos] = digits[d]
			pos++
		}
	}

	if pos == 0 && pos < end {
		buf[pos] = '0'
		pos++
	}
	buf[pos] = 0

	for i, j := 0, pos-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return pos
}

// formatInteger is formatNumber with decimal digits and an optional leading
// minus sign when signed is set and value, read as an int64, is negative.
func formatInteger(buf []byte, value uint64, base int, signed bool) int {
	if signed && int64(value) < 0 && len(buf) > 1 {
		buf[0] = '-'
		return 1 + formatNumber(buf[1:], uint64(-int64(value)), base, decimalDigits)
	}
	return formatNumber(buf, value, base, decimalDigits)
}

func formatOctal(buf []byte, value uint64, signed bool) int {
	return formatInteger(buf, value, 8, signed)
}

func formatDecimal(buf []byte, value uint64, signed bool) int {
	return formatInteger(buf, value, 10, signed)
}

func formatHex(buf []byte, value uint64, upper bool) int {
	digits := hexDigitsLower
	if upper {
		digits = hexDigitsUpper
	}
	return formatNumber(buf, value, 16, digits)
}

// AppendUint appends the digits of v in base 8, 10 or 16 to dst. Any other
// base is treated as 10.
func AppendUint(dst []byte, v uint64, base int) []byte {
	var nb numberBuffer
	var n int
	switch base {
	case 8:
		n = formatOctal(nb[:], v, false)
	case 16:
		n = formatHex(nb[:], v, false)
	default:
		n = formatDecimal(nb[:], v, false)
	}
	return append(dst, nb[:n]...)
}

// AppendInt appends v to dst. Base 10 values carry a leading '-' when
// negative; base 8 and 16 render the two's complement bit pattern, as %o and
// %x do.
func AppendInt(dst []byte, v int64, base int) []byte {
	if base == 8 || base == 16 {
		return AppendUint(dst, uint64(v), base)
	}
	var nb numberBuffer
	n := formatDecimal(nb[:], uint64(v), true)
	return append(dst, nb[:n]...)
}
