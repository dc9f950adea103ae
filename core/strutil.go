package core

// Lightweight number formatting for status bar and debug text. fmt is
// avoided on the firmware side; these keep the flash footprint small on
// TinyGo targets.

const hexDigits = "0123456789ABCDEF"

// itoa converts an integer to decimal without the fmt package.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	digits := 0
	for temp := n; temp > 0; temp /= 10 {
		digits++
	}
	if negative {
		digits++
	}

	buf := make([]byte, digits)
	pos := digits - 1
	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}
	if negative {
		buf[0] = '-'
	}
	return string(buf)
}

// utoa converts an unsigned integer to decimal.
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	digits := 0
	for temp := n; temp > 0; temp /= 10 {
		digits++
	}

	buf := make([]byte, digits)
	pos := digits - 1
	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}
	return string(buf)
}

// hex2 formats a byte as two uppercase hex digits.
func hex2(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
}

// hex4 formats a 16-bit value as four uppercase hex digits.
func hex4(v uint16) string {
	return hex2(byte(v>>8)) + hex2(byte(v))
}
