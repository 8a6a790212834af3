// Package parse contains shared helpers for the stylesheet parsers in its subpackages: errors, source positions and number scanning.
package parse // import "github.com/scssgo/parse"

// Number returns the number of bytes that parse as a number of the regex format [0-9]*\.?[0-9]+.
// Signs and exponents are not part of a stylesheet number, they are handled by the expression grammar.
func Number(b []byte) int {
	i := 0
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i+1 < len(b) && b[i] == '.' && b[i+1] >= '0' && b[i+1] <= '9' {
		i += 2
		for i < len(b) && b[i] >= '0' && b[i] <= '9' {
			i++
		}
	}
	return i
}

// Dimension returns the number of bytes of the number and the number of bytes of its unit, which is a run of letters and percentage signs.
func Dimension(b []byte) (int, int) {
	num := Number(b)
	if num == 0 {
		return 0, 0
	}
	i := num
	for i < len(b) && (b[i] == '%' || b[i] >= 'a' && b[i] <= 'z' || b[i] >= 'A' && b[i] <= 'Z') {
		i++
	}
	return num, i - num
}

// Hex returns the number of hexadecimal digits at the start of b, up to max.
func Hex(b []byte, max int) int {
	i := 0
	for i < len(b) && i < max && IsHex(b[i]) {
		i++
	}
	return i
}

// HexValue returns the value of the hexadecimal digits in b. All bytes must satisfy IsHex.
func HexValue(b []byte) uint32 {
	n := uint32(0)
	for _, c := range b {
		n <<= 4
		if c <= '9' {
			n |= uint32(c - '0')
		} else if c <= 'F' {
			n |= uint32(c-'A') + 10
		} else {
			n |= uint32(c-'a') + 10
		}
	}
	return n
}
