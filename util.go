package parse // import "github.com/scssgo/parse"

// IsWhitespace returns true for the whitespace bytes a stylesheet skips between tokens: space, tab, newline and carriage return.
func IsWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// IsSpace returns true for the C locale space class, which additionally contains the vertical tab and form feed.
func IsSpace(c byte) bool {
	return IsWhitespace(c) || c == '\v' || c == '\f'
}

// IsHex returns true for hexadecimal digits.
func IsHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// IsDigit returns true for ASCII digits.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsWordChar returns true for ASCII letters, digits and the underscore.
func IsWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// Copy returns a copy of src.
func Copy(src []byte) (dst []byte) {
	dst = make([]byte, len(src))
	copy(dst, src)
	return
}

// ToLower converts all ASCII uppercase letters in src to lowercase, in place.
func ToLower(src []byte) []byte {
	for i, c := range src {
		if c >= 'A' && c <= 'Z' {
			src[i] = c + ('a' - 'A')
		}
	}
	return src
}

// TrimRight removes trailing bytes for which f returns true.
func TrimRight(b []byte, f func(byte) bool) []byte {
	n := len(b)
	for 0 < n && f(b[n-1]) {
		n--
	}
	return b[:n]
}

// IsControl returns true for ASCII control characters 0x00 through 0x1f.
func IsControl(c byte) bool {
	return c <= 0x1f
}
