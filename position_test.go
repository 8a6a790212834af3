package parse

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/tdewolff/test"
)

func TestPosition(t *testing.T) {
	var newlineTests = []struct {
		offset int
		buf    string
		line   int
		col    int
	}{
		{0, "x", 1, 0},
		{1, "xx", 1, 1},
		{2, "x\nx", 2, 0},
		{2, "\n\nx", 3, 0},
		{3, "\nxxx", 2, 2},
		{2, "\r\nx", 2, 0},
		{1, "\rx", 1, 1},

		// edge cases
		{0, "", 1, 0},
		{0, "\n", 1, 0},
		{1, "\n", 2, 0},
		{1, "\r\n", 1, 1},
		{-1, "x", 1, 0},
		{5, "x\nx", 2, 3}, // past the end
	}
	for _, tt := range newlineTests {
		t.Run(fmt.Sprint(tt.buf, " ", tt.offset), func(t *testing.T) {
			line, col := NewLineIndex([]byte(tt.buf)).Position(tt.offset)
			test.T(t, line, tt.line, "line")
			test.T(t, col, tt.col, "column")
		})
	}
}

func TestPositionNaive(t *testing.T) {
	bufs := helperRandChars(100, 200, "ab \n\r")
	for _, buf := range bufs {
		idx := NewLineIndex(buf)
		for offset := 0; offset <= len(buf); offset++ {
			line := 1 + bytes.Count(buf[:offset], []byte("\n"))
			col := offset - (bytes.LastIndexByte(buf[:offset], '\n') + 1)

			l, c := idx.Position(offset)
			if l != line || c != col {
				t.Fatalf("offset %d in %q: got %d:%d, expected %d:%d", offset, buf, l, c, line, col)
			}
		}
	}
}

func TestLineIndexOffset(t *testing.T) {
	idx := NewLineIndex([]byte("a\nbc\n\nd"))
	test.T(t, idx.Lines(), 4)
	test.T(t, idx.Offset(1), 0)
	test.T(t, idx.Offset(2), 2)
	test.T(t, idx.Offset(4), 6)
	test.T(t, idx.Offset(0), -1)
	test.T(t, idx.Offset(5), -1)
}

func TestPositionContext(t *testing.T) {
	var contextTests = []struct {
		offset  int
		buf     string
		context string
	}{
		{0, "abc", "    1: abc\n       ^"},
		{2, "abc", "    1: abc\n         ^"},
		{4, "a\nbcd\ne", "    2: bcd\n         ^"},
		{3, "ab\r\nc", "    1: ab \n          ^"},
		{1, "\n", "    2: \n       ^"},
	}
	for _, tt := range contextTests {
		t.Run(fmt.Sprint(tt.buf, " ", tt.offset), func(t *testing.T) {
			buf := []byte(tt.buf)
			test.T(t, NewLineIndex(buf).Context(buf, tt.offset), tt.context)
		})
	}
}

////////////////////////////////////////////////////////////////

func helperRandChars(n, m int, chars string) [][]byte {
	r := make([][]byte, n)
	for i := range r {
		for j := 0; j < m; j++ {
			r[i] = append(r[i], chars[rand.Intn(len(chars))])
		}
	}
	return r
}
