package parse

import (
	"fmt"
	"sort"
	"strings"
)

// LineIndex holds the offsets at which each line of a buffer starts. It is built once and is read-only afterwards.
// It only treats \n as a newline, a preceding \r is counted as part of the line.
type LineIndex struct {
	starts []int
}

// NewLineIndex returns the line index of b.
func NewLineIndex(b []byte) *LineIndex {
	starts := make([]int, 1, 64)
	for i, c := range b {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts}
}

// Lines returns the number of lines in the buffer.
func (idx *LineIndex) Lines() int {
	return len(idx.starts)
}

// Position returns the 1-based line and 0-based column for an offset into the buffer.
// Offsets past the end of the buffer are attributed to the last line, negative offsets to the first position.
func (idx *LineIndex) Position(offset int) (line, col int) {
	if offset < 0 {
		return 1, 0
	}
	i := sort.Search(len(idx.starts), func(i int) bool {
		return offset < idx.starts[i]
	}) - 1
	return i + 1, offset - idx.starts[i]
}

// Offset returns the offset of the start of a 1-based line, or -1 if the line does not exist.
func (idx *LineIndex) Offset(line int) int {
	if line < 1 || len(idx.starts) < line {
		return -1
	}
	return idx.starts[line-1]
}

// Context returns the line of b containing offset, prefixed by its line number and followed by a caret under the column.
func (idx *LineIndex) Context(b []byte, offset int) string {
	if len(b) < offset {
		offset = len(b)
	}
	line, col := idx.Position(offset)
	start := idx.starts[line-1]
	if len(b) < start {
		start = len(b)
	}
	end := start
	for end < len(b) && b[end] != '\n' {
		end++
	}

	text := []byte(string(b[start:end]))
	if 0 < len(text) && text[len(text)-1] == '\r' {
		text[len(text)-1] = ' ' // if error occurs at \n in \r\n, replace \r by a space so it won't wrap
	}

	context := fmt.Sprintf("%5d: %s\n", line, string(text))
	context += fmt.Sprintf("%s^", strings.Repeat(" ", col+7))
	return context
}
