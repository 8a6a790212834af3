package parse

import (
	"fmt"
)

// Error is a parsing error returned by a parser. It contains a message, the name of the source and the position at which the error occurred.
// Line and Column are both 1-based.
type Error struct {
	Message string
	Source  string
	Line    int
	Column  int
	Context string

	near string
}

// NewError creates a new error for the given offset into src. The line index must have been built from src.
func NewError(idx *LineIndex, src []byte, source string, offset int, format string, args ...interface{}) *Error {
	if offset < 0 {
		offset = 0
	} else if len(src) < offset {
		offset = len(src)
	}
	line, col := idx.Position(offset)

	end := offset
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Source:  source,
		Line:    line,
		Column:  col + 1,
		Context: idx.Context(src, offset),
		near:    string(src[offset:end]),
	}
}

// Position returns the line, column, and context of the error.
// Context is the entire line at which the error occurred followed by a caret under the column.
func (e *Error) Position() (int, int, string) {
	return e.Line, e.Column, e.Context
}

// Error returns the error string, containing the offending text, the source name and the line number.
func (e *Error) Error() string {
	loc := fmt.Sprintf("%s on line %d", e.Source, e.Line)
	if e.Source == "" {
		loc = fmt.Sprintf("line: %d", e.Line)
	}
	if e.near != "" {
		return fmt.Sprintf("%s: failed at `%s` %s", e.Message, e.near, loc)
	}
	return fmt.Sprintf("%s: %s", e.Message, loc)
}
