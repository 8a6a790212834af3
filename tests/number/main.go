// +build gofuzz

package fuzz

import "github.com/scssgo/parse"

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	if n := parse.Number(data); len(data) < n {
		panic("number longer than input")
	}
	return 1
}
