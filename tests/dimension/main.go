// +build gofuzz

package fuzz

import "github.com/scssgo/parse"

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	num, unit := parse.Dimension(data)
	if len(data) < num+unit || num == 0 && unit != 0 {
		panic("invalid dimension")
	}
	return 1
}
