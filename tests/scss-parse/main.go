// +build gofuzz

package fuzz

import (
	"github.com/scssgo/parse"
	"github.com/scssgo/parse/scss"
)

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	root, err := scss.Parse(parse.Copy(data))
	if err != nil {
		if _, ok := err.(*parse.Error); !ok {
			panic("error is not a *parse.Error")
		}
		return 0
	}
	_ = root.String()
	return 1
}
