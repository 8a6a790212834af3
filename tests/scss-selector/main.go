// +build gofuzz

package fuzz

import (
	"github.com/scssgo/parse"
	"github.com/scssgo/parse/scss"
)

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	list, err := scss.ParseSelectorList(parse.Copy(data))
	if err != nil {
		return 0
	}
	_ = list.String()
	return 1
}
