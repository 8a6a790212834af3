package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	var numberTests = []struct {
		number   string
		expected int
	}{
		{"5", 1},
		{"0.51", 4},
		{"0.5e-99", 3},
		{".0", 2},
		{"0.", 1},
		{"1.2.3", 3},
		{"", 0},
		{"+5", 0},
		{"-5", 0},
		{".", 0},
		{"a", 0},
	}
	for _, tt := range numberTests {
		number := Number([]byte(tt.number))
		assert.Equal(t, tt.expected, number, "Number must give expected result in "+tt.number)
	}
}

func TestParseDimension(t *testing.T) {
	var dimensionTests = []struct {
		dimension    string
		expectedNum  int
		expectedUnit int
	}{
		{"5px", 1, 2},
		{"5px ", 1, 2},
		{"5%", 1, 1},
		{"50%;", 2, 1},
		{".5em", 2, 2},
		{"5e-3", 1, 1},
		{"px", 0, 0},
		{"1", 1, 0},
		{"1~", 1, 0},
		{"1-a", 1, 0},
	}
	for _, tt := range dimensionTests {
		num, unit := Dimension([]byte(tt.dimension))
		assert.Equal(t, tt.expectedNum, num, "Dimension must give expected result in "+tt.dimension)
		assert.Equal(t, tt.expectedUnit, unit, "Dimension must give expected result in "+tt.dimension)
	}
}

func TestParseHex(t *testing.T) {
	var hexTests = []struct {
		hex      string
		max      int
		expected int
		value    uint32
	}{
		{"fff", 6, 3, 0xfff},
		{"FF0000", 6, 6, 0xff0000},
		{"aBcDeF12", 6, 6, 0xabcdef},
		{"12g", 6, 2, 0x12},
		{"g", 6, 0, 0},
	}
	for _, tt := range hexTests {
		n := Hex([]byte(tt.hex), tt.max)
		assert.Equal(t, tt.expected, n, "Hex must give expected result in "+tt.hex)
		assert.Equal(t, tt.value, HexValue([]byte(tt.hex)[:n]), "HexValue must give expected result in "+tt.hex)
	}
}
