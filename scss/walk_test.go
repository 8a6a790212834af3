package scss

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdewolff/test"
)

type visitorFunc func(INode)

func (f visitorFunc) Enter(n INode) IVisitor {
	f(n)
	return f
}

type renamer struct{}

func (w *renamer) Enter(n INode) IVisitor {
	switch n := n.(type) {
	case *Variable:
		if n.Name == "x" {
			n.Name = "renamed"
		}
	case *MixinDirective:
		// leave parameter defaults alone
		return nil
	}
	return w
}

func TestWalk(t *testing.T) {
	src := `
	@mixin m($x: $x) { a: $x; }
	.a:not(#{$x}) {
		b: f($x, $y...) + $x;
		@include m($x) { c: (k: $x); }
		@if $x { } @else if $x { }
		@media (min-width: $x) { }
	}`

	root, err := Parse([]byte(src))
	require.NoError(t, err)

	Walk(&renamer{}, root)

	t.Run("TestWalk", func(t *testing.T) {
		test.String(t, root.String(), "Mixin(m($x: $x) { Prop(a: $renamed) }) "+
			"Block(.a:not(#{$renamed}) { "+
			"Prop(b: Expr(f($renamed, $y...) + $renamed)) "+
			"Include(m($renamed) Include({ Prop(c: Map(k: $renamed)) })) "+
			"If($renamed ElseIf($renamed { }) { }) "+
			"Media((min-width: $renamed) { }) })")
	})
}

func TestWalkCount(t *testing.T) {
	root, err := Parse([]byte("a, b { c: 1 2; d { e: f(g); } }"))
	require.NoError(t, err)

	counts := map[string]int{}
	Walk(visitorFunc(func(n INode) {
		switch n.(type) {
		case *Block:
			counts["block"]++
		case *PropertyStmt:
			counts["property"]++
		case Selector:
			counts["selector"]++
		case *Element:
			counts["element"]++
		case *Number:
			counts["number"]++
		case *Keyword:
			counts["keyword"]++
		case *FunctionCall:
			counts["call"]++
		}
	}), root)

	test.T(t, counts["block"], 3)
	test.T(t, counts["property"], 2)
	test.T(t, counts["selector"], 3)
	test.T(t, counts["element"], 3)
	test.T(t, counts["number"], 2)
	test.T(t, counts["keyword"], 1)
	test.T(t, counts["call"], 1)
}

func TestWalkNil(t *testing.T) {
	n := 0
	Walk(visitorFunc(func(INode) { n++ }), nil)
	Walk(visitorFunc(func(INode) { n++ }), (*Block)(nil))
	test.T(t, n, 0)
}
