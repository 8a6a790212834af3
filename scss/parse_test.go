package scss

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdewolff/test"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/scssgo/parse"
)

func TestParse(t *testing.T) {
	var parseTests = []struct {
		scss     string
		expected string
	}{
		{"", ""},
		{"a{}", "Block(a { })"},
		{"a{b{c:1;}}", "Block(a { Block(b { Prop(c: 1) }) })"},
		{"a { color: red }", "Block(a { Prop(color: red) })"},
		{"a, b > c { x: y; }", "Block(a, b > c { Prop(x: y) })"},
		{"a:hover { x: y; }", "Block(a:hover { Prop(x: y) })"},
		{"a{color:red;b{}}", "Block(a { Prop(color: red) Block(b { }) })"},
		{"@keyframes spin { from { x: 1; } 50% { x: 2; } }", "Directive(@keyframes spin { Block(from { Prop(x: 1) }) Block(50% { Prop(x: 2) }) })"},
		{";;a{;}", "Block(a { })"},
		{"<!-- a{} -->", "Block(a { })"},

		// assignments
		{"$x: 1;", "Assign($x: 1)"},
		{"$x : 1 2, 3;", "Assign($x: List(List(1 2), 3))"},
		{"$x: 1 !default;", "Assign($x: 1 !default)"},
		{"$x: a, b !global;", "Assign($x: List(a, b) !global)"},
		{"$x: (a: 1, b: 2);", "Assign($x: Map(a: 1, b: 2))"},
		{"$x: ();", "Assign($x: List())"},

		// minus
		{"$x: 5-1;", "Assign($x: Expr(5 - 1))"},
		{"$x: 5 - 1;", "Assign($x: Expr(5 - 1))"},
		{"$x: 5- 1;", "Assign($x: Expr(5 - 1))"},
		{"$x: 5 -$b;", "Assign($x: Expr(5 - $b))"},
		{"$x: 5 -1;", "Assign($x: List(5 Unary(-1)))"},
		{"$x: $a -$b;", "Assign($x: Expr($a - $b))"},

		// properties
		{"a { font: { family: x; } }", "Block(a { NestedProperty(font: { Prop(family: x) }) })"},
		{"a { font: 12px { family: x; } }", "Block(a { Prop(font: 12px) NestedProperty(font: { Prop(family: x) }) })"},
		{"a { #{$p}-top: 1px; }", "Block(a { Prop(#{$p}-top: 1px) })"},
		{"a { *zoom: 1; }", "Block(a { Prop(*zoom: 1) })"},

		// directives
		{"@mixin foo($a, $b: 10px) { width: $a; }", "Mixin(foo($a, $b: 10px) { Prop(width: $a) })"},
		{"@mixin foo { }", "Mixin(foo { })"},
		{"@mixin foo($args...) { }", "Mixin(foo($args...) { })"},
		{"@include foo;", "Include(foo)"},
		{"@include foo();", "Include(foo())"},
		{"@include foo(1, $b: 2);", "Include(foo(1, $b: 2))"},
		{"@include foo($list...);", "Include(foo($list...))"},
		{"@include foo { color: red; }", "Include(foo Include({ Prop(color: red) }))"},
		{"@function double($n) { @return $n * 2; }", "Function(double($n) { Return(Expr($n * 2)) })"},
		{"@function f() { @return; }", "Function(f() { Return(null) })"},
		{"@import \"a\", \"b\";", "Import(List(\"a\", \"b\"))"},
		{"@import url(foo.css);", "Import(url(foo.css))"},
		{"@scssphp-import-once 'x';", "ImportOnce('x')"},
		{"a { @extend .b !optional; }", "Block(a { Extend(.b !optional) })"},
		{"a { @extend %p; }", "Block(a { Extend(%p) })"},
		{"@debug 1;", "Debug(1)"},
		{"@warn \"x\";", "Warn(\"x\")"},
		{"@error $e;", "Error($e)"},
		{"@mixin m { @content; }", "Mixin(m { Content() })"},
		{"@while $i > 0 { @break; @continue; }", "While(Expr($i > 0) { Break() Continue() })"},
		{"@each $k, $v in $map { }", "Each($k, $v in $map { })"},
		{"@for $i from 1 through 3 { }", "For($i from 1 through 3 { })"},
		{"@for $i from 1 to $n { }", "For($i from 1 to $n { })"},
		{"@if $a == 1 { x: 1; } @else if $a { x: 2; } @else { x: 3; }", "If(Expr($a == 1) ElseIf($a { Prop(x: 2) }) Else({ Prop(x: 3) }) { Prop(x: 1) })"},
		{"@if $a { } @elseif $b { }", "If($a ElseIf($b { }) { })"},
		{"@if $a { } /* c */ @else { }", "If($a Else({ }) { }) Comment(/* c */)"},
		{"a { @at-root .b { } }", "Block(a { AtRoot(.b { }) })"},
		{"@at-root { }", "AtRoot({ })"},
		{"@media screen and (min-width: 100px) { a { b: c; } }", "Media(screen and (min-width: 100px) { Block(a { Prop(b: c) }) })"},
		{"@media print, (color) { }", "Media(print, (color) { })"},
		{"@media only screen { }", "Media(only screen { })"},
		{"@font-face { font-family: x; }", "Directive(@font-face { Prop(font-family: x) })"},
		{"@else { }", "Directive(@else { })"},
		{"@supports (display: grid) { }", "Directive(@supports (display: grid) { })"},
		{"@charset \"utf-8\";\n@charset \"latin1\";\na{}", "Charset(\"utf-8\") Block(a { })"},

		// comments
		{"/* lead */\n.x{}", "Comment(/* lead */) Block(.x { })"}, // a parent without children keeps its queued comments
		{"b{} a{ /*c*/ .x{} }", "Block(b { }) Block(a { Comment(/*c*/) Block(.x { }) })"},
		{"a{c:1; /* t */}", "Block(a { Prop(c: 1) Comment(/* t */) })"},
		{"a { b /* x */: c; }", "Block(a { Prop(b: c) Comment(/* x */) })"},
		{"// line\na{}", "Block(a { })"},
		{"/* a\n     b\n\n   c */\nx{}", "Comment(/* a\n b\n c */) Block(x { })"},
	}
	for _, tt := range parseTests {
		t.Run(tt.scss, func(t *testing.T) {
			root, err := Parse([]byte(tt.scss))
			test.Error(t, err)
			test.String(t, root.String(), tt.expected)
		})
	}
}

func TestParseError(t *testing.T) {
	var errorTests = []struct {
		scss string
		err  string
	}{
		{"a{b{c:1;}", "unclosed block"},
		{"}", "unexpected }"},
		{"a{}}", "unexpected }"},
		{"@mixin foo($a..., $b) {}", "... has to be after the final argument"},
		{"a { ! }", "parse error"},
		{"@foo;", "parse error"},
		{"a%{}", "parse error"},
	}
	for _, tt := range errorTests {
		t.Run(tt.scss, func(t *testing.T) {
			_, err := Parse([]byte(tt.scss))
			require.Error(t, err)
			perr, ok := err.(*parse.Error)
			require.True(t, ok, "error must be a *parse.Error")
			test.String(t, perr.Message, tt.err)
			test.String(t, perr.Source, "(stdin)")
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := NewParser("style.scss", 0, "utf-8").Parse([]byte("a {\n  b: c;\n}\n}"))
	require.Error(t, err)
	perr := err.(*parse.Error)
	test.T(t, perr.Line, 4)
	test.String(t, perr.Source, "style.scss")
	test.String(t, perr.Error(), "unexpected }: style.scss on line 4")
}

func TestParseReuse(t *testing.T) {
	p := NewParser("", 0, "")
	_, err := p.Parse([]byte("a{"))
	require.Error(t, err)

	root, err := p.Parse([]byte("b{}"))
	test.Error(t, err)
	test.String(t, root.String(), "Block(b { })")
	test.String(t, p.SourceName(), "(stdin)")
}

func TestParseEncoding(t *testing.T) {
	root, err := NewParser("", 0, "UTF-8").Parse([]byte("é{}"))
	test.Error(t, err)
	test.String(t, root.String(), "Block(é { })")

	_, err = NewParser("", 0, "ascii").Parse([]byte("é{}"))
	require.Error(t, err)
}

func TestParseTrailingControl(t *testing.T) {
	root, err := Parse([]byte("a{}\x00\x1a"))
	test.Error(t, err)
	test.String(t, root.String(), "Block(a { })")
}

func TestParseValue(t *testing.T) {
	var valueTests = []struct {
		value    string
		expected string
	}{
		{"1", "1"},
		{" 1 ", "1"},
		{"1.5em", "1.5em"},
		{".5", "0.5"},
		{"50%", "50%"},
		{"a b, c", "List(List(a b), c)"},
		{"1 + 2 * 3", "Expr(1 + Expr(2 * 3))"},
		{"1 * 2 + 3", "Expr(Expr(1 * 2) + 3)"},
		{"(1 + 2) * 3", "Expr(Expr(1 + 2) * 3)"},
		{"$a and $b or $c", "Expr(Expr($a and $b) or $c)"},
		{"$a AND $b Or $c", "Expr(Expr($a and $b) or $c)"},
		{"$a andy", "List($a andy)"},
		{"$a <= $b", "Expr($a <= $b)"},
		{"$a != null", "Expr($a != null)"},
		{"5 android", "List(5 android)"},
		{"not $a", "Unary(not $a)"},
		{"not($a)", "Unary(not $a)"},
		{"notice", "notice"},
		{"-$a", "Unary(-$a)"},
		{"+1", "Unary(+1)"},
		{"-(1)", "Unary(-1)"},
		{"true false null", "List(true false null)"},
		{"#fff", "#ffffff"},
		{"#FF0000", "#ff0000"},
		{"#{$a}", "#{$a}"},
		{"(a: 1, b: 2)", "Map(a: 1, b: 2)"},
		{"(a: (b: c))", "Map(a: Map(b: c))"},
		{"()", "List()"},
		{"(1 2)", "List(1 2)"},
		{"rgba(0, 0, 0, .5)", "rgba(0, 0, 0, 0.5)"},
		{"f($a: 1, $rest...)", "f($a: 1, $rest...)"},
		{"calc(100% - 10px)", "calc(100% - 10px)"},
		{"-moz-calc(1px+2px)", "-moz-calc(1px+2px)"},
		{"url(foo.css)", "url(foo.css)"},
		{"alpha(opacity=50)", "alpha(opacity=50)"},
		{"progid:DXImageTransform.Microsoft.gradient(startColorstr='#000')", "progid:DXImageTransform.Microsoft.gradient(startColorstr='#000')"},
		{"\"a#{$b}c\"", "\"a#{$b}c\""},
		{"'it\\'s'", "'it\\'s'"},
		{"'it\\'s #{$x}'", "\"it's #{$x}\""},
	}
	for _, tt := range valueTests {
		t.Run(tt.value, func(t *testing.T) {
			value, err := ParseValue([]byte(tt.value))
			test.Error(t, err)
			test.String(t, value.String(), tt.expected)
		})
	}
}

func TestParseValueError(t *testing.T) {
	var errorTests = []string{
		"",
		"1 )",
		"{",
	}
	for _, tt := range errorTests {
		t.Run(tt, func(t *testing.T) {
			_, err := ParseValue([]byte(tt))
			require.Error(t, err)
		})
	}
}

func TestParseValueNodes(t *testing.T) {
	value, err := ParseValue([]byte("5 -1"))
	require.NoError(t, err)
	list, ok := value.(*List)
	require.True(t, ok)
	test.T(t, list.Delim, SpaceDelim)
	test.T(t, len(list.Items), 2)

	value, err = ParseValue([]byte("$a - $b"))
	require.NoError(t, err)
	expr := value.(*BinaryExpr)
	test.That(t, expr.WhiteBefore && expr.WhiteAfter, "whitespace on both sides of the operator")
	test.That(t, !expr.InParens)

	value, err = ParseValue([]byte("($a*$b)"))
	require.NoError(t, err)
	expr = value.(*BinaryExpr)
	test.That(t, expr.InParens)
	test.That(t, !expr.WhiteBefore && !expr.WhiteAfter)

	value, err = ParseValue([]byte("1.5em"))
	require.NoError(t, err)
	num := value.(*Number)
	test.T(t, num.Value, 1.5)
	test.String(t, num.Unit, "em")

	value, err = ParseValue([]byte("#abc"))
	require.NoError(t, err)
	color := value.(*Color)
	require.Equal(t, Color{0xaa, 0xbb, 0xcc, 0xff}, *color)

	var whiteTests = []struct {
		value       string
		left, right bool
	}{
		{"a #{$b} c", true, true},
		{"a#{$b}c", false, false},
		{"a #{$b}c", true, false},
		{"\"x #{$b} y\"", false, false},
	}
	for _, tt := range whiteTests {
		t.Run(tt.value, func(t *testing.T) {
			value, err := ParseValue([]byte(tt.value))
			require.NoError(t, err)
			var interps []*Interpolation
			Walk(visitorFunc(func(n INode) {
				if interp, ok := n.(*Interpolation); ok {
					interps = append(interps, interp)
				}
			}), value)
			require.Len(t, interps, 1)
			test.T(t, interps[0].WhiteLeft, tt.left, "whitespace before")
			test.T(t, interps[0].WhiteRight, tt.right, "whitespace after")
		})
	}
}

func TestParsePositions(t *testing.T) {
	src := []byte("a {\n  b: c;\n  @include x;\n  /* note */\n  d {\n    e: f;\n  }\n}\n$v: 1;\n@if $v { } @else { }\n")
	root, err := NewParser("", 3, "").Parse(src)
	require.NoError(t, err)

	n := 0
	Walk(visitorFunc(func(node INode) {
		stmt, ok := node.(IStmt)
		if !ok {
			return
		}
		pos := stmt.Position()
		line := 1 + bytes.Count(src[:pos.Offset], []byte("\n"))
		col := pos.Offset - (bytes.LastIndexByte(src[:pos.Offset], '\n') + 1)
		test.T(t, pos.Line, line, stmt.String())
		test.T(t, pos.Column, col, stmt.String())
		test.T(t, pos.SourceIndex, 3, stmt.String())
		n++
	}), root)
	test.T(t, n, 10)

	a := root.Children[0].(*Block)
	test.T(t, a.Pos, Pos{Offset: 0, Line: 1, Column: 0, SourceIndex: 3})
	test.T(t, a.Children[0].Position().Line, 2)
	test.T(t, a.Children[1].Position(), Pos{Offset: 14, Line: 3, Column: 2, SourceIndex: 3})
}

func TestParseLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	_, err := Parse([]byte("@charset \"a\";\n@charset \"b\";\n"), WithLogger(log))
	require.NoError(t, err)
	entries := logs.FilterMessage("dropping duplicate @charset").All()
	require.Len(t, entries, 1)
	test.String(t, entries[0].LoggerName, "scss")
	test.T(t, entries[0].ContextMap()["charset"], "\"b\"")
	test.T(t, entries[0].ContextMap()["line"], int64(2))

	_, err = Parse([]byte("@inclde foo;"), WithLogger(log))
	require.Error(t, err)
	entries = logs.FilterMessage("directive without body").All()
	require.Len(t, entries, 1)
	test.T(t, entries[0].ContextMap()["suggestion"], "@include")
	require.NotZero(t, logs.FilterMessage("parse error").Len())

	_, err = Parse([]byte("@fro { }"), WithLogger(log))
	require.NoError(t, err)
	entries = logs.FilterMessage("unknown directive").All()
	require.Len(t, entries, 1)
	test.T(t, entries[0].ContextMap()["suggestion"], "@for")

	_, err = Parse([]byte("@font-face { }"), WithLogger(log))
	require.NoError(t, err)
	test.T(t, logs.FilterMessage("unknown directive").Len(), 1)
}

func TestSuggestDirective(t *testing.T) {
	var suggestTests = []struct {
		name     string
		expected string
	}{
		{"inclde", "include"},
		{"MIXN", "mixin"},
		{"fro", "for"},
		{"include", ""},
		{"keyframes", ""},
		{"-webkit-keyframes", ""},
		{"xyzzy", ""},
	}
	for _, tt := range suggestTests {
		t.Run(tt.name, func(t *testing.T) {
			test.String(t, suggestDirective(tt.name), tt.expected)
		})
	}
}

func FuzzParse(f *testing.F) {
	f.Add([]byte("a{b{c:1;}}"))
	f.Add([]byte("@mixin m($a: 1) { @content; } @include m { x: y; }"))
	f.Add([]byte("$x: (a: 1, b: (c: #fff));"))
	f.Add([]byte("@media screen and (min-width: #{$w}) { .a:not(.b) > %c { d: e } }"))
	f.Add([]byte("/* c */ @if $a { } @else if $b { } @else { }"))
	f.Fuzz(func(t *testing.T, src []byte) {
		root, err := Parse(src)
		if err != nil {
			if _, ok := err.(*parse.Error); !ok {
				t.Fatalf("unexpected error type %T", err)
			}
			return
		}
		_ = root.String()
	})
}
