package scss

import (
	"strconv"
	"strings"

	"github.com/scssgo/parse"
)

// precedence of the binary operators, higher binds tighter.
var precedence = map[string]int{
	"=":   0,
	"or":  1,
	"and": 2,
	"==":  3,
	"!=":  3,
	"<=>": 3,
	"<=":  4,
	">=":  4,
	"<":   4,
	">":   4,
	"+":   5,
	"-":   5,
	"*":   6,
	"/":   6,
	"%":   6,
}

// parseList parses items separated by sep, or directly adjacent items when sep is empty.
// The cursor is restored when no item could be parsed.
func parseList[T any](p *Parser, item func() (T, bool), sep string) []T {
	s := p.pos
	var items []T
	for {
		v, ok := item()
		if !ok {
			break
		}
		items = append(items, v)
		if sep != "" && !p.literal(sep) {
			break
		}
	}
	if len(items) == 0 {
		p.restore(s)
	}
	return items
}

func flattenList(v IExpr) IExpr {
	if l, ok := v.(*List); ok && len(l.Items) == 1 {
		return flattenList(l.Items[0])
	}
	return v
}

// valueList parses a comma separated list of space separated lists. Lists of one element are returned as the element.
func (p *Parser) valueList() (IExpr, bool) {
	items := parseList(p, p.spaceList, ",")
	if len(items) == 0 {
		return nil, false
	} else if len(items) == 1 {
		return items[0], true
	}
	return &List{Delim: CommaDelim, Items: items}, true
}

// spaceList parses a space separated list of expressions. Lists of one element are returned as the element.
func (p *Parser) spaceList() (IExpr, bool) {
	items := parseList(p, p.expression, "")
	if len(items) == 0 {
		return nil, false
	} else if len(items) == 1 {
		return items[0], true
	}
	return &List{Delim: SpaceDelim, Items: items}, true
}

// expression parses a parenthesized list or map, or a value followed by binary operators.
func (p *Parser) expression() (IExpr, bool) {
	s := p.pos
	if p.matchChar('(') {
		if p.matchChar(')') {
			return &List{Delim: NoDelim}, true
		}
		if v, ok := p.valueList(); ok && p.matchChar(')') {
			if list, ok := v.(*List); ok {
				return list, true
			}
		}
		p.restore(s)
		if m, ok := p.mapExpr(); ok {
			return m, true
		}
		p.restore(s)
	}

	if lhs, ok := p.value(); ok {
		return p.expHelper(lhs, 0), true
	}
	return nil, false
}

// operator returns the binary operator at offset i, or an empty string.
func (p *Parser) operator(i int) string {
	switch c := p.at(i); c {
	case '*', '/', '%', '+', '-':
		return string(c)
	case '!', '=':
		if p.at(i+1) == '=' {
			return string(c) + "="
		}
	case '>':
		if p.at(i+1) == '=' {
			return ">="
		}
		return ">"
	case '<':
		if p.at(i+1) == '=' {
			if p.at(i+2) == '>' {
				return "<=>"
			}
			return "<="
		}
		return "<"
	case 'a', 'o', 'A', 'O':
		for _, op := range []string{"and", "or"} {
			if strings.EqualFold(string(p.src[i:min(i+len(op), len(p.src))]), op) && p.keywordCharLen(i+len(op), false) == 0 {
				return op
			}
		}
	}
	return ""
}

// expHelper climbs operators of at least minPrec precedence on top of lhs.
// A minus that follows whitespace but is not followed by whitespace or a variable is left as the sign of the next value.
func (p *Parser) expHelper(lhs IExpr, minPrec int) IExpr {
	ss := p.pos
	whiteBefore := 0 < p.pos && parse.IsSpace(p.src[p.pos-1])
	for p.err == nil {
		op := p.operator(p.pos)
		if op == "" || precedence[op] < minPrec {
			break
		}
		p.pos += len(op)
		whiteAfter := parse.IsSpace(p.at(p.pos))
		varAfter := p.at(p.pos) == '$'
		p.whitespace()

		if op == "-" && whiteBefore && !whiteAfter && !varAfter {
			break
		}

		rhs, ok := p.value()
		if !ok {
			break
		}
		if next := p.operator(p.pos); next != "" && precedence[op] < precedence[next] {
			rhs = p.expHelper(rhs, precedence[next])
		}

		lhs = &BinaryExpr{
			Op:          op,
			X:           lhs,
			Y:           rhs,
			InParens:    p.inParens,
			WhiteBefore: whiteBefore,
			WhiteAfter:  whiteAfter,
		}
		ss = p.pos
		whiteBefore = 0 < p.pos && parse.IsSpace(p.src[p.pos-1])
	}
	p.restore(ss)
	return lhs
}

// value parses a single operand.
func (p *Parser) value() (IExpr, bool) {
	if p.err != nil || len(p.src) <= p.pos {
		return nil, false
	}
	s := p.pos
	c := p.src[p.pos]

	if c == 'n' && p.rawLiteral("not") {
		if p.whitespace() {
			if x, ok := p.value(); ok {
				return &UnaryExpr{Op: "not", X: x, InParens: p.inParens}, true
			}
		} else if x, ok := p.parenValue(); ok {
			return &UnaryExpr{Op: "not", X: x, InParens: p.inParens}, true
		}
		p.restore(s)
	}

	if c == '+' {
		p.pos++
		if x, ok := p.value(); ok {
			return &UnaryExpr{Op: "+", X: x, InParens: p.inParens}, true
		}
		p.restore(s)
		return nil, false
	}

	if c == '-' {
		p.pos++
		if name, ok := p.variable(); ok {
			return &UnaryExpr{Op: "-", X: &Variable{name}, InParens: p.inParens}, true
		} else if num, ok := p.number(); ok {
			return &UnaryExpr{Op: "-", X: num, InParens: p.inParens}, true
		} else if x, ok := p.parenValue(); ok {
			return &UnaryExpr{Op: "-", X: x, InParens: p.inParens}, true
		}
		p.restore(s)
	}

	if c == '(' {
		if x, ok := p.parenValue(); ok {
			return x, true
		}
	} else if c == '#' {
		if interp, ok := p.interpolation(true); ok {
			return interp, true
		} else if color, ok := p.color(); ok {
			return color, true
		}
	} else if c == '$' {
		if name, ok := p.variable(); ok {
			return &Variable{name}, true
		}
	} else if c == 'p' {
		if str, ok := p.progid(); ok {
			return str, true
		}
	} else if c == '"' || c == '\'' {
		if str, ok := p.string(); ok {
			return str, true
		}
	}

	if parse.IsDigit(c) || c == '.' {
		if num, ok := p.number(); ok {
			return num, true
		}
	}

	if name, ok := p.rawKeywordChar(); ok {
		if call, ok := p.call(name); ok {
			return call, true
		}
		p.whitespace()
		switch name {
		case "null":
			return &Null{}, true
		case "true":
			return &Boolean{true}, true
		case "false":
			return &Boolean{false}, true
		}
		return &Keyword{name}, true
	}
	return nil, false
}

// parenValue parses a parenthesized expression, the empty parentheses are an empty list.
func (p *Parser) parenValue() (IExpr, bool) {
	s := p.pos
	inParens := p.inParens
	if p.matchChar('(') {
		if p.matchChar(')') {
			return &List{Delim: NoDelim}, true
		}
		p.inParens = true
		if x, ok := p.expression(); ok && p.matchChar(')') {
			p.inParens = inParens
			return x, true
		}
	}
	p.inParens = inParens
	p.restore(s)
	return nil, false
}

// number parses a number with an optional unit, such as 12px, .5em or 50%.
func (p *Parser) number() (*Number, bool) {
	if p.err != nil {
		return nil, false
	}
	num, unit := parse.Dimension(p.src[p.pos:])
	if num == 0 {
		return nil, false
	}
	f, err := strconv.ParseFloat(string(p.src[p.pos:p.pos+num]), 64)
	if err != nil {
		return nil, false
	}
	n := &Number{Value: f, Unit: string(p.src[p.pos+num : p.pos+num+unit])}
	p.pos += num + unit
	p.skip()
	return n, true
}

// color parses a 6 or 3 digit hexadecimal color.
func (p *Parser) color() (*Color, bool) {
	if p.at(p.pos) != '#' || p.err != nil {
		return nil, false
	}
	color := &Color{A: 255}
	if n := parse.Hex(p.src[p.pos+1:], 6); n == 6 {
		v := parse.HexValue(p.src[p.pos+1 : p.pos+7])
		color.R, color.G, color.B = uint8(v>>16), uint8(v>>8), uint8(v)
		p.pos += 7
	} else if 3 <= n {
		v := parse.HexValue(p.src[p.pos+1 : p.pos+4])
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		color.R, color.G, color.B = r<<4|r, g<<4|g, b<<4|b
		p.pos += 4
	} else {
		return nil, false
	}
	p.skip()
	return color, true
}

// progid parses the legacy progid:Name(args) filter syntax as an unquoted string.
func (p *Parser) progid() (*String, bool) {
	s := p.pos
	if p.rawLiteral("progid:") {
		if fn, ok := p.openString("(", 0); ok && p.matchChar('(') {
			parts := []IExpr{Text("progid:"), fn, Text("(")}
			if args, ok := p.openString(")", '('); ok {
				parts = append(parts, args)
			}
			if p.matchChar(')') {
				return &String{Parts: append(parts, Text(")"))}, true
			}
		}
	}
	p.restore(s)
	return nil, false
}

func isCalc(name string) bool {
	if name == "calc" {
		return true
	} else if !strings.HasSuffix(name, "-calc") || len(name) < 7 || name[0] != '-' {
		return false
	}
	for _, c := range name[1 : len(name)-5] {
		if c < 'a' || 'z' < c {
			return false
		}
	}
	return true
}

// call parses the argument list of a function call after its name.
// The arguments of calc, expression and of calls that do not parse as expressions are kept as raw text.
func (p *Parser) call(name string) (IExpr, bool) {
	s := p.pos
	if !p.matchChar('(') {
		return nil, false
	}

	if name == "alpha" {
		if args, ok := p.argumentList(); ok {
			return &RawCall{Name: name, Value: &String{Parts: args}}, true
		}
	}

	if name != "expression" && !isCalc(name) {
		ss := p.pos
		if args, ok := p.argValues(); ok && p.matchChar(')') {
			return &FunctionCall{Name: name, Args: args}, true
		}
		p.restore(ss)
	}

	str, _ := p.openString(")", '(')
	if p.matchChar(')') {
		call := &FunctionCall{Name: name}
		if str != nil {
			call.Args = []Arg{{Value: str}}
		}
		return call, true
	}
	p.restore(s)
	return nil, false
}

// argumentList parses the name=value pairs of alpha(opacity=50).
func (p *Parser) argumentList() ([]IExpr, bool) {
	s := p.pos
	var args []IExpr
	for p.err == nil {
		name, ok := p.keyword()
		if !ok || !p.matchChar('=') {
			break
		}
		x, ok := p.expression()
		if !ok {
			break
		}
		args = append(args, Text(name+"="), x)
		if !p.matchChar(',') {
			break
		}
		args = append(args, Text(", "))
	}
	if len(args) == 0 || !p.matchChar(')') {
		p.restore(s)
		return nil, false
	}
	return args, true
}

// argValues parses the comma separated arguments of a call.
func (p *Parser) argValues() ([]Arg, bool) {
	args := parseList(p, p.argValue, ",")
	return args, 0 < len(args)
}

// argValue parses an argument, optionally preceded by $name: and followed by a spread.
func (p *Parser) argValue() (Arg, bool) {
	s := p.pos
	name, ok := p.variable()
	if !ok || !p.matchChar(':') {
		p.restore(s)
		name = ""
	}

	x, ok := p.spaceList()
	if !ok {
		return Arg{}, false
	}
	arg := Arg{Name: name, Value: x}
	if p.literal("...") {
		arg.Spread = true
	}
	return arg, true
}

// argumentDef parses the parameters of a mixin or function definition. The opening parenthesis is optional.
func (p *Parser) argumentDef() ([]Param, bool) {
	s := p.pos
	p.matchChar('(')

	params := []Param{}
	for p.err == nil {
		name, ok := p.variable()
		if !ok {
			break
		}
		param := Param{Name: name}

		ss := p.pos
		if p.matchChar(':') {
			if x, ok := p.spaceList(); ok {
				param.Default = x
			} else {
				p.restore(ss)
			}
		}

		if p.literal("...") {
			sss := p.pos
			if !p.matchChar(')') {
				p.fail("... has to be after the final argument")
				return nil, false
			}
			param.Rest = true
			p.restore(sss)
		}
		params = append(params, param)

		if !p.matchChar(',') {
			break
		}
	}

	if !p.matchChar(')') {
		p.restore(s)
		return nil, false
	}
	return params, true
}

// mapExpr parses a non-empty parenthesized list of key: value pairs.
func (p *Parser) mapExpr() (IExpr, bool) {
	s := p.pos
	if !p.matchChar('(') {
		return nil, false
	}

	m := &Map{}
	for p.err == nil {
		key, ok := p.spaceList()
		if !ok || !p.matchChar(':') {
			break
		}
		value, ok := p.spaceList()
		if !ok {
			break
		}
		m.Keys = append(m.Keys, key)
		m.Values = append(m.Values, value)
		if !p.matchChar(',') {
			break
		}
	}

	if len(m.Keys) == 0 || !p.matchChar(')') {
		p.restore(s)
		return nil, false
	}
	return m, true
}

////////////////////////////////////////////////////////////////

func (p *Parser) mediaQueryList() []MediaQuery {
	return parseList(p, p.mediaQuery, ",")
}

// mediaQuery parses an optional only or not modifier, a media type and and-separated media expressions. It never fails.
func (p *Parser) mediaQuery() (MediaQuery, bool) {
	q := MediaQuery{}
	if p.word("only") {
		q.Modifier = "only"
	} else if p.word("not") {
		q.Modifier = "not"
	}
	if t, ok := p.mixedKeyword(); ok {
		q.Type = t
	}
	if q.Type == nil || p.literal("and") {
		q.Expressions = parseList(p, p.mediaExpression, "and")
	}
	return q, true
}

// mediaExpression parses (feature) or (feature: value).
func (p *Parser) mediaExpression() (MediaExpression, bool) {
	s := p.pos
	if p.matchChar('(') {
		if feature, ok := p.expression(); ok {
			e := MediaExpression{Feature: feature}
			ss := p.pos
			if p.matchChar(':') {
				if value, ok := p.expression(); ok {
					e.Value = value
				} else {
					p.restore(ss)
				}
			}
			if p.matchChar(')') {
				return e, true
			}
		}
	}
	p.restore(s)
	return MediaExpression{}, false
}
