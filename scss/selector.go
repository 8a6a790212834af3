package scss

import (
	"bytes"

	"github.com/scssgo/parse"
)

// selectors parses a comma separated selector list, repeated commas are ignored.
func (p *Parser) selectors() (SelectorList, bool) {
	var list SelectorList
	for p.err == nil {
		sel, ok := p.selector()
		if !ok {
			break
		}
		list = append(list, sel)
		if !p.matchChar(',') {
			break
		}
		for p.matchChar(',') {
		}
	}
	return list, 0 < len(list)
}

// selector parses a whitespace separated sequence of compound selectors and combinators.
func (p *Parser) selector() (Selector, bool) {
	var sel Selector
	for p.err == nil && p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '>' && p.at(p.pos+1) == '>' {
			sel = append(sel, Compound{&Combinator{">>"}})
			p.pos += 2
			p.whitespace()
			continue
		} else if c == '>' || c == '+' || c == '~' {
			sel = append(sel, Compound{&Combinator{string(c)}})
			p.pos++
			p.whitespace()
			continue
		}

		if part, ok := p.selectorSingle(); ok {
			sel = append(sel, part)
			if parse.IsSpace(p.at(p.pos)) {
				for parse.IsSpace(p.at(p.pos)) {
					p.pos++
				}
				p.skip()
			}
			continue
		}

		// slash combinators such as /deep/
		if c == '/' {
			if n := bytes.IndexByte(p.src[p.pos+1:], '/'); 0 < n {
				sel = append(sel, Compound{&Combinator{string(p.src[p.pos : p.pos+n+2])}})
				p.pos += n + 2
				p.skip()
				continue
			}
		}
		break
	}
	return sel, 0 < len(sel)
}

// selectorSingle parses a compound selector such as div[yes=no]#something.hello.world:nth-child(-2n+1)%placeholder.
func (p *Parser) selectorSingle() (Compound, bool) {
	eatWhite := p.eatWhite
	p.eatWhite = false
	start := p.pos

	var parts Compound
	if p.rawChar('*') {
		parts = append(parts, &Element{"*"})
	}

Loop:
	for p.err == nil && p.pos < len(p.src) {
		s := p.pos
		c := p.src[p.pos]
		switch c {
		case '{', ',', ';', '}', '@':
			break Loop
		case '&':
			parts = append(parts, &Self{})
			p.pos++
			continue
		case '|':
			parts = append(parts, &NamespaceSep{})
			p.pos++
			continue
		case '.':
			p.pos++
			name, _ := p.keyword()
			parts = append(parts, &Class{name})
			continue
		case '\\':
			if n := p.charLen(p.pos + 1); 0 < n && !parse.IsSpace(p.src[p.pos+1]) {
				parts = append(parts, &Escape{string(p.src[p.pos : p.pos+1+n])})
				p.pos += 1 + n
				continue
			}
		case '%':
			p.pos++
			if name, ok := p.placeholder(); ok {
				parts = append(parts, &Placeholder{name})
				continue
			}
			p.restore(s)
			break Loop
		case '#':
			if interp, ok := p.interpolation(true); ok {
				parts = append(parts, interp)
				continue
			}
			p.pos++
			name, _ := p.keyword()
			parts = append(parts, &ID{name})
			continue
		case ':':
			colons := ":"
			if p.at(p.pos+1) == ':' {
				colons = "::"
			}
			p.pos += len(colons)
			if name, ok := p.mixedKeyword(); ok {
				pseudo := &Pseudo{Colons: colons, Name: name}
				ss := p.pos
				if p.rawChar('(') {
					args, _ := p.openString(")", '(')
					if p.rawChar(')') {
						pseudo.HasArgs = true
						pseudo.Args = args
					} else {
						p.restore(ss)
					}
				}
				parts = append(parts, pseudo)
				continue
			}
			p.restore(s)
		case '[':
			p.pos++
			value, _ := p.openString("]", '[')
			if p.rawChar(']') {
				parts = append(parts, &Attribute{value})
				continue
			}
			p.restore(s)
		}

		// keyframe percentages such as 50%
		if parse.IsDigit(c) || c == '.' {
			if num, ok := p.number(); ok {
				parts = append(parts, num)
				continue
			}
		}
		if name, ok := p.keywordChar(); ok {
			parts = append(parts, &Element{name})
			continue
		}
		break
	}
	p.eatWhite = eatWhite

	if len(parts) == 0 {
		p.restore(start)
		return nil, false
	}
	return parts, true
}

// stripOptionalFlag removes a trailing !optional from the selector list and reports whether it was present.
func stripOptionalFlag(list SelectorList) bool {
	if len(list) == 0 {
		return false
	}
	sel := list[len(list)-1]
	if len(sel) == 0 {
		return false
	}
	if last := sel[len(sel)-1]; len(last) == 1 {
		if elem, ok := last[0].(*Element); ok && elem.Name == "!optional" {
			list[len(list)-1] = sel[:len(sel)-1]
			return true
		}
	}
	return false
}
