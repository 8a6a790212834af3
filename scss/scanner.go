package scss

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/scssgo/parse"
)

// at returns the byte at offset i, or 0 past the end of the buffer.
func (p *Parser) at(i int) byte {
	if i < len(p.src) {
		return p.src[i]
	}
	return 0
}

// charLen returns the length of the character at offset i, a full UTF-8 sequence when the parser is in UTF-8 mode.
func (p *Parser) charLen(i int) int {
	if len(p.src) <= i {
		return 0
	} else if p.utf8 && utf8.RuneStart(p.src[i]) && 0x80 <= p.src[i] {
		_, n := utf8.DecodeRune(p.src[i:])
		return n
	}
	return 1
}

// letterLen returns the length of the Unicode letter at offset i, or 0. It is only used in UTF-8 mode for non-ASCII bytes.
func (p *Parser) letterLen(i int) int {
	if !p.utf8 || p.src[i] < 0x80 {
		return 0
	}
	r, n := utf8.DecodeRune(p.src[i:])
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return 0
	}
	return n
}

// skip eats whitespace and comments when the parser currently does so by default.
func (p *Parser) skip() {
	if p.eatWhite {
		p.whitespace()
	}
}

// restore moves the cursor back to mark and forgets the comments that were queued at or after it.
func (p *Parser) restore(mark int) {
	p.pos = mark
	if b := p.cur(); b != nil {
		n := len(b.comments)
		for 0 < n && mark <= b.comments[n-1].Offset {
			n--
		}
		b.comments = b.comments[:n]
	}
}

// whitespace consumes spaces, tabs, newlines, line comments and block comments. Block comments are queued on the current block.
func (p *Parser) whitespace() bool {
	got := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/' {
			if n := bytes.IndexByte(p.src[p.pos:], '\n'); n != -1 {
				p.pos += n
			} else {
				p.pos = len(p.src)
			}
		} else if c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*' {
			n := bytes.Index(p.src[p.pos+2:], []byte("*/"))
			if n == -1 {
				break
			}
			n += 4
			p.queueComment(p.pos, p.src[p.pos:p.pos+n])
			p.pos += n
		} else if parse.IsWhitespace(c) {
			p.pos++
		} else {
			break
		}
		got = true
	}
	return got
}

func (p *Parser) queueComment(offset int, text []byte) {
	b := p.cur()
	if b == nil {
		return
	} else if n := len(b.comments); 0 < n && offset <= b.comments[n-1].Offset {
		return // seen before
	}
	b.comments = append(b.comments, &Comment{
		Text: commentText(text),
		Pos:  p.position(offset),
	})
}

// commentText strips the leading whitespace and blank lines off every line but the first, and indents continuation lines by one space.
func commentText(b []byte) string {
	sb := strings.Builder{}
	for i := 0; i < len(b); {
		if 0 < i {
			for i < len(b) && parse.IsSpace(b[i]) {
				i++
			}
			if i == len(b) {
				break
			}
			sb.WriteByte(' ')
		}
		n := bytes.IndexByte(b[i:], '\n')
		if n == -1 {
			sb.Write(b[i:])
			break
		}
		sb.Write(b[i : i+n+1])
		i += n + 1
	}
	return sb.String()
}

////////////////////////////////////////////////////////////////

// rawChar matches c at the cursor without consuming whitespace.
func (p *Parser) rawChar(c byte) bool {
	if p.err != nil || len(p.src) <= p.pos || p.src[p.pos] != c {
		return false
	}
	p.pos++
	return true
}

// matchChar matches c at the cursor.
func (p *Parser) matchChar(c byte) bool {
	if !p.rawChar(c) {
		return false
	}
	p.skip()
	return true
}

func (p *Parser) rawLiteral(s string) bool {
	if p.err != nil || !bytes.HasPrefix(p.src[p.pos:], []byte(s)) {
		return false
	}
	p.pos += len(s)
	return true
}

// literal matches s at the cursor.
func (p *Parser) literal(s string) bool {
	if !p.rawLiteral(s) {
		return false
	}
	p.skip()
	return true
}

// word matches s at the cursor only if it is not followed by a keyword character.
func (p *Parser) word(s string) bool {
	if p.err != nil || !bytes.HasPrefix(p.src[p.pos:], []byte(s)) || 0 < p.keywordCharLen(p.pos+len(s), false) {
		return false
	}
	p.pos += len(s)
	p.skip()
	return true
}

// end matches the end of a statement: a semicolon, or a closing brace or the end of the buffer which are not consumed.
func (p *Parser) end() bool {
	if p.err != nil {
		return false
	} else if p.pos == len(p.src) || p.src[p.pos] == '}' {
		return true
	}
	return p.matchChar(';')
}

// keywordCharLen returns the length of the keyword character at offset i, or 0.
// The first character of a keyword can also be * or !, an escape is a backslash followed by any character.
func (p *Parser) keywordCharLen(i int, first bool) int {
	if len(p.src) <= i {
		return 0
	}
	switch c := p.src[i]; {
	case c == '\\':
		if n := p.charLen(i + 1); 0 < n {
			return 1 + n
		}
		return 0
	case parse.IsWordChar(c) || c == '-' || c == '"' || c == '\'':
		return 1
	case c == '*' || c == '!':
		if first {
			return 1
		}
		return 0
	}
	return p.letterLen(i)
}

// keywordLen returns the length of the keyword at the cursor.
func (p *Parser) keywordLen() int {
	n := p.keywordCharLen(p.pos, true)
	if n == 0 {
		return 0
	}
	for {
		m := p.keywordCharLen(p.pos+n, false)
		if m == 0 {
			return n
		}
		n += m
	}
}

func (p *Parser) rawKeyword() (string, bool) {
	if p.err != nil {
		return "", false
	}
	n := p.keywordLen()
	if n == 0 {
		return "", false
	}
	word := string(p.src[p.pos : p.pos+n])
	p.pos += n
	return word, true
}

// keyword matches an identifier.
func (p *Parser) keyword() (string, bool) {
	word, ok := p.rawKeyword()
	if ok {
		p.skip()
	}
	return word, ok
}

// keywordChar matches a keyword unless the cursor is at a character that starts another construct.
func (p *Parser) keywordChar() (string, bool) {
	switch p.at(p.pos) {
	case ':', '#', '>', ' ', ';', '(', ')', ',', '{', '}', '.', '$', '&', '%':
		return "", false
	}
	return p.keyword()
}

func (p *Parser) rawKeywordChar() (string, bool) {
	eatWhite := p.eatWhite
	p.eatWhite = false
	word, ok := p.keywordChar()
	p.eatWhite = eatWhite
	return word, ok
}

// placeholder matches the name of a %placeholder, which is either a run of word characters or #{$name}.
func (p *Parser) placeholder() (string, bool) {
	if p.err != nil {
		return "", false
	}
	n := 0
	for {
		m := 0
		if c := p.at(p.pos + n); parse.IsWordChar(c) || c == '-' {
			m = 1
		} else if p.pos+n < len(p.src) {
			m = p.letterLen(p.pos + n)
		}
		if m == 0 {
			break
		}
		n += m
	}
	if n == 0 && bytes.HasPrefix(p.src[p.pos:], []byte("#{$")) {
		i := p.pos + 3
		for parse.IsWordChar(p.at(i)) || p.at(i) == '-' || i < len(p.src) && 0 < p.letterLen(i) {
			if p.at(i) < 0x80 {
				i++
			} else {
				i += p.letterLen(i)
			}
		}
		if p.pos+3 < i && p.at(i) == '}' {
			n = i + 1 - p.pos
		}
	}
	if n == 0 {
		return "", false
	}
	name := string(p.src[p.pos : p.pos+n])
	p.pos += n
	p.skip()
	return name, true
}

// variable matches a $name and returns the name.
func (p *Parser) variable() (string, bool) {
	s := p.pos
	if p.rawChar('$') {
		if name, ok := p.keyword(); ok {
			return name, true
		}
	}
	p.restore(s)
	return "", false
}

////////////////////////////////////////////////////////////////

// matchString scans from the cursor for the nearest of an interpolation, a backslash or delim.
// It returns the text before the token and the token, and moves the cursor past the token.
func (p *Parser) matchString(delim byte) ([]byte, string, bool) {
	for i := p.pos; i < len(p.src); i++ {
		tok := ""
		if c := p.src[i]; c == delim {
			tok = string(delim)
		} else if c == '\\' {
			tok = "\\"
		} else if c == '#' && p.at(i+1) == '{' {
			tok = "#{"
		} else {
			continue
		}
		text := p.src[p.pos:i]
		p.pos = i + len(tok)
		return text, tok, true
	}
	return nil, "", false
}

// string matches a quoted string with interpolation. Strings with interpolation are normalized to double quotes.
func (p *Parser) string() (*String, bool) {
	s := p.pos
	var delim byte
	if p.rawChar('"') {
		delim = '"'
	} else if p.rawChar('\'') {
		delim = '\''
	} else {
		return nil, false
	}

	parts := []IExpr{}
	eatWhite := p.eatWhite
	p.eatWhite = false
	interpolated := false
	for p.err == nil {
		text, tok, ok := p.matchString(delim)
		if !ok {
			break
		}
		if 0 < len(text) {
			parts = append(parts, Text(text))
		}

		if tok == "#{" {
			p.pos -= len(tok)
			if interp, ok := p.interpolation(false); ok {
				parts = append(parts, interp)
				interpolated = true
			} else {
				p.pos += len(tok)
				parts = append(parts, Text(tok))
			}
		} else if tok == "\\" {
			if p.rawChar('"') {
				parts = append(parts, Text("\\\""))
			} else if p.rawChar('\'') {
				parts = append(parts, Text("\\'"))
			} else {
				parts = append(parts, Text(tok))
			}
		} else {
			p.pos -= len(tok)
			break
		}
	}
	p.eatWhite = eatWhite

	if !p.matchChar(delim) {
		p.restore(s)
		return nil, false
	}
	if interpolated {
		delim = '"'
		for i, part := range parts {
			if part == Text("\\'") {
				parts[i] = Text("'")
			} else if part == Text("\\\"") {
				parts[i] = Text("\"")
			}
		}
	}
	return &String{Delim: delim, Parts: parts}, true
}

// openToken returns the offset and the token of the nearest quote, interpolation, end or complete block comment from the cursor.
func (p *Parser) openToken(end string) (int, string) {
	for i := p.pos; i < len(p.src); i++ {
		switch c := p.src[i]; {
		case c == '"' || c == '\'':
			return i, string(c)
		case c == '#' && p.at(i+1) == '{':
			return i, "#{"
		case bytes.HasPrefix(p.src[i:], []byte(end)):
			return i, end
		case c == '/' && p.at(i+1) == '*':
			if n := bytes.Index(p.src[i+2:], []byte("*/")); n != -1 {
				return i, string(p.src[i : i+n+4])
			}
		}
	}
	return -1, ""
}

// openString matches unquoted text up to end, skipping over strings, interpolations and comments.
// When nestingOpen is given, every occurrence of it in the text requires an additional end before stopping.
func (p *Parser) openString(end string, nestingOpen byte) (*String, bool) {
	eatWhite := p.eatWhite
	p.eatWhite = false

	parts := []IExpr{}
	nesting := 0
	for p.err == nil {
		i, tok := p.openToken(end)
		if i == -1 {
			break
		}
		if p.pos < i {
			text := p.src[p.pos:i]
			parts = append(parts, Text(text))
			if nestingOpen != 0 {
				nesting += bytes.Count(text, []byte{nestingOpen})
			}
		}
		p.pos = i

		if tok == end {
			if nesting == 0 {
				break
			}
			nesting--
		} else if tok == "\"" || tok == "'" {
			if str, ok := p.string(); ok {
				parts = append(parts, str)
				continue
			}
		} else if tok == "#{" {
			if interp, ok := p.interpolation(true); ok {
				parts = append(parts, interp)
				continue
			}
		}
		parts = append(parts, Text(tok))
		p.pos += len(tok)
	}
	p.eatWhite = eatWhite

	if len(parts) == 0 {
		return nil, false
	}
	if text, ok := parts[len(parts)-1].(Text); ok {
		parts[len(parts)-1] = Text(strings.TrimRight(string(text), " \t\n\r\x00\x0B"))
	}
	return &String{Parts: parts}, true
}

// interpolation matches #{...}. When lookWhite is set, whitespace directly around it is recorded.
func (p *Parser) interpolation(lookWhite bool) (*Interpolation, bool) {
	eatWhite := p.eatWhite
	p.eatWhite = true

	s := p.pos
	if p.literal("#{") {
		if value, ok := p.valueList(); ok && p.rawChar('}') {
			interp := &Interpolation{Value: value}
			if lookWhite {
				interp.WhiteLeft = 0 < s && parse.IsSpace(p.src[s-1])
				interp.WhiteRight = parse.IsSpace(p.at(p.pos))
			}
			p.eatWhite = eatWhite
			p.skip()
			return interp, true
		}
	}
	p.restore(s)
	p.eatWhite = eatWhite
	return nil, false
}

// mixedKeyword matches a sequence of keywords and interpolations without whitespace in between.
func (p *Parser) mixedKeyword() ([]IExpr, bool) {
	eatWhite := p.eatWhite
	p.eatWhite = false

	var parts []IExpr
	for p.err == nil {
		if word, ok := p.keywordChar(); ok {
			parts = append(parts, Text(word))
		} else if interp, ok := p.interpolation(true); ok {
			parts = append(parts, interp)
		} else {
			break
		}
	}
	p.eatWhite = eatWhite

	if len(parts) == 0 {
		return nil, false
	}
	p.skip()
	return parts, true
}

// propertyName matches a property name made of keywords and interpolations.
// A leading colon, dot or hash and a directly following block comment are kept for browser hacks.
func (p *Parser) propertyName() (*String, bool) {
	eatWhite := p.eatWhite
	p.eatWhite = false

	var parts []IExpr
	for p.err == nil {
		if interp, ok := p.interpolation(true); ok {
			parts = append(parts, interp)
		} else if word, ok := p.keyword(); ok {
			parts = append(parts, Text(word))
		} else if c := p.at(p.pos); len(parts) == 0 && (c == ':' || c == '.' || c == '#') {
			parts = append(parts, Text(p.src[p.pos:p.pos+1]))
			p.pos++
		} else {
			break
		}
	}
	p.eatWhite = eatWhite

	if len(parts) == 0 {
		return nil, false
	}
	if bytes.HasPrefix(p.src[p.pos:], []byte("/*")) {
		if n := bytes.Index(p.src[p.pos+2:], []byte("*/")); n != -1 {
			parts = append(parts, Text(p.src[p.pos:p.pos+n+4]))
			p.pos += n + 4
		}
	}
	p.whitespace()
	return &String{Parts: parts}, true
}

// url matches url(...) with an optionally quoted argument and returns it as a single unquoted string.
func (p *Parser) url() (*String, bool) {
	if p.err != nil || !bytes.HasPrefix(p.src[p.pos:], []byte("url(")) {
		return nil, false
	}
	i := p.pos + 4
	for parse.IsSpace(p.at(i)) {
		i++
	}
	n := bytes.IndexByte(p.src[i:], ')')
	if n < 1 {
		return nil, false
	}
	arg := p.src[i : i+n]
	if c := arg[0]; c == '"' || c == '\'' {
		trimmed := parse.TrimRight(arg, parse.IsSpace)
		if 2 < len(trimmed) && trimmed[len(trimmed)-1] == c {
			arg = trimmed
		}
	}
	p.pos = i + n + 1
	p.skip()
	return &String{Parts: []IExpr{Text("url(" + string(arg) + ")")}}, true
}
