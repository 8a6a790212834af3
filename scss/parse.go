// Package scss is a parser for SCSS stylesheets. It turns a stylesheet into a tree of blocks, statements, values and selectors annotated with source positions.
// The tree is not evaluated: variables, mixins and control directives are kept as written.
package scss // import "github.com/scssgo/parse/scss"

import (
	"bytes"
	"strings"

	"go.uber.org/zap"

	"github.com/scssgo/parse"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger that receives debug events such as dropped @charset rules and unknown directives.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log.Named("scss")
		}
	}
}

// Parser is the state for the parser. A parser can be reused for subsequent parses, but not concurrently.
type Parser struct {
	sourceName  string
	sourceIndex int
	utf8        bool
	log         *zap.Logger

	src      []byte
	idx      *parse.LineIndex
	pos      int
	err      error
	eatWhite bool
	inParens bool

	blocks  []*Block // arena, a block's parent is an index into it
	env     int      // current block, -1 when there is none
	charset *CharsetStmt
}

// NewParser returns a new parser. An empty sourceName is reported as (stdin) in errors, sourceIndex is copied into every node position.
// The encoding "" or "utf-8" allows Unicode letters in identifiers, any other encoding only allows ASCII.
func NewParser(sourceName string, sourceIndex int, encoding string, opts ...Option) *Parser {
	if sourceName == "" {
		sourceName = "(stdin)"
	}
	p := &Parser{
		sourceName:  sourceName,
		sourceIndex: sourceIndex,
		utf8:        encoding == "" || strings.EqualFold(encoding, "utf-8"),
		log:         zap.NewNop(),
		env:         -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SourceName returns the name of the source used in errors.
func (p *Parser) SourceName() string {
	return p.sourceName
}

// Parse parses a stylesheet and returns its root block.
// Backtracking is unbounded, so deeply nested parentheses can take exponential time.
func Parse(src []byte, opts ...Option) (*Block, error) {
	return NewParser("", 0, "utf-8", opts...).Parse(src)
}

// ParseValue parses a comma or space separated value list, such as a variable value given on the command line.
// Backtracking is unbounded, so deeply nested parentheses can take exponential time.
func ParseValue(src []byte, opts ...Option) (IExpr, error) {
	return NewParser("", 0, "utf-8", opts...).ParseValue(src)
}

// ParseSelectorList parses a comma separated selector list.
func ParseSelectorList(src []byte, opts ...Option) (SelectorList, error) {
	return NewParser("", 0, "utf-8", opts...).ParseSelectors(src)
}

func (p *Parser) reset(src []byte) {
	p.src = src
	p.idx = parse.NewLineIndex(src)
	p.pos = 0
	p.err = nil
	p.eatWhite = true
	p.inParens = false
	p.blocks = nil
	p.env = -1
	p.charset = nil
}

// Parse parses a stylesheet and returns its root block. Trailing control characters are ignored.
// Alternatives are retried after restoring the cursor without any limit, so the cost is superlinear for pathological input such as deeply nested parentheses.
func (p *Parser) Parse(src []byte) (*Block, error) {
	p.reset(src)
	p.src = parse.TrimRight(src, parse.IsControl)

	root := p.pushBlock(RootBlock, nil, 0)
	p.whitespace()
	root.Children = commentStmts(root.comments)
	root.comments = nil

	for p.parseChunk() {
	}

	if p.err == nil && p.pos != len(p.src) {
		p.fail("parse error")
	} else if p.err == nil && p.cur().parent != -1 {
		p.fail("unclosed block")
	}
	if p.err != nil {
		return nil, p.err
	}

	if p.charset != nil {
		root.Children = append([]IStmt{p.charset}, root.Children...)
	}
	return root, nil
}

// ParseValue parses a comma or space separated value list. Like Parse, its backtracking is unbounded.
func (p *Parser) ParseValue(src []byte) (IExpr, error) {
	p.reset(src)
	p.whitespace()
	value, ok := p.valueList()
	p.whitespace()
	if p.err == nil && (!ok || p.pos != len(p.src)) {
		p.fail("parse error")
	}
	if p.err != nil {
		return nil, p.err
	}
	return value, nil
}

// ParseSelectors parses a comma separated selector list.
func (p *Parser) ParseSelectors(src []byte) (SelectorList, error) {
	p.reset(src)
	p.whitespace()
	list, ok := p.selectors()
	p.whitespace()
	if p.err == nil && (!ok || p.pos != len(p.src)) {
		p.fail("parse error")
	}
	if p.err != nil {
		return nil, p.err
	}
	return list, nil
}

// fail records the first error at the cursor, all matching stops afterwards.
func (p *Parser) fail(format string, args ...interface{}) {
	if p.err == nil {
		err := parse.NewError(p.idx, p.src, p.sourceName, p.pos, format, args...)
		p.log.Debug("parse error",
			zap.String("source", p.sourceName),
			zap.Int("line", err.Line),
			zap.String("message", err.Message))
		p.err = err
	}
}

func (p *Parser) position(offset int) Pos {
	line, col := p.idx.Position(offset)
	return Pos{
		Offset:      offset,
		Line:        line,
		Column:      col,
		SourceIndex: p.sourceIndex,
	}
}

////////////////////////////////////////////////////////////////

// cur returns the current block, or nil.
func (p *Parser) cur() *Block {
	if p.env < 0 {
		return nil
	}
	return p.blocks[p.env]
}

func commentStmts(comments []*Comment) []IStmt {
	if len(comments) == 0 {
		return nil
	}
	stmts := make([]IStmt, len(comments))
	for i, c := range comments {
		stmts[i] = c
	}
	return stmts
}

// pushBlock opens a new block inside the current one. Pending comments of the parent become leading children
// of the parent when it has no children yet, or of the new block otherwise.
func (p *Parser) pushBlock(bt BlockType, selectors SelectorList, offset int) *Block {
	b := &Block{
		Type:      bt,
		Selectors: selectors,
		Pos:       p.position(offset),
		parent:    p.env,
	}
	if parent := p.cur(); parent != nil {
		if len(parent.Children) == 0 {
			parent.Children = commentStmts(parent.comments)
		} else {
			b.Children = commentStmts(parent.comments)
		}
		parent.comments = nil
	}
	p.blocks = append(p.blocks, b)
	p.env = len(p.blocks) - 1
	return b
}

// popBlock closes the current block and moves its pending comments to its parent.
func (p *Parser) popBlock() *Block {
	b := p.cur()
	if b.parent == -1 {
		p.fail("unexpected }")
		return nil
	}
	p.env = b.parent
	b.parent = -1

	parent := p.cur()
	parent.comments = append(parent.comments, b.comments...)
	b.comments = nil
	return b
}

// append adds a statement to the current block followed by its pending comments.
func (p *Parser) append(stmt IStmt) {
	b := p.cur()
	b.Children = append(b.Children, stmt)
	for _, c := range b.comments {
		b.Children = append(b.Children, c)
	}
	b.comments = nil
}

// last returns the last child of the current block that is not a comment.
func (p *Parser) last() IStmt {
	b := p.cur()
	for i := len(b.Children) - 1; 0 <= i; i-- {
		if _, ok := b.Children[i].(*Comment); !ok {
			return b.Children[i]
		}
	}
	return nil
}

// expectSelector reports whether a { occurs before the next }, or a comment starts before it.
func (p *Parser) expectSelector() bool {
	rest := p.src[p.pos:]
	closing := bytes.IndexByte(rest, '}')
	if closing == -1 {
		closing = len(rest)
	}
	if open := bytes.IndexByte(rest[:closing], '{'); open != -1 {
		return true
	}
	return bytes.Contains(rest[:closing], []byte("/*"))
}

////////////////////////////////////////////////////////////////

// parseChunk parses a single statement, block opening or block closing. It returns false at the end of the buffer or when nothing matched.
func (p *Parser) parseChunk() bool {
	if p.err != nil || len(p.src) <= p.pos {
		return false
	}
	s := p.pos
	c := p.src[p.pos]

	if c == '@' {
		return p.parseDirective()
	} else if c == '-' && p.literal("-->") || c == '<' && p.literal("<!--") {
		return true
	} else if c == ';' {
		p.pos++
		p.whitespace()
		return true
	} else if c == '}' {
		p.pos++
		p.whitespace()
		b := p.popBlock()
		if b == nil {
			return false
		}
		if b.include != nil {
			include := b.include
			b.include = nil
			include.Body = b
			p.append(include)
		} else if !b.dontAppend {
			p.append(b)
		}
		return true
	}

	// variable assignment
	if c == '$' {
		if name, ok := p.variable(); ok && p.matchChar(':') {
			if value, ok := p.valueList(); ok && p.end() {
				value, flag := stripAssignmentFlag(value)
				p.append(&AssignStmt{Name: name, Value: value, Flag: flag, Pos: p.position(s)})
				return true
			}
		}
		p.restore(s)
	}

	// rule block
	if p.expectSelector() {
		if selectors, ok := p.selectors(); ok && p.matchChar('{') {
			p.pushBlock(RuleBlock, selectors, s)
			return true
		}
		p.restore(s)
	}

	// single keyword property
	if name, ok := p.rawKeywordChar(); ok && p.matchChar(':') {
		if value, ok := p.valueList(); ok && p.end() {
			p.append(&PropertyStmt{Name: &String{Parts: []IExpr{Text(name)}}, Value: value, Pos: p.position(s)})
			return true
		}
	}
	p.restore(s)

	// property or nested property block
	if name, ok := p.propertyName(); ok && p.matchChar(':') {
		found := false
		if value, ok := p.valueList(); ok {
			p.append(&PropertyStmt{Name: name, Value: value, Pos: p.position(s)})
			found = true
		}
		if p.matchChar('{') {
			b := p.pushBlock(NestedPropertyBlock, nil, s)
			b.Directive = &NestedPropertyDirective{Prefix: name}
			found = true
		} else if found {
			found = p.end()
		}
		if found {
			return true
		}
	}
	p.restore(s)
	return false
}

// stripAssignmentFlag removes a trailing !default or !global from the last list in value and returns the flag.
func stripAssignmentFlag(value IExpr) (IExpr, string) {
	list, ok := value.(*List)
	if !ok || len(list.Items) == 0 {
		return value, ""
	}
	last := list.Items[len(list.Items)-1]
	if kw, ok := last.(*Keyword); ok && (kw.Name == "!default" || kw.Name == "!global") {
		list.Items = list.Items[:len(list.Items)-1]
		return flattenList(list), kw.Name
	}
	inner, flag := stripAssignmentFlag(last)
	if flag != "" {
		list.Items[len(list.Items)-1] = inner
	}
	return value, flag
}
