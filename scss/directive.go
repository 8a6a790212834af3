package scss

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"

	"github.com/scssgo/parse"
)

// directives are the @-rules that have their own grammar.
var directives = []string{
	"at-root", "media", "mixin", "include", "scssphp-import-once", "import", "extend", "function",
	"break", "continue", "return", "each", "while", "for", "if", "else", "elseif",
	"debug", "warn", "error", "content", "charset",
}

// cssDirectives are plain CSS @-rules that are parsed as generic directives.
var cssDirectives = map[string]bool{
	"font-face":           true,
	"keyframes":           true,
	"supports":            true,
	"page":                true,
	"document":            true,
	"viewport":            true,
	"namespace":           true,
	"counter-style":       true,
	"font-feature-values": true,
	"layer":               true,
	"container":           true,
}

// suggestDirective returns the directive that name is most likely a misspelling of, or an empty string.
func suggestDirective(name string) string {
	name = strings.ToLower(name)
	if cssDirectives[name] || 0 < len(name) && name[0] == '-' {
		return ""
	}
	for _, dir := range directives {
		if dir == name {
			return ""
		}
	}

	ranks := fuzzy.RankFindFold(name, directives)
	if 0 < len(ranks) {
		sort.Sort(ranks)
		if ranks[0].Distance <= 3 {
			return ranks[0].Target
		}
	}

	best, bestDist := "", 3
	for _, dir := range directives {
		if d := fuzzy.LevenshteinDistance(name, dir); d < bestDist {
			best, bestDist = dir, d
		}
	}
	return best
}

func (p *Parser) logDirective(msg, name string, offset int) {
	if suggestion := suggestDirective(name); suggestion != "" {
		line, _ := p.idx.Position(offset)
		p.log.Debug(msg,
			zap.String("directive", "@"+name),
			zap.String("suggestion", "@"+suggestion),
			zap.String("source", p.sourceName),
			zap.Int("line", line))
	}
}

// directiveName returns the length of the @name at the start of b, or 0.
func directiveName(b []byte) int {
	if len(b) == 0 || b[0] != '@' {
		return 0
	}
	n := 1
	for n < len(b) && (b[n] >= 'a' && b[n] <= 'z' || b[n] >= 'A' && b[n] <= 'Z' || b[n] == '-') {
		n++
	}
	if n == 1 {
		return 0
	}
	return n
}

// parseDirective parses an @-rule. Built-in directives are tried first, anything else with a body is a generic directive.
func (p *Parser) parseDirective() bool {
	s := p.pos
	name := ""
	if n := directiveName(p.src[p.pos:]); 0 < n {
		name = string(parse.ToLower(parse.Copy(p.src[p.pos : p.pos+n])))
		p.pos += n
		p.skip()
	}
	ss := p.pos

	switch name {
	case "@at-root":
		selectors, _ := p.selectors()
		with, _ := p.mapExpr()
		if p.matchChar('{') {
			b := p.pushBlock(AtRootBlock, nil, s)
			b.Directive = &AtRootDirective{Selectors: selectors, With: with}
			return true
		}
	case "@media":
		queries := p.mediaQueryList()
		if p.matchChar('{') {
			b := p.pushBlock(MediaBlock, nil, s)
			b.Directive = &MediaDirective{Queries: queries}
			return true
		}
	case "@mixin":
		if mixin, ok := p.keyword(); ok {
			args, _ := p.argumentDef()
			if p.matchChar('{') {
				b := p.pushBlock(MixinBlock, nil, s)
				b.Directive = &MixinDirective{Name: mixin, Args: args}
				return true
			}
		}
	case "@include":
		if mixin, ok := p.keyword(); ok {
			include := &IncludeStmt{Name: mixin, Pos: p.position(s)}
			sa := p.pos
			if p.matchChar('(') {
				args, _ := p.argValues()
				if p.matchChar(')') {
					include.Args = append([]Arg{}, args...)
				} else {
					p.restore(sa)
				}
			}
			if p.end() {
				p.append(include)
				return true
			} else if p.matchChar('{') {
				b := p.pushBlock(IncludeBlock, nil, s)
				b.include = include
				return true
			}
		}
	case "@scssphp-import-once":
		if path, ok := p.valueList(); ok && p.end() {
			p.append(&ImportStmt{Path: path, Once: true, Pos: p.position(s)})
			return true
		}
	case "@import":
		if path, ok := p.valueList(); ok && p.end() {
			p.append(&ImportStmt{Path: path, Pos: p.position(s)})
			return true
		}
		p.restore(ss)
		if path, ok := p.url(); ok && p.end() {
			p.append(&ImportStmt{Path: path, Pos: p.position(s)})
			return true
		}
	case "@extend":
		if selectors, ok := p.selectors(); ok && p.end() {
			optional := stripOptionalFlag(selectors)
			p.append(&ExtendStmt{Selectors: selectors, Optional: optional, Pos: p.position(s)})
			return true
		}
	case "@function":
		if fn, ok := p.keyword(); ok {
			if args, ok := p.argumentDef(); ok && p.matchChar('{') {
				b := p.pushBlock(FunctionBlock, nil, s)
				b.Directive = &FunctionDirective{Name: fn, Args: args}
				return true
			}
		}
	case "@break":
		if p.end() {
			p.append(&BreakStmt{p.position(s)})
			return true
		}
	case "@continue":
		if p.end() {
			p.append(&ContinueStmt{p.position(s)})
			return true
		}
	case "@return":
		value, ok := p.valueList()
		if !ok {
			value = &Null{}
		}
		if p.end() {
			p.append(&ReturnStmt{Value: value, Pos: p.position(s)})
			return true
		}
	case "@each":
		if vars := parseList(p, p.variable, ","); 0 < len(vars) && p.literal("in") {
			if list, ok := p.valueList(); ok && p.matchChar('{') {
				b := p.pushBlock(EachBlock, nil, s)
				b.Directive = &EachDirective{Vars: vars, List: list}
				return true
			}
		}
	case "@while":
		if cond, ok := p.expression(); ok && p.matchChar('{') {
			b := p.pushBlock(WhileBlock, nil, s)
			b.Directive = &WhileDirective{Cond: cond}
			return true
		}
	case "@for":
		if name, ok := p.variable(); ok && p.literal("from") {
			if from, ok := p.expression(); ok {
				through := p.literal("through")
				until := !through && p.literal("to")
				if through || until {
					if to, ok := p.expression(); ok && p.matchChar('{') {
						b := p.pushBlock(ForBlock, nil, s)
						b.Directive = &ForDirective{Var: name, From: from, To: to, Until: until}
						return true
					}
				}
			}
		}
	case "@if":
		if cond, ok := p.valueList(); ok && p.matchChar('{') {
			b := p.pushBlock(IfBlock, nil, s)
			b.Directive = &IfDirective{Cond: cond}
			return true
		}
	case "@debug", "@warn", "@error":
		if value, ok := p.valueList(); ok && p.end() {
			mt := DebugMessage
			if name == "@warn" {
				mt = WarnMessage
			} else if name == "@error" {
				mt = ErrorMessage
			}
			p.append(&MessageStmt{Type: mt, Value: value, Pos: p.position(s)})
			return true
		}
	case "@content":
		if p.end() {
			p.append(&ContentStmt{p.position(s)})
			return true
		}
	case "@else", "@elseif":
		if p.elseBlock(name, s) {
			return true
		}
	case "@charset":
		if value, ok := p.valueList(); ok && p.end() {
			if p.charset == nil {
				p.charset = &CharsetStmt{Value: value, Pos: p.position(s)}
			} else {
				line, _ := p.idx.Position(s)
				p.log.Debug("dropping duplicate @charset",
					zap.String("charset", value.String()),
					zap.String("source", p.sourceName),
					zap.Int("line", line))
			}
			return true
		}
	}
	if p.err != nil {
		return false
	}
	p.restore(s)
	return p.genericDirective(s)
}

// elseBlock opens an @else or @else if block when the previous statement of the current block is an @if.
// The block is attached to the cases of the @if instead of the current block.
func (p *Parser) elseBlock(name string, s int) bool {
	last, ok := p.last().(*Block)
	if !ok || last.Type != IfBlock {
		return false
	}
	ifDir := last.Directive.(*IfDirective)

	ss := p.pos
	var b *Block
	if name == "@else" && p.matchChar('{') {
		b = p.pushBlock(ElseBlock, nil, s)
		b.Directive = &ElseDirective{}
	} else if name == "@elseif" || p.word("if") {
		if cond, ok := p.valueList(); ok && p.matchChar('{') {
			b = p.pushBlock(ElseIfBlock, nil, s)
			b.Directive = &ElseDirective{Cond: cond}
		}
	}
	if b == nil {
		p.restore(ss)
		return false
	}
	b.dontAppend = true
	ifDir.Cases = append(ifDir.Cases, b)
	return true
}

// genericDirective parses @name [value] { as a block. A name of media is parsed as a media block holding the raw value.
func (p *Parser) genericDirective(s int) bool {
	if p.rawChar('@') {
		if name, ok := p.keyword(); ok {
			var value IExpr
			if v, ok := p.variable(); ok {
				value = &Variable{v}
			} else if str, ok := p.openString("{", 0); ok {
				value = str
			}
			if p.matchChar('{') {
				if name == "media" {
					b := p.pushBlock(MediaBlock, nil, s)
					b.Directive = &MediaDirective{Value: value}
				} else {
					b := p.pushBlock(DirectiveBlock, nil, s)
					b.Directive = &GenericDirective{Name: name, Value: value}
					p.logDirective("unknown directive", name, s)
				}
				return true
			}
			p.logDirective("directive without body", name, s)
		}
	}
	p.restore(s)
	return false
}
