package scss

import (
	"strconv"
	"strings"
)

// Pos is the position of a node in its source. Line is 1-based and Column is 0-based.
type Pos struct {
	Offset      int
	Line        int
	Column      int
	SourceIndex int
}

// Position returns the position of the node.
func (pos Pos) Position() Pos {
	return pos
}

// INode is implemented by all nodes of the tree.
type INode interface {
	String() string
}

// IStmt is a child of a block.
type IStmt interface {
	String() string
	Position() Pos
	stmtNode()
}

// IExpr is a value or expression.
type IExpr interface {
	String() string
	exprNode()
}

// IFragment is a piece of a compound selector.
type IFragment interface {
	String() string
	fragmentNode()
}

// IDirective is the payload of a specialized block.
type IDirective interface {
	String() string
	directiveNode()
}

////////////////////////////////////////////////////////////////

// BlockType determines the kind of block.
type BlockType uint16

// BlockType values.
const (
	RootBlock BlockType = iota
	RuleBlock
	MediaBlock
	MixinBlock
	FunctionBlock
	IfBlock
	ElseBlock
	ElseIfBlock
	EachBlock
	ForBlock
	WhileBlock
	IncludeBlock
	AtRootBlock
	NestedPropertyBlock
	DirectiveBlock
)

// String returns the string representation of a BlockType.
func (bt BlockType) String() string {
	switch bt {
	case RootBlock:
		return "Root"
	case RuleBlock:
		return "Block"
	case MediaBlock:
		return "Media"
	case MixinBlock:
		return "Mixin"
	case FunctionBlock:
		return "Function"
	case IfBlock:
		return "If"
	case ElseBlock:
		return "Else"
	case ElseIfBlock:
		return "ElseIf"
	case EachBlock:
		return "Each"
	case ForBlock:
		return "For"
	case WhileBlock:
		return "While"
	case IncludeBlock:
		return "Include"
	case AtRootBlock:
		return "AtRoot"
	case NestedPropertyBlock:
		return "NestedProperty"
	case DirectiveBlock:
		return "Directive"
	}
	return "Invalid(" + strconv.Itoa(int(bt)) + ")"
}

// Block is a scope of the tree: the root, a rule block or a directive block.
// Selectors is nil for everything but rule blocks, Directive is nil for the root, rule and include body blocks.
type Block struct {
	Type      BlockType
	Selectors SelectorList
	Directive IDirective
	Children  []IStmt
	Pos

	parent     int // index into the parser's block arena, -1 once popped
	comments   []*Comment
	dontAppend bool
	include    *IncludeStmt
}

func (b *Block) String() string {
	s := ""
	for _, child := range b.Children {
		s += " " + child.String()
	}
	if b.Type == RootBlock {
		if 0 < len(s) {
			s = s[1:]
		}
		return s
	}

	header := ""
	if b.Selectors != nil {
		header = b.Selectors.String()
	} else if b.Directive != nil {
		header = b.Directive.String()
	}
	if header != "" {
		header += " "
	}
	return b.Type.String() + "(" + header + "{" + s + " })"
}

// Comment is a block comment preserved in the tree.
type Comment struct {
	Text string
	Pos
}

func (n *Comment) String() string {
	return "Comment(" + n.Text + ")"
}

// AssignStmt is a variable assignment, Flag is either empty, !default or !global.
type AssignStmt struct {
	Name  string
	Value IExpr
	Flag  string
	Pos
}

func (n *AssignStmt) String() string {
	s := "Assign($" + n.Name + ": " + n.Value.String()
	if n.Flag != "" {
		s += " " + n.Flag
	}
	return s + ")"
}

// PropertyStmt is a property declaration.
type PropertyStmt struct {
	Name  *String
	Value IExpr
	Pos
}

func (n *PropertyStmt) String() string {
	return "Prop(" + n.Name.String() + ": " + n.Value.String() + ")"
}

// IncludeStmt is a mixin inclusion. Args is nil when no arguments were given, Body is nil when there is no content block.
type IncludeStmt struct {
	Name string
	Args []Arg
	Body *Block
	Pos
}

func (n *IncludeStmt) String() string {
	s := "Include(" + n.Name
	if n.Args != nil {
		s += "(" + argsString(n.Args) + ")"
	}
	if n.Body != nil {
		s += " " + n.Body.String()
	}
	return s + ")"
}

// ImportStmt is an @import, or an @scssphp-import-once when Once is set.
type ImportStmt struct {
	Path IExpr
	Once bool
	Pos
}

func (n *ImportStmt) String() string {
	if n.Once {
		return "ImportOnce(" + n.Path.String() + ")"
	}
	return "Import(" + n.Path.String() + ")"
}

// ExtendStmt is an @extend, Optional is set when it was flagged with !optional.
type ExtendStmt struct {
	Selectors SelectorList
	Optional  bool
	Pos
}

func (n *ExtendStmt) String() string {
	s := "Extend(" + n.Selectors.String()
	if n.Optional {
		s += " !optional"
	}
	return s + ")"
}

// MessageType is the kind of a MessageStmt.
type MessageType uint16

// MessageType values.
const (
	DebugMessage MessageType = iota
	WarnMessage
	ErrorMessage
)

// String returns the string representation of a MessageType.
func (mt MessageType) String() string {
	switch mt {
	case DebugMessage:
		return "Debug"
	case WarnMessage:
		return "Warn"
	case ErrorMessage:
		return "Error"
	}
	return "Invalid(" + strconv.Itoa(int(mt)) + ")"
}

// MessageStmt is a @debug, @warn or @error.
type MessageStmt struct {
	Type  MessageType
	Value IExpr
	Pos
}

func (n *MessageStmt) String() string {
	return n.Type.String() + "(" + n.Value.String() + ")"
}

// ReturnStmt is a @return, Value is Null when no value was given.
type ReturnStmt struct {
	Value IExpr
	Pos
}

func (n *ReturnStmt) String() string {
	return "Return(" + n.Value.String() + ")"
}

type BreakStmt struct {
	Pos
}

func (n *BreakStmt) String() string {
	return "Break()"
}

type ContinueStmt struct {
	Pos
}

func (n *ContinueStmt) String() string {
	return "Continue()"
}

// ContentStmt is the @content placeholder inside a mixin.
type ContentStmt struct {
	Pos
}

func (n *ContentStmt) String() string {
	return "Content()"
}

// CharsetStmt is the first @charset of a document, it is always the first child of the root.
type CharsetStmt struct {
	Value IExpr
	Pos
}

func (n *CharsetStmt) String() string {
	return "Charset(" + n.Value.String() + ")"
}

func (n *Block) stmtNode()        {}
func (n *Comment) stmtNode()      {}
func (n *AssignStmt) stmtNode()   {}
func (n *PropertyStmt) stmtNode() {}
func (n *IncludeStmt) stmtNode()  {}
func (n *ImportStmt) stmtNode()   {}
func (n *ExtendStmt) stmtNode()   {}
func (n *MessageStmt) stmtNode()  {}
func (n *ReturnStmt) stmtNode()   {}
func (n *BreakStmt) stmtNode()    {}
func (n *ContinueStmt) stmtNode() {}
func (n *ContentStmt) stmtNode()  {}
func (n *CharsetStmt) stmtNode()  {}

////////////////////////////////////////////////////////////////

// MediaDirective is the payload of a @media block. Value is only set for media blocks parsed by the generic directive fallback.
type MediaDirective struct {
	Queries []MediaQuery
	Value   IExpr
}

func (n *MediaDirective) String() string {
	if n.Value != nil {
		return n.Value.String()
	}
	s := make([]string, len(n.Queries))
	for i, q := range n.Queries {
		s[i] = q.String()
	}
	return strings.Join(s, ", ")
}

// MediaQuery is a single query of a media query list. Modifier is empty, only or not.
type MediaQuery struct {
	Modifier    string
	Type        []IExpr
	Expressions []MediaExpression
}

func (q MediaQuery) String() string {
	s := []string{}
	if q.Modifier != "" {
		s = append(s, q.Modifier)
	}
	if q.Type != nil {
		s = append(s, partsString(q.Type))
	}
	for _, e := range q.Expressions {
		if 0 < len(s) {
			s = append(s, "and")
		}
		s = append(s, e.String())
	}
	return strings.Join(s, " ")
}

// MediaExpression is a parenthesized media feature, Value can be nil.
type MediaExpression struct {
	Feature IExpr
	Value   IExpr
}

func (e MediaExpression) String() string {
	if e.Value == nil {
		return "(" + e.Feature.String() + ")"
	}
	return "(" + e.Feature.String() + ": " + e.Value.String() + ")"
}

// Param is a parameter of a mixin or function definition.
type Param struct {
	Name    string
	Default IExpr // can be nil
	Rest    bool
}

func (p Param) String() string {
	s := "$" + p.Name
	if p.Default != nil {
		s += ": " + p.Default.String()
	}
	if p.Rest {
		s += "..."
	}
	return s
}

func paramsString(params []Param) string {
	s := make([]string, len(params))
	for i, p := range params {
		s[i] = p.String()
	}
	return strings.Join(s, ", ")
}

// MixinDirective is the payload of a @mixin block, Args is nil when the mixin has no parameter list.
type MixinDirective struct {
	Name string
	Args []Param
}

func (n *MixinDirective) String() string {
	if n.Args == nil {
		return n.Name
	}
	return n.Name + "(" + paramsString(n.Args) + ")"
}

type FunctionDirective struct {
	Name string
	Args []Param
}

func (n *FunctionDirective) String() string {
	return n.Name + "(" + paramsString(n.Args) + ")"
}

// IfDirective is the payload of an @if block. Cases holds the @else and @else if blocks that follow it.
type IfDirective struct {
	Cond  IExpr
	Cases []*Block
}

func (n *IfDirective) String() string {
	s := n.Cond.String()
	for _, c := range n.Cases {
		s += " " + c.String()
	}
	return s
}

// ElseDirective is the payload of an @else or @else if block, Cond is nil for a plain @else.
type ElseDirective struct {
	Cond IExpr
}

func (n *ElseDirective) String() string {
	if n.Cond == nil {
		return ""
	}
	return n.Cond.String()
}

type EachDirective struct {
	Vars []string
	List IExpr
}

func (n *EachDirective) String() string {
	return "$" + strings.Join(n.Vars, ", $") + " in " + n.List.String()
}

// ForDirective is the payload of a @for block, Until is set when the upper bound is exclusive (to instead of through).
type ForDirective struct {
	Var   string
	From  IExpr
	To    IExpr
	Until bool
}

func (n *ForDirective) String() string {
	bound := " through "
	if n.Until {
		bound = " to "
	}
	return "$" + n.Var + " from " + n.From.String() + bound + n.To.String()
}

type WhileDirective struct {
	Cond IExpr
}

func (n *WhileDirective) String() string {
	return n.Cond.String()
}

// AtRootDirective is the payload of an @at-root block, both fields can be nil.
type AtRootDirective struct {
	Selectors SelectorList
	With      IExpr
}

func (n *AtRootDirective) String() string {
	s := []string{}
	if n.Selectors != nil {
		s = append(s, n.Selectors.String())
	}
	if n.With != nil {
		s = append(s, n.With.String())
	}
	return strings.Join(s, " ")
}

// NestedPropertyDirective is the payload of a nested property block such as font: { family: x; }.
type NestedPropertyDirective struct {
	Prefix *String
}

func (n *NestedPropertyDirective) String() string {
	return n.Prefix.String() + ":"
}

// GenericDirective is the payload of any other @-rule with a body, Value can be nil.
type GenericDirective struct {
	Name  string
	Value IExpr
}

func (n *GenericDirective) String() string {
	if n.Value == nil {
		return "@" + n.Name
	}
	return "@" + n.Name + " " + n.Value.String()
}

func (n *MediaDirective) directiveNode()          {}
func (n *MixinDirective) directiveNode()          {}
func (n *FunctionDirective) directiveNode()       {}
func (n *IfDirective) directiveNode()             {}
func (n *ElseDirective) directiveNode()           {}
func (n *EachDirective) directiveNode()           {}
func (n *ForDirective) directiveNode()            {}
func (n *WhileDirective) directiveNode()          {}
func (n *AtRootDirective) directiveNode()         {}
func (n *NestedPropertyDirective) directiveNode() {}
func (n *GenericDirective) directiveNode()        {}

////////////////////////////////////////////////////////////////

// Delim is the separator of a list.
type Delim string

// Delim values.
const (
	NoDelim    Delim = ""
	SpaceDelim Delim = " "
	CommaDelim Delim = ","
)

// List is a space or comma separated list of values. The empty list () has NoDelim.
type List struct {
	Delim Delim
	Items []IExpr
}

func (n *List) String() string {
	sep := " "
	if n.Delim == CommaDelim {
		sep = ", "
	}
	s := make([]string, len(n.Items))
	for i, item := range n.Items {
		s[i] = item.String()
	}
	return "List(" + strings.Join(s, sep) + ")"
}

// Number is a number with an optional unit.
type Number struct {
	Value float64
	Unit  string
}

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64) + n.Unit
}

// Text is a literal run of characters inside a string, a property name or a media type.
type Text string

func (n Text) String() string {
	return string(n)
}

// String is a quoted or unquoted string. Parts holds Text, *Interpolation and nested *String nodes.
// Delim is 0 for unquoted strings.
type String struct {
	Delim byte
	Parts []IExpr
}

func (n *String) String() string {
	s := partsString(n.Parts)
	if n.Delim != 0 {
		return string(n.Delim) + s + string(n.Delim)
	}
	return s
}

func partsString(parts []IExpr) string {
	sb := strings.Builder{}
	for _, part := range parts {
		sb.WriteString(part.String())
	}
	return sb.String()
}

// Color is an RGBA color with channels from 0 to 255.
type Color struct {
	R, G, B, A uint8
}

func (n *Color) String() string {
	const hex = "0123456789abcdef"
	b := []byte{'#'}
	channels := []uint8{n.R, n.G, n.B}
	if n.A != 255 {
		channels = append(channels, n.A)
	}
	for _, c := range channels {
		b = append(b, hex[c>>4], hex[c&0xf])
	}
	return string(b)
}

type Boolean struct {
	Value bool
}

func (n *Boolean) String() string {
	return strconv.FormatBool(n.Value)
}

type Null struct{}

func (n *Null) String() string {
	return "null"
}

// Keyword is a bare identifier value.
type Keyword struct {
	Name string
}

func (n *Keyword) String() string {
	return n.Name
}

type Variable struct {
	Name string
}

func (n *Variable) String() string {
	return "$" + n.Name
}

// Arg is an argument of a function call or mixin inclusion. Name is set for keyword arguments.
type Arg struct {
	Name   string
	Value  IExpr
	Spread bool
}

func (a Arg) String() string {
	s := a.Value.String()
	if a.Name != "" {
		s = "$" + a.Name + ": " + s
	}
	if a.Spread {
		s += "..."
	}
	return s
}

func argsString(args []Arg) string {
	s := make([]string, len(args))
	for i, a := range args {
		s[i] = a.String()
	}
	return strings.Join(s, ", ")
}

type FunctionCall struct {
	Name string
	Args []Arg
}

func (n *FunctionCall) String() string {
	return n.Name + "(" + argsString(n.Args) + ")"
}

// RawCall is a function whose arguments keep their source text, such as alpha(opacity=50).
type RawCall struct {
	Name  string
	Value *String
}

func (n *RawCall) String() string {
	return n.Name + "(" + n.Value.String() + ")"
}

// BinaryExpr is a binary operation. WhiteBefore and WhiteAfter record whitespace around the operator.
type BinaryExpr struct {
	Op          string
	X, Y        IExpr
	InParens    bool
	WhiteBefore bool
	WhiteAfter  bool
}

func (n *BinaryExpr) String() string {
	return "Expr(" + n.X.String() + " " + n.Op + " " + n.Y.String() + ")"
}

type UnaryExpr struct {
	Op       string
	X        IExpr
	InParens bool
}

func (n *UnaryExpr) String() string {
	if n.Op == "not" {
		return "Unary(not " + n.X.String() + ")"
	}
	return "Unary(" + n.Op + n.X.String() + ")"
}

// Map is a parenthesized list of key: value pairs.
type Map struct {
	Keys   []IExpr
	Values []IExpr
}

func (n *Map) String() string {
	s := make([]string, len(n.Keys))
	for i := range n.Keys {
		s[i] = n.Keys[i].String() + ": " + n.Values[i].String()
	}
	return "Map(" + strings.Join(s, ", ") + ")"
}

// Interpolation is a #{...} expression, WhiteLeft and WhiteRight record whitespace around it.
type Interpolation struct {
	Value      IExpr
	WhiteLeft  bool
	WhiteRight bool
}

func (n *Interpolation) String() string {
	return "#{" + n.Value.String() + "}"
}

func (n *List) exprNode()          {}
func (n *Number) exprNode()        {}
func (n Text) exprNode()           {}
func (n *String) exprNode()        {}
func (n *Color) exprNode()         {}
func (n *Boolean) exprNode()       {}
func (n *Null) exprNode()          {}
func (n *Keyword) exprNode()       {}
func (n *Variable) exprNode()      {}
func (n *FunctionCall) exprNode()  {}
func (n *RawCall) exprNode()       {}
func (n *BinaryExpr) exprNode()    {}
func (n *UnaryExpr) exprNode()     {}
func (n *Map) exprNode()           {}
func (n *Interpolation) exprNode() {}

////////////////////////////////////////////////////////////////

// SelectorList is a comma separated list of selectors.
type SelectorList []Selector

func (n SelectorList) String() string {
	s := make([]string, len(n))
	for i, sel := range n {
		s[i] = sel.String()
	}
	return strings.Join(s, ", ")
}

// Selector is a sequence of compound selectors and combinators.
type Selector []Compound

func (n Selector) String() string {
	s := make([]string, len(n))
	for i, c := range n {
		s[i] = c.String()
	}
	return strings.Join(s, " ")
}

// Compound is a sequence of fragments without whitespace in between, or a single Combinator.
type Compound []IFragment

func (n Compound) String() string {
	sb := strings.Builder{}
	for _, f := range n {
		sb.WriteString(f.String())
	}
	return sb.String()
}

// Element is a type selector, the universal selector * or any other bare keyword in a selector.
type Element struct {
	Name string
}

func (n *Element) String() string {
	return n.Name
}

// Self is the parent reference &.
type Self struct{}

func (n *Self) String() string {
	return "&"
}

// NamespaceSep is the namespace separator |.
type NamespaceSep struct{}

func (n *NamespaceSep) String() string {
	return "|"
}

// Class is a class selector, Name is empty for a dangling dot.
type Class struct {
	Name string
}

func (n *Class) String() string {
	return "." + n.Name
}

// ID is an id selector, Name is empty for a dangling hash.
type ID struct {
	Name string
}

func (n *ID) String() string {
	return "#" + n.Name
}

type Placeholder struct {
	Name string
}

func (n *Placeholder) String() string {
	return "%" + n.Name
}

// Pseudo is a pseudo-class or pseudo-element. Args is only meaningful when HasArgs is set and can be nil for empty parentheses.
type Pseudo struct {
	Colons  string
	Name    []IExpr
	HasArgs bool
	Args    *String
}

func (n *Pseudo) String() string {
	s := n.Colons + partsString(n.Name)
	if n.HasArgs {
		s += "("
		if n.Args != nil {
			s += n.Args.String()
		}
		s += ")"
	}
	return s
}

// Attribute is an attribute selector holding the raw text between the brackets, Value can be nil.
type Attribute struct {
	Value *String
}

func (n *Attribute) String() string {
	if n.Value == nil {
		return "[]"
	}
	return "[" + n.Value.String() + "]"
}

// Escape is a backslash followed by a single character.
type Escape struct {
	Text string
}

func (n *Escape) String() string {
	return n.Text
}

// Combinator is one of >, >>, +, ~ or a slash combinator such as /deep/.
type Combinator struct {
	Op string
}

func (n *Combinator) String() string {
	return n.Op
}

func (n *Element) fragmentNode()       {}
func (n *Self) fragmentNode()          {}
func (n *NamespaceSep) fragmentNode()  {}
func (n *Class) fragmentNode()         {}
func (n *ID) fragmentNode()            {}
func (n *Placeholder) fragmentNode()   {}
func (n *Pseudo) fragmentNode()        {}
func (n *Attribute) fragmentNode()     {}
func (n *Escape) fragmentNode()        {}
func (n *Combinator) fragmentNode()    {}
func (n *Interpolation) fragmentNode() {}
func (n *Number) fragmentNode()        {}
