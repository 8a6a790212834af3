package scss

// IVisitor represents the AST Visitor
// Each INode encountered by `Walk` is passed to `Enter`, children nodes will be ignored if the returned IVisitor is nil
type IVisitor interface {
	Enter(n INode) IVisitor
}

// Walk traverses a tree in depth-first order: blocks, statements, directives, values and selectors.
func Walk(v IVisitor, n INode) {
	if isnil(n) {
		return
	}

	if v = v.Enter(n); v == nil {
		return
	}

	switch n := n.(type) {
	case *Block:
		if n.Selectors != nil {
			Walk(v, n.Selectors)
		}
		Walk(v, n.Directive)
		for _, child := range n.Children {
			Walk(v, child)
		}
	case *AssignStmt:
		Walk(v, n.Value)
	case *PropertyStmt:
		Walk(v, n.Name)
		Walk(v, n.Value)
	case *IncludeStmt:
		for _, arg := range n.Args {
			Walk(v, arg.Value)
		}
		Walk(v, n.Body)
	case *ImportStmt:
		Walk(v, n.Path)
	case *ExtendStmt:
		Walk(v, n.Selectors)
	case *MessageStmt:
		Walk(v, n.Value)
	case *ReturnStmt:
		Walk(v, n.Value)
	case *CharsetStmt:
		Walk(v, n.Value)
	case *MediaDirective:
		for _, q := range n.Queries {
			for _, t := range q.Type {
				Walk(v, t)
			}
			for _, e := range q.Expressions {
				Walk(v, e.Feature)
				Walk(v, e.Value)
			}
		}
		Walk(v, n.Value)
	case *MixinDirective:
		walkParams(v, n.Args)
	case *FunctionDirective:
		walkParams(v, n.Args)
	case *IfDirective:
		Walk(v, n.Cond)
		for _, c := range n.Cases {
			Walk(v, c)
		}
	case *ElseDirective:
		Walk(v, n.Cond)
	case *EachDirective:
		Walk(v, n.List)
	case *ForDirective:
		Walk(v, n.From)
		Walk(v, n.To)
	case *WhileDirective:
		Walk(v, n.Cond)
	case *AtRootDirective:
		if n.Selectors != nil {
			Walk(v, n.Selectors)
		}
		Walk(v, n.With)
	case *NestedPropertyDirective:
		Walk(v, n.Prefix)
	case *GenericDirective:
		Walk(v, n.Value)
	case *List:
		for _, item := range n.Items {
			Walk(v, item)
		}
	case *String:
		for _, part := range n.Parts {
			Walk(v, part)
		}
	case *FunctionCall:
		for _, arg := range n.Args {
			Walk(v, arg.Value)
		}
	case *RawCall:
		Walk(v, n.Value)
	case *BinaryExpr:
		Walk(v, n.X)
		Walk(v, n.Y)
	case *UnaryExpr:
		Walk(v, n.X)
	case *Map:
		for i := range n.Keys {
			Walk(v, n.Keys[i])
			Walk(v, n.Values[i])
		}
	case *Interpolation:
		Walk(v, n.Value)
	case SelectorList:
		for _, sel := range n {
			Walk(v, sel)
		}
	case Selector:
		for _, c := range n {
			Walk(v, c)
		}
	case Compound:
		for _, f := range n {
			Walk(v, f)
		}
	case *Pseudo:
		for _, name := range n.Name {
			Walk(v, name)
		}
		if n.HasArgs {
			Walk(v, n.Args)
		}
	case *Attribute:
		Walk(v, n.Value)
	}
}

func walkParams(v IVisitor, params []Param) {
	for _, p := range params {
		Walk(v, p.Default)
	}
}

func isnil(n INode) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Block:
		return n == nil
	case *String:
		return n == nil
	}
	return false
}
