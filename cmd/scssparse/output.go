package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/scssgo/parse"
	"github.com/scssgo/parse/scss"
)

func writeTree(w io.Writer, format string, root *scss.Block) error {
	switch format {
	case "yaml":
		return writeYAML(w, dumpBlock(root))
	case "stats":
		return writeYAML(w, collectStats(root).mapSlice())
	}
	_, err := fmt.Fprintln(w, root.String())
	return err
}

func writeValue(w io.Writer, format string, value scss.IExpr) error {
	if format == "yaml" {
		return writeYAML(w, yaml.MapSlice{{Key: "value", Value: value.String()}})
	} else if format == "stats" {
		s := &stats{}
		scss.Walk(s, value)
		return writeYAML(w, s.mapSlice())
	}
	_, err := fmt.Fprintln(w, value.String())
	return err
}

func writeSelectors(w io.Writer, format string, list scss.SelectorList) error {
	if format == "yaml" {
		return writeYAML(w, yaml.MapSlice{{Key: "selectors", Value: selectorStrings(list)}})
	} else if format == "stats" {
		s := &stats{}
		scss.Walk(s, list)
		return writeYAML(w, s.mapSlice())
	}
	_, err := fmt.Fprintln(w, list.String())
	return err
}

func writeYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(v)
}

// printError writes err in red. Parse errors are followed by the offending line with a caret under the column.
func printError(w io.Writer, opts *options, err error) {
	red := color.New(color.FgRed, color.Bold)
	faint := color.New(color.Faint)
	if opts.noColor {
		red.DisableColor()
		faint.DisableColor()
	}

	red.Fprintf(w, "Error: %v\n", err)
	var perr *parse.Error
	if errors.As(err, &perr) {
		line, col, context := perr.Position()
		faint.Fprintf(w, "%s:%d:%d\n%s\n", perr.Source, line, col, context)
	}
}

////////////////////////////////////////////////////////////////

func selectorStrings(list scss.SelectorList) []string {
	s := make([]string, len(list))
	for i, sel := range list {
		s[i] = sel.String()
	}
	return s
}

func position(pos scss.Pos) yaml.MapSlice {
	return yaml.MapSlice{
		{Key: "line", Value: pos.Line},
		{Key: "column", Value: pos.Column},
	}
}

// dumpBlock converts a block and its children into an ordered YAML mapping.
func dumpBlock(b *scss.Block) yaml.MapSlice {
	m := yaml.MapSlice{{Key: "type", Value: b.Type.String()}}
	m = append(m, position(b.Pos)...)
	if b.Selectors != nil {
		m = append(m, yaml.MapItem{Key: "selectors", Value: selectorStrings(b.Selectors)})
	}
	switch d := b.Directive.(type) {
	case nil:
	case *scss.IfDirective:
		m = append(m, yaml.MapItem{Key: "condition", Value: d.Cond.String()})
		if 0 < len(d.Cases) {
			cases := make([]yaml.MapSlice, len(d.Cases))
			for i, c := range d.Cases {
				cases[i] = dumpBlock(c)
			}
			m = append(m, yaml.MapItem{Key: "cases", Value: cases})
		}
	default:
		if s := d.String(); s != "" {
			m = append(m, yaml.MapItem{Key: "directive", Value: s})
		}
	}
	if 0 < len(b.Children) {
		children := make([]yaml.MapSlice, len(b.Children))
		for i, child := range b.Children {
			children[i] = dumpStmt(child)
		}
		m = append(m, yaml.MapItem{Key: "children", Value: children})
	}
	return m
}

func dumpStmt(stmt scss.IStmt) yaml.MapSlice {
	var m yaml.MapSlice
	switch n := stmt.(type) {
	case *scss.Block:
		return dumpBlock(n)
	case *scss.Comment:
		m = yaml.MapSlice{{Key: "type", Value: "Comment"}, {Key: "text", Value: n.Text}}
	case *scss.AssignStmt:
		m = yaml.MapSlice{{Key: "type", Value: "Assign"}, {Key: "name", Value: "$" + n.Name}, {Key: "value", Value: n.Value.String()}}
		if n.Flag != "" {
			m = append(m, yaml.MapItem{Key: "flag", Value: n.Flag})
		}
	case *scss.PropertyStmt:
		m = yaml.MapSlice{{Key: "type", Value: "Prop"}, {Key: "name", Value: n.Name.String()}, {Key: "value", Value: n.Value.String()}}
	case *scss.IncludeStmt:
		m = yaml.MapSlice{{Key: "type", Value: "Include"}, {Key: "name", Value: n.Name}}
		if n.Args != nil {
			args := make([]string, len(n.Args))
			for i, arg := range n.Args {
				args[i] = arg.String()
			}
			m = append(m, yaml.MapItem{Key: "args", Value: args})
		}
		if n.Body != nil {
			m = append(m, yaml.MapItem{Key: "body", Value: dumpBlock(n.Body)})
		}
	default:
		m = yaml.MapSlice{{Key: "type", Value: fmt.Sprintf("%T", stmt)[len("*scss."):]}, {Key: "value", Value: stmt.String()}}
	}
	return append(m, position(stmt.Position())...)
}

////////////////////////////////////////////////////////////////

// stats counts the nodes of a tree.
type stats struct {
	Blocks      int
	Statements  int
	Comments    int
	Selectors   int
	Expressions int
	Variables   int
	MaxDepth    int
}

func (s *stats) Enter(n scss.INode) scss.IVisitor {
	switch n := n.(type) {
	case *scss.Block:
		if n.Type != scss.RootBlock {
			s.Blocks++
		}
	case *scss.Comment:
		s.Comments++
	case scss.IStmt:
		s.Statements++
	case scss.Selector:
		s.Selectors++
	case *scss.Variable:
		s.Variables++
		s.Expressions++
	case scss.IExpr:
		s.Expressions++
	}
	return s
}

func collectStats(root *scss.Block) *stats {
	s := &stats{}
	scss.Walk(s, root)
	s.MaxDepth = depth(root) - 1
	return s
}

func depth(b *scss.Block) int {
	deepest := 0
	for _, child := range b.Children {
		var d int
		switch n := child.(type) {
		case *scss.Block:
			d = depth(n)
		case *scss.IncludeStmt:
			if n.Body != nil {
				d = depth(n.Body)
			}
		}
		if deepest < d {
			deepest = d
		}
	}
	if ifDir, ok := b.Directive.(*scss.IfDirective); ok {
		for _, c := range ifDir.Cases {
			if d := depth(c) - 1; deepest < d {
				deepest = d
			}
		}
	}
	return deepest + 1
}

func (s *stats) mapSlice() yaml.MapSlice {
	return yaml.MapSlice{
		{Key: "blocks", Value: s.Blocks},
		{Key: "statements", Value: s.Statements},
		{Key: "comments", Value: s.Comments},
		{Key: "selectors", Value: s.Selectors},
		{Key: "expressions", Value: s.Expressions},
		{Key: "variables", Value: s.Variables},
		{Key: "max_depth", Value: s.MaxDepth},
	}
}
