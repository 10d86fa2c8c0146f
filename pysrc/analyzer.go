// Package pysrc performs structural analysis of Python source files. It is
// the last data-acquisition tier: when a project has no README, the page is
// synthesized from its entry point's docstrings, functions and classes.
package pysrc

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// maxDescriptionLen caps derived descriptions; longer docstring lines are
// truncated with a trailing ellipsis.
const maxDescriptionLen = 200

// Function describes a function or method definition.
type Function struct {
	Name      string
	Line      int
	Params    []string
	Docstring string
}

// Class describes a class definition with its methods.
type Class struct {
	Name      string
	Line      int
	Docstring string
	Methods   []Function
}

// Analysis is the structural summary of one source file.
type Analysis struct {
	Description string
	Functions   []Function // top-level only, methods excluded
	Classes     []Class
}

// Analyze parses Python source and extracts its structure. It reports
// ok=false when the source does not parse; an empty but syntactically valid
// file yields an empty Analysis with ok=true. The description comes from
// the module docstring, falling back to the first class docstring, then to
// a function named "main".
func Analyze(src []byte) (*Analysis, bool) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, false
	}

	a := &Analysis{}
	if doc := blockDocstring(root, src); doc != "" {
		a.Description = firstLine(doc)
	}

	// Classes first so the first class docstring outranks main's.
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := definition(root.NamedChild(i))
		if node.Type() != "class_definition" {
			continue
		}
		cls := parseClass(node, src)
		a.Classes = append(a.Classes, cls)
		if a.Description == "" && cls.Docstring != "" {
			a.Description = firstLine(cls.Docstring)
		}
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := definition(root.NamedChild(i))
		if node.Type() != "function_definition" {
			continue
		}
		fn := parseFunction(node, src)
		a.Functions = append(a.Functions, fn)
		if a.Description == "" && fn.Name == "main" && fn.Docstring != "" {
			a.Description = firstLine(fn.Docstring)
		}
	}

	return a, true
}

// definition unwraps decorated definitions to the underlying node.
func definition(node *sitter.Node) *sitter.Node {
	if node.Type() == "decorated_definition" {
		if def := node.ChildByFieldName("definition"); def != nil {
			return def
		}
	}
	return node
}

func parseFunction(node *sitter.Node, src []byte) Function {
	fn := Function{Line: int(node.StartPoint().Row) + 1}
	if name := node.ChildByFieldName("name"); name != nil {
		fn.Name = name.Content(src)
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Params = parameterNames(params, src)
	}
	if body := node.ChildByFieldName("body"); body != nil {
		fn.Docstring = blockDocstring(body, src)
	}
	return fn
}

func parseClass(node *sitter.Node, src []byte) Class {
	cls := Class{Line: int(node.StartPoint().Row) + 1}
	if name := node.ChildByFieldName("name"); name != nil {
		cls.Name = name.Content(src)
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	cls.Docstring = blockDocstring(body, src)
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := definition(body.NamedChild(i))
		if child.Type() == "function_definition" {
			cls.Methods = append(cls.Methods, parseFunction(child, src))
		}
	}
	return cls
}

func parameterNames(params *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			names = append(names, p.Content(src))
		case "typed_parameter", "list_splat_pattern", "dictionary_splat_pattern":
			if p.NamedChildCount() > 0 {
				names = append(names, p.NamedChild(0).Content(src))
			}
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				names = append(names, name.Content(src))
			}
		}
	}
	return names
}

// blockDocstring returns the docstring of a module or block node: the
// string literal of its first statement, when that statement is a bare
// string expression. Comments are named nodes in the Python grammar, so
// leading ones (shebangs, coding lines) are skipped before the check.
func blockDocstring(block *sitter.Node, src []byte) string {
	var stmt *sitter.Node
	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		stmt = child
		break
	}
	if stmt == nil || stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
		return ""
	}
	str := stmt.NamedChild(0)
	if str.Type() != "string" {
		return ""
	}
	return strings.TrimSpace(stripQuotes(str.Content(src)))
}

// stripQuotes removes string prefixes (r, b, f, u) and the surrounding
// single, double or triple quotes from a string literal.
func stripQuotes(s string) string {
	i := 0
	for i < len(s) && s[i] != '"' && s[i] != '\'' {
		i++
	}
	s = s[i:]
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(s) >= 2*len(q) && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}

// firstLine returns the first non-blank line of a docstring, truncated to
// maxDescriptionLen characters with an ellipsis marker.
func firstLine(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > maxDescriptionLen {
			return string(runes[:maxDescriptionLen]) + "..."
		}
		return line
	}
	return ""
}
