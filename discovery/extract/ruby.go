package extract

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

// RubyExtractor covers .rb, treating top-level classes and modules as
// KindClass candidates (their instance/singleton methods collapse into
// Methods) and top-level methods as KindFunction. Grounded on
// kai-core/parse's extractRubyClass/extractRubyModule/extractRubyClassMethods,
// restricted to top-level declarations only.
type RubyExtractor struct {
	parser *sitter.Parser
}

func NewRubyExtractor() *RubyExtractor {
	p := sitter.NewParser()
	p.SetLanguage(ruby.GetLanguage())
	return &RubyExtractor{parser: p}
}

func (e *RubyExtractor) Language() string    { return "ruby" }
func (e *RubyExtractor) Extensions() []string { return []string{".rb"} }

func (e *RubyExtractor) Extract(path string, content []byte) []Symbol {
	tree, err := e.parser.ParseCtx(context.Background(), nil, content)
	if err != nil || tree == nil {
		return nil
	}
	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil
	}

	var symbols []Symbol
	for i := 0; i < int(root.ChildCount()); i++ {
		sym, ok := rbSymbolFromStatement(root.Child(i), content)
		if ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func rbSymbolFromStatement(node *sitter.Node, content []byte) (Symbol, bool) {
	switch node.Type() {
	case "class":
		return rbClassSymbol(node, content), true
	case "module":
		return rbModuleSymbol(node, content), true
	case "method":
		return rbMethodSymbol(node, content), true
	case "singleton_method":
		return rbSingletonMethodSymbol(node, content), true
	default:
		return Symbol{}, false
	}
}

func rbClassSymbol(node *sitter.Node, content []byte) Symbol {
	var name string
	var bases []string
	var body *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "constant", "scope_resolution":
			if name == "" {
				name = child.Content(content)
			}
		case "superclass":
			bases = rbSuperclassNames(child, content)
		case "body_statement":
			body = child
		}
	}
	return Symbol{
		Name:      name,
		Kind:      KindClass,
		Line:      int(node.StartPoint().Row) + 1,
		Methods:   rbClassMethods(body, content),
		Bases:     bases,
		Docstring: rbLeadingComment(node, content),
		HasDocstring: rbLeadingComment(node, content) != "",
	}
}

func rbModuleSymbol(node *sitter.Node, content []byte) Symbol {
	var name string
	var body *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "constant", "scope_resolution":
			if name == "" {
				name = child.Content(content)
			}
		case "body_statement":
			body = child
		}
	}
	return Symbol{
		Name:         name,
		Kind:         KindClass,
		Line:         int(node.StartPoint().Row) + 1,
		Methods:      rbClassMethods(body, content),
		Docstring:    rbLeadingComment(node, content),
		HasDocstring: rbLeadingComment(node, content) != "",
	}
}

func rbMethodSymbol(node *sitter.Node, content []byte) Symbol {
	return Symbol{
		Name: rbMethodName(node, content),
		Kind: KindFunction,
		Line: int(node.StartPoint().Row) + 1,
	}
}

func rbSingletonMethodSymbol(node *sitter.Node, content []byte) Symbol {
	return Symbol{
		Name: rbMethodName(node, content),
		Kind: KindFunction,
		Line: int(node.StartPoint().Row) + 1,
	}
}

func rbMethodName(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier", "constant", "operator":
			return child.Content(content)
		}
	}
	return ""
}

// rbClassMethods collects instance and singleton method names directly
// inside a class/module body — one level only, nested defines inside a
// method body are never visited.
func rbClassMethods(body *sitter.Node, content []byte) []string {
	if body == nil {
		return nil
	}
	var methods []string
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case "method", "singleton_method":
			if name := rbMethodName(child, content); name != "" {
				methods = append(methods, name)
			}
		}
	}
	return methods
}

func rbSuperclassNames(node *sitter.Node, content []byte) []string {
	var names []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "constant", "scope_resolution":
			names = append(names, child.Content(content))
		}
	}
	return names
}

// rbLeadingComment pulls a contiguous block of "#" comments immediately
// preceding node, Ruby's nearest equivalent to a Python docstring.
func rbLeadingComment(node *sitter.Node, content []byte) string {
	prev := node.PrevSibling()
	var lines []string
	for prev != nil && prev.Type() == "comment" {
		lines = append([]string{strings.TrimSpace(strings.TrimPrefix(prev.Content(content), "#"))}, lines...)
		prev = prev.PrevSibling()
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
