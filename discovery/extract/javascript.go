package extract

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// JavaScriptExtractor covers .js/.jsx/.ts/.tsx using the JavaScript grammar
// for all four. TypeScript-only syntax (type annotations, interfaces, and
// the like) is not part of that grammar, so a .ts/.tsx file that uses it
// fails to parse and yields no symbols. Grounded on kai-core/parse's
// extractClassSymbol/extractMethodsFromClass, restricted to top level.
type JavaScriptExtractor struct {
	parser *sitter.Parser
}

func NewJavaScriptExtractor() *JavaScriptExtractor {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &JavaScriptExtractor{parser: p}
}

func (e *JavaScriptExtractor) Language() string { return "javascript" }
func (e *JavaScriptExtractor) Extensions() []string {
	return []string{".js", ".jsx", ".ts", ".tsx"}
}

func (e *JavaScriptExtractor) Extract(path string, content []byte) []Symbol {
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
		sym, ok := jsSymbolFromStatement(root.Child(i), content)
		if ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func jsSymbolFromStatement(node *sitter.Node, content []byte) (Symbol, bool) {
	var decorators []string
	def := node
	if node.Type() == "export_statement" {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Type() {
			case "class_declaration", "function_declaration":
				def = child
			}
		}
	}
	if def.Type() == "decorator" {
		return Symbol{}, false
	}

	switch def.Type() {
	case "class_declaration":
		return jsClassSymbol(def, content, decorators), true
	case "function_declaration":
		return jsFunctionSymbol(def, content, decorators), true
	default:
		return Symbol{}, false
	}
}

func jsClassSymbol(node *sitter.Node, content []byte, decorators []string) Symbol {
	var name string
	var bases []string
	var body *sitter.Node

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier", "type_identifier":
			if name == "" {
				name = child.Content(content)
			}
		case "class_heritage":
			bases = jsHeritageNames(child, content)
		case "class_body":
			body = child
		case "decorator":
			decorators = append(decorators, jsDecoratorName(child, content))
		}
	}

	return Symbol{
		Name:       name,
		Kind:       KindClass,
		Line:       int(node.StartPoint().Row) + 1,
		Methods:    jsMethodNames(body, content),
		Decorators: decorators,
		Bases:      bases,
	}
}

func jsFunctionSymbol(node *sitter.Node, content []byte, decorators []string) Symbol {
	var name string
	kind := KindFunction
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			if name == "" {
				name = child.Content(content)
			}
		case "async":
			kind = KindAsyncFunction
		}
	}
	return Symbol{Name: name, Kind: kind, Line: int(node.StartPoint().Row) + 1, Decorators: decorators}
}

func jsMethodNames(body *sitter.Node, content []byte) []string {
	if body == nil {
		return nil
	}
	var methods []string
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		if child.Type() != "method_definition" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			if child.Child(j).Type() == "property_identifier" {
				methods = append(methods, child.Child(j).Content(content))
				break
			}
		}
	}
	return methods
}

func jsHeritageNames(node *sitter.Node, content []byte) []string {
	var names []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier", "member_expression":
			names = append(names, child.Content(content))
		}
	}
	return names
}

func jsDecoratorName(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier", "member_expression":
			return child.Content(content)
		case "call_expression":
			for j := 0; j < int(child.ChildCount()); j++ {
				callee := child.Child(j)
				if callee.Type() == "identifier" || callee.Type() == "member_expression" {
					return callee.Content(content)
				}
			}
		}
	}
	return node.Content(content)
}
