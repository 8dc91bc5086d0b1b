package extract

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonExtractor pulls top-level classes and functions out of a Python
// module using Tree-sitter, the way kai-core/parse.extractPythonSymbols
// walks a Python AST — except it only ever looks at children of the module
// node (and one level into a class's body for methods), never the full
// recursive walk, so nested defs are never emitted as their own candidates.
type PythonExtractor struct {
	parser *sitter.Parser
}

// NewPythonExtractor builds a ready-to-use Python extractor.
func NewPythonExtractor() *PythonExtractor {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &PythonExtractor{parser: p}
}

func (e *PythonExtractor) Language() string    { return "python" }
func (e *PythonExtractor) Extensions() []string { return []string{".py"} }

func (e *PythonExtractor) Extract(path string, content []byte) []Symbol {
	tree, err := e.parser.ParseCtx(context.Background(), nil, content)
	if err != nil || tree == nil {
		return nil
	}
	root := tree.RootNode()
	if root == nil || root.HasError() {
		// tree-sitter never raises on malformed input; HasError is the
		// closest equivalent to Python's ast.parse raising SyntaxError, and
		// the contract here is the same either way: yield nothing.
		return nil
	}

	var symbols []Symbol
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		sym, ok := pySymbolFromStatement(child, content)
		if ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

// pySymbolFromStatement handles a single top-level statement, unwrapping a
// decorated_definition so decorators attach to the definition underneath.
func pySymbolFromStatement(node *sitter.Node, content []byte) (Symbol, bool) {
	var decorators []string
	def := node
	if node.Type() == "decorated_definition" {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Type() {
			case "decorator":
				decorators = append(decorators, pyDecoratorName(child, content))
			case "function_definition", "class_definition":
				def = child
			}
		}
	}

	switch def.Type() {
	case "class_definition":
		return pyClassSymbol(def, content, decorators), true
	case "function_definition":
		return pyFunctionSymbol(def, content, decorators), true
	default:
		return Symbol{}, false
	}
}

func pyClassSymbol(node *sitter.Node, content []byte, decorators []string) Symbol {
	var name string
	var bases []string
	var body *sitter.Node

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			if name == "" {
				name = child.Content(content)
			}
		case "argument_list":
			bases = pyArgumentListNames(child, content)
		case "block":
			body = child
		}
	}

	return Symbol{
		Name:       name,
		Kind:       KindClass,
		Line:       int(node.StartPoint().Row) + 1,
		Methods:    pyMethodNames(body, content),
		Decorators: decorators,
		Bases:      bases,
		Docstring:  pyDocstring(body, content),
		HasDocstring: body != nil && pyHasDocstring(body, content),
	}
}

func pyFunctionSymbol(node *sitter.Node, content []byte, decorators []string) Symbol {
	var name string
	var body *sitter.Node
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
		case "block":
			body = child
		}
	}

	return Symbol{
		Name:         name,
		Kind:         kind,
		Line:         int(node.StartPoint().Row) + 1,
		Decorators:   decorators,
		Docstring:    pyDocstring(body, content),
		HasDocstring: body != nil && pyHasDocstring(body, content),
	}
}

// pyMethodNames collects the names of function/async-function members
// directly inside a class body — not methods nested further inside those.
func pyMethodNames(body *sitter.Node, content []byte) []string {
	if body == nil {
		return nil
	}
	var methods []string
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		def := child
		if child.Type() == "decorated_definition" {
			for j := 0; j < int(child.ChildCount()); j++ {
				inner := child.Child(j)
				if inner.Type() == "function_definition" {
					def = inner
				}
			}
		}
		if def.Type() != "function_definition" {
			continue
		}
		for j := 0; j < int(def.ChildCount()); j++ {
			if def.Child(j).Type() == "identifier" {
				methods = append(methods, def.Child(j).Content(content))
				break
			}
		}
	}
	return methods
}

func pyArgumentListNames(node *sitter.Node, content []byte) []string {
	var names []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier", "attribute", "call":
			names = append(names, pyExprName(child, content))
		}
	}
	return names
}

// pyDecoratorName renders a decorator expression down to its callee name:
// "@dataclass" and "@repeat(3)" both normalize to the bare name.
func pyDecoratorName(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier", "attribute", "call":
			return pyExprName(child, content)
		}
	}
	return strings.TrimPrefix(strings.TrimSpace(node.Content(content)), "@")
}

// pyExprName renders an identifier, dotted attribute chain, or call
// expression down to a stable name string. Attribute nodes span contiguous
// source text ("a.b.c"), so the dotted form falls out of node.Content
// directly; a call's name is its callee's name.
func pyExprName(node *sitter.Node, content []byte) string {
	switch node.Type() {
	case "identifier", "attribute":
		return node.Content(content)
	case "call":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Type() {
			case "identifier", "attribute":
				return pyExprName(child, content)
			}
		}
		return node.Content(content)
	default:
		return node.Content(content)
	}
}

func pyHasDocstring(body *sitter.Node, content []byte) bool {
	s, _ := pyFirstStringStatement(body, content)
	return s != ""
}

func pyDocstring(body *sitter.Node, content []byte) string {
	s, _ := pyFirstStringStatement(body, content)
	return s
}

func pyFirstStringStatement(body *sitter.Node, content []byte) (string, bool) {
	if body == nil || body.ChildCount() == 0 {
		return "", false
	}
	first := body.Child(0)
	if first.Type() != "expression_statement" || first.ChildCount() == 0 {
		return "", false
	}
	str := first.Child(0)
	if str.Type() != "string" {
		return "", false
	}
	return cleanPyString(str.Content(content)), true
}

// cleanPyString strips the quote delimiters (and any string prefix letters)
// from raw Python source text for a string literal, the way ast.get_docstring
// normalizes a docstring before handing it back.
func cleanPyString(raw string) string {
	s := strings.TrimSpace(raw)
	// Strip leading prefix letters (r, u, b, f in any case/combination).
	i := 0
	for i < len(s) && strings.ContainsRune("rRuUbBfF", rune(s[i])) {
		i++
	}
	s = s[i:]

	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) && len(s) >= 2*len(quote) {
			return strings.TrimSpace(s[len(quote) : len(s)-len(quote)])
		}
	}
	return s
}
