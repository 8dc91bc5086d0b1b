package extract

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// GoExtractor maps Go's top-level declarations onto the same Candidate
// shape as Python: a struct type becomes a "class" (its methods are found
// by a second pass matching method_declaration receivers to the type
// name), and free functions become "function" candidates. Grounded on
// kai-core/parse's extractGoFunction/extractGoMethod/extractGoTypeSpec,
// restricted here to top-level declarations only.
type GoExtractor struct {
	parser *sitter.Parser
}

func NewGoExtractor() *GoExtractor {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	return &GoExtractor{parser: p}
}

func (e *GoExtractor) Language() string    { return "go" }
func (e *GoExtractor) Extensions() []string { return []string{".go"} }

func (e *GoExtractor) Extract(path string, content []byte) []Symbol {
	tree, err := e.parser.ParseCtx(context.Background(), nil, content)
	if err != nil || tree == nil {
		return nil
	}
	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil
	}

	methodsByType := map[string][]string{}
	var structSymbols []Symbol
	var funcSymbols []Symbol

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "function_declaration":
			if sym, ok := goFunctionSymbol(child, content); ok {
				funcSymbols = append(funcSymbols, sym)
			}
		case "method_declaration":
			recv, name := goMethodNameAndReceiver(child, content)
			if name != "" && recv != "" {
				methodsByType[recv] = append(methodsByType[recv], name)
			}
		case "type_declaration":
			structSymbols = append(structSymbols, goTypeSymbols(child, content)...)
		}
	}

	symbols := make([]Symbol, 0, len(structSymbols)+len(funcSymbols))
	for _, s := range structSymbols {
		s.Methods = methodsByType[s.Name]
		symbols = append(symbols, s)
	}
	symbols = append(symbols, funcSymbols...)
	return symbols
}

func goFunctionSymbol(node *sitter.Node, content []byte) (Symbol, bool) {
	var name string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "identifier" {
			name = child.Content(content)
			break
		}
	}
	if name == "" {
		return Symbol{}, false
	}
	return Symbol{
		Name: name,
		Kind: KindFunction,
		Line: int(node.StartPoint().Row) + 1,
	}, true
}

func goMethodNameAndReceiver(node *sitter.Node, content []byte) (receiver, name string) {
	first := true
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "parameter_list":
			if first {
				receiver = goReceiverTypeName(child, content)
				first = false
			}
		case "field_identifier":
			name = child.Content(content)
		}
	}
	return receiver, name
}

func goReceiverTypeName(paramList *sitter.Node, content []byte) string {
	for i := 0; i < int(paramList.ChildCount()); i++ {
		child := paramList.Child(i)
		if child.Type() != "parameter_declaration" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			typeChild := child.Child(j)
			switch typeChild.Type() {
			case "type_identifier":
				return typeChild.Content(content)
			case "pointer_type":
				for k := 0; k < int(typeChild.ChildCount()); k++ {
					if typeChild.Child(k).Type() == "type_identifier" {
						return typeChild.Child(k).Content(content)
					}
				}
			}
		}
	}
	return ""
}

func goTypeSymbols(node *sitter.Node, content []byte) []Symbol {
	var symbols []Symbol
	for i := 0; i < int(node.ChildCount()); i++ {
		spec := node.Child(i)
		if spec.Type() != "type_spec" {
			continue
		}
		var name string
		var isStruct bool
		for j := 0; j < int(spec.ChildCount()); j++ {
			child := spec.Child(j)
			switch child.Type() {
			case "type_identifier":
				if name == "" {
					name = child.Content(content)
				}
			case "struct_type":
				isStruct = true
			}
		}
		if name == "" || !isStruct {
			continue
		}
		symbols = append(symbols, Symbol{
			Name: name,
			Kind: KindClass,
			Line: int(spec.StartPoint().Row) + 1,
		})
	}
	return symbols
}
