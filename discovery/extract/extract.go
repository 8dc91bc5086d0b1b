// Package extract parses source files into candidate symbol records using
// Tree-sitter grammars. Each extractor only ever looks at top-level
// declarations; a class's direct methods go into its Methods set, and
// nested classes and functions are never emitted as their own candidates.
package extract

// Kind identifies what sort of declaration a Symbol represents.
type Kind string

const (
	KindClass         Kind = "class"
	KindFunction      Kind = "function"
	KindAsyncFunction Kind = "async_function"
)

// Symbol is a single top-level declaration pulled out of one source file.
// It carries no module or root information; the caller (discovery.Engine)
// attaches that once it knows where the file lives relative to the tree
// being walked.
type Symbol struct {
	Name         string
	Kind         Kind
	Line         int // 1-based
	Methods      []string
	Decorators   []string
	Bases        []string
	Docstring    string
	HasDocstring bool
}

// Extractor turns file content into zero or more top-level Symbols.
// Implementations must never panic and must never return an error for
// malformed input — an unparseable file simply yields no symbols.
type Extractor interface {
	// Language is the name stored on the resulting Candidate, used later by
	// the loader to pick a materializer ("python", "go", "javascript", "ruby").
	Language() string
	// Extensions lists the file extensions (including the leading dot) this
	// extractor claims, e.g. []string{".py"}.
	Extensions() []string
	// Extract parses content (the file at path, only used for diagnostics)
	// and returns its top-level symbols in source order.
	Extract(path string, content []byte) []Symbol
}

// Registry maps file extensions to the Extractor that handles them.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry builds a Registry from a set of extractors, indexed by every
// extension each one claims. A later extractor wins on collision.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[ext] = e
		}
	}
	return r
}

// Default returns a registry covering Python, Go, JavaScript/TypeScript, and
// Ruby — the languages kai-core/parse already knows how to walk.
func Default() *Registry {
	return NewRegistry(
		NewPythonExtractor(),
		NewGoExtractor(),
		NewJavaScriptExtractor(),
		NewRubyExtractor(),
	)
}

// For returns the extractor registered for ext (e.g. ".py"), or nil.
func (r *Registry) For(ext string) Extractor {
	return r.byExt[ext]
}

// Extensions returns every extension the registry recognizes.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}
