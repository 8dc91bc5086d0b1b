package discovery

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind identifies the sort of symbol a Signature is looking for or a
// Candidate represents.
type Kind string

const (
	KindClass         Kind = "class"
	KindFunction      Kind = "function"
	KindAsyncFunction Kind = "async_function"
	KindAny           Kind = "any"
)

var sigValidate = validator.New()

// Signature is the structural query used to locate a target symbol. Its
// regexes are only usable after Compile; every Engine method calls Compile
// on its own copy, so code that scores a Signature outside an Engine calls
// Compile first.
type Signature struct {
	Name              string   `yaml:"name" validate:"required"`
	Kind              Kind     `yaml:"kind" validate:"omitempty,oneof=class function any"`
	Methods           []string `yaml:"methods,omitempty"`
	Decorators        []string `yaml:"decorators,omitempty"`
	Bases             []string `yaml:"bases,omitempty"`
	Module            string   `yaml:"module,omitempty"`
	ModulePattern     string   `yaml:"module_pattern,omitempty"`
	DocstringContains []string `yaml:"docstring_contains,omitempty"`
	Regex             bool     `yaml:"regex,omitempty"`
	// CaseSensitive controls literal-name matching. It is a pointer so the
	// zero value (unset) defaults to case-sensitive instead of silently
	// opting into case-insensitive matching. Use CaseSensitiveValue to read it.
	CaseSensitive *bool `yaml:"case_sensitive,omitempty"`

	nameRE   *regexp.Regexp
	modRE    *regexp.Regexp
	compiled bool
}

// CaseSensitiveValue reports whether literal-name matching should be
// case-sensitive, defaulting to true when the caller left CaseSensitive
// unset.
func (s Signature) CaseSensitiveValue() bool {
	if s.CaseSensitive == nil {
		return true
	}
	return *s.CaseSensitive
}

// Compile validates the signature and, where Regex or ModulePattern call
// for it, pre-compiles the regular expressions so later scoring never
// fails. It is idempotent and safe to call more than once.
func (s *Signature) Compile() error {
	if s.Kind == "" {
		s.Kind = KindClass
	}

	if err := sigValidate.Struct(s); err != nil {
		field := "Name"
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field = verrs[0].Field()
		}
		return &BadSignatureError{Field: field, Reason: err.Error()}
	}

	if s.Regex {
		re, err := regexp.Compile(s.Name)
		if err != nil {
			return &BadSignatureError{Field: "Name", Reason: fmt.Sprintf("invalid regex: %v", err)}
		}
		s.nameRE = re
	}

	if s.ModulePattern != "" && s.Module == "" {
		re, err := regexp.Compile(s.ModulePattern)
		if err != nil {
			return &BadSignatureError{Field: "ModulePattern", Reason: fmt.Sprintf("invalid regex: %v", err)}
		}
		s.modRE = re
	}

	s.compiled = true
	return nil
}

// String renders a human-readable form of the signature, used in
// NotFoundError messages.
func (s Signature) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "name=%q kind=%s", s.Name, s.Kind)
	if len(s.Methods) > 0 {
		fmt.Fprintf(&b, " methods=%v", s.Methods)
	}
	if len(s.Decorators) > 0 {
		fmt.Fprintf(&b, " decorators=%v", s.Decorators)
	}
	if len(s.Bases) > 0 {
		fmt.Fprintf(&b, " bases=%v", s.Bases)
	}
	if s.Module != "" {
		fmt.Fprintf(&b, " module=%q", s.Module)
	}
	if s.ModulePattern != "" {
		fmt.Fprintf(&b, " module_pattern=%q", s.ModulePattern)
	}
	if s.Regex {
		b.WriteString(" regex=true")
	}
	return b.String()
}
