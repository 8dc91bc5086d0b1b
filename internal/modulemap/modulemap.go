// Package modulemap groups discovered candidates by glob rule, adapted
// from kai-core/modulematch's path-glob module matching so that
// discovery.Engine.DiscoverAllGrouped has a real module-grouping rule set
// to reuse instead of inventing its own ad hoc grouping.
package modulemap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/kailayerhq/sigfind/discovery"
)

// ModuleRule defines a named module and the path globs that belong to it.
type ModuleRule struct {
	Name  string   `yaml:"name"`
	Paths []string `yaml:"paths"`
}

// ModulesConfig is the top-level shape of sigfind.modules.yaml.
type ModulesConfig struct {
	Modules []ModuleRule `yaml:"modules"`
}

// Matcher matches a candidate's file path (relative to the discovery
// root) against a set of module glob rules.
type Matcher struct {
	modules []ModuleRule
}

// LoadRules loads module rules from a YAML file, exactly the shape
// kai-core/modulematch.LoadRules reads.
func LoadRules(path string) (*Matcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading modules file: %w", err)
	}

	var config ModulesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing modules file: %w", err)
	}

	return &Matcher{modules: config.Modules}, nil
}

// LoadRulesOrEmpty loads rules from file, or returns an empty matcher if
// the file does not exist — lets callers point at an optional
// sigfind.modules.yaml without special-casing ENOENT themselves.
func LoadRulesOrEmpty(path string) (*Matcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Matcher{modules: []ModuleRule{}}, nil
		}
		return nil, fmt.Errorf("reading modules file: %w", err)
	}

	var config ModulesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing modules file: %w", err)
	}

	return &Matcher{modules: config.Modules}, nil
}

// NewMatcher builds a matcher directly from a rule set.
func NewMatcher(modules []ModuleRule) *Matcher {
	return &Matcher{modules: modules}
}

// MatchPath returns the names of every module whose glob matches path.
func (m *Matcher) MatchPath(path string) []string {
	var matched []string
	for _, mod := range m.modules {
		for _, pattern := range mod.Paths {
			ok, err := doublestar.Match(pattern, path)
			if err != nil {
				continue
			}
			if ok {
				matched = append(matched, mod.Name)
				break
			}
		}
	}
	return matched
}

// GroupKey is the module name for a Candidate, relative to root, for use as
// discovery.Engine.DiscoverAllGrouped's grouping function. A candidate
// matching no rule groups under "" (reported by callers as "ungrouped");
// a candidate matching more than one rule groups once, under the matching
// module names joined with "," in rule order (see MatchPath).
func (m *Matcher) GroupKey(root string, c discovery.Candidate) string {
	rel, err := filepath.Rel(root, c.FilePath)
	if err != nil {
		rel = c.FilePath
	}
	rel = filepath.ToSlash(rel)

	names := m.MatchPath(rel)
	if len(names) == 0 {
		return ""
	}
	return strings.Join(names, ",")
}

// GetAllModules returns every configured module rule.
func (m *Matcher) GetAllModules() []ModuleRule {
	return m.modules
}
