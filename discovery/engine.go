// Package discovery implements a static, zero-execution symbol discovery
// engine: walk a source tree, extract top-level symbols with Tree-sitter,
// score them against a structural Signature, and only materialize the
// winner on demand.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kailayerhq/sigfind/discovery/extract"
	"github.com/kailayerhq/sigfind/discovery/ignore"
	"github.com/kailayerhq/sigfind/discovery/modulepath"
)

func absPath(root string) (string, error) {
	return filepath.Abs(root)
}

// Engine walks a project tree and locates symbols by static structure. It
// owns no mutable state between calls other than its root and ignore
// list — every Discover* call builds candidates afresh.
type Engine struct {
	root     string
	ignore   []string
	registry *extract.Registry
	matcher  *ignore.Matcher
	metrics  Recorder
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithIgnorePrefixes adds forward-slash path prefixes (relative to root)
// that prune traversal before a single file under them is opened.
func WithIgnorePrefixes(prefixes ...string) Option {
	return func(e *Engine) { e.ignore = append(e.ignore, prefixes...) }
}

// WithIgnoreMatcher layers a gitignore-style Matcher (see discovery/ignore)
// on top of the built-in default-ignore directory set.
func WithIgnoreMatcher(m *ignore.Matcher) Option {
	return func(e *Engine) { e.matcher = m }
}

// WithRegistry overrides the extractor registry (defaults to extract.Default()).
func WithRegistry(r *extract.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithMetrics attaches a Recorder that observes discovery outcomes; nil is
// the zero value and simply records nothing.
func WithMetrics(r Recorder) Option {
	return func(e *Engine) {
		if r == nil {
			r = noopRecorder{}
		}
		e.metrics = r
	}
}

// New builds an Engine rooted at root, falling back to the current working
// directory when root is empty.
func New(root string, opts ...Option) (*Engine, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("discovery: resolve working directory: %w", err)
		}
		root = wd
	}
	abs, err := absPath(root)
	if err != nil {
		return nil, fmt.Errorf("discovery: resolve root %q: %w", root, err)
	}

	e := &Engine{root: abs, registry: extract.Default(), metrics: noopRecorder{}}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Discover returns the live language object for the best match. Fails with
// NotFoundError when nothing scores above zero, or LoadError when
// materialization fails.
func (e *Engine) Discover(sig Signature) (any, error) {
	result, err := e.DiscoverNoLoad(sig)
	if err != nil {
		return nil, err
	}
	return result.Load()
}

// DiscoverNoLoad returns the best match as a DiscoveryResult without
// importing anything.
func (e *Engine) DiscoverNoLoad(sig Signature) (*DiscoveryResult, error) {
	if err := sig.Compile(); err != nil {
		return nil, err
	}

	var best *DiscoveryResult
	e.forEachMatch(sig, func(r DiscoveryResult) {
		if best == nil || r.Score > best.Score {
			rc := r
			best = &rc
		}
	})
	if best == nil {
		e.metrics.ObserveMiss(sig)
		return nil, &NotFoundError{Signature: sig}
	}
	e.metrics.ObserveHit(sig, best.Score)
	return best, nil
}

// DiscoverAll returns every positive-scoring candidate sorted by score
// descending, stable on ties (encounter order).
func (e *Engine) DiscoverAll(sig Signature) ([]DiscoveryResult, error) {
	if err := sig.Compile(); err != nil {
		return nil, err
	}

	var results []DiscoveryResult
	e.forEachMatch(sig, func(r DiscoveryResult) {
		results = append(results, r)
	})
	if len(results) == 0 {
		e.metrics.ObserveMiss(sig)
		return nil, &NotFoundError{Signature: sig}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	e.metrics.ObserveHit(sig, results[0].Score)
	return results, nil
}

// DiscoverAllGrouped buckets DiscoverAll's results by a module-grouping
// rule set, reusing the matching shape kai-core/modulematch uses for
// path→module grouping (see internal/modulemap).
func (e *Engine) DiscoverAllGrouped(sig Signature, group func(Candidate) string) (map[string][]DiscoveryResult, error) {
	results, err := e.DiscoverAll(sig)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]DiscoveryResult)
	for _, r := range results {
		key := group(r.Candidate)
		grouped[key] = append(grouped[key], r)
	}
	return grouped, nil
}

// ListCandidates walks the whole tree and extracts every top-level symbol
// without scoring anything — the unscored view `sigfind list` prints.
func (e *Engine) ListCandidates() []Candidate {
	var all []Candidate
	e.forEachCandidate(func(c Candidate) { all = append(all, c) })
	return all
}

func (e *Engine) forEachMatch(sig Signature, visit func(DiscoveryResult)) {
	e.forEachCandidate(func(cand Candidate) {
		s := score(cand, sig)
		if s <= 0 {
			return
		}
		visit(DiscoveryResult{Candidate: cand, Score: s, Root: e.root})
	})
}

func (e *Engine) forEachCandidate(visit func(Candidate)) {
	w := &walker{
		root:    e.root,
		ignore:  e.ignore,
		matcher: e.matcher,
		extension: func(ext string) bool {
			return e.registry.For(ext) != nil
		},
	}

	_ = w.walk(func(absPath, relPath, ext string) {
		extractor := e.registry.For(ext)
		if extractor == nil {
			return
		}
		content, err := os.ReadFile(absPath)
		if err != nil {
			return
		}
		module := modulepath.For(relPath, ext)
		for _, sym := range extractor.Extract(absPath, content) {
			visit(Candidate{
				Name:         sym.Name,
				Kind:         Kind(sym.Kind),
				Module:       module,
				FilePath:     absPath,
				Language:     extractor.Language(),
				Line:         sym.Line,
				Methods:      sym.Methods,
				Decorators:   sym.Decorators,
				Bases:        sym.Bases,
				Docstring:    sym.Docstring,
				HasDocstring: sym.HasDocstring,
			})
		}
	})
}
