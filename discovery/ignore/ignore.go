// Package ignore provides gitignore-style pattern matching for the
// directories and files the walker should never descend into or
// consider as candidates. Adapted from kai-cli/internal/ignore, trimmed
// to the languages the extractors understand and renamed to load
// .sigfindignore instead of .kaiignore.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Pattern represents a single ignore pattern with its properties.
type Pattern struct {
	pattern  string
	negated  bool
	dirOnly  bool
	anchored bool // Pattern starts with / (matches from root only)
}

// Matcher holds compiled ignore patterns and provides matching functionality.
type Matcher struct {
	patterns []Pattern
	basePath string
}

// NewMatcher creates a new empty Matcher with the given base path.
func NewMatcher(basePath string) *Matcher {
	return &Matcher{
		patterns: []Pattern{},
		basePath: basePath,
	}
}

// AddPattern adds a single pattern string to the matcher.
func (m *Matcher) AddPattern(line string) {
	line = strings.TrimSpace(line)

	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	p := Pattern{}

	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = line[1:]
	}

	if !p.anchored && !strings.Contains(line, "/") {
		line = "**/" + line
	}

	p.pattern = line
	m.patterns = append(m.patterns, p)
}

// AddPatterns adds multiple pattern strings to the matcher.
func (m *Matcher) AddPatterns(lines []string) {
	for _, line := range lines {
		m.AddPattern(line)
	}
}

// LoadFile loads patterns from a gitignore-style file.
func (m *Matcher) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		m.AddPattern(scanner.Text())
	}

	return scanner.Err()
}

// Match checks if a path should be ignored.
// The path should be relative to the matcher's base path.
// isDir indicates whether the path is a directory.
func (m *Matcher) Match(path string, isDir bool) bool {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	ignored := false

	for _, p := range m.patterns {
		if p.dirOnly && !isDir {
			if m.matchDirPattern(p.pattern, path) {
				ignored = !p.negated
			}
			continue
		}

		if m.matchPattern(p.pattern, path) {
			ignored = !p.negated
		}
	}

	return ignored
}

// matchDirPattern checks if a path is inside a directory matching the pattern.
func (m *Matcher) matchDirPattern(pattern, path string) bool {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], "/")
		if m.matchPattern(pattern, prefix) {
			return true
		}
	}
	return false
}

// matchPattern checks if a path matches a single pattern.
func (m *Matcher) matchPattern(pattern, path string) bool {
	matched, _ := doublestar.Match(pattern, path)
	if matched {
		return true
	}

	if !strings.HasSuffix(pattern, "/**") {
		matched, _ = doublestar.Match(pattern+"/**", path)
		if matched {
			return true
		}
	}

	return false
}

// MatchPath determines if a path is a directory by statting it relative to
// the matcher's base path, then delegates to Match.
func (m *Matcher) MatchPath(path string) bool {
	fullPath := filepath.Join(m.basePath, path)
	info, err := os.Stat(fullPath)
	if err != nil {
		return m.Match(path, false)
	}
	return m.Match(path, info.IsDir())
}

// LoadDefaults loads the default ignore set: version control, universal
// junk/OS files, and the four languages the extractors support.
func (m *Matcher) LoadDefaults() {
	defaults := []string{
		// ------------------------------
		// Version control
		// ------------------------------
		".git/",
		".svn/",
		".hg/",

		// ------------------------------
		// Universal junk / OS files
		// ------------------------------
		".DS_Store",
		"Thumbs.db",
		"ehthumbs.db",
		"Icon?",
		"Desktop.ini",
		"*.tmp",
		"*.temp",
		"*.swp",
		"*.swo",
		"*.bak",
		"*.orig",
		"*.log",

		// ------------------------------
		// Node / JS / TS
		// ------------------------------
		"node_modules/",
		"npm-debug.log*",
		"yarn-debug.log*",
		"yarn-error.log*",
		"pnpm-debug.log*",
		"dist/",
		"build/",
		"out/",
		".next/",
		".nuxt/",
		".svelte-kit/",
		"coverage/",
		".eslintcache",

		// ------------------------------
		// Python
		// ------------------------------
		"__pycache__/",
		"*.py[cod]",
		"*.egg-info/",
		".eggs/",
		"env/",
		"venv/",
		".venv/",
		".pytest_cache/",
		".mypy_cache/",
		".ruff_cache/",
		".tox/",

		// ------------------------------
		// Go
		// ------------------------------
		"bin/",
		"*.test",
		"*.prof",
		"go.work.sum",

		// ------------------------------
		// Ruby / Rails
		// ------------------------------
		".bundle/",
		"log/",
		".sass-cache/",
		"vendor/bundle/",

		// ------------------------------
		// Lock files (not useful for discovery)
		// ------------------------------
		"package-lock.json",
		"yarn.lock",
		"pnpm-lock.yaml",
		"Gemfile.lock",
		"go.sum",
	}
	m.AddPatterns(defaults)
}

// LoadFromDir loads .gitignore and .sigfindignore from a directory.
// Patterns are loaded in order: defaults, .gitignore, .sigfindignore.
// Later patterns can override earlier ones using negation.
func LoadFromDir(dir string) (*Matcher, error) {
	m := NewMatcher(dir)

	m.LoadDefaults()

	if err := m.LoadFile(filepath.Join(dir, ".gitignore")); err != nil {
		return nil, err
	}

	if err := m.LoadFile(filepath.Join(dir, ".sigfindignore")); err != nil {
		return nil, err
	}

	return m, nil
}

// Compile creates a matcher from a list of pattern strings.
func Compile(patterns []string) *Matcher {
	m := NewMatcher("")
	m.AddPatterns(patterns)
	return m
}
