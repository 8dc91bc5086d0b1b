package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kailayerhq/sigfind/discovery/ignore"
)

// defaultIgnoreDirs is the set of directory names pruned from traversal
// unconditionally, regardless of caller-supplied ignore rules.
var defaultIgnoreDirs = map[string]struct{}{
	"__pycache__": {},
	"node_modules": {},
	"build":        {},
	"dist":         {},
	"venv":         {},
	".venv":        {},
	".git":         {},
}

// walker streams source files under root, honoring the default ignore set,
// caller ignore prefixes, an optional gitignore-style Matcher, and the
// test-file skip rule, all before a single file is opened.
type walker struct {
	root      string
	ignore    []string
	matcher   *ignore.Matcher
	extension func(string) bool
}

// walk calls visit(path, relPath, ext) for every file the walker accepts,
// in the order filepath.WalkDir encounters them — the walker makes no
// determinism promise beyond that.
func (w *walker) walk(visit func(absPath, relPath, ext string)) error {
	return filepath.WalkDir(w.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Permission errors and similar: skip and continue.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == w.root {
			return nil
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if w.shouldSkipDir(d.Name(), rel) {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if w.extension != nil && !w.extension(ext) {
			return nil
		}
		if w.shouldSkipFile(d.Name(), rel) {
			return nil
		}

		visit(path, rel, ext)
		return nil
	})
}

func (w *walker) shouldSkipDir(name, rel string) bool {
	if name != "." && name != ".." && strings.HasPrefix(name, ".") {
		return true
	}
	if _, ok := defaultIgnoreDirs[name]; ok {
		return true
	}
	if hasIgnoredPrefix(rel, w.ignore) {
		return true
	}
	if w.matcher != nil && w.matcher.Match(rel, true) {
		return true
	}
	return false
}

func (w *walker) shouldSkipFile(name, rel string) bool {
	if isTestFileName(name) {
		return true
	}
	if hasIgnoredPrefix(rel, w.ignore) {
		return true
	}
	if w.matcher != nil && w.matcher.Match(rel, false) {
		return true
	}
	return false
}

// isTestFileName matches the test_*.ext / *_test.ext naming convention
// against the bare filename (extension-agnostic, so it applies uniformly
// across every supported language).
func isTestFileName(name string) bool {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return strings.HasPrefix(stem, "test_") || strings.HasSuffix(stem, "_test")
}

func hasIgnoredPrefix(rel string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(rel, p) {
			return true
		}
	}
	return false
}
