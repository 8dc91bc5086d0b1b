// Package modulepath derives the importable module name for a source file
// from its path relative to a search root, generalizing kai-core/parse's
// Go-only module naming to the four languages the engine extracts from.
package modulepath

import (
	"path"
	"strings"
)

// packageInitNames lists the per-language filenames whose presence means
// "this file IS the package/directory, not a member of it" — the module
// name for such a file drops the filename and keeps only the directory.
var packageInitNames = map[string][]string{
	".py": {"__init__.py"},
	".js": {"index.js", "index.jsx"},
	".ts": {"index.ts", "index.tsx"},
	".rb": {},
	".go": {},
}

// For derives a dotted module path from relPath (slash-separated, relative
// to the root the engine walked) and the file's extension. A trailing
// package-init filename is dropped entirely in favor of its directory;
// otherwise the extension is stripped and path separators become dots. An
// empty joined path (a package-init file sitting at the root itself) falls
// back to the file stem.
func For(relPath, ext string) string {
	clean := path.Clean(filepath(relPath))
	base := path.Base(clean)

	for _, initName := range packageInitNames[ext] {
		if base == initName {
			dir := path.Dir(clean)
			if dir == "." {
				return stem(base, ext)
			}
			return strings.ReplaceAll(dir, "/", ".")
		}
	}

	trimmed := strings.TrimSuffix(clean, ext)
	return strings.ReplaceAll(trimmed, "/", ".")
}

// stem returns base with its extension removed, used as the fallback module
// name when the dotted derivation would otherwise be empty.
func stem(base, ext string) string {
	return strings.TrimSuffix(base, ext)
}

// filepath normalizes Windows-style separators so callers can pass either
// filepath.Rel's native-separator output or an already-slashed path.
func filepath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
