package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkerSkipsDefaultIgnoreDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/main.py")
	writeFile(t, root, "node_modules/pkg/index.js")
	writeFile(t, root, "venv/lib/site.py")
	writeFile(t, root, "__pycache__/main.cpython.pyc")
	writeFile(t, root, ".git/HEAD")

	w := &walker{root: root, extension: func(string) bool { return true }}

	var seen []string
	if err := w.walk(func(abs, rel, ext string) { seen = append(seen, rel) }); err != nil {
		t.Fatalf("walk error: %v", err)
	}
	sort.Strings(seen)

	want := []string{filepath.ToSlash("app/main.py")}
	if len(seen) != len(want) || seen[0] != want[0] {
		t.Errorf("walk() visited = %v, want %v", seen, want)
	}
}

func TestWalkerSkipsTestFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/test_models.py")
	writeFile(t, root, "app/models_test.py")
	writeFile(t, root, "app/models.py")

	w := &walker{root: root, extension: func(string) bool { return true }}

	var seen []string
	if err := w.walk(func(abs, rel, ext string) { seen = append(seen, rel) }); err != nil {
		t.Fatalf("walk error: %v", err)
	}

	if len(seen) != 1 || seen[0] != "app/models.py" {
		t.Errorf("walk() visited = %v, want [app/models.py]", seen)
	}
}

func TestWalkerHonorsIgnorePrefixes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "vendor/thirdparty.py")
	writeFile(t, root, "app/models.py")

	w := &walker{root: root, ignore: []string{"vendor"}, extension: func(string) bool { return true }}

	var seen []string
	if err := w.walk(func(abs, rel, ext string) { seen = append(seen, rel) }); err != nil {
		t.Fatalf("walk error: %v", err)
	}

	if len(seen) != 1 || seen[0] != "app/models.py" {
		t.Errorf("walk() visited = %v, want [app/models.py]", seen)
	}
}

func TestWalkerFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/models.py")
	writeFile(t, root, "README.md")

	w := &walker{root: root, extension: func(ext string) bool { return ext == ".py" }}

	var seen []string
	if err := w.walk(func(abs, rel, ext string) { seen = append(seen, rel) }); err != nil {
		t.Fatalf("walk error: %v", err)
	}

	if len(seen) != 1 || seen[0] != "app/models.py" {
		t.Errorf("walk() visited = %v, want [app/models.py]", seen)
	}
}

func TestIsTestFileName(t *testing.T) {
	tests := map[string]bool{
		"test_models.py": true,
		"models_test.py": true,
		"models.py":      false,
		"test.py":        false,
		"contest.py":     false,
	}
	for name, want := range tests {
		if got := isTestFileName(name); got != want {
			t.Errorf("isTestFileName(%q) = %v, want %v", name, got, want)
		}
	}
}
