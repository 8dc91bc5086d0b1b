package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeTestFile(t, root, "app/services/user_service.py", `
class UserService:
    """Handles user persistence."""

    def save(self, user):
        pass

    def delete(self, user_id):
        pass
`)
	writeTestFile(t, root, "app/services/order_service.py", `
class OrderService:
    def submit(self, order):
        pass
`)
	writeTestFile(t, root, "app/services/user_service_test.py", `
class UserServiceFake:
    def save(self, user):
        pass
`)
	writeTestFile(t, root, "node_modules/react/index.js", `
class ReactFake {}
`)
	return root
}

func TestEngineDiscoverNoLoadPicksBestMatch(t *testing.T) {
	root := newTestTree(t)
	e, err := New(root)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	result, err := e.DiscoverNoLoad(Signature{Name: "UserService", Methods: []string{"save"}})
	if err != nil {
		t.Fatalf("DiscoverNoLoad() error: %v", err)
	}
	if result.Name != "UserService" {
		t.Errorf("got %q, want UserService", result.Name)
	}
	if result.Module != "app.services.user_service" {
		t.Errorf("Module = %q, want app.services.user_service", result.Module)
	}
}

func TestEngineDiscoverAllSkipsTestFiles(t *testing.T) {
	root := newTestTree(t)
	e, err := New(root)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	results, err := e.DiscoverAll(Signature{Name: "UserService", Regex: true, CaseSensitive: boolPtr(true)})
	// A regex of "UserService" would also substring-match "UserServiceFake"
	// in the _test.py file if the walker failed to skip it.
	if err != nil {
		t.Fatalf("DiscoverAll() error: %v", err)
	}
	for _, r := range results {
		if r.Name == "UserServiceFake" {
			t.Errorf("test file candidate leaked into results: %+v", r)
		}
	}
}

func TestEngineDiscoverNoLoadSkipsIgnoredDirs(t *testing.T) {
	root := newTestTree(t)
	e, err := New(root)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = e.DiscoverNoLoad(Signature{Name: "ReactFake"})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for node_modules-only candidate, got %v", err)
	}
}

func TestEngineDiscoverNoLoadNotFound(t *testing.T) {
	root := newTestTree(t)
	e, err := New(root)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = e.DiscoverNoLoad(Signature{Name: "DoesNotExist"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestEngineDiscoverAllRanksByScore(t *testing.T) {
	root := newTestTree(t)
	e, err := New(root)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	results, err := e.DiscoverAll(Signature{Name: "Service", Kind: KindClass})
	if err != nil {
		t.Fatalf("DiscoverAll() error: %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("got %d results, want at least 2", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Score < results[i].Score {
			t.Errorf("results not sorted descending: %+v", results)
		}
	}
}

func TestEngineListCandidatesIsUnscoredAndUnfiltered(t *testing.T) {
	root := newTestTree(t)
	e, err := New(root)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	candidates := e.ListCandidates()

	names := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		names[c.Name] = true
	}
	if !names["UserService"] || !names["OrderService"] {
		t.Errorf("ListCandidates() = %v, missing expected symbols", names)
	}
	if names["UserServiceFake"] {
		t.Error("ListCandidates() should still skip _test.py files (walker-level skip, not scoring)")
	}
	if names["ReactFake"] {
		t.Error("ListCandidates() should still skip node_modules (walker-level skip, not scoring)")
	}
}

func TestEngineDiscoverAllGrouped(t *testing.T) {
	root := newTestTree(t)
	e, err := New(root)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	grouped, err := e.DiscoverAllGrouped(Signature{Name: "Service", Kind: KindClass}, func(c Candidate) string {
		return c.Module
	})
	if err != nil {
		t.Fatalf("DiscoverAllGrouped() error: %v", err)
	}
	if len(grouped) < 2 {
		t.Errorf("grouped = %v, want at least 2 distinct modules", grouped)
	}
}
