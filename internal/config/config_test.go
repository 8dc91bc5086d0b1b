package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sigfind.query.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSignatureSetCompilesEverySignature(t *testing.T) {
	path := writeYAML(t, `
signatures:
  user-service:
    name: UserService
    kind: class
    methods:
      - save
      - delete
  repo-pattern:
    name: "^.*Repository$"
    regex: true
`)

	set, err := LoadSignatureSet(path)
	if err != nil {
		t.Fatalf("LoadSignatureSet() error: %v", err)
	}

	sig, ok := set.Signatures["user-service"]
	if !ok {
		t.Fatal("user-service signature missing")
	}
	if sig.Name != "UserService" {
		t.Errorf("Name = %q, want UserService", sig.Name)
	}

	repoSig, ok := set.Signatures["repo-pattern"]
	if !ok {
		t.Fatal("repo-pattern signature missing")
	}
	if !repoSig.Regex {
		t.Error("repo-pattern should have Regex=true")
	}
}

func TestLoadSignatureSetRejectsBadRegex(t *testing.T) {
	path := writeYAML(t, `
signatures:
  bad:
    name: "(unclosed"
    regex: true
`)

	if _, err := LoadSignatureSet(path); err == nil {
		t.Fatal("expected error for invalid regex in signature file")
	}
}

func TestLoadSignature(t *testing.T) {
	path := writeYAML(t, `
signatures:
  user-service:
    name: UserService
`)

	sig, err := LoadSignature(path, "user-service")
	if err != nil {
		t.Fatalf("LoadSignature() error: %v", err)
	}
	if sig.Name != "UserService" {
		t.Errorf("Name = %q, want UserService", sig.Name)
	}

	if _, err := LoadSignature(path, "does-not-exist"); err == nil {
		t.Fatal("expected error for missing signature name")
	}
}

func TestLoadSignatureSetMissingFile(t *testing.T) {
	if _, err := LoadSignatureSet("/nonexistent/sigfind.query.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
