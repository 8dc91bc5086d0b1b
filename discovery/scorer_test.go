package discovery

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestNameScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		sig       Signature
		want      float64
	}{
		{"exact", "UserService", Signature{Name: "UserService"}, 0.7},
		{"prefix", "UserServiceImpl", Signature{Name: "UserService"}, 0.5},
		{"suffix", "AbstractUserService", Signature{Name: "UserService"}, 0.4},
		{"substring", "MyUserServiceWrapper", Signature{Name: "UserService"}, 0.3},
		{"no match", "Widget", Signature{Name: "UserService"}, 0},
		{"case sensitive by default", "userservice", Signature{Name: "UserService"}, 0},
		{"case sensitive mismatch explicit", "userservice", Signature{Name: "UserService", CaseSensitive: boolPtr(true)}, 0},
		{"case insensitive when requested", "userservice", Signature{Name: "UserService", CaseSensitive: boolPtr(false)}, 0.7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := nameScore(tc.candidate, tc.sig)
			if got != tc.want {
				t.Errorf("nameScore(%q, %+v) = %v, want %v", tc.candidate, tc.sig, got, tc.want)
			}
		})
	}
}

func TestNameScoreRegex(t *testing.T) {
	sig := Signature{Name: "^User.*Service$", Regex: true}
	if err := sig.Compile(); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	if got := nameScore("UserAccountService", sig); got != 0.6 {
		t.Errorf("regex match = %v, want 0.6", got)
	}
	if got := nameScore("AccountService", sig); got != 0 {
		t.Errorf("regex non-match = %v, want 0", got)
	}
}

func TestKindMatches(t *testing.T) {
	tests := []struct {
		requested, actual Kind
		want              bool
	}{
		{KindAny, KindFunction, true},
		{KindClass, KindClass, true},
		{KindClass, KindFunction, false},
		{KindFunction, KindFunction, true},
		{KindFunction, KindAsyncFunction, true},
		{"", KindClass, true},
		{"", KindFunction, false},
	}
	for _, tc := range tests {
		if got := kindMatches(tc.requested, tc.actual); got != tc.want {
			t.Errorf("kindMatches(%q, %q) = %v, want %v", tc.requested, tc.actual, got, tc.want)
		}
	}
}

func TestCountSharedDeduplicatesWant(t *testing.T) {
	// duplicates in `want` must not be able to inflate the count beyond
	// the number of distinct names actually present in `have`.
	want := []string{"save", "save", "save"}
	have := []string{"save"}
	if got := countShared(want, have); got != 1 {
		t.Errorf("countShared with duplicate want = %d, want 1", got)
	}
}

func TestScoreDisqualifiers(t *testing.T) {
	base := Candidate{Name: "UserService", Kind: KindClass, Methods: []string{"save"}}

	t.Run("kind mismatch disqualifies", func(t *testing.T) {
		sig := Signature{Name: "UserService", Kind: KindFunction}
		if got := score(base, sig); got != 0 {
			t.Errorf("score = %v, want 0", got)
		}
	})

	t.Run("missing required decorator disqualifies", func(t *testing.T) {
		sig := Signature{Name: "UserService", Decorators: []string{"singleton"}}
		if got := score(base, sig); got != 0 {
			t.Errorf("score = %v, want 0", got)
		}
	})

	t.Run("method ratio below half disqualifies", func(t *testing.T) {
		c := base
		c.Methods = []string{"save"}
		sig := Signature{Name: "UserService", Methods: []string{"save", "delete", "update"}}
		if got := score(c, sig); got != 0 {
			t.Errorf("score = %v, want 0 (1/3 < 0.5)", got)
		}
	})
}

func TestScoreAdditiveBonuses(t *testing.T) {
	c := Candidate{
		Name:      "UserService",
		Kind:      KindClass,
		Methods:   []string{"save", "delete"},
		Bases:     []string{"BaseService"},
		Module:    "app.services",
		FilePath:  "/src/app/services/userservice.py",
		Docstring: "Handles user persistence.",
	}
	sig := Signature{
		Name:              "UserService",
		Methods:           []string{"save", "delete"},
		Bases:             []string{"BaseService"},
		Module:            "app.services",
		DocstringContains: []string{"persistence"},
	}

	got := score(c, sig)
	want := 0.7 + 0.3 + 0.1 + 0.02 + 0.1 + 0.02 // name + methods(full) + bases + docstring + module + stem
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestScoreModuleExclusiveWithModulePattern(t *testing.T) {
	c := Candidate{Name: "UserService", Kind: KindClass, Module: "app.services"}
	sig := Signature{Name: "UserService", Module: "app.services", ModulePattern: "app.*"}
	if err := sig.Compile(); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	got := score(c, sig)
	// Module exact match wins (+0.1); ModulePattern is not also applied.
	want := 0.7 + 0.1
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestFileStem(t *testing.T) {
	tests := map[string]string{
		"/src/app/UserService.py": "userservice",
		"service.rb":              "service",
		"/a/b/c.test.ts":          "c.test",
	}
	for path, want := range tests {
		if got := fileStem(path); got != want {
			t.Errorf("fileStem(%q) = %q, want %q", path, got, want)
		}
	}
}
