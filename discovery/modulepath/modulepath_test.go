package modulepath

import "testing"

func TestFor(t *testing.T) {
	tests := []struct {
		name    string
		relPath string
		ext     string
		want    string
	}{
		{"simple python", "app/models.py", ".py", "app.models"},
		{"python package init", "app/services/__init__.py", ".py", "app.services"},
		{"python package init at root", "__init__.py", ".py", "__init__"},
		{"js index", "src/widgets/index.js", ".js", "src.widgets"},
		{"ts index", "src/widgets/index.ts", ".ts", "src.widgets"},
		{"plain js", "src/widgets/button.js", ".js", "src.widgets.button"},
		{"ruby file", "app/models/user.rb", ".rb", "app.models.user"},
		{"go file", "internal/foo/bar.go", ".go", "internal.foo.bar"},
		{"windows separators", "app\\models.py", ".py", "app.models"},
		{"top level file", "main.py", ".py", "main"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := For(tc.relPath, tc.ext); got != tc.want {
				t.Errorf("For(%q, %q) = %q, want %q", tc.relPath, tc.ext, got, tc.want)
			}
		})
	}
}
