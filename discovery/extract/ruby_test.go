package extract

import "testing"

const rbSource = `
# Handles user persistence.
class UserService < BaseService
  def save(user)
  end

  def self.find(id)
  end

  def delete(user_id)
    def nested
    end
  end
end

def top_level_helper(x)
end

module Formatter
  def format(x)
  end
end
`

func TestRubyExtractorTopLevelOnly(t *testing.T) {
	e := NewRubyExtractor()
	symbols := e.Extract("user_service.rb", []byte(rbSource))

	byName := make(map[string]Symbol, len(symbols))
	for _, s := range symbols {
		byName[s.Name] = s
	}

	svc, ok := byName["UserService"]
	if !ok {
		t.Fatalf("UserService not found among %+v", symbols)
	}
	if svc.Kind != KindClass {
		t.Errorf("UserService.Kind = %q, want class", svc.Kind)
	}
	if !equalStrings(svc.Bases, []string{"BaseService"}) {
		t.Errorf("UserService.Bases = %v, want [BaseService]", svc.Bases)
	}
	if !svc.HasDocstring || svc.Docstring != "Handles user persistence." {
		t.Errorf("UserService docstring = %q (has=%v)", svc.Docstring, svc.HasDocstring)
	}
	wantMethods := []string{"save", "find", "delete"}
	if !equalStrings(svc.Methods, wantMethods) {
		t.Errorf("UserService.Methods = %v, want %v (nested def must not appear)", svc.Methods, wantMethods)
	}

	helper, ok := byName["top_level_helper"]
	if !ok || helper.Kind != KindFunction {
		t.Errorf("top_level_helper missing or wrong kind: %+v", helper)
	}

	formatter, ok := byName["Formatter"]
	if !ok {
		t.Fatal("Formatter module not found")
	}
	if !equalStrings(formatter.Methods, []string{"format"}) {
		t.Errorf("Formatter.Methods = %v, want [format]", formatter.Methods)
	}
}

func TestRubyExtractorMalformedInputYieldsNothing(t *testing.T) {
	e := NewRubyExtractor()
	symbols := e.Extract("broken.rb", []byte("def ("))
	if len(symbols) != 0 {
		t.Errorf("malformed input produced %d symbols, want 0", len(symbols))
	}
}
