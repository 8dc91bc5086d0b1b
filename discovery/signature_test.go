package discovery

import "testing"

func TestSignatureCompileDefaultsKind(t *testing.T) {
	sig := Signature{Name: "Foo"}
	if err := sig.Compile(); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if sig.Kind != KindClass {
		t.Errorf("Kind = %q, want %q", sig.Kind, KindClass)
	}
}

func TestSignatureCompileRequiresName(t *testing.T) {
	sig := Signature{}
	err := sig.Compile()
	if err == nil {
		t.Fatal("expected error for empty Name")
	}
	var bad *BadSignatureError
	if !asBadSignature(err, &bad) {
		t.Fatalf("error = %v, want *BadSignatureError", err)
	}
}

func TestSignatureCompileRejectsBadRegex(t *testing.T) {
	sig := Signature{Name: "(unclosed", Regex: true}
	if err := sig.Compile(); err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestSignatureCompileRejectsBadModulePattern(t *testing.T) {
	sig := Signature{Name: "Foo", ModulePattern: "(unclosed"}
	if err := sig.Compile(); err == nil {
		t.Fatal("expected error for invalid module pattern")
	}
}

func TestSignatureCompileIdempotent(t *testing.T) {
	sig := Signature{Name: "Foo", Regex: true}
	if err := sig.Compile(); err != nil {
		t.Fatalf("first Compile() error: %v", err)
	}
	if err := sig.Compile(); err != nil {
		t.Fatalf("second Compile() error: %v", err)
	}
}

func TestSignatureString(t *testing.T) {
	sig := Signature{Name: "Foo", Kind: KindClass, Methods: []string{"bar"}}
	got := sig.String()
	if got == "" {
		t.Fatal("String() returned empty")
	}
}

func asBadSignature(err error, target **BadSignatureError) bool {
	if e, ok := err.(*BadSignatureError); ok {
		*target = e
		return true
	}
	return false
}
