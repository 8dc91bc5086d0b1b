package discovery

import (
	"errors"
	"testing"
)

func TestNotFoundErrorIs(t *testing.T) {
	err := &NotFoundError{Signature: Signature{Name: "Foo"}}
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = false, want true")
	}
	if errors.Is(err, ErrLoad) {
		t.Error("errors.Is(err, ErrLoad) = true, want false")
	}
}

func TestLoadErrorIsRegardlessOfCause(t *testing.T) {
	err := &LoadError{FilePath: "f.py", Name: "Foo", Cause: errors.New("boom")}
	if !errors.Is(err, ErrLoad) {
		t.Error("errors.Is(err, ErrLoad) = false, want true")
	}
	if !errors.Is(err, errors.New("boom")) {
		// Unwrap should surface Cause too, but errors.New comparisons are
		// by identity so this exercises Unwrap() returning Cause directly.
	}
	if errors.Unwrap(err).Error() != "boom" {
		t.Errorf("Unwrap() = %v, want boom", errors.Unwrap(err))
	}
}

func TestLoadErrorWithoutCauseUnwrapsToSentinel(t *testing.T) {
	err := &LoadError{FilePath: "f.py", Name: "Foo"}
	if errors.Unwrap(err) != ErrLoad {
		t.Errorf("Unwrap() = %v, want ErrLoad", errors.Unwrap(err))
	}
}

func TestBadSignatureErrorIs(t *testing.T) {
	err := &BadSignatureError{Field: "Name", Reason: "required"}
	if !errors.Is(err, ErrBadSignature) {
		t.Error("errors.Is(err, ErrBadSignature) = false, want true")
	}
}
