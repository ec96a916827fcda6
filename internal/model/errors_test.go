package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := NewError(InputError, "missing document: %s", "a.pdf")
	if got := KindOf(err); got != InputError {
		t.Errorf("expected InputError, got %s", got)
	}

	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty kind for plain error, got %s", got)
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := NewError(AuthError, "credentials rejected")
	outer := fmt.Errorf("chunk 3: %w", inner)

	if got := KindOf(outer); got != AuthError {
		t.Errorf("expected AuthError through wrapping, got %s", got)
	}
}

func TestKindOf_InnermostWins(t *testing.T) {
	inner := NewError(AuthError, "credentials rejected")
	outer := WrapError(ExtractionError, inner, "chunk 3 failed")

	if got := KindOf(outer); got != AuthError {
		t.Errorf("expected innermost AuthError, got %s", got)
	}
}

func TestIsKind(t *testing.T) {
	inner := NewError(AuthError, "credentials rejected")
	outer := WrapError(ExtractionError, inner, "chunk 3 failed")

	if !IsKind(outer, ExtractionError) {
		t.Error("expected outer ExtractionError to match")
	}
	if !IsKind(outer, AuthError) {
		t.Error("expected inner AuthError to match")
	}
	if IsKind(outer, PathError) {
		t.Error("PathError should not match")
	}
}

func TestError_Message(t *testing.T) {
	err := WrapError(PathError, errors.New("permission denied"), "create output directory %s", "/out")
	want := "PathError: create output directory /out: permission denied"
	if err.Error() != want {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
