package errors

import (
	"fmt"
	"testing"
)

func TestErrorMessageIncludesTypeAndCause(t *testing.T) {
	err := Parsing("bad schedule file", fmt.Errorf("unexpected token"))
	want := "[PARSING_ERROR] bad schedule file: unexpected token"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestIsTypeSeesThroughWrapping(t *testing.T) {
	inner := InvalidInput("income must not be negative")
	wrapped := fmt.Errorf("calculate: %w", inner)

	if !IsType(wrapped, TypeInput) {
		t.Error("Expected wrapped error to be an input error")
	}
	if IsType(wrapped, TypeNotFound) {
		t.Error("Wrapped input error reported as not found")
	}
	if TypeOf(wrapped) != TypeInput {
		t.Errorf("Expected TypeOf to return %s, got %s", TypeInput, TypeOf(wrapped))
	}
	if TypeOf(fmt.Errorf("plain")) != TypeInternal {
		t.Error("Plain errors should classify as internal")
	}
}

func TestWithContext(t *testing.T) {
	err := InvalidInputf("bracket %d is not increasing", 2).WithContext("index", 2)
	if err.Context["index"] != 2 {
		t.Errorf("Expected context index=2, got %v", err.Context["index"])
	}
}
