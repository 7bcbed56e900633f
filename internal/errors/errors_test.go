package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestError_Message(t *testing.T) {
	err := NotFound("step not found")
	if err.Error() != "step not found" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if err.Kind != ErrNotFound {
		t.Errorf("unexpected kind: %v", err.Kind)
	}
}

func TestError_WrapsUnderlying(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Upstream(cause, "cart creation failed")

	if err.Kind != ErrUpstream {
		t.Errorf("unexpected kind: %v", err.Kind)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped error to match with errors.Is")
	}
	if err.Error() != "cart creation failed: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestError_AsRecoversKind(t *testing.T) {
	var appErr *Error
	wrapped := fmt.Errorf("handler: %w", Validation("bad catalog"))

	if !stderrors.As(wrapped, &appErr) {
		t.Fatal("expected errors.As to find *Error")
	}
	if appErr.Kind != ErrValidation {
		t.Errorf("unexpected kind: %v", appErr.Kind)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		kind Kind
	}{
		{NotFound("x"), ErrNotFound},
		{NotFoundf("x %d", 1), ErrNotFound},
		{Validation("x"), ErrValidation},
		{Validationf("x %d", 1), ErrValidation},
		{Conflict("x"), ErrConflict},
		{Conflictf("x %d", 1), ErrConflict},
		{InvalidInput("x"), ErrInvalidInput},
		{Internal(fmt.Errorf("x")), ErrInternal},
		{Upstream(fmt.Errorf("x"), "y"), ErrUpstream},
		{Wrap(fmt.Errorf("x"), ErrConflict, "y"), ErrConflict},
	}

	for _, tt := range tests {
		if tt.err.Kind != tt.kind {
			t.Errorf("expected kind %v, got %v for %q", tt.kind, tt.err.Kind, tt.err.Message)
		}
	}
}
