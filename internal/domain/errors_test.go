package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("word", "required")

	if got := err.Error(); got != "validation: word: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "word", Message: "required"},
		{Field: "limit", Message: "must be positive"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestValidationError_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("ledger: list: %w", NewValidationError("limit", "must be positive"))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As should find the ValidationError")
	}
	if ve.Errors[0].Field != "limit" {
		t.Fatalf("unexpected field %q", ve.Errors[0].Field)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("wrapped error should match ErrValidation")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrNotFound, ErrAlreadyExists, ErrValidation}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
