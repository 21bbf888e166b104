package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("rating", "must be between 0 and 5")

	if got := err.Error(); got != "validation: rating: must be between 0 and 5" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "username", Message: "username is required"},
		{Field: "email", Message: "email is required"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestValidationError_WrappedStillMatches(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("rate movie: %w", NewValidationError("rating", "bad"))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As should find *ValidationError through wrapping")
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("wrapped validation error should match ErrValidation")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrUpstream,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}

func TestRegistrationConflicts_MatchAlreadyExists(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrUsernameTaken, ErrEmailTaken} {
		wrapped := fmt.Errorf("create user: %w", err)
		if !errors.Is(wrapped, ErrAlreadyExists) {
			t.Errorf("%v should match ErrAlreadyExists", err)
		}
		if !errors.Is(wrapped, err) {
			t.Errorf("%v should match itself through wrapping", err)
		}
	}
	if ErrUsernameTaken.Error() != "username already exists" {
		t.Errorf("unexpected message %q", ErrUsernameTaken.Error())
	}
}
