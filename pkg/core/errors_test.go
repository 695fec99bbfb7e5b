package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestExecutionError_Error(t *testing.T) {
	err := &ExecutionError{
		Category: ErrCategoryAssertion,
		Code:     "test_error",
		Message:  "test message",
	}

	if got := err.Error(); got != "test message" {
		t.Errorf("Error() = %q, want %q", got, "test message")
	}
}

func TestExecutionError_ErrorWithCause(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ExecutionError{
		Category: ErrCategoryAssertion,
		Code:     "test_error",
		Message:  "test message",
		Cause:    cause,
	}

	got := err.Error()
	if !strings.Contains(got, "test message") {
		t.Errorf("Error() = %q, should contain 'test message'", got)
	}
	if !strings.Contains(got, "underlying error") {
		t.Errorf("Error() = %q, should contain 'underlying error'", got)
	}
}

func TestExecutionError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ExecutionError{
		Message: "wrapper",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
}

func TestExecutionError_WithCause(t *testing.T) {
	original := ErrElementNotFound
	cause := errors.New("custom cause")

	newErr := original.WithCause(cause)

	if newErr.Cause != cause {
		t.Error("WithCause() did not set cause")
	}
	if newErr.Code != original.Code {
		t.Error("WithCause() changed code")
	}
	if original.Cause != nil {
		t.Error("WithCause() modified original error")
	}
}

func TestExecutionError_WithMessage(t *testing.T) {
	original := ErrElementNotFound
	newErr := original.WithMessage("custom timeout message")

	if newErr.Message != "custom timeout message" {
		t.Errorf("Message = %q, want 'custom timeout message'", newErr.Message)
	}
	if newErr.Code != original.Code {
		t.Error("WithMessage() changed code")
	}
	if original.Message == "custom timeout message" {
		t.Error("WithMessage() modified original error")
	}
}

func TestExecutionError_WithDetails(t *testing.T) {
	original := &ExecutionError{
		Code:    "test",
		Message: "test",
		Details: map[string]interface{}{"existing": "value"},
	}

	newErr := original.WithDetails(map[string]interface{}{
		"selector": "#button",
		"timeout":  5000,
	})

	if newErr.Details["selector"] != "#button" {
		t.Error("WithDetails() did not add new details")
	}
	if newErr.Details["existing"] != "value" {
		t.Error("WithDetails() did not preserve existing details")
	}
	if _, ok := original.Details["selector"]; ok {
		t.Error("WithDetails() modified original error")
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err      *ExecutionError
		category ErrorCategory
		code     string
	}{
		{ErrUnmappedElement, ErrCategoryDeclaration, "unmapped_element"},
		{ErrInvalidElement, ErrCategoryDeclaration, "invalid_element"},
		{ErrDuplicateNamespace, ErrCategoryDeclaration, "duplicate_namespace"},
		{ErrUnknownScenario, ErrCategoryLaunch, "unknown_scenario"},
		{ErrLaunchFailed, ErrCategoryLaunch, "launch_failed"},
		{ErrElementNotFound, ErrCategoryAssertion, "element_not_found"},
		{ErrElementNotHittable, ErrCategoryAssertion, "element_not_hittable"},
		{ErrTextMismatch, ErrCategoryAssertion, "text_mismatch"},
		{ErrServerUnreachable, ErrCategoryConnection, "server_unreachable"},
		{ErrNoSession, ErrCategoryConnection, "no_session"},
		{ErrInvalidConfig, ErrCategoryConfig, "invalid_config"},
		{ErrMissingRequired, ErrCategoryConfig, "missing_required"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Category != tt.category {
				t.Errorf("Category = %s, want %s", tt.err.Category, tt.category)
			}
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Message should not be empty")
			}
		})
	}
}

func TestNewExecutionError(t *testing.T) {
	err := NewExecutionError(ErrCategoryLaunch, "custom_error", "custom message")

	if err.Category != ErrCategoryLaunch {
		t.Errorf("Category = %s, want %s", err.Category, ErrCategoryLaunch)
	}
	if err.Code != "custom_error" {
		t.Errorf("Code = %s, want 'custom_error'", err.Code)
	}
	if err.Message != "custom message" {
		t.Errorf("Message = %s, want 'custom message'", err.Message)
	}
}

func TestExecutionError_ErrorsIs(t *testing.T) {
	cause := errors.New("root cause")
	err := ErrServerUnreachable.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the cause")
	}
}

func TestExecutionError_IsMatchesSentinelByCode(t *testing.T) {
	derived := ErrUnmappedElement.
		WithMessage("home.tableView has no query kind").
		WithDetails(map[string]interface{}{"element": "tableView"})

	if !errors.Is(derived, ErrUnmappedElement) {
		t.Error("errors.Is() should match the sentinel of a derived copy")
	}
	if errors.Is(derived, ErrElementNotFound) {
		t.Error("errors.Is() should not match a different code")
	}

	wrapped := fmt.Errorf("resolve: %w", derived)
	if !errors.Is(wrapped, ErrUnmappedElement) {
		t.Error("errors.Is() should see through fmt.Errorf wrapping")
	}
}

func TestExecutionError_WithMessagef(t *testing.T) {
	err := ErrUnknownScenario.WithMessagef("coordinator %q not found", "Nope")
	if err.Message != `coordinator "Nope" not found` {
		t.Errorf("Message = %q", err.Message)
	}
}
