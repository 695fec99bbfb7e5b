package core

// ErrorCategory classifies a failure for reporting
type ErrorCategory int

const (
	ErrCategoryNone        ErrorCategory = iota // No error
	ErrCategoryDeclaration                      // Element tag without a query mapping, bad provider
	ErrCategoryLaunch                           // Unknown scenario selector, launch failure
	ErrCategoryAssertion                        // Element not found, text mismatch, visibility check failed
	ErrCategoryTimeout                          // Wait condition timed out
	ErrCategoryConnection                       // Host/server connection lost
	ErrCategoryConfig                           // Invalid configuration, missing required field
)

// String returns the string representation of ErrorCategory
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryDeclaration:
		return "declaration"
	case ErrCategoryLaunch:
		return "launch"
	case ErrCategoryAssertion:
		return "assertion"
	case ErrCategoryTimeout:
		return "timeout"
	case ErrCategoryConnection:
		return "connection"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Fatal reports whether errors of this category must stop the scenario.
// Assertion failures are recorded and the chain continues.
func (c ErrorCategory) Fatal() bool {
	switch c {
	case ErrCategoryNone, ErrCategoryAssertion, ErrCategoryTimeout:
		return false
	default:
		return true
	}
}
