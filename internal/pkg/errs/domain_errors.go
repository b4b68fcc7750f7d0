package errs

import "errors"

// Domain-specific sentinel errors for usecase layers
var (
	// Credit line errors
	ErrCreditLineNotFound = errors.New("credit line not found")

	// Risk evaluation errors
	ErrEvaluationNotFound = errors.New("risk evaluation not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")
)
