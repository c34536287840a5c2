package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors used to mark internal errors with a stable classification.
// Handlers and callers should test for these with errors.Is via the helper
// functions below instead of string matching.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrDatabase          = errors.New("database error")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrHTTPClient        = errors.New("http client error")
	ErrInternal          = errors.New("internal error")
	ErrEntitlementDenied = errors.New("entitlement denied")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPartialWrite      = errors.New("partial write inconsistency")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsNotFound returns true if the error is marked as a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation returns true if the error is marked as a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAlreadyExists returns true if the error is marked as an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsDatabase returns true if the error is marked as a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsPermissionDenied returns true if the error is marked as a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsEntitlementDenied returns true if the error is marked as an entitlement denied error
func IsEntitlementDenied(err error) bool {
	return errors.Is(err, ErrEntitlementDenied)
}

// IsInvalidTransition returns true if the error is marked as an invalid transition error
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsPartialWrite returns true if the error is marked as a partial write
// inconsistency. These indicate a recoverable data-integrity gap and must be
// logged distinctly from ordinary failures.
func IsPartialWrite(err error) bool {
	return errors.Is(err, ErrPartialWrite)
}
