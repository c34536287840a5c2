package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InternalError is the concrete error type carried through the service
// layers. It wraps an underlying cause and attaches a user-presentable hint
// plus structured details safe to report back to the caller.
type InternalError struct {
	cause   error
	hint    string
	details map[string]interface{}
}

// ErrorBuilder provides a fluent API for constructing internal errors.
type ErrorBuilder struct {
	err *InternalError
}

// NewError starts building an error from a message.
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{
			cause: errors.New(msg),
		},
	}
}

// NewErrorf starts building an error from a format string.
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return NewError(fmt.Sprintf(format, args...))
}

// WithError starts building an error that wraps an existing error.
func WithError(err error) *ErrorBuilder {
	if err == nil {
		err = errors.New("unknown error")
	}
	return &ErrorBuilder{
		err: &InternalError{
			cause: err,
		},
	}
}

// WithHint attaches a human readable hint intended for the end user.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

// WithHintf attaches a formatted human readable hint.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.err.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details that are safe to expose
// in API responses and logs.
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.err.details = details
	return b
}

// Mark finalizes the builder and marks the error with the given sentinel so
// that errors.Is(err, sentinel) matches anywhere up the call chain.
func (b *ErrorBuilder) Mark(sentinel error) error {
	b.err.cause = errors.Mark(b.err.cause, sentinel)
	return b.err
}

// Err finalizes the builder without a sentinel mark.
func (b *ErrorBuilder) Err() error {
	return b.err
}

func (e *InternalError) Error() string {
	return e.cause.Error()
}

func (e *InternalError) Unwrap() error {
	return e.cause
}

// Hint returns the user-presentable hint from the outermost InternalError in
// the chain, if any.
func Hint(err error) string {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.hint
	}
	return ""
}

// ReportableDetails returns the structured details from the outermost
// InternalError in the chain, if any.
func ReportableDetails(err error) map[string]interface{} {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.details
	}
	return nil
}
