package errors

import (
	"net/http"
)

// ErrorResponse is the wire format for error payloads returned by the API.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}

// ErrorDetail carries the message, hint and reportable details of an error.
type ErrorDetail struct {
	Message string                 `json:"message"`
	Hint    string                 `json:"hint,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewErrorResponse builds the API error payload for any error.
func NewErrorResponse(err error) *ErrorResponse {
	if err == nil {
		return nil
	}
	return &ErrorResponse{
		Success: false,
		Error: &ErrorDetail{
			Message: err.Error(),
			Hint:    Hint(err),
			Details: ReportableDetails(err),
		},
	}
}

// HTTPStatusFromErr maps an error's sentinel mark to an HTTP status code.
func HTTPStatusFromErr(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsInvalidTransition(err):
		return http.StatusConflict
	case IsPermissionDenied(err), IsEntitlementDenied(err):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
